package memory

import (
	"sync"
	"time"

	"faq-assist-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository is the in-memory session registry. go-cache owns idle
// expiration; every counter mutation re-sets the entry so the TTL follows
// last activity. GetOrCreate is serialized by mu so two concurrent first
// turns on one session id observe the same *ChatSession.
type SessionRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

// NewSessionRepository creates a registry whose sessions expire after
// idleTimeout without activity. Expired entries are purged in the
// background every cleanupInterval.
func NewSessionRepository(idleTimeout, cleanupInterval time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(idleTimeout, cleanupInterval),
	}
}

// Get returns the live session for sessionID, if any.
func (r *SessionRepository) Get(sessionID string) (*store.ChatSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.ChatSession), true
	}
	return nil, false
}

// GetOrCreate atomically returns the existing session or registers a new
// one.
func (r *SessionRepository) GetOrCreate(sessionID string) *store.ChatSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.ChatSession)
	}
	sess := store.NewChatSession(sessionID)
	r.cache.Set(sessionID, sess, cache.DefaultExpiration)
	return sess
}

// IncrementUnrelated bumps the session's off-topic counter and refreshes
// its idle TTL. It returns the new counter value.
func (r *SessionRepository) IncrementUnrelated(sess *store.ChatSession) int {
	count := sess.IncrementUnrelated()
	r.touch(sess)
	return count
}

// ResetUnrelated zeroes the session's off-topic counter and refreshes its
// idle TTL.
func (r *SessionRepository) ResetUnrelated(sess *store.ChatSession) {
	sess.ResetUnrelated()
	r.touch(sess)
}

// Delete drops a session immediately.
func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// CleanExpired removes sessions idle past their timeout. go-cache also runs
// this periodically; exposing it keeps ActiveCount exact on demand.
func (r *SessionRepository) CleanExpired() {
	r.cache.DeleteExpired()
}

// ActiveCount returns the number of live sessions.
func (r *SessionRepository) ActiveCount() int {
	r.cache.DeleteExpired()
	return r.cache.ItemCount()
}

func (r *SessionRepository) touch(sess *store.ChatSession) {
	r.cache.Set(sess.ID, sess, cache.DefaultExpiration)
}
