package contract

import "faq-assist-be/pkg/store"

// ISessionRepository defines the session registry operations
type ISessionRepository interface {
	Get(sessionID string) (*store.ChatSession, bool)
	GetOrCreate(sessionID string) *store.ChatSession
	IncrementUnrelated(sess *store.ChatSession) int
	ResetUnrelated(sess *store.ChatSession)
	Delete(sessionID string)
	CleanExpired()
	ActiveCount() int
}
