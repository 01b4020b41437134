// Package store holds the in-memory conversation state shared between the
// guardrail and the chat orchestrator.
package store

import (
	"sync"
	"time"
)

// ChatSession tracks per-conversation guardrail state. It records liveness
// and the consecutive off-topic counter only; conversation transcripts are
// never kept. All mutators touch LastActiveAt under the session lock so two
// concurrent turns on one session can never lose an update.
type ChatSession struct {
	ID        string
	CreatedAt time.Time

	mu                        sync.Mutex
	lastActiveAt              time.Time
	consecutiveUnrelatedCount int
}

// NewChatSession creates a fresh session with a zero off-topic counter.
func NewChatSession(id string) *ChatSession {
	now := time.Now()
	return &ChatSession{
		ID:           id,
		CreatedAt:    now,
		lastActiveAt: now,
	}
}

// LastActiveAt returns the last mutation time.
func (s *ChatSession) LastActiveAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActiveAt
}

// UnrelatedCount returns the current consecutive off-topic counter.
func (s *ChatSession) UnrelatedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consecutiveUnrelatedCount
}

// IncrementUnrelated bumps the off-topic counter by exactly one and touches
// the session. It returns the new counter value.
func (s *ChatSession) IncrementUnrelated() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consecutiveUnrelatedCount++
	s.lastActiveAt = time.Now()
	return s.consecutiveUnrelatedCount
}

// ResetUnrelated sets the off-topic counter back to zero and touches the
// session.
func (s *ChatSession) ResetUnrelated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consecutiveUnrelatedCount = 0
	s.lastActiveAt = time.Now()
}
