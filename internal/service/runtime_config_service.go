package service

import (
	"sync"
	"sync/atomic"

	"faq-assist-be/internal/dto"
)

// RuntimeConfig is one immutable snapshot of the tunable knobs. Updates
// swap the whole snapshot so readers never see a half-applied change.
type RuntimeConfig struct {
	RagDefaultTopN   int
	RagRetrievalTopK int
	RagRrfK          int
	EscalateAfter    int
	ContactName      string
	ContactPhone     string
	ContactEmail     string
}

// IRuntimeConfigService defines runtime-tunable configuration access
type IRuntimeConfigService interface {
	Snapshot() RuntimeConfig
	Update(request *dto.UpdateConfigRequest) RuntimeConfig
}

type runtimeConfigService struct {
	mu      sync.Mutex // serializes writers; readers go through the pointer
	current atomic.Pointer[RuntimeConfig]
}

// NewRuntimeConfigService seeds the service with the boot-time defaults.
func NewRuntimeConfigService(defaults RuntimeConfig) IRuntimeConfigService {
	s := &runtimeConfigService{}
	s.current.Store(&defaults)
	return s
}

func (s *runtimeConfigService) Snapshot() RuntimeConfig {
	return *s.current.Load()
}

// Update applies the non-nil fields of the request over the current
// snapshot and returns the resulting configuration.
func (s *runtimeConfigService) Update(request *dto.UpdateConfigRequest) RuntimeConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.current.Load()
	if request.RagDefaultTopN != nil {
		next.RagDefaultTopN = *request.RagDefaultTopN
	}
	if request.RagRetrievalTopK != nil {
		next.RagRetrievalTopK = *request.RagRetrievalTopK
	}
	if request.RagRrfK != nil {
		next.RagRrfK = *request.RagRrfK
	}
	if request.EscalateAfter != nil {
		next.EscalateAfter = *request.EscalateAfter
	}
	if request.ContactName != nil {
		next.ContactName = *request.ContactName
	}
	if request.ContactPhone != nil {
		next.ContactPhone = *request.ContactPhone
	}
	if request.ContactEmail != nil {
		next.ContactEmail = *request.ContactEmail
	}
	s.current.Store(&next)
	return next
}
