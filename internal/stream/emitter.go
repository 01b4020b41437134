// Package stream carries chat pipeline events from the orchestrator to a
// transport (SSE or websocket). The emitter also owns the per-turn
// cancellation flag: once set it stays set, and every Send checks it first.
package stream

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrCancelled is returned by Send once the turn has been cancelled.
var ErrCancelled = errors.New("stream: turn cancelled")

// Event is one emitted record. Data must be JSON-serializable; its field
// names form the contract with the presentation layer.
type Event struct {
	Name string
	Data any
}

// Emitter is the orchestrator's view of one streaming turn.
type Emitter interface {
	// Send emits one event. It fails with ErrCancelled after cancellation.
	Send(name string, data any) error
	// Cancel sets the monotonic per-turn cancellation flag.
	Cancel()
	// Cancelled reports whether the turn was cancelled.
	Cancelled() bool
	// Close marks the event stream complete. No Send may follow.
	Close()
}

// ChannelEmitter buffers events on a channel for a transport goroutine to
// drain. If the transport stops draining (client gone), Cancel unblocks any
// pending Send.
type ChannelEmitter struct {
	events    chan Event
	done      chan struct{}
	cancelled atomic.Bool
	closeOnce sync.Once
	doneOnce  sync.Once
}

func NewChannelEmitter(buffer int) *ChannelEmitter {
	return &ChannelEmitter{
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

// Events returns the drain side. The channel is closed by Close.
func (e *ChannelEmitter) Events() <-chan Event {
	return e.events
}

func (e *ChannelEmitter) Send(name string, data any) error {
	if e.cancelled.Load() {
		return ErrCancelled
	}
	select {
	case e.events <- Event{Name: name, Data: data}:
		return nil
	case <-e.done:
		return ErrCancelled
	}
}

func (e *ChannelEmitter) Cancel() {
	e.cancelled.Store(true)
	e.doneOnce.Do(func() { close(e.done) })
}

func (e *ChannelEmitter) Cancelled() bool {
	return e.cancelled.Load()
}

func (e *ChannelEmitter) Close() {
	e.closeOnce.Do(func() { close(e.events) })
}
