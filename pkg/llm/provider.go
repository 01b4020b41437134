package llm

import (
	"context"
)

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// ChunkFunc receives one streamed completion fragment.
type ChunkFunc func(chunk string)

// CancelledFunc is polled between fragments; once it returns true the
// provider must stop producing promptly and release its connection.
type CancelledFunc func() bool

// Provider defines the contract for any LLM backend.
type Provider interface {
	// Generate sends a single prompt to the model and returns the full
	// response.
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// GenerateStream sends a prompt and delivers the response incrementally
	// through onChunk. cancelled is polled at chunk granularity; when it
	// fires the call returns without error and stops reading the upstream
	// connection.
	GenerateStream(ctx context.Context, prompt string, onChunk ChunkFunc, cancelled CancelledFunc, options ...Option) error

	// Available reports whether the backend is reachable.
	Available(ctx context.Context) bool
}
