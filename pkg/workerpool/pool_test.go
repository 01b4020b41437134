package workerpool

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSubmittedTasksRun(t *testing.T) {
	p := New(4, 16)
	defer p.Shutdown()

	var ran atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		if err := p.Submit(func() {
			defer wg.Done()
			ran.Add(1)
		}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	wg.Wait()
	if got := ran.Load(); got != 20 {
		t.Fatalf("ran %d tasks, want 20", got)
	}
}

func TestSubmitRejectsWhenSaturated(t *testing.T) {
	p := New(1, 1)
	defer p.Shutdown()

	block := make(chan struct{})
	started := make(chan struct{})
	if err := p.Submit(func() {
		close(started)
		<-block
	}); err != nil {
		t.Fatal(err)
	}
	<-started

	// Worker is occupied; fill the single queue slot.
	if err := p.Submit(func() { <-block }); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- p.Submit(func() {}) }()
	select {
	case err := <-done:
		if !errors.Is(err, ErrPoolSaturated) {
			t.Fatalf("Submit = %v, want ErrPoolSaturated", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on a saturated pool")
	}

	close(block)
}

func TestShutdownDrainsQueue(t *testing.T) {
	p := New(2, 8)

	var ran atomic.Int32
	for i := 0; i < 8; i++ {
		if err := p.Submit(func() { ran.Add(1) }); err != nil {
			t.Fatal(err)
		}
	}
	p.Shutdown()

	if got := ran.Load(); got != 8 {
		t.Fatalf("ran %d tasks before Shutdown returned, want 8", got)
	}
	if err := p.Submit(func() {}); !errors.Is(err, ErrPoolSaturated) {
		t.Fatalf("Submit after Shutdown = %v, want ErrPoolSaturated", err)
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	p := New(1, 0)
	p.Shutdown()
	p.Shutdown()
}
