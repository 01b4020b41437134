package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestRepo() *SessionRepository {
	return NewSessionRepository(30*time.Minute, time.Hour)
}

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	r := newTestRepo()

	a := r.GetOrCreate("s1")
	b := r.GetOrCreate("s1")
	if a != b {
		t.Fatal("GetOrCreate returned distinct sessions for one id")
	}
	if got, found := r.Get("s1"); !found || got != a {
		t.Fatal("Get did not return the registered session")
	}
	if _, found := r.Get("missing"); found {
		t.Fatal("Get found a session that was never created")
	}
}

func TestGetOrCreateIsAtomicUnderContention(t *testing.T) {
	r := newTestRepo()

	const goroutines = 32
	sessions := make([]any, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessions[i] = r.GetOrCreate("shared")
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if sessions[i] != sessions[0] {
			t.Fatal("concurrent GetOrCreate produced more than one session")
		}
	}
}

func TestConcurrentIncrementsAreLossless(t *testing.T) {
	r := newTestRepo()
	sess := r.GetOrCreate("s1")

	const goroutines, perGoroutine = 16, 50
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				r.IncrementUnrelated(sess)
			}
		}()
	}
	wg.Wait()

	if got := sess.UnrelatedCount(); got != goroutines*perGoroutine {
		t.Fatalf("counter = %d, want %d", got, goroutines*perGoroutine)
	}
}

func TestResetUnrelated(t *testing.T) {
	r := newTestRepo()
	sess := r.GetOrCreate("s1")

	r.IncrementUnrelated(sess)
	r.IncrementUnrelated(sess)
	if got := sess.UnrelatedCount(); got != 2 {
		t.Fatalf("counter = %d, want 2", got)
	}
	r.ResetUnrelated(sess)
	if got := sess.UnrelatedCount(); got != 0 {
		t.Fatalf("counter = %d after reset, want 0", got)
	}
}

func TestDeleteAndActiveCount(t *testing.T) {
	r := newTestRepo()
	for i := 0; i < 3; i++ {
		r.GetOrCreate(fmt.Sprintf("s%d", i))
	}
	if got := r.ActiveCount(); got != 3 {
		t.Fatalf("ActiveCount = %d, want 3", got)
	}

	r.Delete("s1")
	if got := r.ActiveCount(); got != 2 {
		t.Fatalf("ActiveCount after Delete = %d, want 2", got)
	}
	if _, found := r.Get("s1"); found {
		t.Fatal("deleted session still retrievable")
	}
}

func TestIdleSessionsExpire(t *testing.T) {
	r := NewSessionRepository(20*time.Millisecond, time.Hour)
	r.GetOrCreate("s1")

	time.Sleep(40 * time.Millisecond)
	r.CleanExpired()

	if _, found := r.Get("s1"); found {
		t.Fatal("session survived past its idle timeout")
	}
	if got := r.ActiveCount(); got != 0 {
		t.Fatalf("ActiveCount = %d, want 0", got)
	}
}
