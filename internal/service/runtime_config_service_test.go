package service

import (
	"sync"
	"testing"

	"faq-assist-be/internal/dto"
)

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	svc := NewRuntimeConfigService(RuntimeConfig{
		RagDefaultTopN:   5,
		RagRetrievalTopK: 10,
		RagRrfK:          60,
		EscalateAfter:    3,
		ContactName:      "客服中心",
		ContactPhone:     "(02)2181-0101",
		ContactEmail:     "service@bank.example.com",
	})

	topN := 8
	name := "進線客服"
	got := svc.Update(&dto.UpdateConfigRequest{
		RagDefaultTopN: &topN,
		ContactName:    &name,
	})

	if got.RagDefaultTopN != 8 || got.ContactName != "進線客服" {
		t.Fatalf("updated fields not applied: %+v", got)
	}
	if got.RagRetrievalTopK != 10 || got.RagRrfK != 60 || got.EscalateAfter != 3 {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if got.ContactPhone != "(02)2181-0101" || got.ContactEmail != "service@bank.example.com" {
		t.Fatalf("untouched contact fields changed: %+v", got)
	}
	if svc.Snapshot() != got {
		t.Fatal("Snapshot disagrees with the Update return value")
	}
}

func TestConcurrentUpdatesLoseNothing(t *testing.T) {
	svc := NewRuntimeConfigService(RuntimeConfig{RagDefaultTopN: 1, EscalateAfter: 1})

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				svc.Update(&dto.UpdateConfigRequest{RagDefaultTopN: &i})
			} else {
				svc.Update(&dto.UpdateConfigRequest{EscalateAfter: &i})
			}
		}(i)
	}
	wg.Wait()

	got := svc.Snapshot()
	// Even writers own RagDefaultTopN, odd writers own EscalateAfter. A
	// torn read-modify-write would let one group clobber the other's field
	// back to a stale value with the wrong parity.
	if got.RagDefaultTopN%2 != 0 {
		t.Fatalf("RagDefaultTopN = %d, want a value from an even writer", got.RagDefaultTopN)
	}
	if got.EscalateAfter%2 != 1 {
		t.Fatalf("EscalateAfter = %d, want a value from an odd writer", got.EscalateAfter)
	}
}
