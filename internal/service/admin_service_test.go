// FILE: internal/service/admin_service_test.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"faq-assist-be/internal/dto"
	"faq-assist-be/internal/entity"
	"faq-assist-be/internal/repository/implementation"
	"faq-assist-be/pkg/events"
)

type capturingBus struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (b *capturingBus) Publish(ctx context.Context, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.payloads = append(b.payloads, payload)
	return nil
}

func (b *capturingBus) lastEvent(t *testing.T) auditMessage {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.payloads) == 0 {
		t.Fatal("no audit events published")
	}
	var msg auditMessage
	if err := json.Unmarshal(b.payloads[len(b.payloads)-1], &msg); err != nil {
		t.Fatal(err)
	}
	return msg
}

func newAdminFixture(t *testing.T, bus *capturingBus) (IAdminService, IFaqService) {
	t.Helper()
	repo := newCorpusRepo(t, []entity.Faq{
		{Question: "如何修改發票日", Answer: "至交易維護畫面修改。", Category: "發票管理"},
	})
	cfg := defaultRetrievalConfig()
	faqSvc, err := NewFaqService(repo, cfg, nopLogger{})
	if err != nil {
		t.Fatal(err)
	}
	return NewAdminService(repo, faqSvc, cfg, bus, nopLogger{}), faqSvc
}

func TestCreateFaqReindexesAndAudits(t *testing.T) {
	bus := &capturingBus{}
	admin, faqSvc := newAdminFixture(t, bus)

	created, err := admin.CreateFaq(context.Background(), &dto.CreateFaqRequest{
		Question: "預支價金是什麼",
		Answer:   "交易前預先撥付的價金。",
		Category: "交易操作",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Id != 2 {
		t.Fatalf("created id = %d, want 2", created.Id)
	}
	if faqSvc.FaqCount() != 2 {
		t.Fatal("index not rebuilt after create")
	}
	if hits := faqSvc.SearchRag("預支價金是什麼", 3); len(hits) == 0 || hits[0].Id != 2 {
		t.Fatalf("new entry not retrievable: %+v", hits)
	}

	ev := bus.lastEvent(t)
	if ev.EventType != events.TypeFaqCreated {
		t.Errorf("audit event = %q", ev.EventType)
	}
}

func TestUpdateAndDeleteFaq(t *testing.T) {
	bus := &capturingBus{}
	admin, faqSvc := newAdminFixture(t, bus)

	updated, err := admin.UpdateFaq(context.Background(), 1, &dto.UpdateFaqRequest{
		Question: "發票日如何調整",
		Answer:   "至交易維護畫面調整。",
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Question != "發票日如何調整" {
		t.Fatalf("updated = %+v", updated)
	}
	if ev := bus.lastEvent(t); ev.EventType != events.TypeFaqUpdated {
		t.Errorf("audit event = %q", ev.EventType)
	}

	if err := admin.DeleteFaq(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if faqSvc.FaqCount() != 0 {
		t.Fatal("index not rebuilt after delete")
	}
	if ev := bus.lastEvent(t); ev.EventType != events.TypeFaqDeleted {
		t.Errorf("audit event = %q", ev.EventType)
	}

	if _, err := admin.UpdateFaq(context.Background(), 99, &dto.UpdateFaqRequest{Question: "q", Answer: "a"}); !errors.Is(err, implementation.ErrFaqNotFound) {
		t.Errorf("update missing faq = %v, want ErrFaqNotFound", err)
	}
}

func TestUpdateConfigAudits(t *testing.T) {
	bus := &capturingBus{}
	admin, _ := newAdminFixture(t, bus)

	topN := 7
	got := admin.UpdateConfig(context.Background(), &dto.UpdateConfigRequest{RagDefaultTopN: &topN})
	if got.RagDefaultTopN != 7 {
		t.Fatalf("config response = %+v", got)
	}
	if admin.GetConfig().RagDefaultTopN != 7 {
		t.Fatal("GetConfig does not reflect the update")
	}
	if ev := bus.lastEvent(t); ev.EventType != events.TypeConfigUpdated {
		t.Errorf("audit event = %q", ev.EventType)
	}
}

func TestMutationsSurviveBusFailure(t *testing.T) {
	bus := &capturingBus{err: errors.New("bus down")}
	admin, faqSvc := newAdminFixture(t, bus)

	created, err := admin.CreateFaq(context.Background(), &dto.CreateFaqRequest{Question: "q", Answer: "a"})
	if err != nil {
		t.Fatalf("create failed on a bus error: %v", err)
	}
	if created == nil || faqSvc.FaqCount() != 2 {
		t.Fatal("mutation not applied despite bus failure")
	}
}
