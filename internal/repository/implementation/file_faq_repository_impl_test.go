// FILE: internal/repository/implementation/file_faq_repository_impl_test.go
package implementation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"faq-assist-be/internal/entity"
)

func writeSeed(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "seed.json")
	seed := `[
  {"id": 1, "question": "如何修改發票日", "answer": "至交易維護畫面修改。", "category": "發票管理"},
  {"question": "額度凍結怎麼解除", "answer": "聯繫業務主管解除。", "category": "額度管理"}
]`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAssignsMissingIds(t *testing.T) {
	seed := writeSeed(t, t.TempDir())
	repo, err := NewFileFaqRepository(seed, "")
	if err != nil {
		t.Fatal(err)
	}

	all, err := repo.FindAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("loaded %d faqs, want 2", len(all))
	}
	if all[0].Id != 1 || all[1].Id != 2 {
		t.Fatalf("ids = %d, %d; want 1, 2", all[0].Id, all[1].Id)
	}
	if repo.Count() != 2 {
		t.Fatalf("Count = %d, want 2", repo.Count())
	}
}

func TestCrudCycle(t *testing.T) {
	repo, err := NewFileFaqRepository("", "")
	if err != nil {
		t.Fatal(err)
	}

	created, err := repo.Create(&entity.Faq{Question: "q", Answer: "a", Score: 9.9})
	if err != nil {
		t.Fatal(err)
	}
	if created.Id != 1 {
		t.Fatalf("created id = %d, want 1", created.Id)
	}
	if created.Score != 0 {
		t.Error("Create must zero the transient score")
	}

	updated, err := repo.Update(created.Id, &entity.Faq{Question: "q2", Answer: "a2"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Question != "q2" || updated.Id != created.Id {
		t.Fatalf("updated = %+v", updated)
	}

	got, err := repo.FindById(created.Id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Answer != "a2" {
		t.Fatalf("answer = %q after update", got.Answer)
	}

	if err := repo.Delete(created.Id); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.FindById(created.Id); !errors.Is(err, ErrFaqNotFound) {
		t.Fatalf("FindById after Delete = %v, want ErrFaqNotFound", err)
	}
}

func TestNotFoundErrors(t *testing.T) {
	repo, _ := NewFileFaqRepository("", "")

	if _, err := repo.FindById(42); !errors.Is(err, ErrFaqNotFound) {
		t.Errorf("FindById = %v", err)
	}
	if _, err := repo.Update(42, &entity.Faq{Question: "q", Answer: "a"}); !errors.Is(err, ErrFaqNotFound) {
		t.Errorf("Update = %v", err)
	}
	if err := repo.Delete(42); !errors.Is(err, ErrFaqNotFound) {
		t.Errorf("Delete = %v", err)
	}
}

func TestMutationsPersistAcrossReload(t *testing.T) {
	dir := t.TempDir()
	seed := writeSeed(t, dir)
	dataFile := filepath.Join(dir, "faq.json")

	repo, err := NewFileFaqRepository(seed, dataFile)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Create(&entity.Faq{Question: "新問題", Answer: "新答案"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(1); err != nil {
		t.Fatal(err)
	}

	// dataFile now exists, so a reload must prefer it over the seed.
	reloaded, err := NewFileFaqRepository(seed, dataFile)
	if err != nil {
		t.Fatal(err)
	}
	all, _ := reloaded.FindAll()
	if len(all) != 2 {
		t.Fatalf("reloaded %d faqs, want 2", len(all))
	}
	if _, err := reloaded.FindById(1); !errors.Is(err, ErrFaqNotFound) {
		t.Fatal("deleted faq resurrected after reload")
	}
	if _, err := reloaded.FindById(3); err != nil {
		t.Fatalf("created faq missing after reload: %v", err)
	}
}

func TestReadsReturnIndependentCopies(t *testing.T) {
	repo, _ := NewFileFaqRepository("", "")
	created, _ := repo.Create(&entity.Faq{Question: "q", Answer: "a"})

	created.Question = "mutated"
	got, err := repo.FindById(created.Id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Question != "q" {
		t.Fatal("mutating a returned copy leaked into the store")
	}

	all, _ := repo.FindAll()
	all[0].Answer = "mutated"
	got, _ = repo.FindById(created.Id)
	if got.Answer != "a" {
		t.Fatal("mutating FindAll output leaked into the store")
	}
}
