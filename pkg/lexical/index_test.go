package lexical

import "testing"

func testDocs() []Document {
	return []Document{
		{Question: "how to reset password", Answer: "go to settings", Category: "account"},
		{Question: "how to close account", Answer: "contact support to reset your access", Category: "account"},
		{Question: "invoice is expired", Answer: "file a new invoice", Category: "invoice"},
	}
}

func TestSearchBlankQuery(t *testing.T) {
	ix := NewIndex(testDocs())

	if hits := ix.Search("", 10); hits != nil {
		t.Errorf("blank query: got %v, want nil", hits)
	}
	if hits := ix.Search("   ", 10); hits != nil {
		t.Errorf("whitespace query: got %v, want nil", hits)
	}
	if hits := ix.Search("？！", 10); hits != nil {
		t.Errorf("punctuation query: got %v, want nil", hits)
	}
}

func TestSearchQuestionFieldDominates(t *testing.T) {
	ix := NewIndex(testDocs())

	// "reset password" appears in doc 0's question and only partially in
	// doc 1's answer; the question boost must rank doc 0 first.
	hits := ix.Search("reset password", 10)
	if len(hits) == 0 {
		t.Fatal("expected hits")
	}
	if hits[0].DocIndex != 0 {
		t.Errorf("top hit = doc %d, want doc 0", hits[0].DocIndex)
	}
}

func TestSearchTopKTruncation(t *testing.T) {
	ix := NewIndex(testDocs())

	hits := ix.Search("how to reset", 1)
	if len(hits) != 1 {
		t.Fatalf("topK=1: got %d hits", len(hits))
	}
	if ix.Search("how to reset", 0) != nil {
		t.Error("topK=0 should yield nil")
	}
}

func TestSearchDeterministic(t *testing.T) {
	ix := NewIndex(testDocs())

	first := ix.Search("how to", 10)
	for i := 0; i < 20; i++ {
		again := ix.Search("how to", 10)
		if len(again) != len(first) {
			t.Fatalf("run %d: %d hits, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: hit %d = %+v, want %+v", i, j, again[j], first[j])
			}
		}
	}
}

func TestSearchScoresDescending(t *testing.T) {
	ix := NewIndex(testDocs())

	hits := ix.Search("how to reset password", 10)
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Errorf("hits not descending at %d: %v", i, hits)
		}
	}
}

func TestShortQueryMatchesTags(t *testing.T) {
	docs := []Document{
		{Question: "completely different words", Answer: "nothing shared", Category: "invoice"},
		{Question: "other topic entirely", Answer: "unrelated", Category: "account"},
	}
	ix := NewIndex(docs)

	// "invoice" is 7 runes, under the short-query limit, so the category
	// field participates and doc 0 must surface.
	hits := ix.Search("invoice", 10)
	if len(hits) == 0 {
		t.Fatal("expected category field match for short query")
	}
	if hits[0].DocIndex != 0 {
		t.Errorf("top hit = doc %d, want doc 0", hits[0].DocIndex)
	}
}

func TestVocabSize(t *testing.T) {
	if got := NewIndex(nil).VocabSize(); got != 0 {
		t.Errorf("empty index vocab = %d, want 0", got)
	}
	if got := NewIndex(testDocs()).VocabSize(); got == 0 {
		t.Error("populated index vocab should be non-zero")
	}
}
