package lexical

import "testing"

func fittedBM25() *BM25 {
	bm := NewBM25(1.5, 0.75)
	bm.Fit([]string{
		"how to reset password go to settings",
		"how to close account contact support",
		"invoice is expired file a new invoice",
	})
	return bm
}

func TestBM25RankedDocIDs(t *testing.T) {
	bm := fittedBM25()

	ranked := bm.RankedDocIDs("reset password", 10)
	if len(ranked) == 0 {
		t.Fatal("expected ranked documents")
	}
	if ranked[0] != 0 {
		t.Errorf("top doc = %d, want 0", ranked[0])
	}

	// A query sharing nothing with the corpus ranks nothing.
	if got := bm.RankedDocIDs("ωψχφ", 10); len(got) != 0 {
		t.Errorf("disjoint query ranked %v, want none", got)
	}
}

func TestBM25RankedDocIDsTruncates(t *testing.T) {
	bm := fittedBM25()
	if got := bm.RankedDocIDs("how to", 1); len(got) > 1 {
		t.Errorf("topK=1 returned %d docs", len(got))
	}
}

func TestBM25NormalizedScore(t *testing.T) {
	bm := fittedBM25()

	scores := bm.NormalizedScore("reset password")
	maxSeen := 0.0
	for i, s := range scores {
		if s < 0 || s > 1 {
			t.Errorf("score[%d] = %v outside [0,1]", i, s)
		}
		if s > maxSeen {
			maxSeen = s
		}
	}
	if maxSeen != 1.0 {
		t.Errorf("best normalized score = %v, want 1.0", maxSeen)
	}
}

func TestBM25EmptyCorpus(t *testing.T) {
	bm := NewBM25(1.5, 0.75)
	bm.Fit(nil)

	if got := bm.RankedDocIDs("anything", 5); len(got) != 0 {
		t.Errorf("empty corpus ranked %v", got)
	}
	if bm.DocCount() != 0 {
		t.Errorf("DocCount = %d, want 0", bm.DocCount())
	}
}
