package rerank

import (
	"testing"

	"faq-assist-be/pkg/lexical"
)

func TestBonusBounds(t *testing.T) {
	queries := []string{
		"how to reset password",
		"發票過期了還可以承作嗎",
		"x",
		"",
	}
	texts := []string{
		"how to reset password",
		"completely unrelated text",
		"發票過期處理方式",
		"",
	}

	for _, q := range queries {
		norm := lexical.Normalize(q)
		for _, text := range texts {
			b := Bonus(norm, text)
			if b < 0 || b > ExactishBonus {
				t.Errorf("Bonus(%q, %q) = %v outside [0, %v]", q, text, b, ExactishBonus)
			}
		}
	}
}

func TestBonusExactMatch(t *testing.T) {
	norm := lexical.Normalize("how to reset password")
	if got := Bonus(norm, "How to reset password?"); got != ExactishBonus {
		t.Errorf("verbatim match bonus = %v, want %v", got, ExactishBonus)
	}
}

func TestBonusContainment(t *testing.T) {
	norm := lexical.Normalize("維持率")
	if got := Bonus(norm, "額度維持率不足時的處理"); got != ExactishBonus {
		t.Errorf("containment bonus = %v, want %v", got, ExactishBonus)
	}
}

func TestRerankVerbatimQueryWins(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Text: "how to reset password", Fused: 0.016},
		{ID: 2, Text: "how to close account", Fused: 0.017},
	}
	results := Rerank("how to reset password", candidates, 2)
	if results[0].ID != 1 {
		t.Errorf("top result = %d, want 1 (near-exact bonus outweighs fused gap)", results[0].ID)
	}
}

func TestRerankNeverReordersBeyondMaxBonus(t *testing.T) {
	// Candidate 2's fused lead exceeds the maximum bonus, so even a
	// verbatim match on candidate 1 cannot flip the order.
	candidates := []Candidate{
		{ID: 1, Text: "how to reset password", Fused: 0.010},
		{ID: 2, Text: "totally different entry", Fused: 0.200},
	}
	results := Rerank("how to reset password", candidates, 2)
	if results[0].ID != 2 {
		t.Errorf("top result = %d, want 2", results[0].ID)
	}
}

func TestRerankTiesById(t *testing.T) {
	candidates := []Candidate{
		{ID: 9, Text: "zzz", Fused: 0.5},
		{ID: 3, Text: "yyy", Fused: 0.5},
	}
	results := Rerank("unrelated query text", candidates, 2)
	if results[0].ID != 3 || results[1].ID != 9 {
		t.Errorf("tie order = %d,%d, want 3,9", results[0].ID, results[1].ID)
	}
}

func TestRerankTruncates(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Text: "a", Fused: 0.3},
		{ID: 2, Text: "b", Fused: 0.2},
		{ID: 3, Text: "c", Fused: 0.1},
	}
	if got := Rerank("q", candidates, 2); len(got) != 2 {
		t.Errorf("got %d results, want 2", len(got))
	}
}

func TestPoolSize(t *testing.T) {
	tests := []struct {
		topN int
		want int
	}{
		{1, 10},
		{3, 30},
		{5, 50},
		{10, 50},
		{60, 50},
	}
	for _, tt := range tests {
		if got := PoolSize(tt.topN); got != tt.want {
			t.Errorf("PoolSize(%d) = %d, want %d", tt.topN, got, tt.want)
		}
	}
}
