package lexical

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Reset PASSWORD", "resetpassword"},
		{"strips punctuation", "如何建立（標準型）交易？", "如何建立標準型交易"},
		{"strips whitespace", "  a b\tc\nd ", "abcd"},
		{"empty", "", ""},
		{"only punctuation", "？！。，", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("abc")
	want := []string{"a", "b", "c", "ab", "bc", "abc"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize(\"abc\") = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if Tokenize("") != nil {
		t.Error("Tokenize(\"\") should be nil")
	}
	if Tokenize("！？") != nil {
		t.Error("punctuation-only input should tokenize to nil")
	}
}

func TestTokenizeNormalizesFirst(t *testing.T) {
	a := Tokenize("發票 過期")
	b := Tokenize("發票過期")
	if len(a) != len(b) {
		t.Fatalf("whitespace should not change tokens: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("token[%d]: %q != %q", i, a[i], b[i])
		}
	}
}

func TestJaccardBigrams(t *testing.T) {
	if got := JaccardBigrams("abcd", "abcd"); got != 1.0 {
		t.Errorf("identical strings: got %v, want 1.0", got)
	}
	if got := JaccardBigrams("abcd", "wxyz"); got != 0.0 {
		t.Errorf("disjoint strings: got %v, want 0.0", got)
	}
	if got := JaccardBigrams("a", "abcd"); got != 0.0 {
		t.Errorf("single-rune string has no bigrams: got %v", got)
	}

	// abc -> {ab, bc}, abd -> {ab, bd}: intersection 1, union 3.
	got := JaccardBigrams("abc", "abd")
	if math.Abs(got-1.0/3.0) > 1e-12 {
		t.Errorf("got %v, want 1/3", got)
	}
}

func TestBigramCoverage(t *testing.T) {
	// Every query bigram appears in the doc even though the doc is long.
	if got := BigramCoverage("發票過期", "發票過期了還可以承作嗎其他很長的答案內容"); got != 1.0 {
		t.Errorf("full coverage: got %v, want 1.0", got)
	}
	if got := BigramCoverage("wxyz", "abcdef"); got != 0.0 {
		t.Errorf("no coverage: got %v, want 0.0", got)
	}
	if got := BigramCoverage("", "abcdef"); got != 0.0 {
		t.Errorf("empty query: got %v, want 0.0", got)
	}
}
