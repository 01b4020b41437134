// Package lexical implements the character n-gram retrieval core: a
// field-weighted inverted index over FAQ entries, a standalone BM25 scorer,
// and the string-overlap helpers shared by the reranker and the guardrail
// override check. Matching is purely lexical; there are no embeddings here.
package lexical

import (
	"strings"
	"unicode"
)

// Normalize lowercases s and strips whitespace and punctuation. It is the
// shared normal form for overlap comparisons (rerank bonus, guardrail
// override).
func Normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Tokenize splits text into overlapping character n-grams of length 1 to 3
// after normalization. Single characters keep fuzzy recall high for short
// CJK queries; bigrams and trigrams carry most of the precision.
func Tokenize(text string) []string {
	cleaned := []rune(Normalize(text))
	if len(cleaned) == 0 {
		return nil
	}

	tokens := make([]string, 0, 3*len(cleaned))
	for _, r := range cleaned {
		tokens = append(tokens, string(r))
	}
	for i := 0; i+1 < len(cleaned); i++ {
		tokens = append(tokens, string(cleaned[i:i+2]))
	}
	for i := 0; i+2 < len(cleaned); i++ {
		tokens = append(tokens, string(cleaned[i:i+3]))
	}
	return tokens
}

// BigramSet returns the set of character bigrams of an already-normalized
// string. Strings shorter than two runes produce an empty set.
func BigramSet(s string) map[string]struct{} {
	runes := []rune(s)
	if len(runes) < 2 {
		return nil
	}
	set := make(map[string]struct{}, len(runes)-1)
	for i := 0; i+1 < len(runes); i++ {
		set[string(runes[i:i+2])] = struct{}{}
	}
	return set
}

// JaccardBigrams computes intersection-over-union of the character-bigram
// sets of two normalized strings.
func JaccardBigrams(a, b string) float64 {
	sa := BigramSet(a)
	sb := BigramSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}

	small, large := sa, sb
	if len(sb) < len(sa) {
		small, large = sb, sa
	}
	intersect := 0
	for x := range small {
		if _, ok := large[x]; ok {
			intersect++
		}
	}
	union := len(sa) + len(sb) - intersect
	if union <= 0 {
		return 0
	}
	return float64(intersect) / float64(union)
}

// BigramCoverage returns the fraction of query bigrams present in the
// document. Unlike Jaccard it is not diluted by document length, which
// matters for short keyword queries against long answers.
func BigramCoverage(queryNorm, docNorm string) float64 {
	q := BigramSet(queryNorm)
	d := BigramSet(docNorm)
	if len(q) == 0 || len(d) == 0 {
		return 0
	}
	hit := 0
	for bg := range q {
		if _, ok := d[bg]; ok {
			hit++
		}
	}
	return float64(hit) / float64(len(q))
}
