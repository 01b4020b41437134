// Package rerank adjusts fused retrieval scores with a lexical-similarity
// bonus favouring near-exact question matches.
package rerank

import (
	"sort"
	"strings"

	"faq-assist-be/pkg/lexical"
)

const (
	// CandidateMultiplier and MaxCandidates bound the rerank pool so cost
	// stays independent of corpus size.
	CandidateMultiplier = 10
	MaxCandidates       = 50

	// ExactishJaccardThreshold marks a candidate as a near-exact match of
	// the query; such candidates get the full ExactishBonus. Everything
	// else gets a soft bonus proportional to similarity.
	ExactishJaccardThreshold = 0.35
	ExactishBonus            = 0.10
	SoftBonusScale           = 0.01
)

// Candidate is one fused retrieval result entering the reranker.
type Candidate struct {
	ID    int
	Text  string // primary text compared against the query (the FAQ question)
	Fused float64
}

// Result carries a candidate id with its final fused+bonus score.
type Result struct {
	ID    int
	Score float64
}

// PoolSize returns how many fused candidates to consider for topN final
// results: min(MaxCandidates, max(topN*CandidateMultiplier, topN)).
func PoolSize(topN int) int {
	pool := topN * CandidateMultiplier
	if pool < topN {
		pool = topN
	}
	if pool > MaxCandidates {
		pool = MaxCandidates
	}
	return pool
}

// Bonus computes the lexical bonus for one candidate text given the
// normalized query. The result is always within [0, ExactishBonus].
func Bonus(normQuery, text string) float64 {
	if normQuery == "" {
		return 0
	}
	normText := lexical.Normalize(text)
	if normText == "" {
		return 0
	}

	jac := lexical.JaccardBigrams(normQuery, normText)
	exactish := jac >= ExactishJaccardThreshold ||
		strings.Contains(normText, normQuery) || strings.Contains(normQuery, normText)
	if exactish {
		return ExactishBonus
	}
	return jac * SoftBonusScale
}

// Rerank applies the bonus to every candidate, sorts by final score
// descending (ties by ascending id), and truncates to topN.
func Rerank(query string, candidates []Candidate, topN int) []Result {
	normQuery := lexical.Normalize(query)

	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, Result{
			ID:    c.ID,
			Score: c.Fused + Bonus(normQuery, c.Text),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})
	if len(results) > topN {
		results = results[:topN]
	}
	return results
}
