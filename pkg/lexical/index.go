package lexical

import (
	"math"
	"sort"
	"strings"
)

// Document is the indexable projection of one FAQ entry.
type Document struct {
	Question string
	Answer   string
	Category string
	Module   string
	Source   string
}

// Hit is one retrieval result: the position of the entry in the indexed
// slice plus its field-weighted score.
type Hit struct {
	DocIndex int
	Score    float64
}

// Field boosts mirror the tuning of the production deployment: the question
// field dominates, the combined question+answer field provides recall, the
// answer alone is weakest. Tag fields only participate for short queries,
// where a category or module name is likely the whole query.
const (
	boostQuestion = 2.5
	boostCombined = 1.0
	boostAnswer   = 0.6
	boostCategory = 1.2
	boostModule   = 0.9
	boostSource   = 0.2

	// Queries at or below this many runes (after trimming) additionally
	// match against category/module/source.
	shortQueryRunes = 10

	indexK1 = 1.2
	indexB  = 0.75
)

type fieldIndex struct {
	postings map[string]map[int]int // token -> doc index -> term frequency
	docFreq  map[string]int
	docLen   []int
	avgLen   float64
}

func buildField(texts []string) *fieldIndex {
	fi := &fieldIndex{
		postings: make(map[string]map[int]int),
		docFreq:  make(map[string]int),
		docLen:   make([]int, len(texts)),
	}

	total := 0
	for i, text := range texts {
		tokens := Tokenize(text)
		fi.docLen[i] = len(tokens)
		total += len(tokens)

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			docs, ok := fi.postings[tok]
			if !ok {
				docs = make(map[int]int)
				fi.postings[tok] = docs
			}
			docs[i]++
			seen[tok] = struct{}{}
		}
		for tok := range seen {
			fi.docFreq[tok]++
		}
	}
	if len(texts) > 0 {
		fi.avgLen = float64(total) / float64(len(texts))
	}
	return fi
}

// accumulate adds boost-weighted BM25 contributions of queryTokens into
// scores, one entry per matching document.
func (fi *fieldIndex) accumulate(queryTokens []string, boost float64, scores map[int]float64) {
	n := float64(len(fi.docLen))
	if n == 0 {
		return
	}
	for _, tok := range queryTokens {
		docs, ok := fi.postings[tok]
		if !ok {
			continue
		}
		df := float64(fi.docFreq[tok])
		idf := math.Log((n-df+0.5)/(df+0.5) + 1.0)
		for doc, tf := range docs {
			ftf := float64(tf)
			denom := ftf + indexK1*(1-indexB+indexB*float64(fi.docLen[doc])/fi.avgLen)
			scores[doc] += boost * idf * (ftf * (indexK1 + 1)) / denom
		}
	}
}

// Index is an immutable n-gram inverted index over one corpus snapshot.
// Rebuilds construct a fresh Index and swap the pointer; queries against an
// existing Index are always consistent and lock-free.
type Index struct {
	question *fieldIndex
	answer   *fieldIndex
	combined *fieldIndex
	category *fieldIndex
	module   *fieldIndex
	source   *fieldIndex
	docCount int
}

// NewIndex builds a complete index over docs. The returned Index is never
// mutated afterwards.
func NewIndex(docs []Document) *Index {
	questions := make([]string, len(docs))
	answers := make([]string, len(docs))
	combined := make([]string, len(docs))
	categories := make([]string, len(docs))
	modules := make([]string, len(docs))
	sources := make([]string, len(docs))
	for i, d := range docs {
		questions[i] = d.Question
		answers[i] = d.Answer
		combined[i] = d.Question + " " + d.Answer
		categories[i] = d.Category
		modules[i] = d.Module
		sources[i] = d.Source
	}

	return &Index{
		question: buildField(questions),
		answer:   buildField(answers),
		combined: buildField(combined),
		category: buildField(categories),
		module:   buildField(modules),
		source:   buildField(sources),
		docCount: len(docs),
	}
}

// DocCount returns the number of indexed entries.
func (ix *Index) DocCount() int {
	if ix == nil {
		return 0
	}
	return ix.docCount
}

// VocabSize returns the number of distinct tokens in the combined field.
func (ix *Index) VocabSize() int {
	if ix == nil {
		return 0
	}
	return len(ix.combined.postings)
}

// Search scores the query against all fields and returns up to topK hits,
// best first. Ties are broken by ascending document index so identical
// inputs always produce identical rankings. A blank query yields no hits.
func (ix *Index) Search(query string, topK int) []Hit {
	if ix == nil || topK <= 0 {
		return nil
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil
	}

	queryTokens := Tokenize(trimmed)
	if len(queryTokens) == 0 {
		return nil
	}

	scores := make(map[int]float64)
	ix.question.accumulate(queryTokens, boostQuestion, scores)
	ix.combined.accumulate(queryTokens, boostCombined, scores)
	ix.answer.accumulate(queryTokens, boostAnswer, scores)

	if len([]rune(trimmed)) <= shortQueryRunes {
		ix.category.accumulate(queryTokens, boostCategory, scores)
		ix.module.accumulate(queryTokens, boostModule, scores)
		ix.source.accumulate(queryTokens, boostSource, scores)
	}

	hits := make([]Hit, 0, len(scores))
	for doc, score := range scores {
		hits = append(hits, Hit{DocIndex: doc, Score: score})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].DocIndex < hits[j].DocIndex
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits
}
