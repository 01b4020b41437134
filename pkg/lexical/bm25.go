package lexical

import (
	"math"
	"sort"
)

// BM25 is a standalone term-frequency/inverse-document-frequency scorer with
// document-length normalization over the same n-gram tokenization as the
// index. It serves as an independent fallback ranker.
type BM25 struct {
	k1 float64
	b  float64

	tokenizedDocs [][]string
	idf           map[string]float64
	avgDocLength  float64
}

// NewBM25 creates an unfitted scorer with the given tuning parameters.
func NewBM25(k1, b float64) *BM25 {
	return &BM25{
		k1:  k1,
		b:   b,
		idf: make(map[string]float64),
	}
}

// Fit tokenizes docs and computes inverse document frequencies. It replaces
// any previously fitted corpus.
func (bm *BM25) Fit(docs []string) {
	bm.tokenizedDocs = make([][]string, 0, len(docs))
	bm.idf = make(map[string]float64)

	docFreq := make(map[string]int)
	totalLength := 0
	for _, doc := range docs {
		tokens := Tokenize(doc)
		bm.tokenizedDocs = append(bm.tokenizedDocs, tokens)
		totalLength += len(tokens)

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			seen[tok] = struct{}{}
		}
		for tok := range seen {
			docFreq[tok]++
		}
	}

	if len(docs) > 0 {
		bm.avgDocLength = float64(totalLength) / float64(len(docs))
	} else {
		bm.avgDocLength = 0
	}

	n := float64(len(docs))
	for tok, df := range docFreq {
		bm.idf[tok] = math.Log((n-float64(df)+0.5)/(float64(df)+0.5) + 1.0)
	}
}

// Score returns one raw BM25 score per fitted document.
func (bm *BM25) Score(query string) []float64 {
	queryTokens := Tokenize(query)
	scores := make([]float64, len(bm.tokenizedDocs))
	for i, docTokens := range bm.tokenizedDocs {
		scores[i] = bm.scoreDocument(queryTokens, docTokens)
	}
	return scores
}

func (bm *BM25) scoreDocument(queryTokens, docTokens []string) float64 {
	if bm.avgDocLength == 0 {
		return 0
	}

	termFreq := make(map[string]int, len(docTokens))
	for _, tok := range docTokens {
		termFreq[tok]++
	}

	score := 0.0
	docLength := float64(len(docTokens))
	for _, term := range queryTokens {
		idf, ok := bm.idf[term]
		if !ok {
			continue
		}
		tf := float64(termFreq[term])
		numerator := tf * (bm.k1 + 1)
		denominator := tf + bm.k1*(1-bm.b+bm.b*docLength/bm.avgDocLength)
		score += idf * numerator / denominator
	}
	return score
}

// NormalizedScore divides every score by the maximum so the best document
// scores 1.0.
func (bm *BM25) NormalizedScore(query string) []float64 {
	scores := bm.Score(query)
	maxScore := 0.0
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore > 0 {
		for i := range scores {
			scores[i] /= maxScore
		}
	}
	return scores
}

// RankedDocIDs returns the indices of the topK positive-scoring documents,
// best first, ties broken by ascending index.
func (bm *BM25) RankedDocIDs(query string, topK int) []int {
	scores := bm.Score(query)

	type indexed struct {
		idx   int
		score float64
	}
	ranked := make([]indexed, 0, len(scores))
	for i, s := range scores {
		if s > 0 {
			ranked = append(ranked, indexed{idx: i, score: s})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].idx < ranked[j].idx
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	out := make([]int, len(ranked))
	for i, r := range ranked {
		out[i] = r.idx
	}
	return out
}

// DocCount returns the number of fitted documents.
func (bm *BM25) DocCount() int {
	return len(bm.tokenizedDocs)
}

// AvgDocLength returns the mean token count of the fitted corpus.
func (bm *BM25) AvgDocLength() float64 {
	return bm.avgDocLength
}
