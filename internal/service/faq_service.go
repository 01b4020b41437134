package service

import (
	"fmt"
	"sort"
	"sync/atomic"

	"faq-assist-be/internal/entity"
	"faq-assist-be/internal/pkg/logger"
	"faq-assist-be/internal/repository/contract"
	"faq-assist-be/pkg/lexical"
	"faq-assist-be/pkg/rag/fusion"
	"faq-assist-be/pkg/rag/rerank"
)

const (
	// Standalone BM25 scorer parameters for the fallback ranker.
	bm25K1 = 1.5
	bm25B  = 0.75

	// Normalized BM25 scores below this are noise, not matches.
	bm25ScoreCutoff = 0.01
)

// IFaqService defines corpus retrieval operations
type IFaqService interface {
	Reindex() error
	SearchRag(query string, topN int) []entity.Faq
	SearchRagMulti(original string, queries []string, topN int) []entity.Faq
	SearchLexicalOnly(query string, topK int) []entity.Faq
	SearchWithContext(query string, topN int) []entity.Faq
	GetAllFaq() ([]entity.Faq, error)
	FaqCount() int
	VocabSize() int
}

// indexSnapshot holds one consistent view of the corpus and its derived
// index structures. Rebuilds construct a full replacement offline, then
// swap the pointer, so queries never see a half-built index.
type indexSnapshot struct {
	faqs  []entity.Faq
	index *lexical.Index
	bm25  *lexical.BM25
}

type faqService struct {
	faqRepo  contract.IFaqRepository
	config   IRuntimeConfigService
	logger   logger.ILogger
	snapshot atomic.Pointer[indexSnapshot]
}

func NewFaqService(faqRepo contract.IFaqRepository, config IRuntimeConfigService, log logger.ILogger) (IFaqService, error) {
	s := &faqService{
		faqRepo: faqRepo,
		config:  config,
		logger:  log,
	}
	if err := s.Reindex(); err != nil {
		return nil, fmt.Errorf("initial index build: %w", err)
	}
	return s, nil
}

// Reindex rebuilds the index snapshot from the repository. On failure the
// previous snapshot stays active.
func (s *faqService) Reindex() error {
	faqs, err := s.faqRepo.FindAll()
	if err != nil {
		return fmt.Errorf("list corpus: %w", err)
	}

	docs := make([]lexical.Document, len(faqs))
	texts := make([]string, len(faqs))
	for i, f := range faqs {
		docs[i] = lexical.Document{
			Question: f.Question,
			Answer:   f.Answer,
			Category: f.Category,
			Module:   f.Module,
			Source:   f.Source,
		}
		texts[i] = f.Question + " " + f.Answer
	}

	bm25 := lexical.NewBM25(bm25K1, bm25B)
	bm25.Fit(texts)

	s.snapshot.Store(&indexSnapshot{
		faqs:  faqs,
		index: lexical.NewIndex(docs),
		bm25:  bm25,
	})

	s.logger.Info("FaqService", "Index rebuilt", map[string]interface{}{
		"faqCount": len(faqs),
	})
	return nil
}

// SearchRag runs the single-query retrieval path: lexical search over the
// active snapshot, then the lexical-bonus rerank.
func (s *faqService) SearchRag(query string, topN int) []entity.Faq {
	return s.SearchRagMulti(query, []string{query}, topN)
}

// SearchRagMulti fuses the rankings of several query variants with RRF,
// reranks the fused pool against the original query, and returns the topN
// entries as independent copies with their final scores attached.
func (s *faqService) SearchRagMulti(original string, queries []string, topN int) []entity.Faq {
	snap := s.snapshot.Load()
	if snap == nil || len(snap.faqs) == 0 {
		return nil
	}
	cfg := s.config.Snapshot()
	if topN <= 0 {
		topN = cfg.RagDefaultTopN
	}

	var rankings [][]int
	for _, q := range queries {
		hits := snap.index.Search(q, cfg.RagRetrievalTopK)
		if len(hits) == 0 {
			continue
		}
		ranking := make([]int, len(hits))
		for i, h := range hits {
			ranking[i] = h.DocIndex
		}
		rankings = append(rankings, ranking)
	}
	if len(rankings) == 0 {
		return nil
	}

	fused := fusion.RRF(rankings, cfg.RagRrfK)

	candidates := make([]rerank.Candidate, 0, len(fused))
	for docIdx, score := range fused {
		candidates = append(candidates, rerank.Candidate{
			ID:    docIdx,
			Text:  snap.faqs[docIdx].Question,
			Fused: score,
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Fused != candidates[j].Fused {
			return candidates[i].Fused > candidates[j].Fused
		}
		return candidates[i].ID < candidates[j].ID
	})
	if pool := rerank.PoolSize(topN); len(candidates) > pool {
		candidates = candidates[:pool]
	}

	results := rerank.Rerank(original, candidates, topN)

	out := make([]entity.Faq, 0, len(results))
	for _, r := range results {
		f := *snap.faqs[r.ID].Copy()
		f.Score = r.Score
		out = append(out, f)
	}
	return out
}

// SearchLexicalOnly skips fusion and rerank. The guardrail uses this as
// its cheap override probe.
func (s *faqService) SearchLexicalOnly(query string, topK int) []entity.Faq {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil
	}

	hits := snap.index.Search(query, topK)
	out := make([]entity.Faq, 0, len(hits))
	for _, h := range hits {
		f := *snap.faqs[h.DocIndex].Copy()
		f.Score = h.Score
		out = append(out, f)
	}
	return out
}

// SearchWithContext is the standalone BM25 fallback ranker: normalized
// scores, entries below the cutoff dropped.
func (s *faqService) SearchWithContext(query string, topN int) []entity.Faq {
	snap := s.snapshot.Load()
	if snap == nil || topN <= 0 {
		return nil
	}

	scores := snap.bm25.NormalizedScore(query)
	type scored struct {
		idx   int
		score float64
	}
	var kept []scored
	for i, sc := range scores {
		if sc >= bm25ScoreCutoff {
			kept = append(kept, scored{idx: i, score: sc})
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].score != kept[j].score {
			return kept[i].score > kept[j].score
		}
		return kept[i].idx < kept[j].idx
	})
	if len(kept) > topN {
		kept = kept[:topN]
	}

	out := make([]entity.Faq, 0, len(kept))
	for _, k := range kept {
		f := *snap.faqs[k.idx].Copy()
		f.Score = k.score
		out = append(out, f)
	}
	return out
}

func (s *faqService) GetAllFaq() ([]entity.Faq, error) {
	return s.faqRepo.FindAll()
}

func (s *faqService) FaqCount() int {
	snap := s.snapshot.Load()
	if snap == nil {
		return 0
	}
	return len(snap.faqs)
}

func (s *faqService) VocabSize() int {
	snap := s.snapshot.Load()
	if snap == nil {
		return 0
	}
	return snap.index.VocabSize()
}
