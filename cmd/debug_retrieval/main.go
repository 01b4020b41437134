package main

import (
	"flag"
	"fmt"
	"log"

	"faq-assist-be/internal/config"
	"faq-assist-be/internal/pkg/logger"
	"faq-assist-be/internal/repository/implementation"
	"faq-assist-be/internal/service"
)

// Offline retrieval check: runs a query through the full lexical
// search + fusion + rerank path against the configured corpus and prints
// the scored results, without touching the LLM.
func main() {
	query := flag.String("q", "", "query to run")
	topN := flag.Int("n", 5, "results to return")
	flag.Parse()

	if *query == "" {
		log.Fatal("usage: debug_retrieval -q <query> [-n topN]")
	}

	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)

	faqRepo, err := implementation.NewFileFaqRepository(cfg.Faq.SourceJson, cfg.Faq.DataFile)
	if err != nil {
		log.Fatalf("load corpus: %v", err)
	}

	runtimeConfig := service.NewRuntimeConfigService(service.RuntimeConfig{
		RagDefaultTopN:   cfg.Rag.DefaultTopN,
		RagRetrievalTopK: cfg.Rag.RetrievalTopK,
		RagRrfK:          cfg.Rag.RrfK,
		EscalateAfter:    cfg.Guardrail.EscalateAfter,
	})
	faqService, err := service.NewFaqService(faqRepo, runtimeConfig, sysLogger)
	if err != nil {
		log.Fatalf("build index: %v", err)
	}

	fmt.Printf("corpus=%d vocab=%d query=%q\n\n", faqService.FaqCount(), faqService.VocabSize(), *query)

	fmt.Println("== fused + reranked ==")
	for _, f := range faqService.SearchRag(*query, *topN) {
		fmt.Printf("%8.4f  #%d  %s\n", f.Score, f.Id, f.Question)
	}

	fmt.Println("\n== bm25 fallback ==")
	for _, f := range faqService.SearchWithContext(*query, *topN) {
		fmt.Printf("%8.4f  #%d  %s\n", f.Score, f.Id, f.Question)
	}
}
