package service

import (
	"context"
	"fmt"
	"strings"

	"faq-assist-be/internal/entity"
	"faq-assist-be/internal/pkg/logger"
	"faq-assist-be/internal/repository/contract"
	"faq-assist-be/pkg/lexical"
	"faq-assist-be/pkg/rag/intent"
	"faq-assist-be/pkg/store"
)

// Override thresholds are empirically tuned against the production corpus.
// They are variables, not constants, so a recalibration run can adjust
// them without touching the decision logic.
var (
	OverrideMinJaccard       = 0.18
	OverrideMinQueryCoverage = 0.6
)

const (
	defaultUnrelatedMessage = "抱歉，此問題不在本系統服務範圍內。"
	defaultUnclearMessage   = "請問您想了解的是關於交易、發票還是額度方面的問題呢？"

	// Lexical probe depth for the override check.
	overrideProbeTopK = 3
)

// IGuardrailService defines the per-turn domain-relevance gate
type IGuardrailService interface {
	ClassifyIntent(ctx context.Context, question string) intent.Result
	ShouldOverride(query string, quickHits []entity.Faq) bool
	HandleGuardrail(sess *store.ChatSession, result intent.Result) string
	ShouldEscalate(sess *store.ChatSession) bool
	ContactInfo() string
	ProbeTopK() int
}

type guardrailService struct {
	classifier  *intent.Classifier
	sessionRepo contract.ISessionRepository
	config      IRuntimeConfigService
	logger      logger.ILogger
}

func NewGuardrailService(
	classifier *intent.Classifier,
	sessionRepo contract.ISessionRepository,
	config IRuntimeConfigService,
	log logger.ILogger,
) IGuardrailService {
	return &guardrailService{
		classifier:  classifier,
		sessionRepo: sessionRepo,
		config:      config,
		logger:      log,
	}
}

// ClassifyIntent delegates to the LLM classifier. The classifier itself
// fails open to RELATED, so this never blocks a turn on an LLM outage.
func (s *guardrailService) ClassifyIntent(ctx context.Context, question string) intent.Result {
	result := s.classifier.Classify(ctx, question)
	s.logger.Debug("GuardrailService", "Intent classified", map[string]interface{}{
		"intent": result.Intent,
	})
	return result
}

// ShouldOverride decides whether lexical evidence outweighs an
// UNRELATED/UNCLEAR verdict. The query is compared against the top probe
// hit's question and answer: containment, bigram Jaccard, or query-bigram
// coverage above threshold all fire the override.
func (s *guardrailService) ShouldOverride(query string, quickHits []entity.Faq) bool {
	if len(quickHits) == 0 {
		return false
	}
	q := lexical.Normalize(query)
	if q == "" {
		return false
	}

	top := quickHits[0]
	doc := lexical.Normalize(top.Question + " " + top.Answer)
	if doc == "" {
		return false
	}

	// Containment first: for short queries Jaccard is diluted by long
	// answers, but a literal hit is unambiguous.
	if strings.Contains(doc, q) || strings.Contains(q, doc) {
		return true
	}
	if lexical.JaccardBigrams(q, doc) >= OverrideMinJaccard {
		return true
	}
	return lexical.BigramCoverage(q, doc) >= OverrideMinQueryCoverage
}

// HandleGuardrail records one off-topic turn and returns the user-facing
// message: the classifier's own message while under the escalation
// threshold, the contact info once it is reached.
func (s *guardrailService) HandleGuardrail(sess *store.ChatSession, result intent.Result) string {
	count := s.sessionRepo.IncrementUnrelated(sess)

	if count >= s.config.Snapshot().EscalateAfter {
		return s.ContactInfo()
	}
	if result.Message != "" {
		return result.Message
	}
	if result.IsUnclear() {
		return defaultUnclearMessage
	}
	return defaultUnrelatedMessage
}

func (s *guardrailService) ShouldEscalate(sess *store.ChatSession) bool {
	return sess.UnrelatedCount() >= s.config.Snapshot().EscalateAfter
}

// ContactInfo renders the human hand-off message from the runtime config.
func (s *guardrailService) ContactInfo() string {
	cfg := s.config.Snapshot()
	return fmt.Sprintf(
		"抱歉，該問題請與%s聯繫：\n電話：%s\nEmail：%s",
		cfg.ContactName, cfg.ContactPhone, cfg.ContactEmail,
	)
}

func (s *guardrailService) ProbeTopK() int {
	return overrideProbeTopK
}
