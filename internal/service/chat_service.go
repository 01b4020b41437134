package service

import (
	"context"
	"fmt"
	"strings"

	"faq-assist-be/internal/dto"
	"faq-assist-be/internal/entity"
	"faq-assist-be/internal/pkg/logger"
	"faq-assist-be/internal/repository/contract"
	"faq-assist-be/internal/stream"
	"faq-assist-be/pkg/events"
	"faq-assist-be/pkg/llm"
	"faq-assist-be/pkg/rag/multiquery"
	"faq-assist-be/pkg/rag/response"
	"faq-assist-be/pkg/store"
	"faq-assist-be/pkg/workerpool"

	"github.com/google/uuid"
)

const (
	busyMessage = "系統忙碌，請稍後再試"

	// Generation context is capped regardless of how many sources the
	// client asked for.
	maxGenerationContexts = 3
)

// IEscalationPublisher receives guardrail escalation events. Optional;
// a nil publisher disables ops forwarding.
type IEscalationPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// IChatService defines the chat turn orchestration
type IChatService interface {
	ProcessStreamingChat(ctx context.Context, request *dto.ChatRequest, emitter stream.Emitter) error
	ProcessChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
	ClearSession(sessionId string)
	Status(ctx context.Context) *dto.StatusResponse
}

// chatService drives the classify → expand → retrieve → generate pipeline.
// Each streaming turn runs as one task on a bounded worker pool; the
// emitter owns the per-turn cancellation flag.
type chatService struct {
	faqService IFaqService
	guardrail  IGuardrailService
	expander   *multiquery.Expander
	generator  *response.Generator
	provider   llm.Provider
	sessions   contract.ISessionRepository
	pool       *workerpool.Pool
	publisher  IEscalationPublisher
	logger     logger.ILogger
	llmLogger  logger.ILogger
}

func NewChatService(
	faqService IFaqService,
	guardrail IGuardrailService,
	expander *multiquery.Expander,
	generator *response.Generator,
	provider llm.Provider,
	sessions contract.ISessionRepository,
	pool *workerpool.Pool,
	publisher IEscalationPublisher,
	log logger.ILogger,
	llmLog logger.ILogger,
) IChatService {
	return &chatService{
		faqService: faqService,
		guardrail:  guardrail,
		expander:   expander,
		generator:  generator,
		provider:   provider,
		sessions:   sessions,
		pool:       pool,
		publisher:  publisher,
		logger:     log,
		llmLogger:  llmLog,
	}
}

// ProcessStreamingChat submits one streaming turn to the worker pool. On
// saturation it emits the busy error itself and returns ErrPoolSaturated;
// nothing is ever queued unboundedly.
func (s *chatService) ProcessStreamingChat(ctx context.Context, request *dto.ChatRequest, emitter stream.Emitter) error {
	question := request.Question
	newSession := request.SessionId == ""
	sid := request.SessionId
	if newSession {
		sid = uuid.NewString()
	}
	topN := request.TopN

	err := s.pool.Submit(func() {
		defer emitter.Close()
		s.runStreamingTurn(ctx, question, sid, newSession, topN, emitter)
	})
	if err != nil {
		s.logger.Warn("ChatService", "Streaming turn rejected, pool saturated", map[string]interface{}{
			"sessionId": sid,
		})
		_ = emitter.Send("error", dto.NewErrorEvent(busyMessage))
		emitter.Close()
		return fmt.Errorf("submit streaming turn: %w", workerpool.ErrPoolSaturated)
	}
	return nil
}

// runStreamingTurn emits the full event sequence for one turn. Every send
// goes through the emitter, whose cancellation flag is checked before each
// emission; a failed write cancels the rest of the turn.
func (s *chatService) runStreamingTurn(ctx context.Context, question, sid string, newSession bool, topN int, emitter stream.Emitter) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("ChatService", "Streaming turn panicked", map[string]interface{}{
				"sessionId": sid,
				"panic":     fmt.Sprintf("%v", r),
			})
			_ = emitter.Send("error", dto.NewErrorEvent("內部錯誤，請稍後再試"))
		}
	}()

	if emitter.Send("session", dto.NewSessionEvent(sid, newSession)) != nil {
		return
	}
	if emitter.Send("thinking", dto.NewThinkingEvent("判斷問題類型中...")) != nil {
		return
	}

	intentResult := s.guardrail.ClassifyIntent(ctx, question)
	if emitter.Send("intent", dto.NewIntentEvent(intentResult.Intent, intentResult.Message, intentResult.SuggestKeywords)) != nil {
		return
	}

	sess := s.sessions.GetOrCreate(sid)

	if intentResult.IsUnrelated() || intentResult.IsUnclear() {
		quickHits := s.faqService.SearchLexicalOnly(question, s.guardrail.ProbeTopK())
		if !s.guardrail.ShouldOverride(question, quickHits) {
			message := s.guardrail.HandleGuardrail(sess, intentResult)
			s.publishEscalation(ctx, sess)

			if emitter.Send("chunk", dto.NewChunkEvent(message)) != nil {
				return
			}
			if emitter.Send("sources", dto.NewSourcesEvent(nil)) != nil {
				return
			}
			_ = emitter.Send("done", dto.NewDoneEvent())
			return
		}
	}

	s.sessions.ResetUnrelated(sess)

	if emitter.Send("thinking", dto.NewThinkingEvent("整理關鍵字中...")) != nil {
		return
	}

	multiQuery := s.expander.Expand(ctx, question)
	if emitter.Send("multiquery", dto.NewMultiQueryEvent(multiQuery.Original, multiQuery.Keyword, multiQuery.Colloquial)) != nil {
		return
	}
	if emitter.Send("thinking", dto.NewThinkingEvent("搜尋資料中...")) != nil {
		return
	}

	sources := s.searchSources(question, multiQuery, topN)
	if emitter.Send("sources", dto.NewSourcesEvent(sources)) != nil {
		return
	}
	if emitter.Send("thinking", dto.NewThinkingEvent("正在生成回答...")) != nil {
		return
	}

	var fullResponse strings.Builder
	err := s.generator.GenerateStream(ctx, question, s.buildContexts(sources),
		func(chunk string) {
			if emitter.Cancelled() {
				return
			}
			fullResponse.WriteString(chunk)
			if emitter.Send("chunk", dto.NewChunkEvent(chunk)) != nil {
				// Client is gone; stop the generation loop too.
				emitter.Cancel()
			}
		},
		emitter.Cancelled,
	)
	if err != nil {
		s.logger.Error("ChatService", "Streaming generation failed", map[string]interface{}{
			"sessionId": sid,
			"error":     err.Error(),
		})
		_ = emitter.Send("error", dto.NewErrorEvent(err.Error()))
		return
	}
	s.llmLogger.Info("ChatService", "Streamed answer", map[string]interface{}{
		"sessionId": sid,
		"question":  question,
		"answer":    fullResponse.String(),
	})

	s.handleGeneratedAnswer(ctx, sess, fullResponse.String(), emitter)

	if !emitter.Cancelled() {
		_ = emitter.Send("done", dto.NewDoneEvent())
	}
}

// handleGeneratedAnswer feeds the finished answer back into guardrail
// state: a cannot-answer marker counts as an off-topic turn even though
// the classifier said RELATED, anything else resets the counter.
func (s *chatService) handleGeneratedAnswer(ctx context.Context, sess *store.ChatSession, answer string, emitter stream.Emitter) {
	if response.ContainsCannotAnswer(answer) {
		count := s.sessions.IncrementUnrelated(sess)
		s.logger.Info("ChatService", "Answer declined by model", map[string]interface{}{
			"sessionId": sess.ID,
			"count":     count,
		})
		if s.guardrail.ShouldEscalate(sess) {
			s.publishEscalation(ctx, sess)
			if !emitter.Cancelled() {
				_ = emitter.Send("chunk", dto.NewChunkEvent("\n\n---\n"+s.guardrail.ContactInfo()))
			}
		}
		return
	}
	s.sessions.ResetUnrelated(sess)
}

// ProcessChat runs the same pipeline synchronously. Expansion and
// generation each run exactly once per request.
func (s *chatService) ProcessChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	question := request.Question
	newSession := request.SessionId == ""
	sid := request.SessionId
	if newSession {
		sid = uuid.NewString()
	}

	intentResult := s.guardrail.ClassifyIntent(ctx, question)
	sess := s.sessions.GetOrCreate(sid)

	if intentResult.IsUnrelated() || intentResult.IsUnclear() {
		quickHits := s.faqService.SearchLexicalOnly(question, s.guardrail.ProbeTopK())
		if !s.guardrail.ShouldOverride(question, quickHits) {
			message := s.guardrail.HandleGuardrail(sess, intentResult)
			escalated := s.guardrail.ShouldEscalate(sess)
			s.publishEscalation(ctx, sess)

			return &dto.ChatResponse{
				SessionId:  sid,
				NewSession: newSession,
				Intent:     intentResult.Intent,
				Answer:     message,
				Sources:    []entity.Faq{},
				Escalated:  escalated,
			}, nil
		}
	}

	s.sessions.ResetUnrelated(sess)

	multiQuery := s.expander.Expand(ctx, question)
	sources := s.searchSources(question, multiQuery, request.TopN)

	answer, err := s.generator.Generate(ctx, question, s.buildContexts(sources))
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}
	s.llmLogger.Info("ChatService", "Generated answer", map[string]interface{}{
		"sessionId": sid,
		"question":  question,
		"answer":    answer,
	})

	escalated := false
	if response.ContainsCannotAnswer(answer) {
		s.sessions.IncrementUnrelated(sess)
		if s.guardrail.ShouldEscalate(sess) {
			escalated = true
			s.publishEscalation(ctx, sess)
			answer += "\n\n---\n" + s.guardrail.ContactInfo()
		}
	} else {
		s.sessions.ResetUnrelated(sess)
	}

	return &dto.ChatResponse{
		SessionId:  sid,
		NewSession: newSession,
		Intent:     intentResult.Intent,
		Answer:     answer,
		Sources:    sources,
		MultiQuery: &dto.MultiQueryInfo{
			Original:   multiQuery.Original,
			Keyword:    multiQuery.Keyword,
			Colloquial: multiQuery.Colloquial,
		},
		Escalated: escalated,
	}, nil
}

func (s *chatService) ClearSession(sessionId string) {
	s.sessions.Delete(sessionId)
}

func (s *chatService) Status(ctx context.Context) *dto.StatusResponse {
	return &dto.StatusResponse{
		Status:         "ok",
		Mode:           "lexical-rag",
		FaqCount:       s.faqService.FaqCount(),
		VocabSize:      s.faqService.VocabSize(),
		ActiveSessions: s.sessions.ActiveCount(),
		LlmAvailable:   s.provider.Available(ctx),
	}
}

func (s *chatService) searchSources(question string, multiQuery multiquery.Result, topN int) []entity.Faq {
	queries := multiquery.CleanQueries(multiQuery.ToList())
	sources := s.faqService.SearchRagMulti(question, queries, topN)
	if sources == nil {
		sources = []entity.Faq{}
	}
	return sources
}

func (s *chatService) buildContexts(sources []entity.Faq) []string {
	n := len(sources)
	if n > maxGenerationContexts {
		n = maxGenerationContexts
	}
	contexts := make([]string, 0, n)
	for _, f := range sources[:n] {
		contexts = append(contexts, response.FormatContext(int(f.Id), f.Question, f.Answer))
	}
	return contexts
}

// publishEscalation forwards a threshold crossing to the ops bus. Failures
// are logged and swallowed; the user-facing turn never depends on NATS.
func (s *chatService) publishEscalation(ctx context.Context, sess *store.ChatSession) {
	if s.publisher == nil || !s.guardrail.ShouldEscalate(sess) {
		return
	}
	ev := events.NewGuardrailEscalated(sess.ID, sess.UnrelatedCount())
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("ChatService", "Failed to publish escalation event", map[string]interface{}{
			"sessionId": sess.ID,
			"error":     err.Error(),
		})
	}
}
