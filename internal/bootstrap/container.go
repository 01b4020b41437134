package bootstrap

import (
	"log"
	"time"

	"faq-assist-be/internal/config"
	"faq-assist-be/internal/controller"
	"faq-assist-be/internal/handler"
	"faq-assist-be/internal/pkg/logger"
	"faq-assist-be/internal/repository/implementation"
	"faq-assist-be/internal/repository/memory"
	"faq-assist-be/internal/service"
	"faq-assist-be/pkg/llm/ollama"
	"faq-assist-be/pkg/rag/intent"
	"faq-assist-be/pkg/rag/multiquery"
	"faq-assist-be/pkg/rag/response"
	"faq-assist-be/pkg/workerpool"

	pktNats "faq-assist-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	FaqController   controller.IFaqController
	AdminController controller.IAdminController

	// WebSocket transport
	ChatStreamHandler *handler.ChatStreamHandler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Owned resources released on shutdown
	Logger         logger.ILogger
	Pool           *workerpool.Pool
	EventPublisher *pktNats.Publisher
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	llmLogger := logger.NewIsolatedLogger(cfg.App.LlmLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	var eventPublisher *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		eventPublisher, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] NATS unavailable, escalation events disabled: %v", err)
			eventPublisher = nil
		}
	}

	// 3. Repositories
	faqRepo, err := implementation.NewFileFaqRepository(cfg.Faq.SourceJson, cfg.Faq.DataFile)
	if err != nil {
		log.Panicf("Unable to load FAQ corpus: %v", err)
	}
	sessionRepo := memory.NewSessionRepository(
		time.Duration(cfg.Session.IdleTimeoutMinutes)*time.Minute,
		time.Duration(cfg.Session.CleanupIntervalMinutes)*time.Minute,
	)

	// 4. LLM provider and RAG components
	llmProvider := ollama.NewOllamaProvider(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
		time.Duration(cfg.Ai.TimeoutSeconds)*time.Second,
	)
	classifier := intent.NewClassifier(llmProvider)
	expander := multiquery.NewExpander(llmProvider)
	generator := response.NewGenerator(llmProvider)

	// 5. Services
	runtimeConfig := service.NewRuntimeConfigService(service.RuntimeConfig{
		RagDefaultTopN:   cfg.Rag.DefaultTopN,
		RagRetrievalTopK: cfg.Rag.RetrievalTopK,
		RagRrfK:          cfg.Rag.RrfK,
		EscalateAfter:    cfg.Guardrail.EscalateAfter,
		ContactName:      cfg.Guardrail.ContactName,
		ContactPhone:     cfg.Guardrail.ContactPhone,
		ContactEmail:     cfg.Guardrail.ContactEmail,
	})

	faqService, err := service.NewFaqService(faqRepo, runtimeConfig, sysLogger)
	if err != nil {
		log.Panicf("Unable to build retrieval index: %v", err)
	}

	guardrailService := service.NewGuardrailService(classifier, sessionRepo, runtimeConfig, sysLogger)

	pool := workerpool.New(cfg.Pool.Workers, cfg.Pool.QueueSize)

	var escalationPublisher service.IEscalationPublisher
	if eventPublisher != nil {
		escalationPublisher = eventPublisher
	}

	chatService := service.NewChatService(
		faqService,
		guardrailService,
		expander,
		generator,
		llmProvider,
		sessionRepo,
		pool,
		escalationPublisher,
		sysLogger,
		llmLogger,
	)

	publisherService := service.NewPublisherService(cfg.Keys.AuditTopic, pubSub)
	adminService := service.NewAdminService(faqRepo, faqService, runtimeConfig, publisherService, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.AuditTopic, sysLogger)

	// 6. Controllers
	return &Container{
		FaqController:     controller.NewFaqController(chatService, faqService),
		AdminController:   controller.NewAdminController(adminService),
		ChatStreamHandler: handler.NewChatStreamHandler(chatService),
		ConsumerService:   consumerService,
		Logger:            sysLogger,
		Pool:              pool,
		EventPublisher:    eventPublisher,
	}
}
