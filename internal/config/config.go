package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Ai        AIConfig
	Rag       RagConfig
	Guardrail GuardrailConfig
	Session   SessionConfig
	Faq       FaqConfig
	Pool      PoolConfig
	Keys      APIKeys
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	LlmLogFilePath     string
	CorsAllowedOrigins string
	NatsURL            string
	OtelEnabled        bool
	OtelEndpoint       string
}

type AIConfig struct {
	OllamaBaseURL  string
	OllamaModel    string
	TimeoutSeconds int
}

type RagConfig struct {
	DefaultTopN   int
	RetrievalTopK int
	RrfK          int
}

type GuardrailConfig struct {
	EscalateAfter int
	ContactName   string
	ContactPhone  string
	ContactEmail  string
}

type SessionConfig struct {
	IdleTimeoutMinutes     int
	CleanupIntervalMinutes int
}

type FaqConfig struct {
	SourceJson string
	DataFile   string
}

type PoolConfig struct {
	Workers   int
	QueueSize int
}

type APIKeys struct {
	AdminKey   string
	AuditTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8080"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			LlmLogFilePath:     getEnv("LLM_LOG_FILE_PATH", "logs/llm.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			OtelEnabled:        getEnv("OTEL_ENABLED", "false") == "true",
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Ai: AIConfig{
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:    getEnv("OLLAMA_MODEL", "qwen2.5:7b"),
			TimeoutSeconds: getEnvAsInt("OLLAMA_TIMEOUT_SECONDS", 120),
		},
		Rag: RagConfig{
			DefaultTopN:   getEnvAsInt("RAG_DEFAULT_TOP_N", 5),
			RetrievalTopK: getEnvAsInt("RAG_RETRIEVAL_TOP_K", 10),
			RrfK:          getEnvAsInt("RAG_RRF_K", 60),
		},
		Guardrail: GuardrailConfig{
			EscalateAfter: getEnvAsInt("GUARDRAIL_ESCALATE_AFTER", 3),
			ContactName:   getEnv("GUARDRAIL_CONTACT_NAME", "客服中心"),
			ContactPhone:  getEnv("GUARDRAIL_CONTACT_PHONE", "(02)2181-0101"),
			ContactEmail:  getEnv("GUARDRAIL_CONTACT_EMAIL", "service@bank.example.com"),
		},
		Session: SessionConfig{
			IdleTimeoutMinutes:     getEnvAsInt("SESSION_IDLE_TIMEOUT_MINUTES", 30),
			CleanupIntervalMinutes: getEnvAsInt("SESSION_CLEANUP_INTERVAL_MINUTES", 5),
		},
		Faq: FaqConfig{
			SourceJson: getEnv("FAQ_SOURCE_JSON", "data/faq.json"),
			DataFile:   getEnv("FAQ_DATA_FILE", ""),
		},
		Pool: PoolConfig{
			Workers:   getEnvAsInt("STREAM_POOL_WORKERS", 8),
			QueueSize: getEnvAsInt("STREAM_POOL_QUEUE_SIZE", 200),
		},
		Keys: APIKeys{
			AdminKey:   getEnv("ADMIN_API_KEY", ""),
			AuditTopic: getEnv("ADMIN_AUDIT_TOPIC_NAME", "ADMIN_AUDIT"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
