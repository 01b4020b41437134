package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "logs/app.log", cfg.App.LogFilePath)
	assert.Equal(t, "logs/llm.log", cfg.App.LlmLogFilePath)
	assert.False(t, cfg.App.OtelEnabled)

	assert.Equal(t, 5, cfg.Rag.DefaultTopN)
	assert.Equal(t, 10, cfg.Rag.RetrievalTopK)
	assert.Equal(t, 60, cfg.Rag.RrfK)

	assert.Equal(t, 3, cfg.Guardrail.EscalateAfter)
	assert.Equal(t, "客服中心", cfg.Guardrail.ContactName)

	assert.Equal(t, 8, cfg.Pool.Workers)
	assert.Equal(t, 200, cfg.Pool.QueueSize)
	assert.Equal(t, "ADMIN_AUDIT", cfg.Keys.AuditTopic)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("RAG_DEFAULT_TOP_N", "8")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("GUARDRAIL_CONTACT_PHONE", "(02)0000-0000")
	t.Setenv("STREAM_POOL_WORKERS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 8, cfg.Rag.DefaultTopN)
	assert.True(t, cfg.App.OtelEnabled)
	assert.Equal(t, "(02)0000-0000", cfg.Guardrail.ContactPhone)
	// Unparseable ints keep the fallback.
	assert.Equal(t, 8, cfg.Pool.Workers)
}
