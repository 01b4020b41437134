package dto

import "faq-assist-be/internal/entity"

type ChatRequest struct {
	Question  string `json:"question" validate:"required,min=1,max=500"`
	SessionId string `json:"sessionId,omitempty"`
	TopN      int    `json:"topN,omitempty" validate:"omitempty,min=1,max=20"`
}

type ChatResponse struct {
	SessionId  string          `json:"sessionId"`
	NewSession bool            `json:"newSession"`
	Intent     string          `json:"intent"`
	Answer     string          `json:"answer"`
	Sources    []entity.Faq    `json:"sources"`
	MultiQuery *MultiQueryInfo `json:"multiQuery,omitempty"`
	Escalated  bool            `json:"escalated"`
}

type MultiQueryInfo struct {
	Original   string `json:"original"`
	Keyword    string `json:"keyword"`
	Colloquial string `json:"colloquial"`
}

type SearchRequest struct {
	Query string `json:"query" validate:"required,min=1,max=500"`
	TopN  int    `json:"topN,omitempty" validate:"omitempty,min=1,max=20"`
}

type ClearSessionRequest struct {
	SessionId string `json:"sessionId" validate:"required"`
}

type StatusResponse struct {
	Status         string `json:"status"`
	Mode           string `json:"mode"`
	FaqCount       int    `json:"faqCount"`
	VocabSize      int    `json:"vocabSize"`
	ActiveSessions int    `json:"activeSessions"`
	LlmAvailable   bool   `json:"llmAvailable"`
}
