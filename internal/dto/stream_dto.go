package dto

import "faq-assist-be/internal/entity"

// Stream event payloads. Every event carries a Type discriminator so
// clients can switch on a single field regardless of transport.

type SessionEvent struct {
	Type       string `json:"type"`
	SessionId  string `json:"sessionId"`
	NewSession bool   `json:"newSession"`
}

func NewSessionEvent(sessionId string, isNew bool) SessionEvent {
	return SessionEvent{Type: "session", SessionId: sessionId, NewSession: isNew}
}

type ThinkingEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewThinkingEvent(message string) ThinkingEvent {
	return ThinkingEvent{Type: "thinking", Message: message}
}

type IntentEvent struct {
	Type            string   `json:"type"`
	Intent          string   `json:"intent"`
	Message         string   `json:"message,omitempty"`
	SuggestKeywords []string `json:"suggestKeywords"`
}

func NewIntentEvent(intent, message string, suggestKeywords []string) IntentEvent {
	if suggestKeywords == nil {
		suggestKeywords = []string{}
	}
	return IntentEvent{Type: "intent", Intent: intent, Message: message, SuggestKeywords: suggestKeywords}
}

type MultiQueryEvent struct {
	Type       string `json:"type"`
	Original   string `json:"original"`
	Keyword    string `json:"keyword"`
	Colloquial string `json:"colloquial"`
}

func NewMultiQueryEvent(original, keyword, colloquial string) MultiQueryEvent {
	return MultiQueryEvent{Type: "multiquery", Original: original, Keyword: keyword, Colloquial: colloquial}
}

type SourcesEvent struct {
	Type    string       `json:"type"`
	Sources []entity.Faq `json:"sources"`
	Count   int          `json:"count"`
}

func NewSourcesEvent(sources []entity.Faq) SourcesEvent {
	if sources == nil {
		sources = []entity.Faq{}
	}
	return SourcesEvent{Type: "sources", Sources: sources, Count: len(sources)}
}

type ChunkEvent struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

func NewChunkEvent(content string) ChunkEvent {
	return ChunkEvent{Type: "chunk", Content: content}
}

type DoneEvent struct {
	Type string `json:"type"`
}

func NewDoneEvent() DoneEvent {
	return DoneEvent{Type: "done"}
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewErrorEvent(message string) ErrorEvent {
	return ErrorEvent{Type: "error", Message: message}
}
