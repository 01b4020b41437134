// Package response builds RAG prompts and drives answer generation, both
// blocking and streamed.
package response

import (
	"context"
	"fmt"
	"strings"

	"faq-assist-be/pkg/llm"
)

const ragPromptTemplate = `你是銀行 Factoring（應收帳款融資）業務的專業客服助理。
請根據以下參考資料回答用戶問題。

重要規則：
1. 只使用參考資料中的資訊回答
2. 如果參考資料無法回答問題，明確告知用戶「抱歉，此問題不在我的知識範圍內，無法回答。」
3. 使用繁體中文回答
4. 回答要清晰、有條理

用戶問題：%s

參考資料：
%s

請回答：
`

// cannotAnswerMarkers are the fixed phrases the model emits when the
// provided context cannot answer the question. Their presence feeds back
// into the guardrail counter.
var cannotAnswerMarkers = []string{
	"無法回答",
	"不在我的知識範圍",
	"不在知識範圍",
	"不在本系統服務範圍",
}

// ContainsCannotAnswer reports whether a generated answer declined to
// answer.
func ContainsCannotAnswer(text string) bool {
	for _, marker := range cannotAnswerMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// Generator wraps the LLM with the RAG prompt.
type Generator struct {
	provider llm.Provider
}

func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// Generate produces a complete answer from the question and its context
// passages.
func (g *Generator) Generate(ctx context.Context, question string, contexts []string) (string, error) {
	prompt := buildRagPrompt(question, contexts)
	return g.provider.Generate(ctx, prompt, llm.WithTemperature(0.3))
}

// GenerateStream produces the answer incrementally. The cancellation
// predicate is forwarded to the provider so an abandoned turn stops the
// upstream call promptly.
func (g *Generator) GenerateStream(ctx context.Context, question string, contexts []string, onChunk llm.ChunkFunc, cancelled llm.CancelledFunc) error {
	prompt := buildRagPrompt(question, contexts)
	return g.provider.GenerateStream(ctx, prompt, onChunk, cancelled, llm.WithTemperature(0.3))
}

func buildRagPrompt(question string, contexts []string) string {
	return fmt.Sprintf(ragPromptTemplate, question, strings.Join(contexts, "\n\n---\n\n"))
}

// FormatContext renders one FAQ entry as a context passage.
func FormatContext(id int, question, answer string) string {
	return fmt.Sprintf("【FAQ #%d】\n問：%s\n答：%s", id, question, answer)
}
