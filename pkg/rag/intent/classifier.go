// Package intent classifies whether a user question belongs to the
// factoring FAQ domain. Classification is delegated to the LLM; every
// failure path falls back to RELATED so a model outage can never block
// users.
package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"faq-assist-be/pkg/llm"
)

const (
	LabelRelated   = "RELATED"
	LabelUnrelated = "UNRELATED"
	LabelUnclear   = "UNCLEAR"
)

// Result is one classification verdict. Message and SuggestKeywords come
// straight from the classifier output and are never persisted.
type Result struct {
	Intent          string   `json:"intent"`
	Message         string   `json:"message,omitempty"`
	SuggestKeywords []string `json:"suggestKeywords"`
}

func (r Result) IsRelated() bool   { return strings.EqualFold(r.Intent, LabelRelated) }
func (r Result) IsUnrelated() bool { return strings.EqualFold(r.Intent, LabelUnrelated) }
func (r Result) IsUnclear() bool   { return strings.EqualFold(r.Intent, LabelUnclear) }

func fallback() Result {
	return Result{Intent: LabelRelated, SuggestKeywords: []string{}}
}

const classifyPromptTemplate = `你是銀行業務 QA 系統的意圖分類器。判斷以下問題是否與銀行 Factoring（應收帳款融資）業務相關。

相關領域包括：
- 交易操作（標準型交易、非標準型交易、預支價金、買方還款）
- 發票管理（發票日、到期日、過期發票、發票修改）
- 額度管理（總約、附約、維持率、額度凍結）
- 流程操作（主管核准、資料修改、系統建檔、交易錯誤處理）
- 憑證/傳票/報表（傳票列印、憑證列印、查詢傳票、日結單/傳票相關）

不相關的問題包括：
- 統一發票中獎、兌獎
- 天氣、股票、一般生活問題
- 其他銀行業務（存款、信用卡、房貸）

問題：%s

返回 JSON 格式（suggestKeywords 給出 2-4 個相關的操作關鍵字供用戶選擇）：
{"intent": "RELATED" 或 "UNRELATED" 或 "UNCLEAR", "message": "給用戶的回應訊息", "suggestKeywords": ["關鍵字1", "關鍵字2", "關鍵字3"]}
`

// Classifier turns free-text LLM verdicts into typed Results.
type Classifier struct {
	provider llm.Provider
}

func NewClassifier(provider llm.Provider) *Classifier {
	return &Classifier{provider: provider}
}

// Classify asks the LLM for a verdict on question. It never returns an
// error: classification failure fails open to RELATED.
func (c *Classifier) Classify(ctx context.Context, question string) Result {
	prompt := fmt.Sprintf(classifyPromptTemplate, question)

	response, err := c.provider.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		return fallback()
	}
	return parseResult(response)
}

// parseResult extracts the JSON object from a free-text model response.
// Anything unparseable degrades to the RELATED fallback.
func parseResult(response string) Result {
	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start < 0 || end <= start {
		return fallback()
	}

	var parsed struct {
		Intent          string   `json:"intent"`
		Message         string   `json:"message"`
		SuggestKeywords []string `json:"suggestKeywords"`
	}
	if err := json.Unmarshal([]byte(response[start:end+1]), &parsed); err != nil {
		return fallback()
	}
	if parsed.Intent == "" {
		parsed.Intent = LabelRelated
	}
	if parsed.SuggestKeywords == nil {
		parsed.SuggestKeywords = []string{}
	}
	return Result{
		Intent:          parsed.Intent,
		Message:         parsed.Message,
		SuggestKeywords: parsed.SuggestKeywords,
	}
}
