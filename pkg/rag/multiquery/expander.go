// Package multiquery expands a single user query into three textual
// variants to widen lexical retrieval coverage.
package multiquery

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"faq-assist-be/pkg/llm"
)

// Result holds the three immutable rewrites of one query.
type Result struct {
	Original   string `json:"original"`
	Keyword    string `json:"keyword"`
	Colloquial string `json:"colloquial"`
}

// ToList returns the variants in fixed order.
func (r Result) ToList() []string {
	return []string{r.Original, r.Keyword, r.Colloquial}
}

// Identity is the degraded expansion: the original query three times.
func Identity(query string) Result {
	return Result{Original: query, Keyword: query, Colloquial: query}
}

const expandPromptTemplate = `將以下銀行業務查詢改寫為三個不同版本，用於提高搜索效果：
1. 原始查詢（保持原樣）
2. 關鍵字版本（提取核心關鍵字）
3. 口語化版本（更自然的問法）

查詢：%s

只返回 JSON 格式：
{"original": "原始查詢", "keyword": "關鍵字版本", "colloquial": "口語化版本"}
`

// Expander produces query variants via the LLM.
type Expander struct {
	provider llm.Provider
}

func NewExpander(provider llm.Provider) *Expander {
	return &Expander{provider: provider}
}

// Expand rewrites query into three variants. On any failure it degrades to
// the identity expansion; it never returns an error.
func (e *Expander) Expand(ctx context.Context, query string) Result {
	prompt := fmt.Sprintf(expandPromptTemplate, query)

	response, err := e.provider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		return Identity(query)
	}

	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start < 0 || end <= start {
		return Identity(query)
	}

	var parsed Result
	if err := json.Unmarshal([]byte(response[start:end+1]), &parsed); err != nil {
		return Identity(query)
	}
	if parsed.Original == "" {
		parsed.Original = query
	}
	if parsed.Keyword == "" {
		parsed.Keyword = query
	}
	if parsed.Colloquial == "" {
		parsed.Colloquial = query
	}
	return parsed
}

// CleanQueries trims, deduplicates, and drops blank variants while keeping
// order.
func CleanQueries(queries []string) []string {
	out := make([]string, 0, len(queries))
	seen := make(map[string]struct{}, len(queries))
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out
}
