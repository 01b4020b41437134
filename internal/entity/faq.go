package entity

// Faq is one reference entry of the QA corpus. Category/Module/Source are
// optional classification tags carried over from the source dataset. Score is
// transient: it is only set on copies returned by retrieval.
type Faq struct {
	Id       int64   `json:"id"`
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Category string  `json:"category,omitempty"`
	Module   string  `json:"module,omitempty"`
	Source   string  `json:"source,omitempty"`
	Score    float64 `json:"score"`
}

// Copy returns an independent copy so callers can never mutate indexed data.
func (f *Faq) Copy() *Faq {
	c := *f
	return &c
}
