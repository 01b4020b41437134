package dto

type CreateFaqRequest struct {
	Question string `json:"question" validate:"required,min=1"`
	Answer   string `json:"answer" validate:"required,min=1"`
	Category string `json:"category,omitempty"`
	Module   string `json:"module,omitempty"`
	Source   string `json:"source,omitempty"`
}

type UpdateFaqRequest struct {
	Question string `json:"question" validate:"required,min=1"`
	Answer   string `json:"answer" validate:"required,min=1"`
	Category string `json:"category,omitempty"`
	Module   string `json:"module,omitempty"`
	Source   string `json:"source,omitempty"`
}

type UpdateConfigRequest struct {
	RagDefaultTopN   *int    `json:"ragDefaultTopN,omitempty" validate:"omitempty,min=1,max=50"`
	RagRetrievalTopK *int    `json:"ragRetrievalTopK,omitempty" validate:"omitempty,min=1,max=200"`
	RagRrfK          *int    `json:"ragRrfK,omitempty" validate:"omitempty,min=1"`
	EscalateAfter    *int    `json:"escalateAfter,omitempty" validate:"omitempty,min=1,max=10"`
	ContactName      *string `json:"contactName,omitempty"`
	ContactPhone     *string `json:"contactPhone,omitempty"`
	ContactEmail     *string `json:"contactEmail,omitempty" validate:"omitempty,email"`
}

type ConfigResponse struct {
	RagDefaultTopN   int    `json:"ragDefaultTopN"`
	RagRetrievalTopK int    `json:"ragRetrievalTopK"`
	RagRrfK          int    `json:"ragRrfK"`
	EscalateAfter    int    `json:"escalateAfter"`
	ContactName      string `json:"contactName"`
	ContactPhone     string `json:"contactPhone"`
	ContactEmail     string `json:"contactEmail"`
}
