package dtos

type NewVisitorMessageRequest struct {
	Sender string `json:"sender" validate:"required,min=1,max=100"`
	Email  string `json:"email" validate:"required,email"`
	Body   string `json:"body" validate:"required,min=1"`
}
