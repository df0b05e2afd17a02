package models

// ShallowConcern is a maintenance concern as listed.
type ShallowConcern struct {
	ID        int           `json:"id"`
	About     string        `json:"about"`
	Status    ConcernStatus `json:"status"`
	CreatedAt Timestamp     `json:"created_at"`
}

type Concern struct {
	ShallowConcern
	Details   string    `json:"details"`
	Response  string    `json:"response,omitempty"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// TenantFeedback is the tenant's own review of the service.
type TenantFeedback struct {
	Message   string       `json:"message"`
	Rate      FeedbackRate `json:"rate"`
	CreatedAt Timestamp    `json:"created_at"`
	UpdatedAt Timestamp    `json:"updated_at"`
}

// UserFeedback is a published testimonial.
type UserFeedback struct {
	User       ShallowUser  `json:"user"`
	SenderRole SenderRole   `json:"sender_role"`
	Message    string       `json:"message"`
	Rate       FeedbackRate `json:"rate"`
	CreatedAt  Timestamp    `json:"created_at"`
}
