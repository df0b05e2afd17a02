package dtos

import "github.com/Simatwa/house-rental-management-system/internal/models"

type NewConcernRequest struct {
	About   string `json:"about" validate:"required,min=1,max=200"`
	Details string `json:"details" validate:"required,min=1"`
}

type UpdateConcernRequest struct {
	About   *string `json:"about,omitempty" validate:"omitempty,min=1,max=200"`
	Details *string `json:"details,omitempty" validate:"omitempty,min=1"`
}

type TenantFeedbackRequest struct {
	Message string              `json:"message" validate:"required,min=1"`
	Rate    models.FeedbackRate `json:"rate" validate:"required,oneof=Excellent Good Average Poor Terrible"`
}

// MessageFilter narrows a message list. Nil / empty means "any".
type MessageFilter struct {
	IsRead   *bool
	Category models.MessageCategory
}
