package dtos

import "github.com/Simatwa/house-rental-management-system/internal/models"

// SessionResponse is the gateway's view of the session state.
type SessionResponse struct {
	IsAuthenticated bool                `json:"isAuthenticated"`
	User            *models.UserProfile `json:"user"`
	Loading         bool                `json:"loading"`
	Error           *string             `json:"error"`
}

type LogoutResponse struct {
	SessionResponse
	Redirect string `json:"redirect"`
}

type ListingsResponse struct {
	Term       string                     `json:"term"`
	Houses     []models.House             `json:"houses"`
	UnitGroups models.HouseUnitGroupIndex `json:"unitGroups"`
}
