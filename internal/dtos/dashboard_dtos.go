package dtos

import "github.com/Simatwa/house-rental-management-system/internal/models"

// DashboardSummaryResponse is the tenant's landing overview.
type DashboardSummaryResponse struct {
	User               *models.UserProfile        `json:"user"`
	Unit               *models.Unit               `json:"unit"`
	UnreadCounts       map[models.MessageKind]int `json:"unreadCounts"`
	TotalUnread        int                        `json:"totalUnread"`
	LatestConcern      *models.ShallowConcern     `json:"latestConcern"`
	Feedback           *models.TenantFeedback     `json:"feedback"`
	RecentTransactions []models.Transaction       `json:"recentTransactions"`
	Balance            float64                    `json:"balance"`
	FormattedBalance   string                     `json:"formattedBalance"`
}

type PaymentOptionsResponse struct {
	Mpesa *models.PaymentAccountDetails  `json:"mpesa"`
	Other []models.PaymentAccountDetails `json:"other"`
}
