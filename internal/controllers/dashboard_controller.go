package controllers

import (
	"net/http"

	"github.com/Simatwa/house-rental-management-system/internal/services"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

type DashboardController struct {
	dashboardService *services.DashboardService
}

func NewDashboardController(s *services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: s}
}

func (c *DashboardController) GetDashboardHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := c.dashboardService.Summary(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, summary)
}
