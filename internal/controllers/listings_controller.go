package controllers

import (
	"net/http"

	"github.com/Simatwa/house-rental-management-system/internal/dtos"
	"github.com/Simatwa/house-rental-management-system/internal/services"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

type ListingsController struct {
	listingService *services.ListingService
}

func NewListingsController(s *services.ListingService) *ListingsController {
	return &ListingsController{listingService: s}
}

// SearchHandler serves GET /api/v1/listings?q=term.
func (c *ListingsController) SearchHandler(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	res, err := c.listingService.Search(r.Context(), term)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListingsResponse{
		Term:       term,
		Houses:     res.Houses,
		UnitGroups: res.UnitGroups,
	})
}
