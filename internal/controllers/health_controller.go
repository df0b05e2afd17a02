package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Simatwa/house-rental-management-system/internal/app"
	"github.com/Simatwa/house-rental-management-system/internal/dtos"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

const upstreamPingTimeout = 3 * time.Second

type HealthController struct {
	app *app.App
}

func NewHealthController(app *app.App) *HealthController {
	return &HealthController{app}
}

// HealthCheckHandler reports OK while the rental API answers at all; an
// error status from it still counts as reachable.
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), upstreamPingTimeout)
	defer cancel()

	if _, err := c.app.API.About(ctx); err != nil && (errors.Is(err, utils.ErrNetworkFailure) || ctx.Err() != nil) {
		utils.Logger.WithError(err).Error("Rental API unreachable")
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeUpstream, "Rental API unreachable", nil, err)
		return
	}
	resp := dtos.HealthCheckResponse{Status: "OK", Upstream: c.app.Config.APIURL}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
