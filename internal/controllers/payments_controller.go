package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/Simatwa/house-rental-management-system/internal/dtos"
	"github.com/Simatwa/house-rental-management-system/internal/services"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

type PaymentsController struct {
	paymentService *services.PaymentService
}

func NewPaymentsController(s *services.PaymentService) *PaymentsController {
	return &PaymentsController{paymentService: s}
}

func (c *PaymentsController) GetOptionsHandler(w http.ResponseWriter, r *http.Request) {
	opts, err := c.paymentService.Options(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, opts)
}

func (c *PaymentsController) MpesaTopUpHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.SendMpesaPopupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}

	fb, err := c.paymentService.TopUp(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, fb)
}
