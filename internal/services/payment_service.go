package services

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/Simatwa/house-rental-management-system/internal/dtos"
	"github.com/Simatwa/house-rental-management-system/internal/models"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
	"github.com/Simatwa/house-rental-management-system/internal/validation"
)

// PaymentsAPI is the payments slice of the account API.
type PaymentsAPI interface {
	MpesaPaymentDetails(ctx context.Context) (*models.PaymentAccountDetails, error)
	OtherPaymentDetails(ctx context.Context) ([]models.PaymentAccountDetails, error)
	SendMpesaPopup(ctx context.Context, req dtos.SendMpesaPopupRequest) (*dtos.ProcessFeedback, error)
	Transactions(ctx context.Context, filter dtos.TransactionFilter) ([]models.Transaction, error)
}

type PaymentService struct {
	api PaymentsAPI
}

func NewPaymentService(api PaymentsAPI) *PaymentService {
	return &PaymentService{api: api}
}

// TopUp validates the request and asks the API to push an M-PESA prompt
// to the phone.
func (s *PaymentService) TopUp(ctx context.Context, req dtos.SendMpesaPopupRequest) (*dtos.ProcessFeedback, error) {
	if err := validation.Check(req); err != nil {
		return nil, err
	}
	fb, err := s.api.SendMpesaPopup(ctx, req)
	if err != nil {
		return nil, err
	}
	utils.Logger.WithField("amount", req.Amount).Info("M-PESA payment prompt sent")
	return fb, nil
}

// Options returns the M-PESA paybill and the other accepted accounts.
func (s *PaymentService) Options(ctx context.Context) (*dtos.PaymentOptionsResponse, error) {
	resp := &dtos.PaymentOptionsResponse{}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		resp.Mpesa, err = s.api.MpesaPaymentDetails(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		resp.Other, err = s.api.OtherPaymentDetails(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if resp.Other == nil {
		resp.Other = []models.PaymentAccountDetails{}
	}
	return resp, nil
}

// Transactions lists the account history. Unknown means or type values
// are rejected before any request is made.
func (s *PaymentService) Transactions(ctx context.Context, filter dtos.TransactionFilter) ([]models.Transaction, error) {
	if filter.Means != "" && !filter.Means.Valid() {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    fmt.Sprintf("Unknown transaction means %q", filter.Means),
		}
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    fmt.Sprintf("Unknown transaction type %q", filter.Type),
		}
	}
	return s.api.Transactions(ctx, filter)
}
