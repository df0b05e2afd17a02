package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Simatwa/house-rental-management-system/internal/dtos"
	"github.com/Simatwa/house-rental-management-system/internal/models"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

const (
	accountTokenPath         = "/account/token"
	accountProfilePath       = "/account/profile"
	accountExistsPath        = "/account/exists"
	accountTransactionsPath  = "/account/transactions"
	accountMpesaDetailsPath  = "/account/mpesa-payment-account-details"
	accountOtherDetailsPath  = "/account/other-payment-account-details"
	accountMpesaPopupPath    = "/account/send-mpesa-payment-popup"
	accountResetRequestPath  = "/account/password/send-reset-token"
	accountResetPasswordPath = "/account/password/reset"
)

// Login exchanges credentials for a bearer token. It does not persist the
// token. Any rejection by the server is reported as ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, username, password string) (*dtos.TokenAuth, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	form.Set("grant_type", "password")

	var auth dtos.TokenAuth
	err := c.doRequest(ctx, http.MethodPost, accountTokenPath, form, &auth, &requestOptions{Anonymous: true})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: %w", utils.ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("Login error: %w", err)
	}
	if auth.AccessToken == "" {
		return nil, fmt.Errorf("%w: server returned an empty token", utils.ErrInvalidCredentials)
	}
	return &auth, nil
}

// RotateToken asks the server to replace the current bearer token.
func (c *Client) RotateToken(ctx context.Context) (*dtos.TokenAuth, error) {
	var auth dtos.TokenAuth
	if err := c.doRequest(ctx, http.MethodPatch, accountTokenPath, nil, &auth, nil); err != nil {
		return nil, fmt.Errorf("RotateToken error: %w", err)
	}
	return &auth, nil
}

func (c *Client) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.doRequest(ctx, http.MethodGet, accountProfilePath, nil, &profile, nil); err != nil {
		return nil, fmt.Errorf("GetProfile error: %w", err)
	}
	return &profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req dtos.UpdateProfileRequest) (*models.EditablePersonalData, error) {
	var updated models.EditablePersonalData
	if err := c.doRequest(ctx, http.MethodPatch, accountProfilePath, req, &updated, nil); err != nil {
		return nil, fmt.Errorf("UpdateProfile error: %w", err)
	}
	return &updated, nil
}

func (c *Client) UsernameExists(ctx context.Context, username string) (*dtos.ProcessFeedback, error) {
	q := url.Values{"username": {username}}
	var fb dtos.ProcessFeedback
	if err := c.doRequest(ctx, http.MethodGet, accountExistsPath, nil, &fb, &requestOptions{Query: q}); err != nil {
		return nil, fmt.Errorf("UsernameExists error: %w", err)
	}
	return &fb, nil
}

// RequestPasswordReset mails a reset token to the account behind identity
// (username or email).
func (c *Client) RequestPasswordReset(ctx context.Context, identity string) (*dtos.ProcessFeedback, error) {
	q := url.Values{"identity": {identity}}
	var fb dtos.ProcessFeedback
	if err := c.doRequest(ctx, http.MethodGet, accountResetRequestPath, nil, &fb, &requestOptions{Query: q, Anonymous: true}); err != nil {
		return nil, fmt.Errorf("RequestPasswordReset error: %w", err)
	}
	return &fb, nil
}

func (c *Client) ResetPassword(ctx context.Context, req dtos.ResetPasswordRequest) (*dtos.ProcessFeedback, error) {
	var fb dtos.ProcessFeedback
	if err := c.doRequest(ctx, http.MethodPost, accountResetPasswordPath, req, &fb, &requestOptions{Anonymous: true}); err != nil {
		return nil, fmt.Errorf("ResetPassword error: %w", err)
	}
	return &fb, nil
}

func (c *Client) Transactions(ctx context.Context, filter dtos.TransactionFilter) ([]models.Transaction, error) {
	q := url.Values{}
	if filter.Means != "" {
		q.Set("means", string(filter.Means))
	}
	if filter.Type != "" {
		q.Set("type", string(filter.Type))
	}
	var txs []models.Transaction
	if err := c.doRequest(ctx, http.MethodGet, accountTransactionsPath, nil, &txs, &requestOptions{Query: q}); err != nil {
		return nil, fmt.Errorf("Transactions error: %w", err)
	}
	return txs, nil
}

func (c *Client) MpesaPaymentDetails(ctx context.Context) (*models.PaymentAccountDetails, error) {
	var details models.PaymentAccountDetails
	if err := c.doRequest(ctx, http.MethodGet, accountMpesaDetailsPath, nil, &details, nil); err != nil {
		return nil, fmt.Errorf("MpesaPaymentDetails error: %w", err)
	}
	return &details, nil
}

func (c *Client) OtherPaymentDetails(ctx context.Context) ([]models.PaymentAccountDetails, error) {
	var details []models.PaymentAccountDetails
	if err := c.doRequest(ctx, http.MethodGet, accountOtherDetailsPath, nil, &details, nil); err != nil {
		return nil, fmt.Errorf("OtherPaymentDetails error: %w", err)
	}
	return details, nil
}

// SendMpesaPopup triggers an STK push to the given phone for amount.
func (c *Client) SendMpesaPopup(ctx context.Context, req dtos.SendMpesaPopupRequest) (*dtos.ProcessFeedback, error) {
	var fb dtos.ProcessFeedback
	if err := c.doRequest(ctx, http.MethodPost, accountMpesaPopupPath, req, &fb, nil); err != nil {
		return nil, fmt.Errorf("SendMpesaPopup error: %w", err)
	}
	return &fb, nil
}
