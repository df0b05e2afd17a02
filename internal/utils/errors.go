package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors shared by the API client, the session manager and
// the gateway.
var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrSessionExpired     = errors.New("session_expired")
	ErrNotAuthenticated   = errors.New("not_authenticated")
	ErrNetworkFailure     = errors.New("network_failure")
	ErrNotFound           = errors.New("not_found")

	// An async session operation finished after a newer one (or a logout)
	// replaced it; its result was discarded.
	ErrSuperseded = errors.New("superseded")

	ErrRateLimitExceeded = errors.New("rate_limit_exceeded")
)

// User-visible session messages.
const (
	MsgSessionExpired     = "Session expired. Please login again."
	MsgInvalidCredentials = "Invalid username or password"
)

// AppError carries a status and public message from services to
// controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, appErr.Details, appErr.Err)
		return
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		RespondErrorWithCode(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, MsgInvalidCredentials, nil, err)
	case errors.Is(err, ErrNotAuthenticated), errors.Is(err, ErrSessionExpired):
		RespondErrorWithCode(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication required", nil, err)
	case errors.Is(err, ErrSuperseded):
		RespondErrorWithCode(w, http.StatusConflict, ErrCodeConflict, "Superseded by a newer session operation", nil, err)
	case errors.Is(err, ErrNetworkFailure):
		RespondErrorWithCode(w, http.StatusBadGateway, ErrCodeUpstream, "Rental API unreachable", nil, err)
	case errors.Is(err, ErrRateLimitExceeded):
		RespondErrorWithCode(w, http.StatusTooManyRequests, ErrCodeRateLimitExceeded, "Rental API rate limit exceeded", nil, err)
	case errors.Is(err, ErrNotFound):
		RespondErrorWithCode(w, http.StatusNotFound, ErrCodeNotFound, "Not found", nil, err)
	default:
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
