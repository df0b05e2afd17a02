package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Simatwa/house-rental-management-system/internal/apiclient"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // The API refused or failed the operation
	ExitCommandError = 2 // Bad flags or arguments, config problems
	ExitAuthRequired = 3 // No valid session; run login first
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error

	// reported is set once the error has been written to the user.
	reported bool
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // verbose/diagnostic output, defaults to Writer
	Verbose   bool
}

// CLIResponse is the JSON envelope of every command's output.
type CLIResponse struct {
	Status  string    `json:"status"` // "ok" or "error"
	Data    any       `json:"data,omitempty"`
	Error   *CLIError `json:"error,omitempty"`
	TraceID string    `json:"trace_id,omitempty"`
}

type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Success outputs data as JSON, or with fmt's default text rendering.
func (f *OutputFormatter) Success(data any) error {
	return f.Render(data, nil)
}

// Render outputs data as JSON, or through text when the format is text.
// A nil text falls back to printing data.
func (f *OutputFormatter) Render(data any, text func(w io.Writer)) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}
	if text == nil {
		fmt.Fprintln(f.Writer, data)
		return nil
	}
	text(f.Writer)
	return nil
}

func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// It goes to ErrWriter so JSON on Writer stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// Fail reports err through the formatter and returns the ExitError the
// command should return. ExitErrors pass through with their own code.
func (f *OutputFormatter) Fail(action string, err error) error {
	code, message, details, exit := classify(err)

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		exit = exitErr.Code
		message = exitErr.Message
		switch exit {
		case ExitCommandError:
			code = utils.ErrCodeInvalidPayload
		case ExitAuthRequired:
			code = utils.ErrCodeUnauthorized
		}
	}

	if outErr := f.Error(code, message, details); outErr != nil {
		utils.Logger.WithError(outErr).Error("Failed to write CLI error output")
	}
	utils.Logger.WithError(err).Debugf("%s failed", action)
	out := WrapExitError(exit, action+" failed", err)
	out.reported = true
	return out
}

// classify maps an error onto the same codes the gateway uses.
func classify(err error) (code, message string, details any, exit int) {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		exit = ExitFailure
		if appErr.StatusCode >= 400 && appErr.StatusCode < 500 {
			exit = ExitCommandError
		}
		return appErr.Code, appErr.Message, appErr.Details, exit
	}

	switch {
	case errors.Is(err, utils.ErrInvalidCredentials):
		return utils.ErrCodeInvalidCredentials, utils.MsgInvalidCredentials, nil, ExitAuthRequired
	case errors.Is(err, utils.ErrSessionExpired):
		return utils.ErrCodeUnauthorized, utils.MsgSessionExpired, nil, ExitAuthRequired
	case errors.Is(err, utils.ErrNotAuthenticated):
		return utils.ErrCodeUnauthorized, "Not logged in. Run `tenant-portal login` first.", nil, ExitAuthRequired
	case errors.Is(err, utils.ErrNetworkFailure):
		return utils.ErrCodeUpstream, "Rental API unreachable", err.Error(), ExitFailure
	case errors.Is(err, utils.ErrRateLimitExceeded):
		return utils.ErrCodeRateLimitExceeded, "Rental API rate limit exceeded", nil, ExitFailure
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return utils.ErrCodeUpstream, "Request canceled", err.Error(), ExitFailure
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		code = utils.ErrCodeInternal
		if errors.Is(err, utils.ErrNotFound) {
			code = utils.ErrCodeNotFound
		} else if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			code = utils.ErrCodeValidation
		}
		return code, apiErr.Detail, map[string]int{"status": apiErr.StatusCode}, ExitFailure
	}

	return utils.ErrCodeInternal, err.Error(), nil, ExitFailure
}
