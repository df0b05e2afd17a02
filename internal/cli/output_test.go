package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simatwa/house-rental-management-system/internal/apiclient"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	err := formatter.Render(map[string]string{"result": "success"}, func(w io.Writer) {
		t.Fatal("text renderer must not run in json mode")
	})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Render(42, func(w io.Writer) { fmt.Fprint(w, "forty-two") }))
	assert.Equal(t, "forty-two", buf.String())

	buf.Reset()
	require.NoError(t, formatter.Success("plain"))
	assert.Equal(t, "plain\n", buf.String())
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error(utils.ErrCodeNotFound, "Concern not found", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, utils.ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Concern not found", resp.Error.Message)
}

func TestOutputFormatter_TextErrorDetailsOnlyWhenVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}
	require.NoError(t, formatter.Error("conflict", "busy", "retry later"))
	assert.Equal(t, "Error [conflict]: busy\n", buf.String())

	buf.Reset()
	formatter.Verbose = true
	require.NoError(t, formatter.Error("conflict", "busy", "retry later"))
	assert.Equal(t, "Error [conflict]: busy\nDetails: retry later\n", buf.String())
}

func TestOutputFormatter_VerboseLogUsesErrWriter(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut}

	formatter.VerboseLog("hidden %d", 1)
	assert.Empty(t, errOut.String())

	formatter.Verbose = true
	formatter.VerboseLog("shown %d", 2)
	assert.Equal(t, "shown 2\n", errOut.String())
	assert.Empty(t, out.String())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("boom")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad flag")))
	assert.Equal(t, ExitAuthRequired, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitAuthRequired, "login"))))
}

func TestExitErrorMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapExitError(ExitFailure, "about failed", cause)
	assert.Equal(t, "about failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "plain", NewExitError(ExitFailure, "plain").Error())
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
		exit int
	}{
		{"invalid credentials", fmt.Errorf("%w: rejected", utils.ErrInvalidCredentials), utils.ErrCodeInvalidCredentials, ExitAuthRequired},
		{"session expired", utils.ErrSessionExpired, utils.ErrCodeUnauthorized, ExitAuthRequired},
		{"not authenticated", utils.ErrNotAuthenticated, utils.ErrCodeUnauthorized, ExitAuthRequired},
		{"network", fmt.Errorf("%w: dial", utils.ErrNetworkFailure), utils.ErrCodeUpstream, ExitFailure},
		{"rate limit", utils.ErrRateLimitExceeded, utils.ErrCodeRateLimitExceeded, ExitFailure},
		{"validation", &utils.AppError{StatusCode: http.StatusBadRequest, Code: utils.ErrCodeValidation, Message: "bad"}, utils.ErrCodeValidation, ExitCommandError},
		{"api not found", &apiclient.APIError{StatusCode: 404, Detail: "Concern not found"}, utils.ErrCodeNotFound, ExitFailure},
		{"api bad request", &apiclient.APIError{StatusCode: 400, Detail: "Amount too low"}, utils.ErrCodeValidation, ExitFailure},
		{"api server error", &apiclient.APIError{StatusCode: 500, Detail: "boom"}, utils.ErrCodeInternal, ExitFailure},
		{"other", errors.New("boom"), utils.ErrCodeInternal, ExitFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, _, exit := classify(tc.err)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.exit, exit)
		})
	}
}

func TestFailMarksErrorReported(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	err := formatter.Fail("concerns show", NewExitError(ExitCommandError, `invalid id "x": must be a positive integer`))
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.True(t, exitErr.reported)
	assert.Equal(t, ExitCommandError, exitErr.Code)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, utils.ErrCodeInvalidPayload, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "invalid id")
}
