// Package apiclient talks to the rental management REST API (/api/v1).
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

// TokenSource supplies the bearer token sent with every request.
// tokenstore.Store satisfies it.
type TokenSource interface {
	Get() (token string, ok bool, err error)
}

// APIError is a non-2xx answer from the API. Detail is the server's
// "detail" message when it sent one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Detail)
}

// Is lets callers match API errors against the shared sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case utils.ErrNotAuthenticated:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case utils.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// RateLimitError is returned when the server responds with HTTP 429.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration // from Retry-After, if present
}

func (r *RateLimitError) Error() string {
	if r.RetryAfter > 0 {
		return fmt.Sprintf("rate limit exceeded; retry after %s", r.RetryAfter)
	}
	return fmt.Sprintf("rate limit exceeded: %s", r.Message)
}

func (r *RateLimitError) Is(target error) bool {
	return target == utils.ErrRateLimitExceeded
}

// Client manages communication with the rental API.
type Client struct {
	BaseURL      *url.URL
	Tokens       TokenSource
	HTTPClient   *http.Client
	MaxRetries   int           // how many times to retry on 429
	RetryInitial time.Duration // initial backoff
	UserAgent    string
}

// NewClient builds a client for baseURL (e.g. "http://localhost:8000/api/v1").
// maxRetries and retryInitial define how 429 rate-limits are handled.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration, maxRetries int, retryInitial time.Duration) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid baseURL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid baseURL %q: scheme must be http or https", baseURL)
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if retryInitial <= 0 {
		retryInitial = 500 * time.Millisecond
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		BaseURL:      parsed,
		Tokens:       tokens,
		HTTPClient:   &http.Client{Timeout: timeout},
		MaxRetries:   maxRetries,
		RetryInitial: retryInitial,
		UserAgent:    "tenant-portal",
	}, nil
}

// requestOptions holds optional request-specific settings.
type requestOptions struct {
	Query url.Values
	// Anonymous requests never carry the bearer token.
	Anonymous bool
}

// doRequest builds, executes and parses an HTTP request, backing off on 429.
// A url.Values body is sent form-encoded; anything else as JSON.
func (c *Client) doRequest(ctx context.Context, method, reqPath string, body any, out any, opts *requestOptions) error {
	attempt := 0
	backoff := c.RetryInitial

	for {
		err := c.doOnce(ctx, method, reqPath, body, out, opts)
		if err == nil {
			return nil
		}

		var rlErr *RateLimitError
		if !errors.As(err, &rlErr) || attempt >= c.MaxRetries {
			return err
		}

		attempt++
		wait := backoff
		if rlErr.RetryAfter > 0 {
			wait = rlErr.RetryAfter
		}
		utils.Logger.Debugf("Rate limited on %s %s, retry %d/%d in %s", method, reqPath, attempt, c.MaxRetries, wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		backoff *= 2
	}
}

// doOnce performs a single HTTP request attempt (no retries).
func (c *Client) doOnce(ctx context.Context, method, reqPath string, body any, out any, opts *requestOptions) error {
	if opts == nil {
		opts = &requestOptions{}
	}

	u := *c.BaseURL
	u.Path = path.Join(c.BaseURL.Path, reqPath)
	if len(opts.Query) > 0 {
		u.RawQuery = opts.Query.Encode()
	}

	var reqBody io.Reader
	contentType := "application/json"
	switch b := body.(type) {
	case nil:
	case url.Values:
		reqBody = strings.NewReader(b.Encode())
		contentType = "application/x-www-form-urlencoded"
	default:
		jsonBytes, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)

	requestID := uuid.NewString()
	req.Header.Set(utils.RequestIDHeader, requestID)

	if !opts.Anonymous && c.Tokens != nil {
		token, ok, err := c.Tokens.Get()
		if err != nil {
			utils.Logger.WithError(err).Warn("Could not read stored token; sending request unauthenticated")
		} else if ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	logger := utils.Logger.WithFields(logrus.Fields{
		"method":     method,
		"path":       u.Path,
		"request_id": requestID,
	})
	logger.Debug("API request")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %w", utils.ErrNetworkFailure, method, reqPath, err)
	}
	defer resp.Body.Close()

	logger.WithField("status", resp.StatusCode).Debug("API response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleHTTPError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// handleHTTPError turns a 4xx/5xx response into an error, pulling the
// FastAPI-style "detail" out of the body when present.
func (c *Client) handleHTTPError(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(resp.Body)
	detail := parseDetail(bodyBytes)
	if detail == "" {
		detail = fmt.Sprintf("API error: %d", resp.StatusCode)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		var retryAfter time.Duration
		if s := resp.Header.Get("Retry-After"); s != "" {
			if sec, err := strconv.Atoi(s); err == nil && sec > 0 {
				retryAfter = time.Duration(sec) * time.Second
			}
		}
		return &RateLimitError{Message: detail, RetryAfter: retryAfter}
	}
	return &APIError{StatusCode: resp.StatusCode, Detail: detail}
}

// parseDetail reads {"detail": "msg"} or the validation form
// {"detail": [{"msg": "..."}, ...]}.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return strings.TrimSpace(string(envelope.Detail))
}
