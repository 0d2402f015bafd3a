// Package email implements the external email verification collaborator on
// top of the Abstract email-validation HTTP API.
package email

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/workforce/identity-service/internal/core/domain"
)

const defaultBaseURL = "https://emailvalidation.abstractapi.com"

// AbstractClient fetches deliverability reports from the Abstract API.
type AbstractClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewAbstractClient builds a client for the given API key. baseURL overrides
// the production endpoint and exists for tests; pass "" for the default.
func NewAbstractClient(apiKey, baseURL string) *AbstractClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &AbstractClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// retryableStatus reports whether the service's answer counts as a degraded
// response rather than a verdict: unauthorized, unprocessable, rate-limited,
// server error, unavailable.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusUnauthorized,
		http.StatusUnprocessableEntity,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusServiceUnavailable:
		return true
	}
	return false
}

// Verify performs a single verification request. It returns
// domain.ErrVerifierDegraded for retryable service statuses and a plain error
// when no response could be obtained or parsed.
func (c *AbstractClient) Verify(ctx context.Context, address string) (*domain.EmailVerification, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("email", address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build verification request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verification request: %w", err)
	}
	defer resp.Body.Close()

	if retryableStatus(resp.StatusCode) {
		return nil, fmt.Errorf("verification service returned %d: %w", resp.StatusCode, domain.ErrVerifierDegraded)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read verification response: %w", err)
	}

	var report domain.EmailVerification
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("decode verification response: %w", err)
	}
	return &report, nil
}
