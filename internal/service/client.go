package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrUnauthorized = errors.New("invalid email or password")

// APIError is returned for any non-2xx answer of the bills API. Its message is
// the one shown to the user on the list page.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Erreur %d", e.StatusCode)
}

type APIClient struct {
	baseURL string
	client  *http.Client
	metrics *Metrics
}

func NewAPIClient(baseURL string, metrics *Metrics) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		metrics: metrics,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	JWT string `json:"jwt"`
}

// Login exchanges employee credentials for an API token.
func (c *APIClient) Login(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("encode login: %w", err)
	}

	var res loginResponse
	err = c.do(ctx, request{
		op:          "login",
		method:      http.MethodPost,
		path:        "/auth/login",
		body:        bytes.NewReader(body),
		contentType: "application/json",
	}, &res)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
			return "", ErrUnauthorized
		}
		return "", err
	}
	if res.JWT == "" {
		return "", errors.New("empty token in login response")
	}
	return res.JWT, nil
}

// Bills returns the gateway to the bills resource acting on behalf of the
// holder of token.
func (c *APIClient) Bills(token string) *BillsGateway {
	return &BillsGateway{api: c, token: token}
}

type request struct {
	op          string
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
}

func (c *APIClient) do(ctx context.Context, r request, out any) (err error) {
	start := time.Now()
	defer func() { c.metrics.observe(r.op, start, err) }()

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
