// Package api calls the campus REST backend and maps its JSON into view
// models.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	apperrors "mindcare/internal/errors"
)

type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond int
	ChatPerMinute     int
	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

type Client struct {
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	chatLimiter *rate.Limiter

	mu     sync.RWMutex
	bearer string
}

func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	limit := rate.Inf
	burst := 1
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
		burst = opts.RequestsPerSecond
	}
	chatLimit := rate.Inf
	chatBurst := 1
	if opts.ChatPerMinute > 0 {
		chatLimit = rate.Every(time.Minute / time.Duration(opts.ChatPerMinute))
		chatBurst = opts.ChatPerMinute
	}

	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		httpClient:  httpClient,
		limiter:     rate.NewLimiter(limit, burst),
		chatLimiter: rate.NewLimiter(chatLimit, chatBurst),
	}
}

// SetBearer attaches token to every following request.
func (c *Client) SetBearer(token string) {
	c.mu.Lock()
	c.bearer = token
	c.mu.Unlock()
}

func (c *Client) ClearBearer() {
	c.SetBearer("")
}

func (c *Client) Bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bearer
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %v", apperrors.ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %v", apperrors.ErrNetwork, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// decodeError understands the {"error":{code,message}} envelope as well as
// the bare {"message"} and {"error":"..."} shapes.
func decodeError(status int, raw []byte) *apperrors.APIError {
	apiErr := apperrors.New(status, "http_"+fmt.Sprint(status), http.StatusText(status))

	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if json.Unmarshal(raw, &envelope) != nil {
		return apiErr
	}

	var nested struct {
		Code    string      `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details"`
	}
	var text string
	switch {
	case len(envelope.Error) > 0 && json.Unmarshal(envelope.Error, &nested) == nil:
		if nested.Code != "" {
			apiErr.Code = nested.Code
		}
		if nested.Message != "" {
			apiErr.Message = nested.Message
		}
		apiErr.Details = nested.Details
	case len(envelope.Error) > 0 && json.Unmarshal(envelope.Error, &text) == nil && text != "":
		apiErr.Message = text
	case envelope.Message != "":
		apiErr.Message = envelope.Message
	}
	return apiErr
}
