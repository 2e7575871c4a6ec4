package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/iho/gotill/internal/adapter/http/dto"
	"github.com/iho/gotill/internal/adapter/http/middleware"
)

// apiError is a non-2xx response from the API.
type apiError struct {
	Status int
	Body   dto.ErrorResponse
	Raw    string
}

func (e *apiError) Error() string {
	if e.Body.Error == "" {
		return fmt.Sprintf("request failed (status %d): %s", e.Status, truncate(e.Raw, 200))
	}
	msg := fmt.Sprintf("%s (status %d", e.Body.Error, e.Status)
	if e.Body.Code != "" {
		msg += ", code " + e.Body.Code
	}
	if e.Body.Field != "" {
		msg += ", field " + e.Body.Field
	}
	msg += ")"
	if e.Body.Message != "" {
		msg += ": " + e.Body.Message
	}
	return msg
}

type apiClient struct {
	opts *globalOptions
	http *http.Client
}

func newAPIClient(opts *globalOptions) *apiClient {
	return &apiClient{opts: opts, http: &http.Client{Timeout: opts.timeout}}
}

// do sends body as JSON and decodes the response into out when out is non-nil.
func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.fetch(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// fetch sends body as JSON and returns the raw response of a 2xx reply.
func (c *apiClient) fetch(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.opts.baseURL, "/")+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.token)
	} else if c.opts.actorID != "" {
		req.Header.Set(middleware.ActorIDHeader, c.opts.actorID)
		req.Header.Set(middleware.ActorRoleHeader, c.opts.role)
	}
	if method != http.MethodGet && c.opts.idempotencyKey != "" {
		req.Header.Set(middleware.IdempotencyKeyHeader, c.opts.idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &apiError{Status: resp.StatusCode, Raw: string(raw)}
		_ = json.Unmarshal(raw, &apiErr.Body)
		return nil, apiErr
	}
	return raw, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
