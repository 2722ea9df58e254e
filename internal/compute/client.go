package compute

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the fixed endpoint of the remote compute service.
	DefaultBaseURL = "https://api.remotetask.dev"

	// languageC is the only execution language the conversion payload uses.
	languageC = "C"

	defaultTimeout = 30 * time.Second
	defaultRPS     = 5
)

// Config holds compute client construction parameters.
// APIKey must already be resolved; the client never reads the environment.
type Config struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Client talks to the remote compute API. All calls are one-shot: a
// network or HTTP error is returned immediately, never retried.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a compute client with validated configuration.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("compute client requires an API key")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

// Submit creates a one-shot source-code execution task and returns the
// assigned task ID unmodified.
func (c *Client) Submit(ctx context.Context, code, args string) (string, error) {
	req := submitRequest{
		Type: "SourceCode",
		SourceCode: sourcePayload{
			Object:    "SourceCode",
			Code:      code,
			Arguments: args,
			Language:  languageC,
		},
	}

	var resp submitResponse
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/tasks", &req, &resp, "submit task"); err != nil {
		return "", err
	}
	if resp.TaskID == "" {
		return "", fmt.Errorf("submit task: response contains no TaskID")
	}

	slog.Info("task submitted", "task_id", resp.TaskID)
	return resp.TaskID, nil
}

// Status queries the current status of a task.
func (c *Client) Status(ctx context.Context, id string) (TaskStatus, error) {
	var resp statusResponse
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/tasks/"+id, nil, &resp, "query status"); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// Outputs fetches the output metadata of a task. A missing Stdout field
// yields a zero-value Outputs, not an error; the caller decides whether
// that is fatal.
func (c *Client) Outputs(ctx context.Context, id string) (Outputs, error) {
	var resp Outputs
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/tasks/"+id+"/outputs", nil, &resp, "fetch outputs"); err != nil {
		return Outputs{}, err
	}
	return resp, nil
}

// FetchArtifact downloads the raw text body of an output artifact.
// Artifacts are hosted separately from the API, so no auth header is sent.
func (c *Client) FetchArtifact(ctx context.Context, url string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetch artifact: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch artifact: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fetch artifact: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Op: "fetch artifact", Code: resp.StatusCode, Body: truncate(string(body))}
	}
	return string(body), nil
}

// doJSON performs an authenticated API call with a JSON body and decodes
// a JSON response. Every call waits on the client-side rate limiter first.
func (c *Client) doJSON(ctx context.Context, method, url string, in, out any, op string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Op: op, Code: resp.StatusCode, Body: truncate(string(data))}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return nil
}

// truncate caps error bodies so a misbehaving endpoint cannot flood logs.
func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
