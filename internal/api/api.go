// package api implements the HTTP client for the melodex music-library server.
//
// Every response wraps its payload as {content, message, success}; list
// endpoints additionally wrap pages. Non-2xx responses carry an error
// envelope {message, errorCode} which is surfaced as [*Error].
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/melodex/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:8080"

// envelope mirrors the server's response wrapper. Content is left raw so
// each endpoint method can decode its own payload type.
type envelope struct {
	Content json.RawMessage `json:"content"`
	Message string          `json:"message"`
	Success bool            `json:"success"`
}

// Page represents the server's pagination wrapper for list endpoints.
type Page[T any] struct {
	Content       []T  `json:"content"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	Size          int  `json:"size"`
	Number        int  `json:"number"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
	Empty         bool `json:"empty"`
}

// Client is an authenticated HTTP client for the music-library API.
//
// The bearer token is process-wide shared state: set on successful login,
// cleared on logout or on any 401 response. All mutating client state is
// guarded so the client is safe for concurrent use by the TUI and workflows.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger

	mu        sync.RWMutex
	token     string
	onExpired func()
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets the underlying [http.Client].
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRateLimit throttles outgoing requests to rps requests per second.
// The server rejects bursts with RATE_LIMIT_EXCEEDED, so the client
// self-throttles instead of surfacing avoidable 429s.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithToken seeds the bearer token, e.g. from the persisted token file.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// NewClient creates a new API client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     shared.NewLogger(nil),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetToken replaces the bearer token attached to subsequent requests.
// An empty token clears authentication.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer token, or "" when unauthenticated.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// OnSessionExpired registers fn to run whenever the server answers 401.
// The client clears its token before invoking fn.
func (c *Client) OnSessionExpired(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onExpired = fn
}

// do performs an authenticated request against the API and decodes the
// response envelope. A nil result skips payload decoding. Returns the
// envelope's message so callers can surface server-provided notifications.
func (c *Client) do(ctx context.Context, method, endpoint string, body, result any) (string, error) {
	var reader io.Reader
	contentType := "application/json"

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	return c.doRaw(ctx, method, endpoint, contentType, reader, result)
}

// doForm performs a multipart/form-data request with text fields and an
// optional file part. A nil file sends the fields alone.
func (c *Client) doForm(ctx context.Context, method, endpoint string, fields map[string]string, fileField, filename string, file io.Reader, result any) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return "", fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if file != nil {
		part, err := writer.CreateFormFile(fileField, filename)
		if err != nil {
			return "", fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return "", fmt.Errorf("failed to copy file data: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	return c.doRaw(ctx, method, endpoint, writer.FormDataContentType(), &buf, result)
}

// doMultipart performs a multipart/form-data upload with a single file field.
func (c *Client) doMultipart(ctx context.Context, method, endpoint, field, filename string, file io.Reader, result any) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to copy file data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	return c.doRaw(ctx, method, endpoint, writer.FormDataContentType(), &buf, result)
}

func (c *Client) doRaw(ctx context.Context, method, endpoint, contentType string, body io.Reader, result any) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter wait failed: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	requestID := shared.GenerateID()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Request-Id", requestID)
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp.StatusCode, data)
		c.logger.Warn("request failed",
			"method", method, "endpoint", endpoint,
			"status", resp.StatusCode, "code", apiErr.Code, "request_id", requestID)

		if resp.StatusCode == http.StatusUnauthorized {
			c.expireSession()
		}

		return "", apiErr
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", fmt.Errorf("failed to decode response envelope: %w", err)
	}

	if result != nil && len(env.Content) > 0 {
		if err := json.Unmarshal(env.Content, result); err != nil {
			return "", fmt.Errorf("failed to decode response content: %w", err)
		}
	}

	return env.Message, nil
}

// expireSession clears the token and fires the expiry hook. The hook only
// fires on the transition from authenticated to expired, so repeated 401s
// against an already-cleared session stay quiet.
func (c *Client) expireSession() {
	c.mu.Lock()
	hadToken := c.token != ""
	c.token = ""
	fn := c.onExpired
	c.mu.Unlock()

	if hadToken && fn != nil {
		fn()
	}
}
