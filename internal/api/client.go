package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/gravitrone/secop-lookup/internal/logging"
)

// ErrMalformedResponse marks a success response whose body did not decode.
var ErrMalformedResponse = errors.New("malformed response")

// Error is a non-success answer from the backend. Message is the server's
// explanation when it sent one, else the HTTP status line.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client wraps HTTP calls to the SECOP lookup API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new API client.
func NewClient(baseURL string, timeout ...time.Duration) *Client {
	httpTimeout := 30 * time.Second
	if len(timeout) > 0 && timeout[0] > 0 {
		httpTimeout = timeout[0]
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: httpTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRatePerSecond), DefaultBurst),
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithTimeout clones the client with a different HTTP timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	clone := NewClient(c.baseURL, timeout)
	clone.limiter = c.limiter
	clone.httpClient.Transport = c.httpClient.Transport
	return clone
}

// SetRateLimit replaces the outgoing request limiter. A non-positive rate
// disables limiting.
func (c *Client) SetRateLimit(perSecond float64, burst int) {
	if perSecond <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 1)
		return
	}
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
}

type response struct {
	body       []byte
	status     int
	statusLine string
}

// do executes an HTTP request and returns the raw response.
func (c *Client) do(ctx context.Context, method, path string, body any) (*response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Warn("api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	logging.Debug("api request",
		"method", method,
		"path", path,
		"request_id", requestID,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	out := &response{body: respBody, status: resp.StatusCode, statusLine: statusLine(resp)}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, ok := extractAPIErrorBody(respBody)
		if !ok {
			msg = out.statusLine
		}
		return nil, &Error{Status: resp.StatusCode, Message: msg}
	}
	return out, nil
}

// get performs a GET request.
func (c *Client) get(ctx context.Context, path string) (*response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// post performs a POST request.
func (c *Client) post(ctx context.Context, path string, body any) (*response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// decode unmarshals a success body. A body that does not decode is reported
// with the status line, like any other transport problem.
func decode[T any](resp *response) (*T, error) {
	var out T
	if err := json.Unmarshal(resp.body, &out); err != nil {
		logging.Warn("api decode failed", "status", resp.status, "error", err)
		return nil, &Error{
			Status:  resp.status,
			Message: resp.statusLine,
			Err:     fmt.Errorf("%w: %v", ErrMalformedResponse, err),
		}
	}
	return &out, nil
}

// buildQuery appends query params to a path, skipping empty values.
func buildQuery(path string, params map[string]string) string {
	if len(params) == 0 {
		return path
	}
	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func statusLine(resp *http.Response) string {
	if s := strings.TrimSpace(resp.Status); s != "" {
		return "HTTP " + s
	}
	return fmt.Sprintf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

func extractAPIErrorBody(body []byte) (string, bool) {
	if len(bytes.TrimSpace(body)) == 0 {
		return "", false
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}

	if msg, ok := parseErrorValue(payload["detail"]); ok {
		return msg, true
	}
	if msg, ok := parseErrorValue(payload["error"]); ok {
		return msg, true
	}
	if msg, ok := parseErrorValue(payload["message"]); ok {
		return msg, true
	}
	return "", false
}

func parseErrorValue(raw any) (string, bool) {
	switch value := raw.(type) {
	case string:
		msg := strings.TrimSpace(value)
		if msg == "" {
			return "", false
		}
		return msg, true
	case []any:
		// FastAPI validation errors: [{"loc": [...], "msg": "..."}]
		parts := make([]string, 0, len(value))
		for _, item := range value {
			if msg, ok := parseErrorValue(item); ok {
				parts = append(parts, msg)
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, "; "), true
	case map[string]any:
		if msg, ok := parseErrorValue(value["msg"]); ok {
			return msg, true
		}
		code, _ := value["code"].(string)
		message, _ := value["message"].(string)
		return formatAPIError(code, message)
	}
	return "", false
}

func formatAPIError(code, message string) (string, bool) {
	code = strings.TrimSpace(code)
	message = strings.TrimSpace(message)
	switch {
	case code != "" && message != "":
		return fmt.Sprintf("%s: %s", code, message), true
	case code != "":
		return code, true
	case message != "":
		return message, true
	default:
		return "", false
	}
}
