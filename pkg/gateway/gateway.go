// Package gateway is the single chokepoint for every call to the
// remote gold-trading API. It injects the access token, enforces the
// read timeout, converts the backend's {success, message, data}
// envelope into one closed error shape and reacts to authorization
// failures uniformly: purge the session and emit a typed
// AuthInvalidated event for the navigation controller.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ReadTimeout bounds every read-class call. Transfer-class calls are
// unbounded here; the transfer workflow supplies its own race against
// the same budget.
const ReadTimeout = 5 * time.Second

// TokenSource supplies the current access token, or "" when anonymous.
// A missing token is not an error at this layer.
type TokenSource interface {
	AccessToken() string
}

// Purger clears the session when the server reports an auth failure.
type Purger interface {
	Purge()
}

// AuthInvalidated is emitted once per observed 401/403. Exactly one
// top-level navigation controller subscribes and performs the redirect
// to the login view, so the network layer stays free of UI concerns
// and redirect loops cannot form.
type AuthInvalidated struct {
	Status int
}

// Client is the API gateway client.
type Client struct {
	baseURL string
	tokens  TokenSource
	purger  Purger
	logger  *slog.Logger

	bounded   *http.Client
	unbounded *http.Client

	invalidations chan AuthInvalidated
}

// New creates a gateway client for the given base URL.
func New(baseURL string, tokens TokenSource, purger Purger, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		tokens:        tokens,
		purger:        purger,
		logger:        logger,
		bounded:       &http.Client{Timeout: ReadTimeout},
		unbounded:     &http.Client{},
		invalidations: make(chan AuthInvalidated, 1),
	}
}

// Invalidations is the auth-invalidated event channel. Buffered with
// capacity one and sent non-blocking: concurrent failures coalesce
// into a single pending event, which is enough because the remediation
// is idempotent.
func (c *Client) Invalidations() <-chan AuthInvalidated {
	return c.invalidations
}

// AssetURL resolves an attachment filename to its static-asset URL
// under the API origin.
func (c *Client) AssetURL(filename string) string {
	if filename == "" {
		return ""
	}
	return c.baseURL + "/uploads/" + filename
}

// File is an attachment carried in a multipart request.
type File struct {
	Field   string
	Name    string
	MIME    string
	Content []byte
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// Payload decodes the data field of a successful envelope.
type Payload[T any] struct {
	Data T `json:"data"`
}

// JSON issues a read-class request with a JSON body (nil for none) and
// decodes the full response body into out (nil to discard). The call
// is bounded by ReadTimeout; a timeout is a failure.
func (c *Client) JSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(c.bounded, req, out)
}

// Multipart issues a transfer-class multipart request. No HTTP-layer
// timeout applies: the backend is known to accept transfers without a
// timely acknowledgment, and cutting the connection would turn an
// accepted transfer into a phantom failure. Callers race this against
// their own timer.
func (c *Client) Multipart(ctx context.Context, path string, fields map[string]string, file *File, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write form field %q: %w", key, err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return fmt.Errorf("failed to write form file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(c.unbounded, req, out)
}

func (c *Client) do(hc *http.Client, req *http.Request, out any) error {
	if token := c.tokens.AccessToken(); token != "" {
		req.Header.Set("access_token", token)
	}

	resp, err := hc.Do(req)
	if err != nil {
		if isTimeout(err) {
			return &Error{Timeout: true}
		}
		return &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: resp.StatusCode, Message: err.Error()}
	}

	var env envelope
	// The body may not be an envelope at all on proxy-level errors;
	// a decode failure just leaves the message empty.
	_ = json.Unmarshal(data, &env)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.invalidate(resp.StatusCode)
		return &Error{Status: resp.StatusCode, Message: env.Message}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: env.Message}
	}
	if env.Success != nil && !*env.Success {
		// Business rejection: HTTP said ok, the envelope did not.
		return &Error{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Status: resp.StatusCode, Message: fmt.Sprintf("failed to decode response: %v", err)}
		}
	}
	return nil
}

func (c *Client) invalidate(status int) {
	c.logger.Warn("authorization failure, purging session", slog.Int("status", status))
	c.purger.Purge()
	select {
	case c.invalidations <- AuthInvalidated{Status: status}:
	default:
		// An event is already pending; one redirect remediates all.
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}
