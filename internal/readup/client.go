package readup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client talks to the Readup backend API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       zerolog.Logger

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

const (
	defaultUserAgent = "readup-go/0.1"
	requestTimeout   = 15 * time.Second
)

// NewClient builds a Client for the given base URL. The token may be empty
// for unauthenticated use; SetToken installs one later.
func NewClient(baseURL, token string, log zerolog.Logger) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		log:       log,
		token:     token,
	}, nil
}

// SetToken replaces the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer token, empty after a 401.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetOnUnauthorized installs a hook invoked whenever the backend answers
// 401. The token has already been cleared when the hook runs; callers use
// it to trigger a global logout.
func (c *Client) SetOnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	return c.doURL(ctx, http.MethodGet, &url.URL{Path: path}, nil, dest)
}

func (c *Client) getQuery(ctx context.Context, path string, values url.Values, dest any) error {
	return c.doURL(ctx, http.MethodGet, &url.URL{Path: path, RawQuery: values.Encode()}, nil, dest)
}

func (c *Client) post(ctx context.Context, path string, body, dest any) error {
	return c.doURL(ctx, http.MethodPost, &url.URL{Path: path}, body, dest)
}

func (c *Client) patch(ctx context.Context, path string, body, dest any) error {
	return c.doURL(ctx, http.MethodPatch, &url.URL{Path: path}, body, dest)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.doURL(ctx, http.MethodDelete, &url.URL{Path: path}, nil, nil)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return c.apiError(rel, resp)
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doMultipart sends a multipart/form-data body already assembled by the
// caller. Used by the Goodreads import upload.
func (c *Client) doMultipart(ctx context.Context, path, contentType string, body io.Reader, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return c.apiError(rel, resp)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) apiError(rel *url.URL, resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Message = payload.Error
		if apiErr.Message == "" {
			apiErr.Message = payload.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("api %s returned status %d", rel.Path, resp.StatusCode)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
	}
	c.log.Debug().Int("status", resp.StatusCode).Str("path", rel.Path).Msg("api error")
	return apiErr
}

// handleUnauthorized clears the token and fires the logout hook once per
// 401 response.
func (c *Client) handleUnauthorized() {
	c.mu.Lock()
	c.token = ""
	hook := c.onUnauthorized
	c.mu.Unlock()

	if hook != nil {
		hook()
	}
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("api base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
