package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/adaptor/internal/logging"
	"github.com/aretw0/adaptor/pkg/domain"
)

// DefaultSuccessCodes is the accepted status set used when none is given.
var DefaultSuccessCodes = []int{http.StatusOK, http.StatusCreated, http.StatusAccepted}

// BasicAuth holds credentials sent with the Authorization header.
type BasicAuth struct {
	Username string
	Password string
}

// Request describes a single POST.
type Request struct {
	URL     string
	Body    any
	Headers map[string]string
	Auth    *BasicAuth
}

// Client issues JSON POST requests and maps responses into domain values.
type Client struct {
	httpClient   *http.Client
	logger       *slog.Logger
	hooks        Hooks
	successCodes []int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// WithHooks registers lifecycle callbacks.
func WithHooks(h Hooks) Option {
	return func(cl *Client) {
		cl.hooks = h
	}
}

// WithSuccessCodes replaces the accepted status set.
func WithSuccessCodes(codes ...int) Option {
	return func(cl *Client) {
		if len(codes) > 0 {
			cl.successCodes = slices.Clone(codes)
		}
	}
}

// New creates a Client. Without options it uses http.DefaultClient, a no-op
// logger and DefaultSuccessCodes.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient:   http.DefaultClient,
		logger:       logging.NewNop(),
		successCodes: DefaultSuccessCodes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HTTPClient returns the underlying *http.Client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// IsSuccess reports whether code belongs to the client's accepted set.
func (c *Client) IsSuccess(code int) bool {
	return IsSuccess(code, c.successCodes...)
}

// Post sends req as a JSON POST. Transport failures are returned as they
// come from net/http; responses outside the accepted set yield a
// *StatusError.
func (c *Client) Post(ctx context.Context, req Request) (*domain.Response, error) {
	payload, err := json.Marshal(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.Auth != nil {
		httpReq.SetBasicAuth(req.Auth.Username, req.Auth.Password)
	}

	c.logger.Debug("posting",
		slog.String("url", req.URL),
		slog.String("body", string(payload)))
	if c.hooks.OnRequest != nil {
		c.hooks.OnRequest(ctx, req)
	}

	start := time.Now()
	resp, err := c.do(httpReq)
	dur := time.Since(start)

	if c.hooks.OnResponse != nil {
		c.hooks.OnResponse(ctx, ResponseEvent{
			Request:  req,
			Response: resp,
			Duration: dur,
			Err:      err,
		})
	}
	if err != nil {
		c.logger.Error("request failed",
			slog.String("url", req.URL),
			slog.Duration("duration", dur),
			slog.Any("err", err))
		return nil, err
	}

	c.logger.Debug("response",
		slog.String("url", req.URL),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", dur),
		slog.Any("body", resp.Body))

	if !c.IsSuccess(resp.StatusCode) {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: resp.Body}
	}
	return resp, nil
}

func (c *Client) do(req *http.Request) (*domain.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	body := decodeBody(raw)
	headers := make(map[string]string, len(resp.Header))
	for k, vs := range resp.Header {
		headers[k] = strings.Join(vs, ", ")
	}

	return &domain.Response{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       body,
		Data:       body,
	}, nil
}

// decodeBody parses JSON payloads and keeps anything else as a string. An
// empty payload decodes to nil.
func decodeBody(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}
