package adaptor

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aretw0/adaptor/internal/logging"
	"github.com/aretw0/adaptor/pkg/httpclient"
)

// Adaptor builds operations against a single external system. It is safe
// for concurrent use; the operations it returns hold no state between
// invocations.
type Adaptor struct {
	client       *httpclient.Client
	httpClient   *http.Client
	logger       *slog.Logger
	hooks        httpclient.Hooks
	successCodes []int
	timeout      time.Duration
}

// Option defines a functional option for configuring the Adaptor.
type Option func(*Adaptor)

// WithHTTPClient sets the *http.Client used for every request.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Adaptor) {
		a.httpClient = c
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adaptor) {
		a.logger = logger
	}
}

// WithHooks registers request lifecycle hooks (see pkg/observability).
func WithHooks(hooks httpclient.Hooks) Option {
	return func(a *Adaptor) {
		a.hooks = hooks
	}
}

// WithSuccessCodes replaces the accepted status set (default 200, 201, 202).
func WithSuccessCodes(codes ...int) Option {
	return func(a *Adaptor) {
		a.successCodes = codes
	}
}

// WithTimeout bounds each request. It applies to a copy of the configured
// *http.Client and is ignored when d <= 0.
func WithTimeout(d time.Duration) Option {
	return func(a *Adaptor) {
		a.timeout = d
	}
}

// New creates an Adaptor.
func New(opts ...Option) *Adaptor {
	a := &Adaptor{}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = logging.NewNop()
	}
	if a.httpClient == nil {
		a.httpClient = &http.Client{}
	}
	if a.timeout > 0 {
		c := *a.httpClient
		c.Timeout = a.timeout
		a.httpClient = &c
	}

	a.client = httpclient.New(
		httpclient.WithHTTPClient(a.httpClient),
		httpclient.WithLogger(a.logger),
		httpclient.WithHooks(a.hooks),
		httpclient.WithSuccessCodes(a.successCodes...),
	)
	return a
}

// Client returns the underlying HTTP client.
func (a *Adaptor) Client() *http.Client {
	return a.httpClient
}

var (
	defaultOnce    sync.Once
	defaultAdaptor *Adaptor
)

// Default returns the shared Adaptor used by the package-level builders.
func Default() *Adaptor {
	defaultOnce.Do(func() {
		defaultAdaptor = New()
	})
	return defaultAdaptor
}
