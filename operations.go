package adaptor

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/adaptor/pkg/common"
	"github.com/aretw0/adaptor/pkg/domain"
	"github.com/aretw0/adaptor/pkg/httpclient"
)

// PatientPath is the endpoint used by CreatePatient.
const PatientPath = "patient"

// PostParams describes a raw POST. Every field may hold placeholders.
type PostParams struct {
	URL     any `json:"url" yaml:"url" mapstructure:"url"`
	Body    any `json:"body" yaml:"body" mapstructure:"body"`
	Headers any `json:"headers" yaml:"headers" mapstructure:"headers"`
}

// Post sends params.Body to params.URL. A relative URL is resolved against
// the configured base URL. The next state carries the response; data and
// references are left as they were.
func (a *Adaptor) Post(params PostParams) Operation {
	return func(ctx context.Context, s *State) (*State, error) {
		if s == nil {
			return nil, domain.ErrNilState
		}

		target, err := common.ExpandString(params.URL, s)
		if err != nil {
			return nil, err
		}
		body, err := common.Expand(params.Body, s)
		if err != nil {
			return nil, err
		}
		rawHeaders, err := common.Expand(params.Headers, s)
		if err != nil {
			return nil, err
		}
		headers, err := decodeHeaders(rawHeaders)
		if err != nil {
			return nil, err
		}

		target, err = resolveURL(s.Configuration, target)
		if err != nil {
			return nil, err
		}

		a.logger.Debug("post", slog.String("operation", "post"), slog.String("url", target))
		resp, err := a.client.Post(ctx, httpclient.Request{
			URL:     target,
			Body:    body,
			Headers: headers,
		})
		if err != nil {
			return nil, err
		}

		next := s.Clone()
		next.Response = resp
		return next, nil
	}
}

// Create posts params to baseUrl/path using the configured credentials and
// headers. The response payload becomes the next state's data and the
// previous data is pushed onto references. A non-nil cb receives that state
// and its result is returned instead.
func (a *Adaptor) Create(path any, params any, cb Callback) Operation {
	return func(ctx context.Context, s *State) (*State, error) {
		if s == nil {
			return nil, domain.ErrNilState
		}
		cfg, err := s.Config()
		if err != nil {
			return nil, err
		}
		if cfg.BaseURL == "" {
			return nil, domain.ErrMissingBaseURL
		}

		p, err := common.ExpandString(path, s)
		if err != nil {
			return nil, err
		}
		body, err := common.Expand(params, s)
		if err != nil {
			return nil, err
		}

		req := httpclient.Request{
			URL:     joinURL(cfg.BaseURL, p),
			Body:    body,
			Headers: cfg.Headers,
		}
		if cfg.Username != "" {
			req.Auth = &httpclient.BasicAuth{Username: cfg.Username, Password: cfg.Password}
		}

		a.logger.Debug("create", slog.String("operation", "create"), slog.String("url", req.URL))
		resp, err := a.client.Post(ctx, req)
		if err != nil {
			return nil, err
		}

		next := common.ComposeNextState(s, resp.Data)
		next.Response = resp
		return domain.Finalize(ctx, next, cb)
	}
}

// CreatePatient is Create against the patient endpoint.
func (a *Adaptor) CreatePatient(params any, cb Callback) Operation {
	return a.Create(PatientPath, params, cb)
}

// Post builds a Post operation on the default Adaptor.
func Post(params PostParams) Operation {
	return Default().Post(params)
}

// Create builds a Create operation on the default Adaptor.
func Create(path any, params any, cb Callback) Operation {
	return Default().Create(path, params, cb)
}

// CreatePatient builds a CreatePatient operation on the default Adaptor.
func CreatePatient(params any, cb Callback) Operation {
	return Default().CreatePatient(params, cb)
}

// joinURL concatenates base and path with exactly one slash between them.
func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func resolveURL(cfg *domain.Configuration, target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", target, err)
	}
	if u.IsAbs() {
		return target, nil
	}
	if cfg == nil || cfg.BaseURL == "" {
		return "", fmt.Errorf("%w: relative url %q", domain.ErrMissingBaseURL, target)
	}
	return joinURL(cfg.BaseURL, target), nil
}

func decodeHeaders(raw any) (map[string]string, error) {
	if raw == nil {
		return nil, nil
	}
	var headers map[string]string
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &headers,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode headers: %w", err)
	}
	return headers, nil
}
