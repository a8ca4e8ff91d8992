package httpclient

import (
	"context"
	"time"

	"github.com/aretw0/adaptor/pkg/domain"
)

// ResponseEvent describes a completed round trip. Response is nil when Err
// is a transport failure.
type ResponseEvent struct {
	Request  Request
	Response *domain.Response
	Duration time.Duration
	Err      error
}

// Hooks observe requests without affecting them.
type Hooks struct {
	OnRequest  func(ctx context.Context, req Request)
	OnResponse func(ctx context.Context, ev ResponseEvent)
}

// MultiHooks fans out to every hook set in order.
func MultiHooks(hooks ...Hooks) Hooks {
	return Hooks{
		OnRequest: func(ctx context.Context, req Request) {
			for _, h := range hooks {
				if h.OnRequest != nil {
					h.OnRequest(ctx, req)
				}
			}
		},
		OnResponse: func(ctx context.Context, ev ResponseEvent) {
			for _, h := range hooks {
				if h.OnResponse != nil {
					h.OnResponse(ctx, ev)
				}
			}
		},
	}
}
