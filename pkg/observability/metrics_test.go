package observability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/adaptor/pkg/domain"
	"github.com/aretw0/adaptor/pkg/httpclient"
	"github.com/aretw0/adaptor/pkg/observability"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnRequest(ctx, httpclient.Request{URL: "http://x"})
	assert.Equal(t, float64(1), testutil.ToFloat64(m.InFlight))

	hooks.OnResponse(ctx, httpclient.ResponseEvent{
		Response: &domain.Response{StatusCode: 201},
		Duration: 20 * time.Millisecond,
	})
	hooks.OnRequest(ctx, httpclient.Request{URL: "http://x"})
	hooks.OnResponse(ctx, httpclient.ResponseEvent{Err: errors.New("refused")})

	assert.Equal(t, float64(0), testutil.ToFloat64(m.InFlight))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues("201")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues(observability.StatusTransportError)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Duration))
}

func TestNewMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	observability.NewMetrics(reg)

	assert.Panics(t, func() { observability.NewMetrics(reg) }, "duplicate registration")
	assert.NotPanics(t, func() { observability.NewMetrics(nil) })
}
