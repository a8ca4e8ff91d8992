/*
Package observability provides Prometheus metrics for adaptor requests.

Metrics attach to the HTTP client through lifecycle hooks, so operations
stay unaware of them:

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	a := adaptor.New(adaptor.WithHooks(m.Hooks()))
*/
package observability
