/*
Package observability exports orchestrator activity as Prometheus metrics.

Metrics are fed exclusively through domain.LifecycleHooks, so the orchestrator
stays unaware of Prometheus:

	m, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	orch, err := runtime.New(reg, initial, scenes, runtime.WithLifecycleHooks(m.Hooks()))
*/
package observability
