// Package prometheus provides Prometheus collectors for goAntiforgery metrics.
//
// [NewPrometheusExporter] accepts an [goAntiforgery.Engine] and exposes an [http.Handler]
// that renders all goAntiforgery counters and histograms in Prometheus text exposition format.
// Counter names are prefixed goantiforgery_*_total; the single histogram is
// goantiforgery_validate_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
