package goAntiforgery

import (
	"net/http"

	internalaudit "github.com/MrEthical07/goAntiforgery/internal/audit"
)

// Engine defines a public type used by goAntiforgery APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config     Config
	generator  TokenGenerator
	serializer TokenSerializer
	store      TokenStore
	audit      *internalaudit.Dispatcher
	metrics    *Metrics
}

// Close describes the close operation and its observable behavior.
//
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// checkSecureTransport is the transport security gate. It runs before any
// store access so a misconfigured deployment fails loudly instead of leaking
// token state over plaintext.
func (e *Engine) checkSecureTransport(r *http.Request) error {
	if !e.config.RequireSecureTransport {
		return nil
	}
	if r.TLS != nil {
		return nil
	}

	e.metricInc(MetricSecureTransportViolation)
	e.emitAudit(r.Context(), auditEventSecureTransportViolation, false, "", ErrSecureTransportRequired, nil)
	return ErrSecureTransportRequired
}

func (e *Engine) applyFrameOptionsHeader(w http.ResponseWriter) {
	if e.config.SuppressXFrameOptionsHeader {
		return
	}
	// Clickjacking defense travels with every persisting call, even when the
	// cookie token itself was reused.
	w.Header().Set("X-Frame-Options", "SAMEORIGIN")
}

func (e *Engine) boundIdentity(r *http.Request) string {
	return e.contextIdentity(r.Context())
}
