package goAntiforgery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Emit(context.Context, AuditEvent) {
	s.count.Add(1)
}

func (s *countingSink) Count() int64 {
	return s.count.Load()
}

type captureSink struct {
	events chan AuditEvent
}

func newCaptureSink(buffer int) *captureSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &captureSink{
		events: make(chan AuditEvent, buffer),
	}
}

func (s *captureSink) Emit(ctx context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

func buildAuditTestEngine(t *testing.T, cfg Config, sink AuditSink) *Engine {
	t.Helper()

	engine, err := New().
		WithConfig(cfg).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}

func collectEvents(t *testing.T, sink *captureSink, eventType string) AuditEvent {
	t.Helper()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-sink.events:
			if ev.EventType == eventType {
				return ev
			}
		case <-timeout:
			t.Fatalf("expected audit event %q", eventType)
		}
	}
}

func TestAuditDisabledNoSinkCalls(t *testing.T) {
	cfg := testConfig()
	cfg.Audit.Enabled = false

	sink := &countingSink{}
	engine := buildAuditTestEngine(t, cfg, sink)

	_, _ = engine.GetAndStoreTokens(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	_ = engine.ValidateRequest(httptest.NewRequest(http.MethodPost, "/submit", nil))
	time.Sleep(30 * time.Millisecond)

	if sink.Count() != 0 {
		t.Fatalf("expected no audit sink calls when disabled, got %d", sink.Count())
	}
}

func TestAuditIssueEmitsEventsWithFields(t *testing.T) {
	cfg := testConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 16

	sink := newCaptureSink(16)
	engine := buildAuditTestEngine(t, cfg, sink)

	ctx := WithClientIP(WithIdentity(context.Background(), "alice"), "198.51.100.33")
	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	if _, err := engine.GetAndStoreTokens(httptest.NewRecorder(), r); err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	ev := collectEvents(t, sink, "tokens_issued")
	if !ev.Success {
		t.Fatal("expected success event")
	}
	if ev.Identity != "alice" {
		t.Fatalf("expected identity alice, got %q", ev.Identity)
	}
	if ev.IP != "198.51.100.33" {
		t.Fatalf("expected IP 198.51.100.33, got %q", ev.IP)
	}
	if ev.Metadata["new_cookie_token"] != "true" {
		t.Fatalf("expected new_cookie_token metadata, got %v", ev.Metadata)
	}
}

func TestAuditValidationFailureCarriesErrorCodeNotTokens(t *testing.T) {
	cfg := testConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 16

	sink := newCaptureSink(16)
	engine := buildAuditTestEngine(t, cfg, sink)

	set, err := engine.GetTokens(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_ = engine.ValidateTokens(context.Background(), set.CookieToken, "not-a-token")

	ev := collectEvents(t, sink, "validation_failure")
	if ev.Success {
		t.Fatal("expected failure event")
	}
	if ev.Error != "malformed_token" {
		t.Fatalf("expected malformed_token code, got %q", ev.Error)
	}

	// token strings must never leak into the audit trail
	for _, needle := range []string{set.CookieToken, set.RequestToken} {
		if ev.Error == needle {
			t.Fatal("token string leaked into audit error field")
		}
		for k, v := range ev.Metadata {
			if k == needle || v == needle {
				t.Fatal("token string leaked into audit metadata")
			}
		}
	}
}

func TestAuditRecoveryBranchObservable(t *testing.T) {
	cfg := testConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 16

	sink := newCaptureSink(16)
	engine := buildAuditTestEngine(t, cfg, sink)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: cfg.Cookie.Name, Value: "corrupted"})
	if _, err := engine.GetAndStoreTokens(httptest.NewRecorder(), r); err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}

	ev := collectEvents(t, sink, "cookie_read_recovered")
	if !ev.Success {
		t.Fatal("recovery is a successful outcome, not a failure")
	}
}

func TestAuditJSONWriterSinkWritesJSONLines(t *testing.T) {
	var buf syncBuffer
	sink := NewJSONWriterSink(&buf)
	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: auditEventValidationSuccess,
		Identity:  "alice",
		IP:        "127.0.0.1",
		Success:   true,
	}
	sink.Emit(context.Background(), event)

	if !buf.Contains("validation_success") {
		t.Fatal("expected JSON log line to contain event type")
	}
	if !buf.Contains("alice") {
		t.Fatal("expected JSON log line to contain identity")
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *syncBuffer) Contains(v string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := string(b.buf)
	for i := 0; i+len(v) <= len(s); i++ {
		if s[i:i+len(v)] == v {
			return true
		}
	}
	return false
}
