package goAntiforgery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var testSigningKey = []byte("0123456789abcdef0123456789abcdef")

func testConfig() Config {
	cfg := defaultConfig()
	cfg.Token.Key = testSigningKey
	cfg.Metrics.Enabled = true
	return cfg
}

func buildTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()

	engine, err := New().WithConfig(cfg).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}

// requestWithIssuedCookie replays the Set-Cookie header written by an
// issuing call onto a fresh request, the way a browser would.
func requestWithIssuedCookie(t *testing.T, rec *httptest.ResponseRecorder, method, target string, body string) *http.Request {
	t.Helper()

	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

// failingStore injects transport failures at the store boundary.
type failingStore struct {
	inner      TokenStore
	cookieErr  error
	requestErr error
	saveErr    error
}

func (s *failingStore) GetCookieToken(r *http.Request) (string, error) {
	if s.cookieErr != nil {
		return "", s.cookieErr
	}
	return s.inner.GetCookieToken(r)
}

func (s *failingStore) GetRequestToken(r *http.Request) (string, error) {
	if s.requestErr != nil {
		return "", s.requestErr
	}
	return s.inner.GetRequestToken(r)
}

func (s *failingStore) SaveCookieToken(ctx context.Context, w http.ResponseWriter, serialized string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.inner.SaveCookieToken(ctx, w, serialized)
}

var errStoreBroken = errors.New("store broken")

func TestEngineNilReceiverContracts(t *testing.T) {
	var e *Engine

	if _, err := e.GetAndStoreTokens(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
	if _, err := e.GetTokens(httptest.NewRequest(http.MethodGet, "/", nil)); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
	if err := e.ValidateRequest(httptest.NewRequest(http.MethodGet, "/", nil)); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
	if err := e.ValidateTokens(context.Background(), "a", "b"); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
}

func TestEngineNilRequestAndResponseContracts(t *testing.T) {
	engine := buildTestEngine(t, testConfig())

	if _, err := engine.GetAndStoreTokens(httptest.NewRecorder(), nil); !errors.Is(err, ErrNilRequest) {
		t.Fatalf("expected ErrNilRequest, got %v", err)
	}
	if _, err := engine.GetAndStoreTokens(nil, httptest.NewRequest(http.MethodGet, "/", nil)); !errors.Is(err, ErrNilResponse) {
		t.Fatalf("expected ErrNilResponse, got %v", err)
	}
	if err := engine.SetCookieTokenAndHeader(nil, httptest.NewRequest(http.MethodGet, "/", nil)); !errors.Is(err, ErrNilResponse) {
		t.Fatalf("expected ErrNilResponse, got %v", err)
	}
	if _, err := engine.IsRequestValid(nil); !errors.Is(err, ErrNilRequest) {
		t.Fatalf("expected ErrNilRequest, got %v", err)
	}
}
