package goAntiforgery

import (
	"context"
	"io"
	"net/http"

	internalaudit "github.com/MrEthical07/goAntiforgery/internal/audit"
	"github.com/MrEthical07/goAntiforgery/token"
)

// TokenSet is the exchange unit returned by [Engine.GetTokens] and
// [Engine.GetAndStoreTokens]: the serialized pair plus the configured
// placement names, ready to embed in a page or hand to an API client.
// It is created fresh per issuing call and never retained by the engine.
type TokenSet struct {
	RequestToken string
	CookieToken  string

	FormFieldName string
	// HeaderName is empty when header submission is disabled.
	HeaderName string
}

// TokenGenerator is the capability interface for minting and pair-checking
// antiforgery tokens. The default implementation is [token.Generator];
// replacements are installed through [Builder.WithTokenGenerator].
//
// ValidateTokenSet failures must match the token package sentinels
// (token.ErrMismatch, token.ErrIdentityMismatch, ...) so the engine's error
// taxonomy stays intact across implementations.
type TokenGenerator interface {
	GenerateCookieToken() (*token.Token, error)
	IsCookieTokenValid(t *token.Token) bool
	GenerateRequestToken(identity string, cookieToken *token.Token) (*token.Token, error)
	ValidateTokenSet(identity string, cookieToken, requestToken *token.Token) error
}

// TokenSerializer converts tokens to and from an opaque transport-safe
// string. Deserialize must fail with an error matching [token.ErrMalformed]
// for any input that is not a well-formed serialized token, so callers can
// distinguish "could not parse" from "parsed but invalid".
type TokenSerializer interface {
	Serialize(t *token.Token) (string, error)
	Deserialize(value string) (*token.Token, error)
}

// TokenStore reads the token strings supplied by an incoming request and
// persists a freshly minted cookie token on the outgoing response.
//
// Absence is not an error: a request without a cookie or request token
// yields ("", nil). Errors are reserved for transport-level read failures;
// the engine treats those as "no token present" during issuance.
type TokenStore interface {
	GetCookieToken(r *http.Request) (string, error)
	GetRequestToken(r *http.Request) (string, error)
	SaveCookieToken(ctx context.Context, w http.ResponseWriter, serialized string) error
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
