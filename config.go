package goAntiforgery

import (
	"errors"
	"net/http"
	"time"
)

// Config defines a public type used by goAntiforgery APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Cookie        CookieConfig
	FormFieldName string

	// HeaderName is the request header carrying the request token. Setting
	// DisableHeaderSubmission limits submission to the form field only.
	HeaderName              string
	DisableHeaderSubmission bool

	// RequireSecureTransport aborts every operation with
	// ErrSecureTransportRequired when the exchange is not over TLS.
	RequireSecureTransport bool

	// SuppressXFrameOptionsHeader skips the X-Frame-Options: SAMEORIGIN
	// response header otherwise applied by every persisting operation.
	SuppressXFrameOptionsHeader bool

	// IdentityBinding binds request tokens to the authenticated identity
	// found in the request context (see WithIdentity). Disabled, tokens
	// degrade gracefully to unbound pairs.
	IdentityBinding bool

	Token   TokenConfig
	Redis   RedisConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
COOKIE CONFIG
====================================
*/

// CookieConfig defines a public type used by goAntiforgery APIs.
//
// CookieConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CookieConfig struct {
	Name     string
	Path     string
	Domain   string
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
	MaxAge   int // in seconds; 0 means session cookie
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenFormat defines a public type used by goAntiforgery APIs.
//
// TokenFormat instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenFormat string

const (
	// FormatBinary is an exported constant or variable used by the antiforgery engine.
	FormatBinary TokenFormat = "binary"
	// FormatJWT is an exported constant or variable used by the antiforgery engine.
	FormatJWT TokenFormat = "jwt"
)

// TokenConfig defines a public type used by goAntiforgery APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	Format        TokenFormat
	SigningMethod string // "hs256" (default) or "ed25519"
	Key           []byte // hs256 secret
	PrivateKey    []byte // ed25519 private key or seed
	PublicKey     []byte // ed25519 public key
}

/*
====================================
REDIS STORE CONFIG
====================================
*/

// RedisConfig configures the server-side cookie token store selected by
// [Builder.WithRedis]. The browser cookie then carries only an opaque
// exchange identifier; the serialized cookie token lives in Redis.
type RedisConfig struct {
	KeyPrefix string
	CookieTTL time.Duration
}

// AuditConfig defines a public type used by goAntiforgery APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by goAntiforgery APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		Cookie: CookieConfig{
			Name:     ".goAntiforgery.Token",
			Path:     "/",
			HTTPOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		FormFieldName:   "__RequestVerificationToken",
		HeaderName:      "X-Antiforgery-Token",
		IdentityBinding: true,
		Token: TokenConfig{
			Format:        FormatBinary,
			SigningMethod: "hs256",
		},
		Redis: RedisConfig{
			KeyPrefix: "af",
			CookieTTL: 7 * 24 * time.Hour,
		},
	}
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.Key = cloneBytes(cfg.Token.Key)
	out.Token.PrivateKey = cloneBytes(cfg.Token.PrivateKey)
	out.Token.PublicKey = cloneBytes(cfg.Token.PublicKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	if c.Cookie.Name == "" {
		return errors.New("Cookie Name must not be empty")
	}
	if c.Cookie.MaxAge < 0 {
		return errors.New("Cookie MaxAge must be >= 0")
	}
	if c.FormFieldName == "" {
		return errors.New("FormFieldName must not be empty")
	}
	if !c.DisableHeaderSubmission && c.HeaderName == "" {
		return errors.New("HeaderName must not be empty unless DisableHeaderSubmission is set")
	}

	switch c.Token.Format {
	case FormatBinary, FormatJWT:
		// valid
	default:
		return errors.New("Token Format must be 'binary' or 'jwt'")
	}

	switch c.Token.SigningMethod {
	case "hs256":
		if len(c.Token.Key) == 0 {
			return errors.New("hs256 requires Token Key")
		}
	case "ed25519":
		if len(c.Token.PrivateKey) == 0 {
			return errors.New("ed25519 requires Token PrivateKey")
		}
		if len(c.Token.PublicKey) == 0 {
			return errors.New("ed25519 requires Token PublicKey")
		}
	default:
		return errors.New("unsupported token signing method")
	}

	if c.Redis.KeyPrefix == "" {
		return errors.New("Redis KeyPrefix must not be empty")
	}
	if c.Redis.CookieTTL <= 0 {
		return errors.New("Redis CookieTTL must be > 0")
	}

	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("Audit BufferSize must be >= 0")
	}

	return nil
}
