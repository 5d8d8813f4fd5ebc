package goAntiforgery

import "net/http"

// LintWarning defines a public type used by goAntiforgery APIs.
//
// LintWarning instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LintWarning struct {
	Code    string
	Message string
}

// LintWarnings defines a public type used by goAntiforgery APIs.
//
// LintWarnings instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LintWarnings []LintWarning

// Codes describes the codes operation and its observable behavior.
//
// Codes does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (ws LintWarnings) Codes() []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Code)
	}
	return out
}

// Lint reports configuration choices that validate but weaken the protection
// in production. It never mutates the config and never fails; operators
// decide what to do with each warning.
//
// Lint may return an error when input validation, dependency calls, or security checks fail.
// Lint does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Lint() LintWarnings {
	var ws LintWarnings

	warn := func(code, message string) {
		ws = append(ws, LintWarning{Code: code, Message: message})
	}

	if !c.Cookie.HTTPOnly {
		warn("cookie_not_httponly", "antiforgery cookie is readable by script; set Cookie.HTTPOnly")
	}
	if !c.Cookie.Secure {
		warn("cookie_not_secure", "antiforgery cookie may travel over plaintext; set Cookie.Secure for production")
	}
	if c.Cookie.SameSite == http.SameSiteNoneMode {
		warn("cookie_samesite_none", "SameSite=None disables the browser's own cross-site cookie defense")
	}
	if !c.RequireSecureTransport {
		warn("secure_transport_off", "RequireSecureTransport is disabled; insecure exchanges are accepted")
	}
	if c.SuppressXFrameOptionsHeader {
		warn("frame_options_suppressed", "X-Frame-Options header is suppressed; clickjacking defense is off")
	}
	if !c.IdentityBinding {
		warn("identity_binding_off", "tokens are not bound to the authenticated identity")
	}
	if c.Token.SigningMethod == "hs256" && len(c.Token.Key) > 0 && len(c.Token.Key) < 32 {
		warn("hs256_short_key", "hs256 key is shorter than 32 bytes")
	}
	if !c.Audit.Enabled {
		warn("audit_disabled", "audit trail is disabled; validation failures leave no trace")
	}

	return ws
}

// HighSecurityConfig returns a preset suitable for production deployments
// behind TLS. Callers still provide signing key material.
//
// HighSecurityConfig may return an error when input validation, dependency calls, or security checks fail.
// HighSecurityConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func HighSecurityConfig() Config {
	cfg := defaultConfig()
	cfg.Cookie.Secure = true
	cfg.Cookie.SameSite = http.SameSiteStrictMode
	cfg.RequireSecureTransport = true
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 256
	cfg.Audit.DropIfFull = true
	return cfg
}

func sameSiteName(s http.SameSite) string {
	switch s {
	case http.SameSiteLaxMode:
		return "Lax"
	case http.SameSiteStrictMode:
		return "Strict"
	case http.SameSiteNoneMode:
		return "None"
	default:
		return "Default"
	}
}
