package goAntiforgery

import "time"

type SecurityReport struct {
	SigningAlgorithm        string
	TokenFormat             TokenFormat
	IdentityBinding         bool
	RequireSecureTransport  bool
	FrameOptionsHeader      bool
	CookieHTTPOnly          bool
	CookieSecure            bool
	CookieSameSite          string
	HeaderSubmissionEnabled bool
	ServerSideCookieStore   bool
	CookieTTL               time.Duration
	AuditEnabled            bool
	MetricsEnabled          bool
}

func (e *Engine) SecurityReport() SecurityReport {
	if e == nil {
		return SecurityReport{}
	}

	_, serverSide := e.store.(*redisTokenStore)

	return SecurityReport{
		SigningAlgorithm:        e.config.Token.SigningMethod,
		TokenFormat:             e.config.Token.Format,
		IdentityBinding:         e.config.IdentityBinding,
		RequireSecureTransport:  e.config.RequireSecureTransport,
		FrameOptionsHeader:      !e.config.SuppressXFrameOptionsHeader,
		CookieHTTPOnly:          e.config.Cookie.HTTPOnly,
		CookieSecure:            e.config.Cookie.Secure,
		CookieSameSite:          sameSiteName(e.config.Cookie.SameSite),
		HeaderSubmissionEnabled: !e.config.DisableHeaderSubmission,
		ServerSideCookieStore:   serverSide,
		CookieTTL:               e.config.Redis.CookieTTL,
		AuditEnabled:            e.config.Audit.Enabled,
		MetricsEnabled:          e.config.Metrics.Enabled,
	}
}
