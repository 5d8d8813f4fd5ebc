package goAntiforgery

import "errors"

var (
	// ErrEngineNotReady is an exported constant or variable used by the antiforgery engine.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrNilRequest signals a caller contract violation: every request-scoped
	// operation needs a non-nil *http.Request.
	ErrNilRequest = errors.New("http request required")
	// ErrNilResponse signals a caller contract violation: persisting
	// operations need a non-nil http.ResponseWriter.
	ErrNilResponse = errors.New("http response writer required")
	// ErrEmptyCookieToken signals a caller contract violation in ValidateTokens.
	ErrEmptyCookieToken = errors.New("cookie token must not be empty")
	// ErrEmptyRequestToken signals a caller contract violation in ValidateTokens.
	ErrEmptyRequestToken = errors.New("request token must not be empty")

	// ErrSecureTransportRequired is a configuration error, not a validation
	// failure: RequireSecureTransport is enabled but the exchange arrived
	// over an insecure transport. It is never silently downgraded.
	ErrSecureTransportRequired = errors.New("RequireSecureTransport is enabled but the request is not secure")

	// ErrCookieTokenMissing is an exported constant or variable used by the antiforgery engine.
	ErrCookieTokenMissing = errors.New("the antiforgery cookie token is missing")
	// ErrFormFieldMissing is returned when header submission is disabled and
	// the configured form field was not present.
	ErrFormFieldMissing = errors.New("the antiforgery form field is missing")
	// ErrHeaderMissing is returned for non-form requests when the configured
	// header was not present.
	ErrHeaderMissing = errors.New("the antiforgery header is missing")
	// ErrFieldOrHeaderMissing is returned for form requests when neither the
	// configured form field nor the configured header was present.
	ErrFieldOrHeaderMissing = errors.New("the antiforgery form field or header is missing")
)
