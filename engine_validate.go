package goAntiforgery

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"time"
)

// IsRequestValid is the non-throwing probe. It returns false, never an
// error, for every expected validation failure including corrupted token
// strings. The returned error is reserved for the caller-contract and
// configuration signals that indicate misuse rather than an attack.
//
// IsRequestValid does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) IsRequestValid(r *http.Request) (bool, error) {
	if e == nil {
		return false, ErrEngineNotReady
	}
	if r == nil {
		return false, ErrNilRequest
	}
	if err := e.checkSecureTransport(r); err != nil {
		return false, err
	}

	return e.validateRequest(r) == nil, nil
}

// ValidateRequest is the strict enforcement variant. It reads both tokens
// from the incoming exchange and returns a terminal failure carrying a
// specific diagnostic when either token is missing, malformed, or the pair
// does not validate.
//
// ValidateRequest may return an error when input validation, dependency calls, or security checks fail.
// ValidateRequest does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ValidateRequest(r *http.Request) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if r == nil {
		return ErrNilRequest
	}
	if err := e.checkSecureTransport(r); err != nil {
		return err
	}

	return e.validateRequest(r)
}

func (e *Engine) validateRequest(r *http.Request) error {
	start := time.Now()
	err := e.validateRequestTokens(r)
	if e.metrics.LatencyEnabled() {
		e.metrics.Observe(MetricValidateLatency, time.Since(start))
	}

	identity := e.boundIdentity(r)
	if err != nil {
		e.metricInc(MetricValidateFailure)
		e.emitAudit(r.Context(), auditEventValidationFailure, false, identity, err, nil)
		return err
	}

	e.metricInc(MetricValidateSuccess)
	e.emitAudit(r.Context(), auditEventValidationSuccess, true, identity, nil, nil)
	return nil
}

func (e *Engine) validateRequestTokens(r *http.Request) error {
	cookieRaw, err := e.store.GetCookieToken(r)
	if err != nil || cookieRaw == "" {
		// a failed transport read is treated as an absent token
		e.metricInc(MetricTokenMissing)
		return ErrCookieTokenMissing
	}

	requestRaw, err := e.store.GetRequestToken(r)
	if err != nil || requestRaw == "" {
		e.metricInc(MetricTokenMissing)
		return e.missingRequestTokenError(r)
	}

	return e.validateTokenStrings(r.Context(), cookieRaw, requestRaw)
}

// missingRequestTokenError selects the diagnostic matching the configured
// submission channels and the shape of the incoming request.
func (e *Engine) missingRequestTokenError(r *http.Request) error {
	if e.config.DisableHeaderSubmission {
		return ErrFormFieldMissing
	}
	if !isFormRequest(r) {
		return ErrHeaderMissing
	}
	return ErrFieldOrHeaderMissing
}

// ValidateTokens validates a caller-supplied pair without any store lookup.
// Empty strings are rejected as a caller contract violation, distinct from
// the protocol-failure path. Deserialization failures and generator
// rejections surface as protocol failures carrying the generator's
// diagnostic.
//
// ValidateTokens may return an error when input validation, dependency calls, or security checks fail.
// ValidateTokens does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ValidateTokens(ctx context.Context, cookieToken, requestToken string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if cookieToken == "" {
		return ErrEmptyCookieToken
	}
	if requestToken == "" {
		return ErrEmptyRequestToken
	}

	err := e.validateTokenStrings(ctx, cookieToken, requestToken)
	if err != nil {
		e.metricInc(MetricValidateFailure)
		e.emitAudit(ctx, auditEventValidationFailure, false, e.contextIdentity(ctx), err, nil)
		return err
	}

	e.metricInc(MetricValidateSuccess)
	e.emitAudit(ctx, auditEventValidationSuccess, true, e.contextIdentity(ctx), nil, nil)
	return nil
}

func (e *Engine) validateTokenStrings(ctx context.Context, cookieRaw, requestRaw string) error {
	cookieToken, err := e.serializer.Deserialize(cookieRaw)
	if err != nil {
		e.metricInc(MetricDeserializeFailure)
		return fmt.Errorf("deserialize cookie token: %w", err)
	}

	requestToken, err := e.serializer.Deserialize(requestRaw)
	if err != nil {
		e.metricInc(MetricDeserializeFailure)
		return fmt.Errorf("deserialize request token: %w", err)
	}

	if err := e.generator.ValidateTokenSet(e.contextIdentity(ctx), cookieToken, requestToken); err != nil {
		if auditErrorCode(err) == auditErrIdentityMismatch {
			e.metricInc(MetricIdentityMismatch)
		}
		return err
	}

	return nil
}

func (e *Engine) contextIdentity(ctx context.Context) string {
	if !e.config.IdentityBinding {
		return ""
	}
	return identityFromContext(ctx)
}

func isFormRequest(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		return true
	default:
		return false
	}
}
