package goAntiforgery

import (
	"context"
	"errors"
	"time"

	"github.com/MrEthical07/goAntiforgery/token"
)

const (
	auditEventTokensIssued             = "tokens_issued"
	auditEventCookieMinted             = "cookie_minted"
	auditEventCookiePersisted          = "cookie_persisted"
	auditEventCookieReadRecovered      = "cookie_read_recovered"
	auditEventValidationSuccess        = "validation_success"
	auditEventValidationFailure        = "validation_failure"
	auditEventSecureTransportViolation = "secure_transport_violation"
)

// AuditErrorCode defines a public type used by goAntiforgery APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrCookieMissing       AuditErrorCode = "cookie_token_missing"
	auditErrRequestTokenMissing AuditErrorCode = "request_token_missing"
	auditErrMalformedToken      AuditErrorCode = "malformed_token"
	auditErrTokenMismatch       AuditErrorCode = "token_mismatch"
	auditErrIdentityMismatch    AuditErrorCode = "identity_mismatch"
	auditErrInsecureTransport   AuditErrorCode = "insecure_transport"
	auditErrInternal            AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	identity string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Identity:  identity,
		IP:        clientIPFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrCookieTokenMissing):
		return auditErrCookieMissing
	case errors.Is(err, ErrFormFieldMissing),
		errors.Is(err, ErrHeaderMissing),
		errors.Is(err, ErrFieldOrHeaderMissing):
		return auditErrRequestTokenMissing
	case errors.Is(err, token.ErrMalformed):
		return auditErrMalformedToken
	case errors.Is(err, token.ErrIdentityMismatch):
		return auditErrIdentityMismatch
	case errors.Is(err, token.ErrMismatch),
		errors.Is(err, token.ErrNotCookieToken),
		errors.Is(err, token.ErrNotRequestToken):
		return auditErrTokenMismatch
	case errors.Is(err, ErrSecureTransportRequired):
		return auditErrInsecureTransport
	default:
		return auditErrInternal
	}
}
