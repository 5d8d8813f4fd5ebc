package goAntiforgery

import (
	"net/http"

	"github.com/MrEthical07/goAntiforgery/token"
)

// issuedTokens is the per-exchange result of the "compute current cookie
// token" step. It is owned exclusively by the issuing call and never retained.
type issuedTokens struct {
	cookieToken      *token.Token
	requestToken     *token.Token
	isNewCookieToken bool
}

// GetAndStoreTokens issues a token pair for the exchange and persists the
// cookie token when a fresh one was minted. The protective X-Frame-Options
// header is applied on every call unless suppressed by configuration.
// Reusing a valid existing cookie token never rewrites the response cookie.
//
// GetAndStoreTokens may return an error when input validation, dependency calls, or security checks fail.
// GetAndStoreTokens does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) GetAndStoreTokens(w http.ResponseWriter, r *http.Request) (TokenSet, error) {
	if e == nil {
		return TokenSet{}, ErrEngineNotReady
	}
	if r == nil {
		return TokenSet{}, ErrNilRequest
	}
	if w == nil {
		return TokenSet{}, ErrNilResponse
	}
	if err := e.checkSecureTransport(r); err != nil {
		return TokenSet{}, err
	}

	issued, err := e.tokensToIssue(r, true)
	if err != nil {
		return TokenSet{}, err
	}

	set, err := e.serializeTokenSet(issued)
	if err != nil {
		return TokenSet{}, err
	}

	if issued.isNewCookieToken {
		if err := e.store.SaveCookieToken(r.Context(), w, set.CookieToken); err != nil {
			return TokenSet{}, err
		}
		e.metricInc(MetricCookiePersisted)
		e.emitAudit(r.Context(), auditEventCookiePersisted, true, e.boundIdentity(r), nil, nil)
	}

	e.applyFrameOptionsHeader(w)

	e.metricInc(MetricTokensIssued)
	e.emitAudit(r.Context(), auditEventTokensIssued, true, e.boundIdentity(r), nil, func() map[string]string {
		return map[string]string{
			"new_cookie_token": boolString(issued.isNewCookieToken),
		}
	})

	return set, nil
}

// GetTokens computes the same token pair as GetAndStoreTokens but never
// persists anything and never mutates the response. Callers use it when the
// pair travels through another channel, such as embedding both strings in a
// rendered page.
//
// GetTokens may return an error when input validation, dependency calls, or security checks fail.
// GetTokens does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) GetTokens(r *http.Request) (TokenSet, error) {
	if e == nil {
		return TokenSet{}, ErrEngineNotReady
	}
	if r == nil {
		return TokenSet{}, ErrNilRequest
	}
	if err := e.checkSecureTransport(r); err != nil {
		return TokenSet{}, err
	}

	issued, err := e.tokensToIssue(r, true)
	if err != nil {
		return TokenSet{}, err
	}

	set, err := e.serializeTokenSet(issued)
	if err != nil {
		return TokenSet{}, err
	}

	e.metricInc(MetricTokensIssued)
	return set, nil
}

// SetCookieTokenAndHeader ensures a valid cookie token exists for the
// exchange and annotates the response exactly as GetAndStoreTokens does,
// without producing a request token. Used to pre-seed a session before any
// form exists.
//
// SetCookieTokenAndHeader may return an error when input validation, dependency calls, or security checks fail.
// SetCookieTokenAndHeader does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SetCookieTokenAndHeader(w http.ResponseWriter, r *http.Request) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if r == nil {
		return ErrNilRequest
	}
	if w == nil {
		return ErrNilResponse
	}
	if err := e.checkSecureTransport(r); err != nil {
		return err
	}

	issued, err := e.tokensToIssue(r, false)
	if err != nil {
		return err
	}

	if issued.isNewCookieToken {
		serialized, err := e.serializer.Serialize(issued.cookieToken)
		if err != nil {
			return err
		}
		if err := e.store.SaveCookieToken(r.Context(), w, serialized); err != nil {
			return err
		}
		e.metricInc(MetricCookiePersisted)
		e.emitAudit(r.Context(), auditEventCookiePersisted, true, e.boundIdentity(r), nil, nil)
	}

	e.applyFrameOptionsHeader(w)
	return nil
}

// tokensToIssue computes the current valid cookie token for the exchange,
// reusing the caller's existing cookie token if and only if it passes
// structural validation, and minting a new one otherwise. Every failure to
// read or deserialize the existing cookie is deliberately treated as "no
// token present": a broken cookie must never prevent recovery by reminting.
func (e *Engine) tokensToIssue(r *http.Request, withRequestToken bool) (issuedTokens, error) {
	var cookieToken *token.Token

	raw, err := e.store.GetCookieToken(r)
	switch {
	case err != nil:
		// unreadable cookie treated as absent; remint below
		e.metricInc(MetricCookieReadRecovered)
		e.emitAudit(r.Context(), auditEventCookieReadRecovered, true, "", nil, nil)
	case raw != "":
		t, derr := e.serializer.Deserialize(raw)
		if derr != nil {
			e.metricInc(MetricCookieReadRecovered)
			e.emitAudit(r.Context(), auditEventCookieReadRecovered, true, "", nil, nil)
		} else {
			cookieToken = t
		}
	}

	issued := issuedTokens{cookieToken: cookieToken}

	if !e.generator.IsCookieTokenValid(issued.cookieToken) {
		minted, err := e.generator.GenerateCookieToken()
		if err != nil {
			return issuedTokens{}, err
		}
		issued.cookieToken = minted
		issued.isNewCookieToken = true
		e.metricInc(MetricCookieMinted)
		e.emitAudit(r.Context(), auditEventCookieMinted, true, "", nil, nil)
	} else {
		e.metricInc(MetricCookieReused)
	}

	if withRequestToken {
		requestToken, err := e.generator.GenerateRequestToken(e.boundIdentity(r), issued.cookieToken)
		if err != nil {
			return issuedTokens{}, err
		}
		issued.requestToken = requestToken
	}

	return issued, nil
}

func (e *Engine) serializeTokenSet(issued issuedTokens) (TokenSet, error) {
	cookieString, err := e.serializer.Serialize(issued.cookieToken)
	if err != nil {
		return TokenSet{}, err
	}
	requestString, err := e.serializer.Serialize(issued.requestToken)
	if err != nil {
		return TokenSet{}, err
	}

	set := TokenSet{
		RequestToken:  requestString,
		CookieToken:   cookieString,
		FormFieldName: e.config.FormFieldName,
	}
	if !e.config.DisableHeaderSubmission {
		set.HeaderName = e.config.HeaderName
	}
	return set, nil
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
