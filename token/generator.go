package token

import (
	"github.com/MrEthical07/goAntiforgery/internal"
)

// Generator mints antiforgery token pairs and validates that a presented
// (cookie, request) pair was issued together.
//
// Generator instances are stateless and safe for concurrent use.
type Generator struct{}

// NewGenerator describes the newgenerator operation and its observable behavior.
//
// NewGenerator does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateCookieToken mints a fresh cookie token with a new random security
// token. The result always passes IsCookieTokenValid.
func (g *Generator) GenerateCookieToken() (*Token, error) {
	st, err := internal.NewSecurityToken()
	if err != nil {
		return nil, err
	}
	return &Token{
		SecurityToken: st,
		IsCookieToken: true,
	}, nil
}

// IsCookieTokenValid reports whether t is structurally usable as a cookie
// token for the current exchange. A nil token is invalid, not an error; the
// engine reacts by minting a replacement.
func (g *Generator) IsCookieTokenValid(t *Token) bool {
	return t != nil && t.IsCookieToken
}

// GenerateRequestToken derives a request token bound to cookieToken and, when
// identity is non-empty, to the caller that was authenticated at derivation
// time. A later ValidateTokenSet with the same cookie token and identity
// succeeds.
func (g *Generator) GenerateRequestToken(identity string, cookieToken *Token) (*Token, error) {
	if !g.IsCookieTokenValid(cookieToken) {
		return nil, ErrNotCookieToken
	}
	return &Token{
		SecurityToken: cookieToken.SecurityToken,
		IsCookieToken: false,
		Username:      identity,
	}, nil
}

// ValidateTokenSet checks that requestToken was derived from cookieToken and
// that its identity binding, if any, matches the current caller. Failures
// short-circuit in order with a specific error: token kind, pair match,
// identity match.
func (g *Generator) ValidateTokenSet(identity string, cookieToken, requestToken *Token) error {
	if !g.IsCookieTokenValid(cookieToken) {
		return ErrNotCookieToken
	}
	if requestToken == nil || requestToken.IsCookieToken {
		return ErrNotRequestToken
	}

	if !cookieToken.SecurityToken.Matches(requestToken.SecurityToken) {
		return ErrMismatch
	}

	// Identity binding: a token minted for user A must never validate for
	// user B (or for an anonymous caller), and vice versa.
	if requestToken.Username != identity {
		return ErrIdentityMismatch
	}

	return nil
}
