package token

import (
	"errors"

	"github.com/MrEthical07/goAntiforgery/internal"
)

var (
	// ErrMalformed is returned by serializers for any input that is not a
	// well-formed serialized token. It is distinct from validation failures.
	ErrMalformed = errors.New("malformed antiforgery token")
	// ErrNotCookieToken is returned when a cookie token slot holds a token
	// that is absent or not a valid cookie token.
	ErrNotCookieToken = errors.New("antiforgery token is not a valid cookie token")
	// ErrNotRequestToken is returned when a request token slot holds a token
	// that is absent or not a valid request token.
	ErrNotRequestToken = errors.New("antiforgery token is not a valid request token")
	// ErrMismatch is returned when a request token was not derived from the
	// presented cookie token.
	ErrMismatch = errors.New("antiforgery cookie token and request token do not match")
	// ErrIdentityMismatch is returned when a request token was bound to a
	// different authenticated identity than the current caller.
	ErrIdentityMismatch = errors.New("antiforgery token was issued to a different user")
)

// Token is the single in-memory representation shared by both token flavors.
// A cookie token carries its own random security token; a request token
// carries a copy of its paired cookie token's security token plus the
// identity, if any, that was authenticated at derivation time.
type Token struct {
	SecurityToken internal.SecurityToken
	IsCookieToken bool
	Username      string
}
