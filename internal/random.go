package internal

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
)

// SecurityTokenSize is the byte length of the random secret carried by every
// antiforgery token. 128 bits of entropy.
const SecurityTokenSize = 16

const exchangeIDRawSize = 16

// SecurityToken is the random secret component of an antiforgery token.
// A cookie token owns its own secret; a request token carries a copy of the
// secret of the cookie token it was derived from.
type SecurityToken [SecurityTokenSize]byte

func NewSecurityToken() (SecurityToken, error) {
	var st SecurityToken
	_, err := rand.Read(st[:])
	return st, err
}

func (s SecurityToken) Bytes() []byte {
	return s[:]
}

func (s SecurityToken) String() string {
	// base64url, no padding, compact
	return base64.RawURLEncoding.EncodeToString(s[:])
}

// Matches compares two security tokens in constant time.
func (s SecurityToken) Matches(other SecurityToken) bool {
	return subtle.ConstantTimeCompare(s[:], other[:]) == 1
}

func ParseSecurityToken(value string) (SecurityToken, error) {
	var st SecurityToken

	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return st, err
	}
	if len(raw) != len(st) {
		return st, errors.New("invalid security token size")
	}

	copy(st[:], raw)
	return st, nil
}

// NewExchangeID returns the opaque identifier written into the browser cookie
// by the Redis-backed token store. The serialized cookie token itself never
// leaves the server in that mode.
func NewExchangeID() (string, error) {
	var raw [exchangeIDRawSize]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw[:]), nil
}

// ValidExchangeID reports whether value decodes to an exchange identifier of
// the expected size. Anything else is treated as an absent cookie.
func ValidExchangeID(value string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return false
	}
	return len(raw) == exchangeIDRawSize
}
