// Package token provides the default antiforgery token collaborators: the
// random pair generator, the binary serializer with an HMAC-SHA256 or Ed25519
// integrity tag, and an alternative JWT wire format built on golang-jwt.
//
// The engine consumes these through the goAntiforgery.TokenGenerator and
// goAntiforgery.TokenSerializer interfaces; custom implementations can be
// swapped in through the Builder without touching this package.
//
// # Failure contract
//
// Deserialize rejects anything that is not a well-formed, integrity-checked
// serialized token with an error matching [ErrMalformed]. Pair validation
// failures use the distinct [ErrMismatch] and [ErrIdentityMismatch] values so
// callers can tell "could not parse" apart from "parsed but invalid".
package token
