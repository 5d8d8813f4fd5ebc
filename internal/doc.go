// Package internal holds cryptographic primitives shared by the antiforgery
// engine and its default collaborators: security token generation, wire-safe
// encoding, and exchange identifiers for the server-side cookie token store.
package internal
