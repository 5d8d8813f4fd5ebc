// Package goAntiforgery implements Cross-Site Request Forgery protection
// using the double-submit-cookie / synchronizer-token pattern: a secret value
// is bound to a client via a cookie, and every state-changing request must
// echo a second, independently-issued token (form field or header) that can
// only be produced by a party who already holds the cookie secret.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goAntiforgery is the public surface. It exposes [Engine], [Builder],
// [Config], and value types (TokenSet, MetricsSnapshot, AuditEvent). The
// three collaborators the engine orchestrates — token generation, wire
// serialization, and transport storage — are capability interfaces
// ([TokenGenerator], [TokenSerializer], [TokenStore]) with default
// implementations under token/ and in this package; implementations are
// swapped by composition through the Builder, never by subclassing.
//
// # What this package must NOT do
//
//   - Expose Redis clients, serializer internals, or wire format details in
//     its public API.
//   - Hold cross-request mutable state: every operation is a pure function of
//     one inbound exchange.
//   - Authenticate users. Identity is an opaque input attached to the request
//     context with [WithIdentity]; the engine only binds tokens to it.
//
// # Performance contract
//
// ValidateRequest is the hot path. It performs no I/O beyond reading the
// incoming token strings from the transport and must not allocate beyond the
// deserialized token pair. Issuance paths are allowed one store write when a
// fresh cookie token is minted.
package goAntiforgery
