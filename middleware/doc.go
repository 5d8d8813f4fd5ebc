// Package middleware exposes HTTP middleware adapters for cross-site request
// forgery protection built on top of goAntiforgery.Engine.
//
// # Guards
//
//   - [Protect] — issues tokens on safe methods, validates unsafe ones.
//   - [RequireValid] — validates every request regardless of method.
//   - [TokenHandler] — JSON endpoint handing tokens to script clients.
//
// Protect injects the issued token set into the request context so handlers
// can render the hidden form field via [TokensFromContext].
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement token logic itself — all decisions are delegated to the Engine.
//
// # What this package must NOT do
//
//   - Generate, serialize, or compare tokens directly (delegates to Engine).
//   - Access Redis (Engine handles I/O).
//   - Make validation decisions beyond pass/reject from Engine.ValidateRequest.
package middleware
