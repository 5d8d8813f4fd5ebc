// Package audit defines the audit event model, sink implementations, and the
// asynchronous dispatcher used by the antiforgery engine. Events are emitted
// off the request path through a buffered channel; the dispatcher never blocks
// token issuance or validation when DropIfFull is set.
package audit
