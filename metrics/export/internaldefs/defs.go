package internaldefs

import (
	goAntiforgery "github.com/MrEthical07/goAntiforgery"
)

// CounterDef defines a public type used by goAntiforgery APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goAntiforgery.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goAntiforgery APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goAntiforgery.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the antiforgery engine.
var CounterDefs = []CounterDef{
	{ID: goAntiforgery.MetricTokensIssued, Name: "goantiforgery_tokens_issued_total", Help: "Token sets issued to callers."},
	{ID: goAntiforgery.MetricCookieMinted, Name: "goantiforgery_cookie_minted_total", Help: "Newly minted cookie tokens."},
	{ID: goAntiforgery.MetricCookieReused, Name: "goantiforgery_cookie_reused_total", Help: "Issuances that reused a valid incoming cookie token."},
	{ID: goAntiforgery.MetricCookiePersisted, Name: "goantiforgery_cookie_persisted_total", Help: "Cookie tokens written to the response store."},
	{ID: goAntiforgery.MetricCookieReadRecovered, Name: "goantiforgery_cookie_read_recovered_total", Help: "Cookie read or parse failures recovered by minting a fresh token."},
	{ID: goAntiforgery.MetricValidateSuccess, Name: "goantiforgery_validate_success_total", Help: "Successful request validations."},
	{ID: goAntiforgery.MetricValidateFailure, Name: "goantiforgery_validate_failure_total", Help: "Failed request validations."},
	{ID: goAntiforgery.MetricTokenMissing, Name: "goantiforgery_token_missing_total", Help: "Validations rejected because a token was absent."},
	{ID: goAntiforgery.MetricDeserializeFailure, Name: "goantiforgery_deserialize_failure_total", Help: "Tokens rejected as malformed or badly signed."},
	{ID: goAntiforgery.MetricIdentityMismatch, Name: "goantiforgery_identity_mismatch_total", Help: "Tokens rejected for belonging to a different identity."},
	{ID: goAntiforgery.MetricSecureTransportViolation, Name: "goantiforgery_secure_transport_violation_total", Help: "Requests rejected by the secure transport requirement."},
}

// HistogramDefs is an exported constant or variable used by the antiforgery engine.
var HistogramDefs = []HistogramDef{
	{ID: goAntiforgery.MetricValidateLatency, Name: "goantiforgery_validate_latency_seconds", Help: "Validate latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the antiforgery engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the antiforgery engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
