package middleware

import (
	"context"
	"net/http"

	goAntiforgery "github.com/MrEthical07/goAntiforgery"
)

type tokenSetContextKey struct{}

// TokensFromContext describes the tokensfromcontext operation and its observable behavior.
//
// TokensFromContext does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func TokensFromContext(ctx context.Context) (goAntiforgery.TokenSet, bool) {
	ts, ok := ctx.Value(tokenSetContextKey{}).(goAntiforgery.TokenSet)
	return ts, ok
}

// Protect describes the protect operation and its observable behavior.
//
// Protect may return an error when input validation, dependency calls, or security checks fail.
// Protect does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func Protect(engine *goAntiforgery.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			if isSafeMethod(r.Method) {
				ts, err := engine.GetAndStoreTokens(w, r)
				if err != nil {
					http.Error(w, "forbidden", http.StatusForbidden)
					return
				}

				ctx := context.WithValue(r.Context(), tokenSetContextKey{}, ts)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if err := engine.ValidateRequest(r); err != nil {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireValid describes the requirevalid operation and its observable behavior.
//
// RequireValid may return an error when input validation, dependency calls, or security checks fail.
// RequireValid does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func RequireValid(engine *goAntiforgery.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			if err := engine.ValidateRequest(r); err != nil {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RFC 9110 safe methods. TRACE is included for completeness even though most
// servers reject it outright.
func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
