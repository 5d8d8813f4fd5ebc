package middleware

import (
	"encoding/json"
	"net/http"

	goAntiforgery "github.com/MrEthical07/goAntiforgery"
)

type tokenResponse struct {
	RequestToken  string `json:"requestToken"`
	FormFieldName string `json:"formFieldName"`
	HeaderName    string `json:"headerName,omitempty"`
}

// TokenHandler describes the tokenhandler operation and its observable behavior.
//
// TokenHandler may return an error when input validation, dependency calls, or security checks fail.
// TokenHandler does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func TokenHandler(engine *goAntiforgery.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		if !isSafeMethod(r.Method) {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ts, err := engine.GetAndStoreTokens(w, r)
		if err != nil {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		// the cookie token travels in Set-Cookie only, never in the body
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tokenResponse{
			RequestToken:  ts.RequestToken,
			FormFieldName: ts.FormFieldName,
			HeaderName:    ts.HeaderName,
		})
	})
}
