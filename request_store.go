package goAntiforgery

import (
	"context"
	"errors"
	"net/http"
)

// httpTokenStore is the default TokenStore: the cookie token travels in the
// cookie jar and the request token arrives through the configured header or
// form field. It holds no state beyond the immutable configuration.
type httpTokenStore struct {
	cookie        CookieConfig
	formFieldName string
	headerName    string // empty when header submission is disabled
}

func newHTTPTokenStore(cfg Config) *httpTokenStore {
	s := &httpTokenStore{
		cookie:        cfg.Cookie,
		formFieldName: cfg.FormFieldName,
	}
	if !cfg.DisableHeaderSubmission {
		s.headerName = cfg.HeaderName
	}
	return s
}

func (s *httpTokenStore) GetCookieToken(r *http.Request) (string, error) {
	c, err := r.Cookie(s.cookie.Name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", nil
		}
		return "", err
	}
	return c.Value, nil
}

func (s *httpTokenStore) GetRequestToken(r *http.Request) (string, error) {
	return requestTokenFromRequest(r, s.headerName, s.formFieldName)
}

func (s *httpTokenStore) SaveCookieToken(_ context.Context, w http.ResponseWriter, serialized string) error {
	http.SetCookie(w, s.buildCookie(serialized))
	return nil
}

func (s *httpTokenStore) buildCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookie.Name,
		Value:    value,
		Path:     s.cookie.Path,
		Domain:   s.cookie.Domain,
		MaxAge:   s.cookie.MaxAge,
		Secure:   s.cookie.Secure,
		HttpOnly: s.cookie.HTTPOnly,
		SameSite: s.cookie.SameSite,
	}
}

// requestTokenFromRequest reads the request token from its transport
// locations. The header wins when both are present; the form body is only
// parsed for form-encoded requests. Absence is ("", nil), never an error.
func requestTokenFromRequest(r *http.Request, headerName, formFieldName string) (string, error) {
	if headerName != "" {
		if v := r.Header.Get(headerName); v != "" {
			return v, nil
		}
	}

	if !isFormRequest(r) {
		return "", nil
	}
	// PostFormValue parses urlencoded and multipart bodies on first use.
	return r.PostFormValue(formFieldName), nil
}
