package goAntiforgery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goAntiforgery/internal"
)

// ErrRedisUnavailable is an exported constant or variable used by the antiforgery engine.
var ErrRedisUnavailable = errors.New("redis unavailable")

// redisTokenStore keeps the serialized cookie token server-side. The browser
// cookie carries only an opaque exchange identifier, so the cookie secret
// never crosses the wire after issuance. Selected through [Builder.WithRedis].
type redisTokenStore struct {
	rdb           *redis.Client
	keyPrefix     string
	cookieTTL     time.Duration
	cookie        CookieConfig
	formFieldName string
	headerName    string
}

func newRedisTokenStore(rdb *redis.Client, cfg Config) *redisTokenStore {
	s := &redisTokenStore{
		rdb:           rdb,
		keyPrefix:     cfg.Redis.KeyPrefix,
		cookieTTL:     cfg.Redis.CookieTTL,
		cookie:        cfg.Cookie,
		formFieldName: cfg.FormFieldName,
	}
	if !cfg.DisableHeaderSubmission {
		s.headerName = cfg.HeaderName
	}
	return s
}

func (s *redisTokenStore) key(exchangeID string) string {
	return s.keyPrefix + ":cookie:" + exchangeID
}

func (s *redisTokenStore) GetCookieToken(r *http.Request) (string, error) {
	c, err := r.Cookie(s.cookie.Name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", nil
		}
		return "", err
	}
	if !internal.ValidExchangeID(c.Value) {
		// a garbage identifier is an absent token, not a lookup error
		return "", nil
	}

	serialized, err := s.rdb.Get(r.Context(), s.key(c.Value)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", errors.Join(ErrRedisUnavailable, err)
	}
	return serialized, nil
}

func (s *redisTokenStore) GetRequestToken(r *http.Request) (string, error) {
	return requestTokenFromRequest(r, s.headerName, s.formFieldName)
}

func (s *redisTokenStore) SaveCookieToken(ctx context.Context, w http.ResponseWriter, serialized string) error {
	exchangeID, err := internal.NewExchangeID()
	if err != nil {
		return err
	}

	if err := s.rdb.Set(ctx, s.key(exchangeID), serialized, s.cookieTTL).Err(); err != nil {
		return errors.Join(ErrRedisUnavailable, err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie.Name,
		Value:    exchangeID,
		Path:     s.cookie.Path,
		Domain:   s.cookie.Domain,
		MaxAge:   s.cookie.MaxAge,
		Secure:   s.cookie.Secure,
		HttpOnly: s.cookie.HTTPOnly,
		SameSite: s.cookie.SameSite,
	})
	return nil
}
