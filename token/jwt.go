package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MrEthical07/goAntiforgery/internal"
)

// antiforgeryClaims is the JWT claim set for the "jwt" wire format. The
// security token travels in a private claim; the identity binding reuses the
// registered subject claim.
type antiforgeryClaims struct {
	Sec    string `json:"sec"`
	Cookie bool   `json:"cookie,omitempty"`
	jwt.RegisteredClaims
}

// JWTSerializer converts tokens to and from compact signed JWTs. It is an
// alternative to BinarySerializer for deployments that already inspect or
// route JWTs at the edge; the protocol semantics are identical.
type JWTSerializer struct {
	config    Config
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
	issuer    string
}

// NewJWTSerializer describes the newjwtserializer operation and its observable behavior.
//
// NewJWTSerializer may return an error when input validation, dependency calls, or security checks fail.
// NewJWTSerializer does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewJWTSerializer(cfg Config) (*JWTSerializer, error) {
	s := &JWTSerializer{config: cfg, issuer: "goAntiforgery"}

	switch cfg.SigningMethod {
	case MethodHS256:
		if len(cfg.Key) == 0 {
			return nil, errors.New("hs256 requires Key")
		}
		s.method = jwt.SigningMethodHS256
		secret := append([]byte(nil), cfg.Key...)
		s.signKey = secret
		s.verifyKey = secret
	case MethodEd25519:
		priv, err := parseEdPrivateKey(cfg.PrivateKey)
		if err != nil {
			return nil, err
		}
		pub, err := parseEdPublicKey(cfg.PublicKey)
		if err != nil {
			return nil, err
		}
		s.method = jwt.SigningMethodEdDSA
		s.signKey = priv
		s.verifyKey = pub
	default:
		return nil, errors.New("unsupported signing method")
	}

	return s, nil
}

// Serialize describes the serialize operation and its observable behavior.
//
// Serialize may return an error when input validation, dependency calls, or security checks fail.
// Serialize does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *JWTSerializer) Serialize(t *Token) (string, error) {
	if t == nil {
		return "", errors.New("token required")
	}
	if t.IsCookieToken && t.Username != "" {
		return "", errors.New("cookie tokens carry no identity binding")
	}

	claims := antiforgeryClaims{
		Sec:    t.SecurityToken.String(),
		Cookie: t.IsCookieToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  t.Username,
			Issuer:   s.issuer,
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	return jwt.NewWithClaims(s.method, claims).SignedString(s.signKey)
}

// Deserialize describes the deserialize operation and its observable behavior.
//
// Deserialize may return an error when input validation, dependency calls, or security checks fail.
// Deserialize does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *JWTSerializer) Deserialize(value string) (*Token, error) {
	claims := &antiforgeryClaims{}

	parsed, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.verifyKey, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}), jwt.WithIssuer(s.issuer))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	st, err := internal.ParseSecurityToken(claims.Sec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if claims.Cookie && claims.Subject != "" {
		return nil, ErrMalformed
	}

	return &Token{
		SecurityToken: st,
		IsCookieToken: claims.Cookie,
		Username:      claims.Subject,
	}, nil
}
