package token

import (
	"bytes"
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/MrEthical07/goAntiforgery/internal"
)

// SigningMethod defines a public type used by goAntiforgery APIs.
//
// SigningMethod instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SigningMethod string

const (
	// MethodHS256 is an exported constant or variable used by the antiforgery engine.
	MethodHS256 SigningMethod = "hs256"
	// MethodEd25519 is an exported constant or variable used by the antiforgery engine.
	MethodEd25519 SigningMethod = "ed25519"
)

// Config defines a public type used by goAntiforgery APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	SigningMethod SigningMethod
	Key           []byte // hs256 secret
	PrivateKey    []byte // ed25519 private key or seed
	PublicKey     []byte // ed25519 public key
}

const (
	wireFormatVersion = 1

	flagCookieToken byte = 1 << 0
	flagHasUsername byte = 1 << 1

	hmacTagSize    = sha256.Size
	ed25519TagSize = ed25519.SignatureSize

	maxUsernameLen = 255
)

// BinarySerializer converts tokens to and from the compact binary wire form:
// a version byte, a flags byte, the 16-byte security token, an optional
// length-prefixed username, and an integrity tag over the payload, all
// base64url-encoded without padding.
type BinarySerializer struct {
	config     Config
	signKey    ed25519.PrivateKey
	verifyKey  ed25519.PublicKey
	hmacSecret []byte
}

// NewBinarySerializer describes the newbinaryserializer operation and its observable behavior.
//
// NewBinarySerializer may return an error when input validation, dependency calls, or security checks fail.
// NewBinarySerializer does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewBinarySerializer(cfg Config) (*BinarySerializer, error) {
	s := &BinarySerializer{config: cfg}

	switch cfg.SigningMethod {
	case MethodHS256:
		if len(cfg.Key) == 0 {
			return nil, errors.New("hs256 requires Key")
		}
		s.hmacSecret = append([]byte(nil), cfg.Key...)
	case MethodEd25519:
		priv, err := parseEdPrivateKey(cfg.PrivateKey)
		if err != nil {
			return nil, err
		}
		pub, err := parseEdPublicKey(cfg.PublicKey)
		if err != nil {
			return nil, err
		}
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
func (s *BinarySerializer) Serialize(t *Token) (string, error) {
	if t == nil {
		return "", errors.New("token required")
	}
	if len(t.Username) > maxUsernameLen {
		return "", errors.New("username too long")
	}
	if t.IsCookieToken && t.Username != "" {
		return "", errors.New("cookie tokens carry no identity binding")
	}

	var buf bytes.Buffer
	buf.WriteByte(wireFormatVersion)

	var flags byte
	if t.IsCookieToken {
		flags |= flagCookieToken
	}
	if t.Username != "" {
		flags |= flagHasUsername
	}
	buf.WriteByte(flags)

	buf.Write(t.SecurityToken.Bytes())

	if t.Username != "" {
		buf.WriteByte(byte(len(t.Username)))
		buf.WriteString(t.Username)
	}

	payload := buf.Bytes()
	tag, err := s.sign(payload)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(append(payload, tag...)), nil
}

// Deserialize describes the deserialize operation and its observable behavior.
//
// Deserialize may return an error when input validation, dependency calls, or security checks fail.
// Deserialize does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *BinarySerializer) Deserialize(value string) (*Token, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	tagSize := s.tagSize()
	// version + flags + security token is the smallest possible payload
	minLen := 2 + internal.SecurityTokenSize + tagSize
	if len(raw) < minLen {
		return nil, ErrMalformed
	}

	payload := raw[:len(raw)-tagSize]
	tag := raw[len(raw)-tagSize:]
	if !s.verify(payload, tag) {
		return nil, ErrMalformed
	}

	if payload[0] != wireFormatVersion {
		return nil, ErrMalformed
	}
	flags := payload[1]
	if flags&^(flagCookieToken|flagHasUsername) != 0 {
		return nil, ErrMalformed
	}

	t := &Token{IsCookieToken: flags&flagCookieToken != 0}
	copy(t.SecurityToken[:], payload[2:2+internal.SecurityTokenSize])

	rest := payload[2+internal.SecurityTokenSize:]
	if flags&flagHasUsername != 0 {
		if t.IsCookieToken {
			return nil, ErrMalformed
		}
		if len(rest) < 1 {
			return nil, ErrMalformed
		}
		nameLen := int(rest[0])
		rest = rest[1:]
		if nameLen == 0 || len(rest) != nameLen {
			return nil, ErrMalformed
		}
		t.Username = string(rest)
	} else if len(rest) != 0 {
		return nil, ErrMalformed
	}

	return t, nil
}

func (s *BinarySerializer) tagSize() int {
	if s.config.SigningMethod == MethodEd25519 {
		return ed25519TagSize
	}
	return hmacTagSize
}

func (s *BinarySerializer) sign(payload []byte) ([]byte, error) {
	switch s.config.SigningMethod {
	case MethodHS256:
		mac := hmac.New(sha256.New, s.hmacSecret)
		mac.Write(payload)
		return mac.Sum(nil), nil
	case MethodEd25519:
		return ed25519.Sign(s.signKey, payload), nil
	default:
		return nil, errors.New("unsupported signing method")
	}
}

func (s *BinarySerializer) verify(payload, tag []byte) bool {
	switch s.config.SigningMethod {
	case MethodHS256:
		mac := hmac.New(sha256.New, s.hmacSecret)
		mac.Write(payload)
		return hmac.Equal(tag, mac.Sum(nil))
	case MethodEd25519:
		return ed25519.Verify(s.verifyKey, payload, tag)
	default:
		return false
	}
}

func parseEdPrivateKey(key []byte) (ed25519.PrivateKey, error) {
	switch len(key) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(key), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(append([]byte(nil), key...)), nil
	default:
		return nil, errors.New("ed25519 requires a 32-byte seed or 64-byte private key")
	}
}

func parseEdPublicKey(key []byte) (ed25519.PublicKey, error) {
	if len(key) != ed25519.PublicKeySize {
		return nil, errors.New("ed25519 requires a 32-byte public key")
	}
	return ed25519.PublicKey(append([]byte(nil), key...)), nil
}
