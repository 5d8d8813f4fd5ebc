package goAntiforgery

import (
	"errors"

	"github.com/redis/go-redis/v9"

	internalaudit "github.com/MrEthical07/goAntiforgery/internal/audit"
	"github.com/MrEthical07/goAntiforgery/token"
)

// Builder defines a public type used by goAntiforgery APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	generator  TokenGenerator
	serializer TokenSerializer
	store      TokenStore
	auditSink  AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithTokenGenerator describes the withtokengenerator operation and its observable behavior.
//
// WithTokenGenerator may return an error when input validation, dependency calls, or security checks fail.
// WithTokenGenerator does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithTokenGenerator(g TokenGenerator) *Builder {
	b.generator = g
	return b
}

// WithTokenSerializer describes the withtokenserializer operation and its observable behavior.
//
// WithTokenSerializer may return an error when input validation, dependency calls, or security checks fail.
// WithTokenSerializer does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithTokenSerializer(s TokenSerializer) *Builder {
	b.serializer = s
	return b
}

// WithTokenStore describes the withtokenstore operation and its observable behavior.
//
// WithTokenStore may return an error when input validation, dependency calls, or security checks fail.
// WithTokenStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithTokenStore(s TokenStore) *Builder {
	b.store = s
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	engine := &Engine{
		config: cloneConfig(cfg),
	}

	engine.generator = b.generator
	if engine.generator == nil {
		engine.generator = token.NewGenerator()
	}

	engine.serializer = b.serializer
	if engine.serializer == nil {
		s, err := newConfiguredSerializer(cfg.Token)
		if err != nil {
			return nil, err
		}
		engine.serializer = s
	}

	engine.store = b.store
	if engine.store == nil {
		if b.redis != nil {
			engine.store = newRedisTokenStore(b.redis, cfg)
		} else {
			engine.store = newHTTPTokenStore(cfg)
		}
	}

	engine.audit = internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	return engine, nil
}

func newConfiguredSerializer(cfg TokenConfig) (TokenSerializer, error) {
	tc := token.Config{
		SigningMethod: token.SigningMethod(cfg.SigningMethod),
		Key:           cloneBytes(cfg.Key),
		PrivateKey:    cloneBytes(cfg.PrivateKey),
		PublicKey:     cloneBytes(cfg.PublicKey),
	}

	switch cfg.Format {
	case FormatJWT:
		return token.NewJWTSerializer(tc)
	default:
		return token.NewBinarySerializer(tc)
	}
}
