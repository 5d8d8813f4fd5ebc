package test

import (
	"testing"

	goAntiforgery "github.com/MrEthical07/goAntiforgery"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func integrationConfig() goAntiforgery.Config {
	cfg := goAntiforgery.DefaultConfig()
	cfg.Token.Key = []byte("0123456789abcdef0123456789abcdef")
	cfg.Metrics.Enabled = true
	return cfg
}

func newIntegrationEngine(t *testing.T) *goAntiforgery.Engine {
	t.Helper()

	engine, err := goAntiforgery.New().WithConfig(integrationConfig()).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}

func newRedisIntegrationEngine(t *testing.T) *goAntiforgery.Engine {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})

	engine, err := goAntiforgery.New().WithConfig(integrationConfig()).WithRedis(rdb).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}
