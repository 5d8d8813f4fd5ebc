package goAntiforgery

import "context"

type identityContextKey struct{}
type clientIPContextKey struct{}

// WithIdentity attaches the authenticated caller's identity to ctx. When
// [Config.IdentityBinding] is enabled, request tokens are bound to this value
// at generation time and must see the same value at validation time.
// Authentication itself is out of scope; the engine treats the identity as
// an opaque string.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// WithClientIP attaches the caller's IP address to ctx. The engine only uses
// it to annotate audit events.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

func identityFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	identity, _ := ctx.Value(identityContextKey{}).(string)
	return identity
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}
