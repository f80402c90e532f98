// Package auth identifies callers and decides what they may do.
package auth

import "context"

// Principal is the caller behind a request.
type Principal struct {
	Subject       string
	Authenticated bool
	Staff         bool
	Superuser     bool
}

// Anonymous is the principal of requests without credentials.
var Anonymous = Principal{}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored in ctx, or Anonymous.
func FromContext(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalKey{}).(Principal); ok {
		return p
	}
	return Anonymous
}
