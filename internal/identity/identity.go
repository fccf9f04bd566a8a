package identity

import "context"

// Principal is an opaque, externally-verified caller identity. The engine
// never inspects its structure; it is only compared for equality and used
// as the owner/organizer reference on records.
type Principal string

// Anonymous is the zero principal; no verified caller.
const Anonymous Principal = ""

// IsAnonymous returns true if the principal carries no verified identity.
func (p Principal) IsAnonymous() bool {
	return p == Anonymous
}

func (p Principal) String() string {
	return string(p)
}

type contextKey string

const principalContextKey contextKey = "principal"

// WithPrincipal returns a context carrying the verified caller identity.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// FromContext extracts the verified caller identity from the context.
// Returns Anonymous when no identity was attached.
func FromContext(ctx context.Context) Principal {
	p, ok := ctx.Value(principalContextKey).(Principal)
	if !ok {
		return Anonymous
	}
	return p
}
