package auth

import "context"

type contextKey string

const identityKey contextKey = "auth_identity"

// Identity is the request-scoped authentication context. It is attached to
// the request context by the sign-in middleware and carried explicitly into
// handlers; nothing reads ambient session state.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// WithIdentity returns a context carrying the signed-in identity.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the signed-in identity, or nil when the request is
// unauthenticated.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}
