package authz

import "context"

// Role is a user's access level.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole maps a role string from an external source (token claim, database
// column) to a Role. Unknown values are rejected rather than defaulted.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser:
		return RoleUser, true
	default:
		return "", false
	}
}

// Identity is the verified subject of a request. It is produced fresh per
// request by a Verifier and carries only what downstream authorization needs:
// the user id and role. It is never persisted.
type Identity struct {
	ID   int64
	Role Role
}

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var identityKey = contextKey{}

// ContextWithIdentity stores the verified identity in the context.
// Called by the authorization middleware once a request is allowed.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom retrieves the verified identity from the context.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// MustIdentity retrieves the verified identity from the context.
// Panics if absent. Use in handlers that sit behind the authorization
// middleware, where the identity is guaranteed to be present.
func MustIdentity(ctx context.Context) Identity {
	id, ok := IdentityFrom(ctx)
	if !ok {
		panic("authz: identity not found in context")
	}
	return id
}
