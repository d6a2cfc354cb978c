package authz

import (
	"context"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/blogapi/auth/jwt"
)

// Verifier validates a bearer credential and produces the verified identity.
// Any validation failure (malformed, expired, bad signature) returns an error;
// the pipeline maps every such error to an unauthenticated decision.
type Verifier interface {
	Verify(ctx context.Context, credential string) (Identity, error)
}

// Claims is the JWT payload issued at login and consumed at verification.
// The email travels in the token but is deliberately excluded from the
// Identity handed to downstream stages.
type Claims struct {
	gojwt.RegisteredClaims
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// SetDefaults applies the standard time claims before signing.
func (c *Claims) SetDefaults(now time.Time, ttl time.Duration, issuer string) {
	c.IssuedAt = gojwt.NewNumericDate(now)
	c.ExpiresAt = gojwt.NewNumericDate(now.Add(ttl))
	if issuer != "" {
		c.Issuer = issuer
	}
}

// TokenVerifier verifies JWT bearer credentials against the process-wide
// signing secret. Verification is pure: credential + secret + clock in,
// identity out. No I/O.
type TokenVerifier struct {
	tokens *jwt.Service[*Claims]
}

// NewTokenVerifier creates a TokenVerifier over the given token service.
func NewTokenVerifier(tokens *jwt.Service[*Claims]) *TokenVerifier {
	return &TokenVerifier{tokens: tokens}
}

// Verify implements Verifier.
func (v *TokenVerifier) Verify(_ context.Context, credential string) (Identity, error) {
	claims, err := v.tokens.Parse(credential)
	if err != nil {
		return Identity{}, err
	}
	role, ok := ParseRole(claims.Role)
	if !ok {
		return Identity{}, fmt.Errorf("authz: token carries unknown role %q", claims.Role)
	}
	return Identity{ID: claims.UserID, Role: role}, nil
}
