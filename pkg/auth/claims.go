package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenKind distinguishes the two JWT flavors the service mints.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// IsValid reports whether the kind is one of the minted flavors.
func (k TokenKind) IsValid() bool {
	return k == TokenKindAccess || k == TokenKindRefresh
}

// TokenPayload captures the data available when minting a JWT.
type TokenPayload struct {
	UserID string
	Kind   TokenKind
	JTI    string
}

// TokenClaims represents the typed JWT issued to clients. The user id rides
// in the registered subject claim; Kind separates access from refresh tokens.
type TokenClaims struct {
	Kind TokenKind `json:"token_kind"`
	jwt.RegisteredClaims
}

// UserID returns the subject of the token.
func (c *TokenClaims) UserID() string {
	return c.Subject
}
