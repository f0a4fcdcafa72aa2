package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims mirrors the access token minted by the magic-link auth
// provider. Only the subject (user id) and email matter here.
type JWTClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the token subject.
func (c *JWTClaims) UserID() string {
	return c.Subject
}
