package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims are the JWT claims the service trusts after verification.
// The subject claim is the user ID; role must be "authenticated".
type AccessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}
