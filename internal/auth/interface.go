package auth

import "archiva/internal/domain/models"

// TokenVerifier validates bearer tokens and returns the parsed claims. The
// middleware depends on this interface so tests can substitute a stub
// verifier.
type TokenVerifier interface {
	// VerifyToken validates a JWT and returns its claims. Returns an error
	// for invalid, expired or wrongly signed tokens.
	VerifyToken(tokenString string) (*models.AccessClaims, error)

	// Close releases resources held by the verifier.
	Close() error
}
