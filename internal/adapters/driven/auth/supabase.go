package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
)

// Ensure SupabaseVerifier implements TokenVerifier
var _ driven.TokenVerifier = (*SupabaseVerifier)(nil)

// supabaseClaims are the claims Supabase puts in its HS256 access tokens.
// The subject carries the user ID.
type supabaseClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// SupabaseVerifier validates Supabase-issued access tokens with the
// project's shared JWT secret. Token issuance happens on the platform;
// this service only verifies.
type SupabaseVerifier struct {
	secret []byte
}

// NewSupabaseVerifier creates a verifier for the given JWT secret
func NewSupabaseVerifier(jwtSecret string) *SupabaseVerifier {
	return &SupabaseVerifier{secret: []byte(jwtSecret)}
}

// Verify validates a token's signature and expiry and extracts its claims
func (v *SupabaseVerifier) Verify(tokenString string) (*driven.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &supabaseClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*supabaseClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", domain.ErrUnauthorized)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", domain.ErrUnauthorized)
	}

	return &driven.TokenClaims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
