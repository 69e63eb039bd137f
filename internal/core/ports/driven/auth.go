package driven

// TokenClaims are the verified claims of a platform access token
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
}

// TokenVerifier validates access tokens issued by the identity provider.
// Token issuance itself is external; this service only verifies signatures
// and expiry. Invalid or expired tokens yield an error wrapping
// domain.ErrUnauthorized.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}
