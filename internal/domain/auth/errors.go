package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("missing or invalid token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrMalformedToken     = errors.New("token is missing required claims")
	// ErrPrincipalMismatch means the token no longer matches the stored user:
	// the role changed or the user was removed after the token was issued.
	ErrPrincipalMismatch = errors.New("token does not match current user state")
)
