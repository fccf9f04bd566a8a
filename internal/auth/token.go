package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"ticketpass/internal/identity"
)

// The engine trusts whatever principal the token layer hands it; this
// package is the boundary where "verified caller identity" gets
// established. Token mechanics never leak past it.

var (
	ErrInvalidToken = errors.New("invalid identity token")
	ErrExpiredToken = errors.New("expired identity token")
)

// IssueToken mints a signed bearer token for the given principal.
func IssueToken(secret []byte, principal identity.Principal, ttl time.Duration) (string, error) {
	if principal.IsAnonymous() {
		return "", errors.New("cannot issue token for anonymous principal")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": principal.String(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign identity token: %w", err)
	}

	return signed, nil
}

// VerifyToken checks the token signature and expiry and returns the
// principal it was issued for.
func VerifyToken(secret []byte, tokenString string) (identity.Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		validationErr := &jwt.ValidationError{}
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return identity.Anonymous, ErrExpiredToken
		}
		return identity.Anonymous, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return identity.Anonymous, ErrInvalidToken
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return identity.Anonymous, ErrInvalidToken
	}

	return identity.Principal(subject), nil
}
