package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// UnverifiedClaims are fields read out of an identity token without
// checking its signature. The type name is the warning: nothing here
// is trusted until the backend has re-validated the token.
type UnverifiedClaims struct {
	Email   string
	Name    string
	Subject string
	Picture string
}

// DecodeIdentityToken unpacks the payload segment of a compact
// identity token. Email and name are required; anything less fails
// before a network call is made.
func DecodeIdentityToken(raw string) (UnverifiedClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return UnverifiedClaims{}, fmt.Errorf("malformed identity token: %w", err)
	}

	out := UnverifiedClaims{
		Email:   stringClaim(claims, "email"),
		Name:    stringClaim(claims, "name"),
		Subject: stringClaim(claims, "sub"),
		Picture: stringClaim(claims, "picture"),
	}

	if out.Email == "" || out.Name == "" {
		return UnverifiedClaims{}, errors.New("incomplete profile information in identity token")
	}
	return out, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
