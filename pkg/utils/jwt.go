package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// VisitorTokens signs and validates the anonymous visitor cookie.
type VisitorTokens struct {
	secret []byte
	expiry time.Duration
}

func NewVisitorTokens(secret string, expiry time.Duration) *VisitorTokens {
	return &VisitorTokens{secret: []byte(secret), expiry: expiry}
}

// Issue mints a token for the given visitor ID.
func (t *VisitorTokens) Issue(visitorID string) (string, error) {
	if len(t.secret) == 0 {
		return "", fmt.Errorf("visitor secret not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": visitorID,
		"typ": "visitor",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(t.expiry).Unix(),
	})

	return token.SignedString(t.secret)
}

// Validate returns the visitor ID carried by a valid token.
func (t *VisitorTokens) Validate(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if typ, _ := claims["typ"].(string); typ != "visitor" {
		return "", fmt.Errorf("invalid token type")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}

func GenerateUUID() string {
	return uuid.NewString()
}
