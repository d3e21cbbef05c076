package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-care-tracker/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrNotConfigured = errors.New("jwt verifier not configured")
)

// Verifier implementa auth.AuthVerifier validando tokens HS256 firmados con
// un secreto compartido. El emisor del token vive fuera de este backend; acá
// solo se resuelve la identidad.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, errors.New("invalid token claims")
	}

	sub, _ := mapClaims.GetSubject()
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return auth.Claims{}, errors.New("token missing subject")
	}

	claims := auth.Claims{UserID: sub}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = strings.TrimSpace(email)
	}

	return claims, nil
}
