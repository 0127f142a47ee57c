package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// JWTChecker validates HS256 bearer tokens whose subject is the user id.
type JWTChecker struct {
	secret []byte
}

func NewJWTChecker(secret string) *JWTChecker {
	return &JWTChecker{secret: []byte(secret)}
}

// CheckLogin reads the token from ctx. No token means anonymous; a bad token
// is anonymous plus an error describing why.
func (c *JWTChecker) CheckLogin(ctx context.Context) (Identity, error) {
	raw := TokenFromContext(ctx)
	if raw == "" {
		return Identity{}, nil
	}

	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return Identity{}, fmt.Errorf("token has no subject")
	}

	return Identity{LoggedIn: true, UserID: claims.Subject}, nil
}

// Sign issues a token for userID valid for ttl.
func Sign(secret, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.StandardClaims{
		Subject:   userID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
