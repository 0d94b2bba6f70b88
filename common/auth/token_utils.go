package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Token types carried in the "typ" claim.
const (
	TypeAccess = "access"
	TypeAdmin  = "admin"
)

var ErrSecretNotConfigured = errors.New("JWT secret not configured")

// TokenManager signs and parses HS256 tokens with a shared secret.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for subject. Each token gets a unique jti so two tokens
// issued in the same second never compare equal.
func (m *TokenManager) Issue(subject, role, tokenType string, ttl time.Duration) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, ErrSecretNotConfigured
	}
	issuedAt := m.now()
	expiresAt := issuedAt.Add(ttl)
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"typ":  tokenType,
		"jti":  uuid.NewString(),
		"iat":  issuedAt.Unix(),
		"exp":  expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseAndValidateToken parses a JWT token string and returns its claims.
// If expectedType is non-empty, the claim "typ" must match it.
func (m *TokenManager) ParseAndValidateToken(tokenStr, expectedType string) (jwt.MapClaims, error) {
	if len(m.secret) == 0 {
		return nil, ErrSecretNotConfigured
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	if expectedType != "" {
		if typ, ok := claims["typ"].(string); !ok || typ != expectedType {
			return nil, fmt.Errorf("invalid token type")
		}
	}
	return claims, nil
}
