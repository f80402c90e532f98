package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidToken is returned for malformed, expired or wrongly signed tokens.
var ErrInvalidToken = errors.New("invalid bearer token")

// Claims is the JWT payload carrying a caller's role flags.
type Claims struct {
	Staff     bool `json:"is_staff"`
	Superuser bool `json:"is_superuser"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenManager returns a manager using secret as the HMAC key.
func NewTokenManager(secret, issuer string) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

// Issue signs a token for subject valid for ttl.
func (m *TokenManager) Issue(subject string, staff, superuser bool, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		Staff:     staff,
		Superuser: superuser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses token and returns the principal it identifies.
func (m *TokenManager) Verify(token string) (Principal, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Anonymous, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.ExpiresAt == nil {
		return Anonymous, fmt.Errorf("%w: missing expiry", ErrInvalidToken)
	}
	if m.issuer != "" && !claims.VerifyIssuer(m.issuer, true) {
		return Anonymous, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, claims.Issuer)
	}
	if claims.Subject == "" {
		return Anonymous, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return Principal{
		Subject:       claims.Subject,
		Authenticated: true,
		Staff:         claims.Staff,
		Superuser:     claims.Superuser,
	}, nil
}
