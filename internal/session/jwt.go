package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SellerClaims are the JWT claims carried by a seller dashboard token.
type SellerClaims struct {
	SellerID string `json:"seller_id"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Manager issues and validates seller dashboard tokens. Tokens are the only
// session artifact after login; the OTP session is discarded once the
// attempt completes.
type Manager struct {
	secret []byte
	expiry time.Duration
}

// NewManager creates a manager with the given signing secret and token
// lifetime.
func NewManager(secret string, expiry time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Issue creates a signed token for a seller who completed the login flow.
func (m *Manager) Issue(sellerID, email string) (string, error) {
	now := time.Now().UTC()
	claims := &SellerClaims{
		SellerID: sellerID,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sellerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			Issuer:    "myfashion-storefront",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign seller token: %w", err)
	}
	return signed, nil
}

// Validate parses a token and returns its claims.
func (m *Manager) Validate(tokenString string) (*SellerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SellerClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse seller token: %w", err)
	}

	claims, ok := token.Claims.(*SellerClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid seller token claims")
	}
	return claims, nil
}
