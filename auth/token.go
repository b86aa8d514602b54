// Package auth owns the session token pair: the issuer signs RS256
// tokens carrying the subject user id, the guard verifies them from the
// request cookie and enforces the per-route access policy.
package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenInvalid = errors.New("invalid or expired token")

// Issuer creates and verifies signed session tokens. Signing uses the
// RSA private key, verification the public key, so collaborators that
// only verify never need signing material.
type Issuer struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	ttl        time.Duration
}

// NewIssuer builds an issuer from already-parsed key material.
func NewIssuer(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, ttl time.Duration) *Issuer {
	return &Issuer{privateKey: privateKey, publicKey: publicKey, ttl: ttl}
}

// NewIssuerFromFiles loads the PEM-encoded RSA key pair from disk.
// Missing or malformed key material is a startup-time failure; callers
// treat the returned error as fatal.
func NewIssuerFromFiles(privatePath, publicPath string, ttl time.Duration) (*Issuer, error) {
	privPEM, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, fmt.Errorf("reading private key: %w", err)
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}

	pubPEM, err := os.ReadFile(publicPath)
	if err != nil {
		return nil, fmt.Errorf("reading public key: %w", err)
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}

	return NewIssuer(privateKey, publicKey, ttl), nil
}

// Issue signs a token for the given user id. Only the identifier
// travels in the payload; no other identity attributes are embedded.
func (i *Issuer) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	})

	signed, err := token.SignedString(i.privateKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Verify checks signature and expiry and returns the subject user id.
// A failed verification is terminal for the request; there is no retry.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
