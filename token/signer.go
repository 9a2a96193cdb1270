package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is an interface for signing and verifying JWT tokens
type Signer interface {
	// Sign creates a signed JWT token from claims
	Sign(claims jwt.Claims) (string, error)

	// GetVerificationKey is the jwt.Keyfunc used when parsing
	GetVerificationKey(token *jwt.Token) (any, error)

	// GetSigningMethod returns the JWT signing method used
	GetSigningMethod() jwt.SigningMethod
}

// HMACSigner signs session tokens with HS256 and the process-wide secret.
// No other algorithm is ever produced or accepted.
type HMACSigner struct {
	secret []byte
}

func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{
		secret: []byte(secret),
	}
}

// Sign produces a compact HS256 token for claims
func (h *HMACSigner) Sign(claims jwt.Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("[token HMACSigner Sign] %w", err)
	}
	return signed, nil
}

// GetVerificationKey hands the secret to the parser only for HS256 headers.
// HS384/HS512 tokens made with the same secret are refused too.
func (h *HMACSigner) GetVerificationKey(token *jwt.Token) (any, error) {
	if token.Method == nil || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("[token HMACSigner] unexpected signing method %v", token.Header["alg"])
	}
	return h.secret, nil
}

func (h *HMACSigner) GetSigningMethod() jwt.SigningMethod {
	return jwt.SigningMethodHS256
}
