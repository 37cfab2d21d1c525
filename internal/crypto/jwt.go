package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carries the identity claims embedded in an access token. Subject is
// the account email; AccountID is present on login tokens only.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"id,omitempty"`
}

// TokenIssuer signs and validates bearer tokens. Secret, algorithm and
// expiry are fixed at construction and never change per call.
type TokenIssuer struct {
	secret []byte
	method jwt.SigningMethod
	expiry time.Duration
}

// NewTokenIssuer creates a TokenIssuer for the given symmetric secret and
// signing algorithm name (e.g. "HS256"). Only HMAC algorithms are accepted.
func NewTokenIssuer(secret, algorithm string, expiry time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}

	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q does not use a symmetric secret", algorithm)
	}

	return &TokenIssuer{
		secret: []byte(secret),
		method: method,
		expiry: expiry,
	}, nil
}

// Issue creates a signed token with the account email as subject and the
// configured expiry. An empty accountID is omitted from the claims.
func (i *TokenIssuer) Issue(email, accountID string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		AccountID: accountID,
	}

	return jwt.NewWithClaims(i.method, claims).SignedString(i.secret)
}

// Validate parses and verifies a token string, returning the claims if
// valid. Only the configured algorithm is accepted. Bad signatures, wrong
// algorithms, expired and malformed tokens all collapse to ErrInvalidToken.
func (i *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{i.method.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
