package reportengine

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every token rejection: bad signature, wrong algorithm,
// missing subject or a subject other than the admin.
var ErrInvalidToken = errors.New("invalid token")

// accessClaims is the token payload. exp_seconds records the configured
// lifetime as plain data; no registered "exp" claim is written, so tokens are
// not expiry-checked.
type accessClaims struct {
	TTLSeconds float64 `json:"exp_seconds"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 access tokens for the admin identity.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	admin  *AdminIdentity
}

// NewTokenIssuer creates a TokenIssuer signing with secret.
func NewTokenIssuer(secret string, ttl time.Duration, admin *AdminIdentity) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, admin: admin}
}

// Issue returns a signed token whose subject is username.
func (t *TokenIssuer) Issue(username string) (string, error) {
	claims := accessClaims{
		TTLSeconds:       t.ttl.Seconds(),
		RegisteredClaims: jwt.RegisteredClaims{Subject: username},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify checks the signature and that the subject is the admin username.
func (t *TokenIssuer) Verify(tokenStr string) (*User, error) {
	claims := &accessClaims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.Subject != t.admin.Username() {
		return nil, ErrInvalidToken
	}
	return &User{Username: claims.Subject}, nil
}

// TTL returns the lifetime recorded in issued tokens.
func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}
