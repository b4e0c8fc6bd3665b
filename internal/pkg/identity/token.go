package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates the presented service token failed verification.
var ErrInvalidToken = errors.New("invalid service token")

// DispatcherSubject identifies the task queue dispatcher service account.
const DispatcherSubject = "cargoflow-task-dispatcher"

// Signer issues and verifies the service identity tokens that authenticate
// deferred task callbacks. It plays the role of the managed queue's OIDC
// token: the dispatcher signs one per delivery, the callback endpoint
// verifies it.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner creates a signer with the shared secret and token lifetime.
func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for the dispatcher identity.
func (s *Signer) Issue() (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   DispatcherSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign service token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the token subject.
func (s *Signer) Verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(func() time.Time {
		return s.now()
	}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
