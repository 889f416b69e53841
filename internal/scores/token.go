package scores

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = time.Minute

// Signer issues and checks short-lived HS256 tokens that bind a submission
// to its exact score and time. A Signer with an empty secret is disabled.
type Signer struct {
	secret []byte
	now    func() time.Time
}

// NewSigner creates a Signer for the shared secret
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret), now: time.Now}
}

// Enabled reports whether submissions must carry a token
func (s *Signer) Enabled() bool {
	return s != nil && len(s.secret) > 0
}

// Sign returns a token for r
func (s *Signer) Sign(r Record) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"score": r.Score,
		"time":  r.Time,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the token signature and that it was issued for r
func (s *Signer) Verify(tokenStr string, r Record) error {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	score, ok := claims["score"].(float64)
	if !ok || int(score) != r.Score {
		return fmt.Errorf("%w: score mismatch", ErrUnauthorized)
	}
	elapsed, ok := claims["time"].(float64)
	if !ok || elapsed != r.Time {
		return fmt.Errorf("%w: time mismatch", ErrUnauthorized)
	}
	return nil
}
