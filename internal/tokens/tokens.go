// Package tokens signs the short-lived confirmations that guard
// destructive actions such as deleting a startup.
package tokens

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const ActionDelete = "delete"

var (
	ErrNoSecret     = errors.New("confirmation secret is empty")
	ErrInvalidToken = errors.New("invalid confirmation token")
)

// ConfirmClaims binds a token to one action on one startup.
type ConfirmClaims struct {
	Action    string `json:"act"`
	StartupID int64  `json:"sid"`
	jwt.RegisteredClaims
}

// Confirmer issues and verifies HS256 confirmation tokens.
type Confirmer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewConfirmer(secret string, ttl time.Duration) (*Confirmer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Confirmer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock returns a copy of c reading time from now (tests).
func (c *Confirmer) WithClock(now func() time.Time) *Confirmer {
	cp := *c
	cp.now = now
	return &cp
}

func (c *Confirmer) Issue(action string, startupID int64) (string, error) {
	now := c.now()
	claims := ConfirmClaims{
		Action:    action,
		StartupID: startupID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(startupID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks signature, expiry and that the token was issued for the
// given action and startup.
func (c *Confirmer) Verify(token, action string, startupID int64) error {
	var claims ConfirmClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil {
		return fmt.Errorf("%w: missing expiry", ErrInvalidToken)
	}
	if claims.Action != action || claims.StartupID != startupID {
		return fmt.Errorf("%w: issued for %s %d", ErrInvalidToken, claims.Action, claims.StartupID)
	}
	return nil
}
