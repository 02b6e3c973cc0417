// Package auth issues and verifies the signed tokens that carry a
// customer's identity. Access and refresh tokens are HS256 JWTs signed with
// two different secrets and carrying independent lifetimes.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verification failure reasons. All of them wrap common.ErrInvalidToken.
var (
	ErrTokenMalformed = fmt.Errorf("%w: malformed token", common.ErrInvalidToken)
	ErrTokenSignature = fmt.Errorf("%w: signature mismatch", common.ErrInvalidToken)
	ErrTokenExpired   = fmt.Errorf("%w: token expired", common.ErrInvalidToken)
)

// Claims are the registered JWT claims plus the customer id under "id".
type Claims struct {
	jwt.RegisteredClaims
	CustomerID string `json:"id"`
}

// Codec signs and verifies access and refresh tokens.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// Option customizes a Codec.
type Option func(*Codec)

// WithClock replaces time.Now for both issuing and verification.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

func NewCodec(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, opts ...Option) *Codec {
	c := &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IssueAccess returns a signed access token for customerID.
func (c *Codec) IssueAccess(customerID string) (string, error) {
	return c.generate(customerID, c.accessSecret, c.accessTTL)
}

// IssueRefresh returns a signed refresh token for customerID.
func (c *Codec) IssueRefresh(customerID string) (string, error) {
	return c.generate(customerID, c.refreshSecret, c.refreshTTL)
}

// VerifyAccess checks tokenString against the access secret.
func (c *Codec) VerifyAccess(tokenString string) (string, error) {
	return c.Verify(tokenString, c.accessSecret)
}

// VerifyRefresh checks tokenString against the refresh secret.
func (c *Codec) VerifyRefresh(tokenString string) (string, error) {
	return c.Verify(tokenString, c.refreshSecret)
}

func (c *Codec) AccessTTL() time.Duration  { return c.accessTTL }
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

func (c *Codec) generate(customerID string, secret []byte, validity time.Duration) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   customerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
			ID:        uuid.NewString(),
		},
		CustomerID: customerID,
	})

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Verify validates signature, algorithm and expiration of tokenString
// against secret and returns the customer id it carries. Failures are
// reported as ErrTokenMalformed, ErrTokenSignature or ErrTokenExpired.
func (c *Codec) Verify(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", classify(err)
	}

	if !token.Valid {
		return "", ErrTokenMalformed
	}

	id := claims.CustomerID
	if id == "" {
		id = claims.Subject
	}
	if id == "" {
		return "", fmt.Errorf("%w: no subject", ErrTokenMalformed)
	}

	return id, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenSignature
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}
