// internal/utils/jwt.go
package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// AccessClaims are the claims the open-market API puts in its access tokens.
type AccessClaims struct {
	TokenType string      `json:"token_type,omitempty"`
	UserID    interface{} `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// ErrNotJWT is returned for tokens that are not three-part JWTs.
var ErrNotJWT = errors.New("token is not a JWT")

// ParseAccessClaims decodes the claims of token without verifying its signature.
// The storefront never holds the API's signing key; the claims are only displayed.
func ParseAccessClaims(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}
	return claims, nil
}

// SubjectID is the registered subject, or the API's user_id claim when absent.
func (c *AccessClaims) SubjectID() string {
	if c.Subject != "" {
		return c.Subject
	}
	switch id := c.UserID.(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%.0f", id)
	default:
		return fmt.Sprint(id)
	}
}

// ExpiresTime returns the expiry, or the zero time when the token carries none.
func (c *AccessClaims) ExpiresTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

func (c *AccessClaims) Expired(now time.Time) bool {
	exp := c.ExpiresTime()
	return !exp.IsZero() && now.After(exp)
}
