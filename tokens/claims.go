package tokens

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jrsteele09/research-platform-client/internal/errors"
)

// Claims is a read-only view of an access token's payload.
// The signature is NOT verified: the client has no key and only uses this for
// display (for example the CLI status command).
type Claims struct {
	UserID    string    `json:"user_id,omitempty"`
	TokenType string    `json:"token_type,omitempty"` // "access" for SimpleJWT access tokens
	JTI       string    `json:"jti,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
}

// ParseClaims decodes the payload of a JWT without verifying it.
func ParseClaims(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.ErrNotAuthenticated
	}

	token, _, err := jwt.NewParser().ParseUnverified(rawToken, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("parse access token: unexpected claims type %T", token.Claims)
	}

	c := &Claims{
		UserID:    stringClaim(mc["user_id"]),
		TokenType: stringClaim(mc["token_type"]),
		JTI:       stringClaim(mc["jti"]),
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	return c, nil
}

// Expired reports whether the token carries an expiry that is before now.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// stringClaim normalises ids that SimpleJWT may encode as numbers.
func stringClaim(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
