package fittrack

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token uses. A refresh token can only be exchanged for a new access
// token, never presented to a protected route directly.
const (
	TokenUseAccess  = "access"
	TokenUseRefresh = "refresh"
)

// AdminClaims is the signed, time-bound session claim carried in the
// admin cookie.
type AdminClaims struct {
	jwt.RegisteredClaims
	AdminID int64  `json:"adm,omitempty"`
	Email   string `json:"email,omitempty"`
	Use     string `json:"use,omitempty"`
}

// UserID returns the admin id as a string, matching the subject claim.
func (c *AdminClaims) UserID() string {
	if c.AdminID != 0 {
		return strconv.FormatInt(c.AdminID, 10)
	}
	return c.RegisteredClaims.Subject
}

// Expires returns the expiration time
func (c *AdminClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *AdminClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// IsRefresh reports whether the claim belongs to a refresh token.
func (c *AdminClaims) IsRefresh() bool {
	return c.Use == TokenUseRefresh
}
