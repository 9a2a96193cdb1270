package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-club-server/accounts"
)

// Claims is the session credential payload
type Claims struct {
	jwt.RegisteredClaims
	Email  string        `json:"email"`
	Role   accounts.Role `json:"role"`
	ClubID string        `json:"club,omitempty"`
}

var _ jwt.ClaimsValidator = (*Claims)(nil)

// Validate is called by the jwt parser after the registered claims pass. It
// rejects payloads that do not have the expected shape.
func (c *Claims) Validate() error {
	if _, err := strconv.ParseInt(c.Subject, 10, 64); err != nil {
		return errors.New("subject is not an account id")
	}
	if c.Email == "" {
		return errors.New("missing email")
	}
	if c.ID == "" {
		return errors.New("missing jti")
	}
	if !c.Role.Valid() {
		return errors.New("unknown role")
	}
	if _, err := accounts.NewScope(c.Role, c.ClubID); err != nil {
		return errors.New("invalid role or club scope")
	}
	if c.Role == accounts.RoleSuperadmin && c.ClubID != "" {
		return errors.New("superadmin token carries a club")
	}
	return nil
}

// Identity is the verified caller attached to the request context
type Identity struct {
	AccountID int64
	Email     string
	Scope     accounts.Scope
	TokenID   string
	ExpiresAt time.Time
}

// View returns the public projection of the identity
func (i *Identity) View() accounts.View {
	return accounts.NewView(i.AccountID, i.Email, i.Scope)
}
