package accounts

import (
	"time"

	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
)

// Role is the role embedded in a session token
type Role string

const (
	RoleAdmin      Role = "ADMIN"      // Manages the content of exactly one club
	RoleSuperadmin Role = "SUPERADMIN" // Manages every club and the admin accounts
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// Scope is the role together with the clubs it reaches. A superadmin reaches
// every club; an admin reaches exactly one. The zero value reaches nothing.
type Scope struct {
	role   Role
	clubID string
}

// SuperadminScope returns the wildcard scope
func SuperadminScope() Scope {
	return Scope{role: RoleSuperadmin}
}

// AdminScope returns the scope of an admin bound to clubID
func AdminScope(clubID string) (Scope, error) {
	if clubID == "" {
		return Scope{}, apperrors.ErrNoClubBinding
	}
	return Scope{role: RoleAdmin, clubID: clubID}, nil
}

// NewScope rebuilds a scope from its serialised parts
func NewScope(role Role, clubID string) (Scope, error) {
	switch role {
	case RoleSuperadmin:
		return SuperadminScope(), nil
	case RoleAdmin:
		return AdminScope(clubID)
	default:
		return Scope{}, apperrors.ErrInvalidToken
	}
}

func (s Scope) Role() Role {
	return s.role
}

// ClubID returns the bound club, empty for a superadmin
func (s Scope) ClubID() string {
	return s.clubID
}

func (s Scope) IsSuperadmin() bool {
	return s.role == RoleSuperadmin
}

// Allows reports whether the scope reaches clubID. Admin matching is exact
// string equality.
func (s Scope) Allows(clubID string) bool {
	switch s.role {
	case RoleSuperadmin:
		return true
	case RoleAdmin:
		return clubID != "" && s.clubID == clubID
	default:
		return false
	}
}

// Account is a row of the credential store joined with its club binding
type Account struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"` // never serialize
	IsSuperadmin bool      `db:"is_superadmin" json:"-"`
	ClubID       string    `db:"club_id" json:"-"` // empty for superadmins and orphaned admins
	CreatedAt    time.Time `db:"created_at" json:"-"`
}

// Scope derives the tagged scope from the flag and binding. An admin without a
// binding has no scope.
func (a *Account) Scope() (Scope, error) {
	if a.IsSuperadmin {
		return SuperadminScope(), nil
	}
	return AdminScope(a.ClubID)
}

// View is the public projection of an account returned by the API
type View struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	ClubID string `json:"clubId,omitempty"`
}

// NewView builds the public projection from an id, email and scope
func NewView(id int64, email string, scope Scope) View {
	return View{ID: id, Email: email, Role: scope.Role(), ClubID: scope.ClubID()}
}
