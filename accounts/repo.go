package accounts

import "context"

// Repo is the credential store. Implementations wrap driver failures with
// errors.ErrStoreUnavailable and return errors.ErrNotFound for missing rows.
type Repo interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
	HasSuperadmin(ctx context.Context) (bool, error)
	CreateSuperadmin(ctx context.Context, email, passwordHash string) (*Account, error)
	// CreateAdmin writes the account and its club binding as two statements
	CreateAdmin(ctx context.Context, email, passwordHash, clubID string) (*Account, error)
	ListAdmins(ctx context.Context) ([]*Account, error)
	// DeleteAdmin refuses superadmin accounts with errors.ErrSuperadminProtected
	DeleteAdmin(ctx context.Context, id int64) error
}
