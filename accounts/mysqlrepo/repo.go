// Package mysqlrepo implements accounts.Repo on MySQL through sqlx.
package mysqlrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/jrsteele09/go-club-server/accounts"
	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
)

const (
	selectAccount = `SELECT a.id, a.email, a.password_hash, a.is_superadmin,
	       COALESCE(ca.club_id, '') AS club_id, a.created_at
	  FROM accounts a
	  LEFT JOIN club_admins ca ON ca.account_id = a.id`

	queryByEmail      = selectAccount + ` WHERE a.email = ?`
	queryByID         = selectAccount + ` WHERE a.id = ?`
	queryList         = selectAccount + ` ORDER BY a.id`
	queryHasSuper     = `SELECT EXISTS(SELECT 1 FROM accounts WHERE is_superadmin = TRUE)`
	queryIsSuper      = `SELECT is_superadmin FROM accounts WHERE id = ?`
	insertAccount     = `INSERT INTO accounts (email, password_hash, is_superadmin) VALUES (?, ?, ?)`
	insertClubBinding = `INSERT INTO club_admins (account_id, club_id) VALUES (?, ?)`
	deleteAdmin       = `DELETE FROM accounts WHERE id = ? AND is_superadmin = FALSE`

	errDuplicateEntry = 1062
)

var _ accounts.Repo = (*Repo)(nil)

type Repo struct {
	db      *sqlx.DB
	nowFunc func() time.Time
}

func New(db *sqlx.DB) *Repo {
	return &Repo{db: db, nowFunc: time.Now}
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*accounts.Account, error) {
	return r.get(ctx, "mysqlrepo GetByEmail", queryByEmail, email)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*accounts.Account, error) {
	return r.get(ctx, "mysqlrepo GetByID", queryByID, id)
}

func (r *Repo) get(ctx context.Context, op, query string, arg any) (*accounts.Account, error) {
	var a accounts.Account
	if err := r.db.GetContext(ctx, &a, query, arg); err != nil {
		if apperrors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Store(op, err)
	}
	return &a, nil
}

func (r *Repo) HasSuperadmin(ctx context.Context) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, queryHasSuper); err != nil {
		return false, apperrors.Store("mysqlrepo HasSuperadmin", err)
	}
	return exists, nil
}

func (r *Repo) CreateSuperadmin(ctx context.Context, email, passwordHash string) (*accounts.Account, error) {
	id, err := r.insertAccount(ctx, "mysqlrepo CreateSuperadmin", email, passwordHash, true)
	if err != nil {
		return nil, err
	}
	return &accounts.Account{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		IsSuperadmin: true,
		CreatedAt:    r.nowFunc().UTC(),
	}, nil
}

// CreateAdmin inserts the account then its binding. The statements are not in a
// transaction; a failure on the second leaves an admin without a club, which
// cannot log in until an operator deletes and re-creates it.
func (r *Repo) CreateAdmin(ctx context.Context, email, passwordHash, clubID string) (*accounts.Account, error) {
	id, err := r.insertAccount(ctx, "mysqlrepo CreateAdmin", email, passwordHash, false)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, insertClubBinding, id, clubID); err != nil {
		return nil, apperrors.Store("mysqlrepo CreateAdmin binding", err)
	}
	return &accounts.Account{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		ClubID:       clubID,
		CreatedAt:    r.nowFunc().UTC(),
	}, nil
}

func (r *Repo) insertAccount(ctx context.Context, op, email, passwordHash string, superadmin bool) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertAccount, email, passwordHash, superadmin)
	if err != nil {
		var myErr *mysql.MySQLError
		if apperrors.As(err, &myErr) && myErr.Number == errDuplicateEntry {
			return 0, apperrors.ErrEmailTaken
		}
		return 0, apperrors.Store(op, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperrors.Store(op, err)
	}
	return id, nil
}

func (r *Repo) ListAdmins(ctx context.Context) ([]*accounts.Account, error) {
	list := make([]*accounts.Account, 0)
	if err := r.db.SelectContext(ctx, &list, queryList); err != nil {
		return nil, apperrors.Store("mysqlrepo ListAdmins", err)
	}
	return list, nil
}

// DeleteAdmin only matches non-superadmin rows, so a superadmin can never be
// removed whatever the caller checked. The binding row goes by ON DELETE CASCADE.
func (r *Repo) DeleteAdmin(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteAdmin, id)
	if err != nil {
		return apperrors.Store("mysqlrepo DeleteAdmin", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Store("mysqlrepo DeleteAdmin", err)
	}
	if n > 0 {
		return nil
	}

	var superadmin bool
	if err := r.db.GetContext(ctx, &superadmin, queryIsSuper, id); err != nil {
		if apperrors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.Store("mysqlrepo DeleteAdmin", err)
	}
	if superadmin {
		return apperrors.ErrSuperadminProtected
	}
	return apperrors.ErrNotFound
}
