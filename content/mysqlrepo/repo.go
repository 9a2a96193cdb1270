// Package mysqlrepo implements content.Repo on MySQL through sqlx.
package mysqlrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/jrsteele09/go-club-server/content"
	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
)

const (
	selectRecord = `SELECT id, club_id, kind, title, body, file_key, created_at, updated_at FROM club_content`

	queryList    = selectRecord + ` WHERE club_id = ? AND kind = ? ORDER BY created_at DESC, id DESC`
	queryGet     = selectRecord + ` WHERE club_id = ? AND kind = ? AND id = ?`
	insertRecord = `INSERT INTO club_content (club_id, kind, title, body, file_key) VALUES (?, ?, ?, ?, ?)`
	updateRecord = `UPDATE club_content SET title = ?, body = ?, file_key = ? WHERE club_id = ? AND kind = ? AND id = ?`
	deleteRecord = `DELETE FROM club_content WHERE club_id = ? AND kind = ? AND id = ?`
)

var _ content.Repo = (*Repo)(nil)

type Repo struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) List(ctx context.Context, clubID string, kind content.Kind) ([]*content.Record, error) {
	list := make([]*content.Record, 0)
	if err := r.db.SelectContext(ctx, &list, queryList, clubID, string(kind)); err != nil {
		return nil, apperrors.Store("content List", err)
	}
	return list, nil
}

func (r *Repo) Get(ctx context.Context, clubID string, kind content.Kind, id int64) (*content.Record, error) {
	var rec content.Record
	if err := r.db.GetContext(ctx, &rec, queryGet, clubID, string(kind), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Store("content Get", err)
	}
	return &rec, nil
}

func (r *Repo) Create(ctx context.Context, clubID string, kind content.Kind, draft content.Draft) (*content.Record, error) {
	res, err := r.db.ExecContext(ctx, insertRecord, clubID, string(kind), draft.Title, draft.Body, draft.FileKey)
	if err != nil {
		return nil, apperrors.Store("content Create", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, apperrors.Store("content Create", err)
	}
	return r.Get(ctx, clubID, kind, id)
}

// Update rewrites the draft fields then reads the row back. MySQL reports zero
// affected rows for an unchanged row, so existence is decided by the read.
func (r *Repo) Update(ctx context.Context, clubID string, kind content.Kind, id int64, draft content.Draft) (*content.Record, error) {
	if _, err := r.db.ExecContext(ctx, updateRecord, draft.Title, draft.Body, draft.FileKey, clubID, string(kind), id); err != nil {
		return nil, apperrors.Store("content Update", err)
	}
	return r.Get(ctx, clubID, kind, id)
}

func (r *Repo) Delete(ctx context.Context, clubID string, kind content.Kind, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteRecord, clubID, string(kind), id)
	if err != nil {
		return apperrors.Store("content Delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Store("content Delete", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
