// Package content holds the club scoped records rendered by the public site
// and edited by club admins.
package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
	"github.com/jrsteele09/go-club-server/uploads"
)

type Kind string

const (
	KindTeam    Kind = "team"
	KindNews    Kind = "news"
	KindBlog    Kind = "blog"
	KindGallery Kind = "gallery"
	KindForms   Kind = "forms"
)

// Kinds lists every supported kind in display order
var Kinds = []Kind{KindTeam, KindNews, KindBlog, KindGallery, KindForms}

// ParseKind maps a path segment to a Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(s))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown content kind %q", apperrors.ErrNotFound, s)
}

// Record is one item of club content
type Record struct {
	ID        int64     `db:"id" json:"id"`
	ClubID    string    `db:"club_id" json:"clubId"`
	Kind      Kind      `db:"kind" json:"kind"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	FileKey   string    `db:"file_key" json:"fileKey,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Draft is the editable part of a record
type Draft struct {
	Title   string `json:"title" validate:"required,max=255"`
	Body    string `json:"body" validate:"max=65535"`
	FileKey string `json:"fileKey" validate:"omitempty,max=512"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the field limits and that an attached file belongs to clubID
func (d Draft) Validate(clubID string) error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}
	if d.FileKey != "" && !strings.HasPrefix(d.FileKey, uploads.KeyPrefix(clubID)) {
		return fmt.Errorf("%w: file belongs to another club", apperrors.ErrInvalidRequest)
	}
	return nil
}

// Repo stores records. Every call is filtered by club id so a record of one
// club is never reachable through another club's path.
type Repo interface {
	List(ctx context.Context, clubID string, kind Kind) ([]*Record, error)
	Get(ctx context.Context, clubID string, kind Kind, id int64) (*Record, error)
	Create(ctx context.Context, clubID string, kind Kind, draft Draft) (*Record, error)
	Update(ctx context.Context, clubID string, kind Kind, id int64, draft Draft) (*Record, error)
	Delete(ctx context.Context, clubID string, kind Kind, id int64) error
}
