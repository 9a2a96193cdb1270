// Package uploads stores files attached to club content. Keys have the form
// clubs/<clubID>/<uuid><ext> so every object is owned by exactly one club.
package uploads

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
)

// Store persists uploaded files by key
type Store interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) error
	// Open returns errors.ErrNotFound when the key does not exist
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// fileTypes are the accepted content types and the extension each one is
// stored under. The extension always comes from the sniffed type, never from
// the client's filename.
var fileTypes = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

const defaultContentType = "application/octet-stream"

// KeyPrefix is the key prefix owned by clubID
func KeyPrefix(clubID string) string {
	return "clubs/" + clubID + "/"
}

// NewKey returns a fresh key for a file of contentType uploaded by clubID.
// Content types outside the accepted set are errors.ErrInvalidRequest.
func NewKey(clubID, contentType string) (string, error) {
	ext, ok := fileTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported file type %s", apperrors.ErrInvalidRequest, contentType)
	}
	return KeyPrefix(clubID) + uuid.New().String() + ext, nil
}

// ContentTypeOf returns the content type a key is served with. Keys whose
// extension is not an accepted type are served as opaque bytes.
func ContentTypeOf(key string) string {
	ext := path.Ext(key)
	for contentType, known := range fileTypes {
		if ext == known {
			return contentType
		}
	}
	return defaultContentType
}

// ValidateKey rejects keys that are not in canonical form
func ValidateKey(key string) error {
	if key == "" || path.Clean(key) != key || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return fmt.Errorf("%w: bad upload key", apperrors.ErrInvalidRequest)
	}
	parts := strings.Split(key, "/")
	if len(parts) != 3 || parts[0] != "clubs" || parts[1] == "" || parts[2] == "" || parts[1] == ".." || parts[2] == ".." {
		return fmt.Errorf("%w: bad upload key", apperrors.ErrInvalidRequest)
	}
	return nil
}
