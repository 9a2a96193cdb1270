package content_test

import (
	"strings"
	"testing"

	"github.com/jrsteele09/go-club-server/content"
	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range content.Kinds {
		got, err := content.ParseKind(strings.ToUpper(string(k)))
		require.NoError(t, err)
		require.Equal(t, k, got)
	}

	_, err := content.ParseKind("uploads")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDraft_Validate(t *testing.T) {
	tests := []struct {
		name  string
		draft content.Draft
		ok    bool
	}{
		{"minimal", content.Draft{Title: "Season opener"}, true},
		{"own file", content.Draft{Title: "Kit", FileKey: "clubs/club-a/x.png"}, true},
		{"missing title", content.Draft{Body: "text"}, false},
		{"long title", content.Draft{Title: strings.Repeat("t", 256)}, false},
		{"other club file", content.Draft{Title: "Kit", FileKey: "clubs/club-b/x.png"}, false},
		{"prefix lookalike", content.Draft{Title: "Kit", FileKey: "clubs/club-ab/x.png"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate("club-a")
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
		})
	}
}
