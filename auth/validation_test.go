package auth_test

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jrsteele09/go-club-server/auth"
	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "a@b.com", auth.NormalizeEmail("  A@B.Com\n"))
}

func TestValidateEmail(t *testing.T) {
	require.NoError(t, auth.ValidateEmail("admin@club.test"))
	require.ErrorIs(t, auth.ValidateEmail(""), apperrors.ErrInvalidRequest)
	require.ErrorIs(t, auth.ValidateEmail("admin"), apperrors.ErrInvalidRequest)
}

func TestValidateClubID(t *testing.T) {
	valid := []string{"club-a", "A_1", "42"}
	for _, id := range valid {
		require.NoError(t, auth.ValidateClubID(id), id)
	}

	invalid := []string{"", "club/a", "..", "club a", "clüb", strings.Repeat("x", auth.MaxClubIDLength+1)}
	for _, id := range invalid {
		require.ErrorIs(t, auth.ValidateClubID(id), apperrors.ErrInvalidRequest, id)
	}
}

func TestRegisterValidations(t *testing.T) {
	v := validator.New()
	require.NoError(t, auth.RegisterValidations(v))

	type request struct {
		ClubID string `validate:"required,clubid"`
	}
	require.NoError(t, v.Struct(request{ClubID: "club-a"}))
	require.Error(t, v.Struct(request{ClubID: "club/a"}))
	require.Error(t, v.Struct(request{ClubID: strings.Repeat("x", auth.MaxClubIDLength+1)}))
}
