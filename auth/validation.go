package auth

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
)

// MaxClubIDLength matches the club_id column width
const MaxClubIDLength = 64

// ClubIDTag is the validator tag for club ids: letters, digits, dashes and
// underscores, at most MaxClubIDLength long.
const ClubIDTag = "clubid"

var clubIDPattern = regexp.MustCompile(fmt.Sprintf(`^[A-Za-z0-9_-]{1,%d}$`, MaxClubIDLength))

// RegisterValidations adds the auth specific tags to v
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation(ClubIDTag, func(fl validator.FieldLevel) bool {
		return clubIDPattern.MatchString(fl.Field().String())
	})
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

// NormalizeEmail trims and lower-cases an address so lookups are case insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks the address format
func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email,max=254"); err != nil {
		return fmt.Errorf("%w: email: %w", apperrors.ErrInvalidRequest, err)
	}
	return nil
}

// ValidateClubID accepts the ids the site uses in paths
func ValidateClubID(clubID string) error {
	if err := validate.Var(clubID, "required,"+ClubIDTag); err != nil {
		return fmt.Errorf("%w: club id: %w", apperrors.ErrInvalidRequest, err)
	}
	return nil
}
