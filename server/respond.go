package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jrsteele09/go-club-server/auth"
	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
	"github.com/rs/zerolog/log"
)

const maxJSONBodyBytes = 1 << 20

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// fieldErrors reports which request fields failed validation
type fieldErrors map[string]string

func (f fieldErrors) Error() string {
	return fmt.Sprintf("invalid fields: %v", map[string]string(f))
}

func (f fieldErrors) Unwrap() error {
	return apperrors.ErrInvalidRequest
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := auth.RegisterValidations(v); err != nil {
		panic(err)
	}
	// report json names rather than Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads a single JSON object into dst and validates it
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON body", apperrors.ErrInvalidRequest)
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := fieldErrors{}
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			return fields
		}
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("failed to encode response")
	}
}

// errorStatus maps the error taxonomy onto an HTTP status and a minimal body
func errorStatus(err error) (int, string) {
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusBadRequest, "invalid credentials"
	case apperrors.Is(err, apperrors.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid request"
	case apperrors.Is(err, apperrors.ErrUnauthenticated),
		apperrors.Is(err, apperrors.ErrInvalidToken),
		apperrors.Is(err, apperrors.ErrTokenRevoked):
		return http.StatusUnauthorized, "unauthorized"
	case apperrors.Is(err, apperrors.ErrForbidden),
		apperrors.Is(err, apperrors.ErrSuperadminProtected),
		apperrors.Is(err, apperrors.ErrNoClubBinding):
		return http.StatusForbidden, "forbidden"
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "not found"
	case apperrors.Is(err, apperrors.ErrEmailTaken):
		return http.StatusConflict, "email already registered"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// writeError logs err and writes the mapped response. Internal details never
// reach the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request rejected")
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="club-server"`)
	}

	resp := errorResponse{Error: msg}
	var fields fieldErrors
	if errors.As(err, &fields) {
		resp.Fields = fields
	}
	writeJSON(w, status, resp)
}
