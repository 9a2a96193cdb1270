package server

import (
	"fmt"
	"net/http"
	"strconv"

	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
)

type CreateAdminRequest struct {
	Email  string `json:"email" validate:"required,email,max=254"`
	ClubID string `json:"clubId" validate:"required,clubid"`
}

func (s *Server) ListAdminsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admins, err := s.auth.ListAdmins(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"admins": admins})
	}
}

// CreateAdminHandler provisions an admin for one club. A generated temporary
// password is only ever returned in this response.
func (s *Server) CreateAdminHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAdminRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		res, err := s.auth.ProvisionAdmin(r.Context(), req.Email, req.ClubID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	}
}

func (s *Server) DeleteAdminHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt64(r, ParamID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := s.auth.DeleteAdmin(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func pathInt64(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", apperrors.ErrInvalidRequest, name)
	}
	return v, nil
}
