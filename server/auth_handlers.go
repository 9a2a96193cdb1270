package server

import (
	"net/http"

	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
)

// LoginRequest is the login body. Password length is capped at the bcrypt input limit.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginHandler exchanges credentials for a session token. Unknown email and
// wrong password produce the same 400 response.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		res, err := s.auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// LogoutHandler revokes the presented token
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, r, apperrors.ErrUnauthenticated)
			return
		}
		if err := s.auth.Logout(r.Context(), identity); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// MeHandler returns the identity carried by the token
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, r, apperrors.ErrUnauthenticated)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"account":   identity.View(),
			"expiresAt": identity.ExpiresAt,
		})
	}
}
