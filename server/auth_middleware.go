package server

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
	"github.com/jrsteele09/go-club-server/internal/metrics"
	"github.com/jrsteele09/go-club-server/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyIdentity stores the verified *token.Identity
const ContextKeyIdentity ContextKey = "identity"

// IdentityFromContext returns the identity attached by RequireToken
func IdentityFromContext(ctx context.Context) (*token.Identity, bool) {
	identity, ok := ctx.Value(ContextKeyIdentity).(*token.Identity)
	return identity, ok && identity != nil
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	raw := strings.TrimSpace(parts[1])
	return raw, raw != ""
}

// RequireToken verifies the bearer token and attaches the identity to the
// request context. The store is never consulted.
func (s *Server) RequireToken() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				metrics.GateRejections.WithLabelValues("missing_token").Inc()
				writeError(w, r, apperrors.ErrUnauthenticated)
				return
			}

			identity, err := s.tokens.Verify(r.Context(), raw)
			if err != nil {
				switch {
				case apperrors.Is(err, apperrors.ErrTokenRevoked):
					metrics.GateRejections.WithLabelValues("revoked_token").Inc()
				case apperrors.Is(err, apperrors.ErrInvalidToken):
					metrics.GateRejections.WithLabelValues("invalid_token").Inc()
				}
				writeError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, identity)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireSuperadmin must run after RequireToken
func (s *Server) RequireSuperadmin() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				writeError(w, r, apperrors.ErrUnauthenticated)
				return
			}
			if !identity.Scope.IsSuperadmin() {
				metrics.GateRejections.WithLabelValues("not_superadmin").Inc()
				writeError(w, r, apperrors.ErrForbidden)
				return
			}
			next(w, r)
		}
	}
}

// RequireClubScope must run after RequireToken. It compares the identity's
// scope with the club id in the named path parameter.
func (s *Server) RequireClubScope(param string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				writeError(w, r, apperrors.ErrUnauthenticated)
				return
			}
			if !identity.Scope.Allows(r.PathValue(param)) {
				metrics.GateRejections.WithLabelValues("wrong_club").Inc()
				writeError(w, r, apperrors.ErrForbidden)
				return
			}
			next(w, r)
		}
	}
}
