package server

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// InitialiseSystem makes sure the superadmin exists before the server accepts
// requests. A generated password is logged here and nowhere else.
func (s *Server) InitialiseSystem(ctx context.Context) error {
	email := s.config.GetSuperadminEmail()
	generatedPassword, err := s.auth.Bootstrap(ctx, email, s.config.GetSuperadminPassword())
	if err != nil {
		return fmt.Errorf("[Server InitialiseSystem] failed to bootstrap superadmin: %w", err)
	}

	if generatedPassword != "" {
		log.Warn().
			Str("email", email).
			Str("password", generatedPassword).
			Msg("superadmin created with a generated password; it will not be shown again")
	}
	return nil
}
