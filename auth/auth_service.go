package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jrsteele09/go-club-server/accounts"
	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
	"github.com/jrsteele09/go-club-server/internal/metrics"
	"github.com/jrsteele09/go-club-server/token"
	"github.com/rs/zerolog/log"
)

// Repos holds the repository dependencies of the Service
type Repos struct {
	Accounts accounts.Repo // Credential store
}

// Service implements login, logout, the startup bootstrap and admin provisioning
type Service struct {
	repos                Repos
	tokens               *token.Manager
	adminDefaultPassword string
}

type ServiceOption func(*Service)

// WithAdminDefaultPassword sets the temporary password given to provisioned
// admins. When empty a random password is generated per admin.
func WithAdminDefaultPassword(password string) ServiceOption {
	return func(s *Service) {
		s.adminDefaultPassword = password
	}
}

func NewService(repos Repos, tokens *token.Manager, options ...ServiceOption) (*Service, error) {
	if repos.Accounts == nil {
		return nil, errors.New("[NewService] Accounts repo is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewService] token manager is required")
	}

	s := &Service{
		repos:  repos,
		tokens: tokens,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// LoginResult is returned to the caller after a successful login
type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Account   accounts.View `json:"account"`
}

// Login checks the credentials and issues a session token. Unknown email and
// wrong password both return errors.ErrInvalidCredentials after a bcrypt
// comparison.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.repos.Accounts.GetByEmail(ctx, NormalizeEmail(email))
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		accounts.BurnPasswordCheck(password)
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return nil, apperrors.ErrInvalidCredentials
	case err != nil:
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, apperrors.Wrapf(err, "[auth Login]")
	}

	if !accounts.CheckPassword(password, account.PasswordHash) {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	scope, err := account.Scope()
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("unbound").Inc()
		log.Warn().Int64("account_id", account.ID).Msg("admin account has no club binding")
		return nil, apperrors.Wrapf(err, "[auth Login]")
	}

	raw, claims, err := s.tokens.Issue(account, scope)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, apperrors.Wrapf(err, "[auth Login]")
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return &LoginResult{
		Token:     raw,
		ExpiresAt: claims.ExpiresAt.Time,
		Account:   accounts.NewView(account.ID, account.Email, scope),
	}, nil
}

// Logout revokes the caller's token until it expires
func (s *Service) Logout(ctx context.Context, identity *token.Identity) error {
	if err := s.tokens.Revoke(ctx, identity); err != nil {
		return apperrors.Wrapf(err, "[auth Logout]")
	}
	return nil
}

// Bootstrap creates the superadmin when none exists. It is idempotent. When
// password is empty a random one is generated and returned so the caller can
// show it once; otherwise the returned password is empty.
func (s *Service) Bootstrap(ctx context.Context, email, password string) (generatedPassword string, err error) {
	exists, err := s.repos.Accounts.HasSuperadmin(ctx)
	if err != nil {
		return "", apperrors.Wrapf(err, "[auth Bootstrap]")
	}
	if exists {
		log.Info().Msg("superadmin already present")
		return "", nil
	}

	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return "", apperrors.Wrapf(err, "[auth Bootstrap]")
	}

	if password == "" {
		if password, err = accounts.GeneratePassword(); err != nil {
			return "", apperrors.Wrapf(err, "[auth Bootstrap]")
		}
		generatedPassword = password
	}

	hash, err := accounts.HashPassword(password)
	if err != nil {
		return "", apperrors.Wrapf(err, "[auth Bootstrap]")
	}

	account, err := s.repos.Accounts.CreateSuperadmin(ctx, email, hash)
	if err != nil {
		return "", apperrors.Wrapf(err, "[auth Bootstrap]")
	}

	metrics.SuperadminCreated.Inc()
	log.Info().Int64("account_id", account.ID).Str("email", account.Email).Msg("superadmin created")
	return generatedPassword, nil
}

// ProvisionResult is returned once when an admin is created. TemporaryPassword
// is only set when it was generated for this admin.
type ProvisionResult struct {
	Admin             accounts.View `json:"admin"`
	TemporaryPassword string        `json:"temporaryPassword,omitempty"`
}

// ProvisionAdmin creates an admin bound to clubID
func (s *Service) ProvisionAdmin(ctx context.Context, email, clubID string) (*ProvisionResult, error) {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, apperrors.Wrapf(err, "[auth ProvisionAdmin]")
	}
	if err := ValidateClubID(clubID); err != nil {
		return nil, apperrors.Wrapf(err, "[auth ProvisionAdmin]")
	}
	scope, err := accounts.AdminScope(clubID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[auth ProvisionAdmin]")
	}

	password := s.adminDefaultPassword
	generated := ""
	if password == "" {
		if password, err = accounts.GeneratePassword(); err != nil {
			return nil, apperrors.Wrapf(err, "[auth ProvisionAdmin]")
		}
		generated = password
	}

	hash, err := accounts.HashPassword(password)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[auth ProvisionAdmin]")
	}

	account, err := s.repos.Accounts.CreateAdmin(ctx, email, hash, clubID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[auth ProvisionAdmin]")
	}

	log.Info().Int64("account_id", account.ID).Str("club_id", clubID).Msg("admin provisioned")
	return &ProvisionResult{
		Admin:             accounts.NewView(account.ID, account.Email, scope),
		TemporaryPassword: generated,
	}, nil
}

// ListAdmins returns every account as a public view. Orphaned admins are
// listed without a club so a superadmin can find and delete them.
func (s *Service) ListAdmins(ctx context.Context) ([]accounts.View, error) {
	list, err := s.repos.Accounts.ListAdmins(ctx)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[auth ListAdmins]")
	}

	views := make([]accounts.View, 0, len(list))
	for _, a := range list {
		scope, err := a.Scope()
		if err != nil {
			views = append(views, accounts.View{ID: a.ID, Email: a.Email, Role: accounts.RoleAdmin})
			continue
		}
		views = append(views, accounts.NewView(a.ID, a.Email, scope))
	}
	return views, nil
}

// DeleteAdmin removes an admin and its club binding. Superadmins are refused
// by the store with errors.ErrSuperadminProtected.
func (s *Service) DeleteAdmin(ctx context.Context, id int64) error {
	if err := s.repos.Accounts.DeleteAdmin(ctx, id); err != nil {
		return apperrors.Wrapf(err, "[auth DeleteAdmin]")
	}
	log.Info().Int64("account_id", id).Msg("admin deleted")
	return nil
}
