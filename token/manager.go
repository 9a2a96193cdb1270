package token

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-club-server/accounts"
	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
)

const (
	DefaultIssuer = "club-server"
	DefaultExpiry = 12 * time.Hour
)

// Manager issues and verifies session tokens. Tokens are self-contained: Verify
// never touches the credential store, only the signature, the payload and the
// revocation denylist.
type Manager struct {
	signer   Signer
	issuer   string
	expiry   time.Duration
	denylist Denylist
	nowFunc  func() time.Time
}

type ManagerOption func(*Manager)

func WithTokenExpiry(expiry time.Duration) ManagerOption {
	return func(m *Manager) {
		m.expiry = expiry
	}
}

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func WithIssuer(issuer string) ManagerOption {
	return func(m *Manager) {
		m.issuer = issuer
	}
}

func WithDenylist(denylist Denylist) ManagerOption {
	return func(m *Manager) {
		m.denylist = denylist
	}
}

func New(signer Signer, options ...ManagerOption) *Manager {
	m := &Manager{
		signer: signer,
		issuer: DefaultIssuer,
		expiry: DefaultExpiry,
	}

	for _, opt := range options {
		opt(m)
	}

	if m.nowFunc == nil {
		m.nowFunc = time.Now
	}
	if m.denylist == nil {
		m.denylist = NewInMemoryDenylist(WithDenylistNowFunc(m.nowFunc))
	}
	return m
}

// Issue signs a token asserting the account's identity and scope
func (m *Manager) Issue(account *accounts.Account, scope accounts.Scope) (string, *Claims, error) {
	now := m.nowFunc()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   strconv.FormatInt(account.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			ID:        uuid.New().String(),
		},
		Email:  account.Email,
		Role:   scope.Role(),
		ClubID: scope.ClubID(),
	}

	signed, err := m.signer.Sign(claims)
	if err != nil {
		return "", nil, fmt.Errorf("[token Issue] %w", err)
	}
	return signed, claims, nil
}

// Verify checks the signature, issuer, expiry and payload shape of raw and
// returns the embedded identity. Every verification failure wraps
// errors.ErrInvalidToken; a denylisted token returns errors.ErrTokenRevoked.
func (m *Manager) Verify(ctx context.Context, raw string) (*Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{m.signer.GetSigningMethod().Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(m.nowFunc),
	)

	claims := &Claims{}
	if _, err := parser.ParseWithClaims(raw, claims, m.signer.GetVerificationKey); err != nil {
		return nil, fmt.Errorf("[token Verify] %w: %w", apperrors.ErrInvalidToken, err)
	}

	revoked, err := m.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("[token Verify] %w", err)
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}

	return identityFromClaims(claims)
}

// Revoke denylists the identity's token until it would have expired anyway
func (m *Manager) Revoke(ctx context.Context, identity *Identity) error {
	if err := m.denylist.Revoke(ctx, identity.TokenID, identity.ExpiresAt); err != nil {
		return fmt.Errorf("[token Revoke] %w", err)
	}
	return nil
}

func identityFromClaims(c *Claims) (*Identity, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("[token Verify] %w: %w", apperrors.ErrInvalidToken, err)
	}
	scope, err := accounts.NewScope(c.Role, c.ClubID)
	if err != nil {
		return nil, fmt.Errorf("[token Verify] %w: %w", apperrors.ErrInvalidToken, err)
	}
	return &Identity{
		AccountID: id,
		Email:     c.Email,
		Scope:     scope,
		TokenID:   c.ID,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
