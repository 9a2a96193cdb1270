package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jrsteele09/go-club-server/accounts"
	"github.com/jrsteele09/go-club-server/accounts/repofake"
	"github.com/jrsteele09/go-club-server/auth"
	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
	"github.com/jrsteele09/go-club-server/token"
	"github.com/stretchr/testify/require"
)

const (
	secretStr         = "0123456789abcdef0123456789abcdef"
	testSuperEmail    = "root@club.test"
	testSuperPassword = "super-secret-password"
	testAdminEmail    = "admin@club-a.test"
	testAdminPassword = "admin-password"
	testClubID        = "club-a"
)

// testFixture holds all test dependencies
type testFixture struct {
	accountRepo *repofake.FakeAccountRepo
	tokens      *token.Manager
	service     *auth.Service
}

func setupTestFixture(t *testing.T, options ...auth.ServiceOption) *testFixture {
	t.Helper()

	ar := repofake.NewFakeAccountRepo()
	tm := token.New(token.NewHMACSigner(secretStr))

	service, err := auth.NewService(auth.Repos{Accounts: ar}, tm, options...)
	require.NoError(t, err)

	return &testFixture{
		accountRepo: ar,
		tokens:      tm,
		service:     service,
	}
}

func (f *testFixture) createAccount(t *testing.T, email, password, clubID string, superadmin bool) *accounts.Account {
	t.Helper()
	hash, err := accounts.HashPassword(password)
	require.NoError(t, err)
	a, err := f.accountRepo.Insert(&accounts.Account{
		Email:        email,
		PasswordHash: hash,
		IsSuperadmin: superadmin,
		ClubID:       clubID,
	})
	require.NoError(t, err)
	return a
}

func TestNewService(t *testing.T) {
	tm := token.New(token.NewHMACSigner(secretStr))

	_, err := auth.NewService(auth.Repos{}, tm)
	require.Error(t, err)

	_, err = auth.NewService(auth.Repos{Accounts: repofake.NewFakeAccountRepo()}, nil)
	require.Error(t, err)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	admin := f.createAccount(t, testAdminEmail, testAdminPassword, testClubID, false)
	f.createAccount(t, testSuperEmail, testSuperPassword, "", true)

	t.Run("admin gets a club scoped token", func(t *testing.T) {
		res, err := f.service.Login(ctx, testAdminEmail, testAdminPassword)
		require.NoError(t, err)
		require.Equal(t, accounts.View{ID: admin.ID, Email: testAdminEmail, Role: accounts.RoleAdmin, ClubID: testClubID}, res.Account)

		id, err := f.tokens.Verify(ctx, res.Token)
		require.NoError(t, err)
		require.Equal(t, admin.ID, id.AccountID)
		require.True(t, id.Scope.Allows(testClubID))
		require.False(t, id.Scope.Allows("club-b"))
		require.Equal(t, res.ExpiresAt.Unix(), id.ExpiresAt.Unix())
	})

	t.Run("superadmin gets the wildcard scope", func(t *testing.T) {
		res, err := f.service.Login(ctx, testSuperEmail, testSuperPassword)
		require.NoError(t, err)
		require.Equal(t, accounts.RoleSuperadmin, res.Account.Role)
		require.Empty(t, res.Account.ClubID)

		id, err := f.tokens.Verify(ctx, res.Token)
		require.NoError(t, err)
		require.True(t, id.Scope.IsSuperadmin())
	})

	t.Run("email lookup ignores case and whitespace", func(t *testing.T) {
		_, err := f.service.Login(ctx, "  ADMIN@Club-A.test ", testAdminPassword)
		require.NoError(t, err)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		_, errUnknown := f.service.Login(ctx, "nobody@club.test", testAdminPassword)
		_, errWrong := f.service.Login(ctx, testAdminEmail, "wrong-password")

		require.ErrorIs(t, errUnknown, apperrors.ErrInvalidCredentials)
		require.ErrorIs(t, errWrong, apperrors.ErrInvalidCredentials)
		require.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("empty password is rejected", func(t *testing.T) {
		_, err := f.service.Login(ctx, testAdminEmail, "")
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("admin without a club binding cannot log in", func(t *testing.T) {
		f.createAccount(t, "orphan@club.test", "orphan-password", "", false)
		_, err := f.service.Login(ctx, "orphan@club.test", "orphan-password")
		require.ErrorIs(t, err, apperrors.ErrNoClubBinding)
	})
}

func TestLogin_StoreUnavailable(t *testing.T) {
	f := setupTestFixture(t)
	f.accountRepo.Err = apperrors.Store("fake", errors.New("connection refused"))

	_, err := f.service.Login(context.Background(), testAdminEmail, testAdminPassword)
	require.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	require.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	f.createAccount(t, testAdminEmail, testAdminPassword, testClubID, false)

	res, err := f.service.Login(ctx, testAdminEmail, testAdminPassword)
	require.NoError(t, err)
	id, err := f.tokens.Verify(ctx, res.Token)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, id))

	_, err = f.tokens.Verify(ctx, res.Token)
	require.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// a fresh login still works
	res, err = f.service.Login(ctx, testAdminEmail, testAdminPassword)
	require.NoError(t, err)
	_, err = f.tokens.Verify(ctx, res.Token)
	require.NoError(t, err)
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("configured password", func(t *testing.T) {
		f := setupTestFixture(t)

		generated, err := f.service.Bootstrap(ctx, testSuperEmail, testSuperPassword)
		require.NoError(t, err)
		require.Empty(t, generated)
		require.Equal(t, 1, f.accountRepo.Count())

		res, err := f.service.Login(ctx, testSuperEmail, testSuperPassword)
		require.NoError(t, err)
		require.Equal(t, accounts.RoleSuperadmin, res.Account.Role)
	})

	t.Run("generated password", func(t *testing.T) {
		f := setupTestFixture(t)

		generated, err := f.service.Bootstrap(ctx, testSuperEmail, "")
		require.NoError(t, err)
		require.Len(t, generated, 22)

		_, err = f.service.Login(ctx, testSuperEmail, generated)
		require.NoError(t, err)
	})

	t.Run("idempotent", func(t *testing.T) {
		f := setupTestFixture(t)

		_, err := f.service.Bootstrap(ctx, testSuperEmail, testSuperPassword)
		require.NoError(t, err)
		generated, err := f.service.Bootstrap(ctx, "other@club.test", "")
		require.NoError(t, err)
		require.Empty(t, generated)
		require.Equal(t, 1, f.accountRepo.Count())

		_, err = f.service.Login(ctx, "other@club.test", "")
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("existing superadmin under another email is kept", func(t *testing.T) {
		f := setupTestFixture(t)
		f.createAccount(t, "first@club.test", "first-password", "", true)

		_, err := f.service.Bootstrap(ctx, testSuperEmail, testSuperPassword)
		require.NoError(t, err)
		require.Equal(t, 1, f.accountRepo.Count())
	})

	t.Run("store failure is returned", func(t *testing.T) {
		f := setupTestFixture(t)
		f.accountRepo.Err = apperrors.Store("fake", errors.New("connection refused"))

		_, err := f.service.Bootstrap(ctx, testSuperEmail, testSuperPassword)
		require.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	})

	t.Run("invalid email", func(t *testing.T) {
		f := setupTestFixture(t)

		_, err := f.service.Bootstrap(ctx, "not-an-email", testSuperPassword)
		require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
		require.Equal(t, 0, f.accountRepo.Count())
	})
}

func TestProvisionAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("generated password is returned once and works", func(t *testing.T) {
		f := setupTestFixture(t)

		res, err := f.service.ProvisionAdmin(ctx, "New@Club-A.test", testClubID)
		require.NoError(t, err)
		require.Equal(t, "new@club-a.test", res.Admin.Email)
		require.Equal(t, accounts.RoleAdmin, res.Admin.Role)
		require.Equal(t, testClubID, res.Admin.ClubID)
		require.NotEmpty(t, res.TemporaryPassword)

		login, err := f.service.Login(ctx, "new@club-a.test", res.TemporaryPassword)
		require.NoError(t, err)
		id, err := f.tokens.Verify(ctx, login.Token)
		require.NoError(t, err)
		require.Equal(t, testClubID, id.Scope.ClubID())
	})

	t.Run("configured default password", func(t *testing.T) {
		f := setupTestFixture(t, auth.WithAdminDefaultPassword("changeme-please"))

		res, err := f.service.ProvisionAdmin(ctx, testAdminEmail, testClubID)
		require.NoError(t, err)
		require.Empty(t, res.TemporaryPassword)

		_, err = f.service.Login(ctx, testAdminEmail, "changeme-please")
		require.NoError(t, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := setupTestFixture(t)
		_, err := f.service.ProvisionAdmin(ctx, testAdminEmail, testClubID)
		require.NoError(t, err)

		_, err = f.service.ProvisionAdmin(ctx, testAdminEmail, "club-b")
		require.ErrorIs(t, err, apperrors.ErrEmailTaken)
	})

	t.Run("invalid input", func(t *testing.T) {
		f := setupTestFixture(t)
		for _, tc := range []struct{ email, club string }{
			{"", testClubID},
			{"not-an-email", testClubID},
			{testAdminEmail, ""},
			{testAdminEmail, "../etc"},
			{testAdminEmail, "club a"},
		} {
			_, err := f.service.ProvisionAdmin(ctx, tc.email, tc.club)
			require.ErrorIs(t, err, apperrors.ErrInvalidRequest, "%q %q", tc.email, tc.club)
		}
		require.Equal(t, 0, f.accountRepo.Count())
	})
}

func TestListAdmins(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	super := f.createAccount(t, testSuperEmail, testSuperPassword, "", true)
	admin := f.createAccount(t, testAdminEmail, testAdminPassword, testClubID, false)
	orphan := f.createAccount(t, "orphan@club.test", "orphan-password", "", false)

	views, err := f.service.ListAdmins(ctx)
	require.NoError(t, err)
	require.Equal(t, []accounts.View{
		{ID: super.ID, Email: testSuperEmail, Role: accounts.RoleSuperadmin},
		{ID: admin.ID, Email: testAdminEmail, Role: accounts.RoleAdmin, ClubID: testClubID},
		{ID: orphan.ID, Email: "orphan@club.test", Role: accounts.RoleAdmin},
	}, views)

	f.accountRepo.Err = apperrors.Store("fake", errors.New("timeout"))
	_, err = f.service.ListAdmins(ctx)
	require.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
}

func TestDeleteAdmin(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	super := f.createAccount(t, testSuperEmail, testSuperPassword, "", true)
	admin := f.createAccount(t, testAdminEmail, testAdminPassword, testClubID, false)

	t.Run("superadmin is protected", func(t *testing.T) {
		err := f.service.DeleteAdmin(ctx, super.ID)
		require.ErrorIs(t, err, apperrors.ErrSuperadminProtected)
		require.Equal(t, 2, f.accountRepo.Count())
	})

	t.Run("admin is removed", func(t *testing.T) {
		require.NoError(t, f.service.DeleteAdmin(ctx, admin.ID))
		_, err := f.service.Login(ctx, testAdminEmail, testAdminPassword)
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := f.service.DeleteAdmin(ctx, 999)
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
