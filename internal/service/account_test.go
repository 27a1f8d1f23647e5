package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/foodtrace/backend/internal/hasher"
	"github.com/pageza/foodtrace/backend/internal/service"
	"github.com/pageza/foodtrace/backend/internal/store"
	"github.com/pageza/foodtrace/backend/internal/testhelpers"
	"github.com/pageza/foodtrace/backend/internal/types"
)

func setupAccountService(t *testing.T) (*service.AccountService, *store.Users) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	users := store.NewUsers(db, store.WithLogger(testhelpers.DiscardLogger()))
	svc, err := service.NewAccountService(users, hasher.SHA256Hasher{}, testhelpers.DiscardLogger())
	require.NoError(t, err)
	return svc, users
}

func register(t *testing.T, svc *service.AccountService, email, password string) uint {
	t.Helper()
	user, err := svc.Register(context.Background(), &types.RegisterRequest{
		Email: email, Password: password, ConfirmPassword: password,
	})
	require.NoError(t, err)
	return user.ID
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	svc, users := setupAccountService(t)
	ctx := context.Background()

	id := register(t, svc, "  A@B.com ", "secret1")

	user, err := users.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "5b11618c2e44027877d0cd0921ed166b9f176f50587fc91e7534dd2946db77d6", user.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := setupAccountService(t)

	_, err := svc.Register(context.Background(), &types.RegisterRequest{
		Email: "not-an-email", Password: "secret1", ConfirmPassword: "secret2",
	})
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := verr.FieldMap()
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "confirmPassword")
}

func TestRegisterDuplicateConflicts(t *testing.T) {
	svc, users := setupAccountService(t)
	ctx := context.Background()
	register(t, svc, "a@b.com", "secret1")

	_, err := svc.Register(ctx, &types.RegisterRequest{
		Email: "A@b.com", Password: "other12", ConfirmPassword: "other12",
	})
	assert.ErrorIs(t, err, types.ErrConflict)

	// The first account keeps its credential.
	user, err := users.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "5b11618c2e44027877d0cd0921ed166b9f176f50587fc91e7534dd2946db77d6", user.PasswordHash)

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "a@b.com", Password: "secret1"})
	assert.NoError(t, err)
	_, err = svc.Login(ctx, &types.LoginRequest{Email: "a@b.com", Password: "other12"})
	assert.ErrorIs(t, err, types.ErrUnauthorized)
}

func TestLogin(t *testing.T) {
	svc, _ := setupAccountService(t)
	id := register(t, svc, "a@b.com", "secret1")
	ctx := context.Background()

	identity, err := svc.Login(ctx, &types.LoginRequest{Email: "A@B.COM", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, types.Identity{UserID: id, Email: "a@b.com"}, *identity)

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "a@b.com", Password: "wrong"})
	assert.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "nobody@b.com", Password: "secret1"})
	assert.ErrorIs(t, err, types.ErrUnauthorized)
}

func TestProfile(t *testing.T) {
	svc, _ := setupAccountService(t)
	id := register(t, svc, "a@b.com", "secret1")

	profile, err := svc.Profile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, &types.ProfileResponse{UserID: id, Email: "a@b.com"}, profile)

	_, err = svc.Profile(context.Background(), id+100)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	svc, _ := setupAccountService(t)
	id := register(t, svc, "a@b.com", "secret1")
	ctx := context.Background()

	err := svc.ChangePassword(ctx, id, &types.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "secret2"})
	assert.ErrorIs(t, err, types.ErrUnauthorized)

	err = svc.ChangePassword(ctx, id, &types.ChangePasswordRequest{OldPassword: "secret1", NewPassword: "secret1"})
	assert.True(t, types.IsValidation(err))

	require.NoError(t, svc.ChangePassword(ctx, id, &types.ChangePasswordRequest{OldPassword: "secret1", NewPassword: "secret2"}))

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "a@b.com", Password: "secret1"})
	assert.ErrorIs(t, err, types.ErrUnauthorized)
	_, err = svc.Login(ctx, &types.LoginRequest{Email: "a@b.com", Password: "secret2"})
	assert.NoError(t, err)
}

func TestDeleteAccount(t *testing.T) {
	svc, users := setupAccountService(t)
	id := register(t, svc, "a@b.com", "secret1")
	ctx := context.Background()

	err := svc.DeleteAccount(ctx, id, &types.DeleteUserRequest{Password: "secret1", ConfirmDeletion: false})
	assert.True(t, types.IsValidation(err))

	err = svc.DeleteAccount(ctx, id, &types.DeleteUserRequest{Password: "wrong", ConfirmDeletion: true})
	assert.ErrorIs(t, err, types.ErrUnauthorized)

	require.NoError(t, svc.DeleteAccount(ctx, id, &types.DeleteUserRequest{Password: "secret1", ConfirmDeletion: true}))
	_, err = users.FindByID(ctx, id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// The email is free again.
	register(t, svc, "a@b.com", "secret1")
}
