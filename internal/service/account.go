package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pageza/foodtrace/backend/internal/hasher"
	"github.com/pageza/foodtrace/backend/internal/models"
	"github.com/pageza/foodtrace/backend/internal/store"
	"github.com/pageza/foodtrace/backend/internal/types"
	"github.com/pageza/foodtrace/backend/internal/validation"
)

// AccountService implements registration, login and self-service account
// management on top of the user store and password hasher.
type AccountService struct {
	users  store.UserStore
	hasher hasher.Hasher
	log    *slog.Logger

	// dummyHash is verified against when the email is unknown so a failed
	// login costs the same either way.
	dummyHash string
}

// NewAccountService creates an AccountService.
func NewAccountService(users store.UserStore, h hasher.Hasher, log *slog.Logger) (*AccountService, error) {
	if log == nil {
		log = slog.Default()
	}
	dummy, err := h.Hash("foodtrace-timing-equaliser")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &AccountService{
		users:     users,
		hasher:    h,
		log:       log.With("component", "account"),
		dummyHash: dummy,
	}, nil
}

// Register creates an account. A taken email yields types.ErrConflict.
func (s *AccountService) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Register(req); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Create(ctx, req.Email, hash)
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "account registered", "user_id", user.ID)
	return user, nil
}

// Login checks the credentials. Unknown email and wrong password are
// indistinguishable: both return types.ErrUnauthorized.
func (s *AccountService) Login(ctx context.Context, req *types.LoginRequest) (*types.Identity, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Login(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, types.ErrNotFound) {
		s.hasher.Verify(req.Password, s.dummyHash)
		return nil, types.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		s.log.InfoContext(ctx, "login rejected", "user_id", user.ID)
		return nil, types.ErrUnauthorized
	}
	return &types.Identity{UserID: user.ID, Email: user.Email}, nil
}

func (s *AccountService) Profile(ctx context.Context, userID uint) (*types.ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &types.ProfileResponse{UserID: user.ID, Email: user.Email}, nil
}

// ChangePassword replaces the password after re-checking the old one.
func (s *AccountService) ChangePassword(ctx context.Context, userID uint, req *types.ChangePasswordRequest) error {
	if err := validation.ChangePassword(req); err != nil {
		return err
	}
	user, err := s.reauthenticate(ctx, userID, req.OldPassword)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, user.ID, hash)
}

// DeleteAccount removes the account after confirming the password.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uint, req *types.DeleteUserRequest) error {
	if err := validation.DeleteUser(req); err != nil {
		return err
	}
	user, err := s.reauthenticate(ctx, userID, req.Password)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "account deleted", "user_id", user.ID)
	return nil
}

func (s *AccountService) reauthenticate(ctx context.Context, userID uint, password string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, types.ErrUnauthorized
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
