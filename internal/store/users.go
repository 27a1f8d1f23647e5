package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/foodtrace/backend/internal/models"
	"github.com/pageza/foodtrace/backend/internal/types"
)

// UserStore is the persistence contract for accounts.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id uint, passwordHash string) error
	Delete(ctx context.Context, id uint) error
}

// Users is the gorm implementation of UserStore.
type Users struct {
	base
}

// NewUsers creates a user store over db.
func NewUsers(db *gorm.DB, opts ...Option) *Users {
	return &Users{base: newBase(db, "user_store", opts)}
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if isNotFound(err) {
		return nil, fmt.Errorf("user %q: %w", email, types.ErrNotFound)
	}
	if err != nil {
		return nil, s.fault(ctx, "find user by email", err)
	}
	return &user, nil
}

func (s *Users) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if isNotFound(err) {
		return nil, fmt.Errorf("user %d: %w", id, types.ErrNotFound)
	}
	if err != nil {
		return nil, s.fault(ctx, "find user by id", err)
	}
	return &user, nil
}

// Create inserts a new account. Email uniqueness is enforced by the unique
// index, so two racing registrations cannot both succeed.
func (s *Users) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	user := models.User{Email: email, PasswordHash: passwordHash}
	err := s.db.WithContext(ctx).Create(&user).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user %q: %w", email, types.ErrConflict)
		}
		return nil, s.fault(ctx, "create user", err)
	}
	return &user, nil
}

func (s *Users) UpdatePasswordHash(ctx context.Context, id uint, passwordHash string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]any{"password_hash": passwordHash, "updated_at": s.timestamp()})
	if res.Error != nil {
		return s.fault(ctx, "update password hash", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, types.ErrNotFound)
	}
	return nil
}

func (s *Users) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return s.fault(ctx, "delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, types.ErrNotFound)
	}
	return nil
}
