package service

import (
	"context"
	"time"

	"github.com/pageza/foodtrace/backend/internal/models"
	"github.com/pageza/foodtrace/backend/internal/types"
)

// IAccountService defines the account operations shared by both surfaces.
type IAccountService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *types.LoginRequest) (*types.Identity, error)
	Profile(ctx context.Context, userID uint) (*types.ProfileResponse, error)
	ChangePassword(ctx context.Context, userID uint, req *types.ChangePasswordRequest) error
	DeleteAccount(ctx context.Context, userID uint, req *types.DeleteUserRequest) error
}

// IImageService hands out item image upload URLs.
type IImageService interface {
	UploadURL(ctx context.Context, itemID uint, req *types.ImageUploadRequest) (*types.ImageUploadResponse, error)
}

// Presigner signs direct-to-bucket uploads. config.S3Config implements it.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string, expiration time.Duration) (string, error)
	ObjectURL(key string) string
}
