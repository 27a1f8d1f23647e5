package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/foodtrace/backend/internal/store"
	"github.com/pageza/foodtrace/backend/internal/types"
	"github.com/pageza/foodtrace/backend/internal/validation"
)

// DefaultUploadExpiry bounds how long a presigned upload URL stays valid.
const DefaultUploadExpiry = 15 * time.Minute

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageService issues presigned S3 upload URLs for item images. The client
// uploads the file directly, then stores the returned imageUrl on the item.
type ImageService struct {
	items     store.ItemStore
	presigner Presigner
	expiry    time.Duration
	log       *slog.Logger
}

// NewImageService creates an ImageService.
func NewImageService(items store.ItemStore, presigner Presigner, log *slog.Logger) *ImageService {
	if log == nil {
		log = slog.Default()
	}
	return &ImageService{
		items:     items,
		presigner: presigner,
		expiry:    DefaultUploadExpiry,
		log:       log.With("component", "image"),
	}
}

// UploadURL returns a presigned PUT URL for a new image of an existing item.
func (s *ImageService) UploadURL(ctx context.Context, itemID uint, req *types.ImageUploadRequest) (*types.ImageUploadResponse, error) {
	if err := validation.ImageUpload(req); err != nil {
		return nil, err
	}
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("items/%d/%s%s", itemID, uuid.NewString(), imageExtensions[req.ContentType])
	url, err := s.presigner.PresignPut(ctx, key, req.ContentType, s.expiry)
	if err != nil {
		s.log.ErrorContext(ctx, "presign upload failed", "item_id", itemID, "error", err)
		return nil, fmt.Errorf("presign upload: %w", types.ErrStorage)
	}

	return &types.ImageUploadResponse{
		UploadURL: url,
		ImageURL:  s.presigner.ObjectURL(key),
		ExpiresIn: int(s.expiry / time.Second),
	}, nil
}
