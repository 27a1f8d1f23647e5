package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/foodtrace/backend/internal/models"
	"github.com/pageza/foodtrace/backend/internal/types"
)

// ItemStore is the persistence contract for food items.
type ItemStore interface {
	GetAll(ctx context.Context) ([]models.Item, error)
	GetByID(ctx context.Context, id uint) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) (*models.Item, error)
	Delete(ctx context.Context, id uint) error
}

// Items is the gorm implementation of ItemStore.
type Items struct {
	base
}

// NewItems creates an item store over db.
func NewItems(db *gorm.DB, opts ...Option) *Items {
	return &Items{base: newBase(db, "item_store", opts)}
}

// GetAll returns every item ordered by id. The result is never nil.
func (s *Items) GetAll(ctx context.Context) ([]models.Item, error) {
	items := make([]models.Item, 0)
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, s.fault(ctx, "list items", err)
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// GetByID returns the item with id or types.ErrNotFound.
func (s *Items) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).First(&item, id).Error
	if isNotFound(err) {
		return nil, fmt.Errorf("item %d: %w", id, types.ErrNotFound)
	}
	if err != nil {
		return nil, s.fault(ctx, "get item", err)
	}
	return &item, nil
}

// Create inserts item. Any caller supplied id or timestamps are replaced.
func (s *Items) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	now := s.timestamp()
	rec := *item
	rec.ID = 0
	rec.CreatedDate = now
	rec.UpdatedDate = now

	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, s.fault(ctx, "create item", err)
	}
	return &rec, nil
}

// Update copies the mutable fields of item onto the stored record with the
// same id. The stored id and creation date always win.
func (s *Items) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	existing, err := s.GetByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	existing.ApplyChanges(item)
	existing.UpdatedDate = s.timestamp()

	// Updates never inserts, so a concurrent delete is reported rather than undone.
	res := s.db.WithContext(ctx).Model(existing).Select("*").Updates(existing)
	if res.Error != nil {
		return nil, s.fault(ctx, "update item", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("item %d: %w", item.ID, types.ErrNotFound)
	}
	return existing, nil
}

// Delete removes the item with id or returns types.ErrNotFound.
func (s *Items) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Item{}, id)
	if res.Error != nil {
		return s.fault(ctx, "delete item", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item %d: %w", id, types.ErrNotFound)
	}
	return nil
}
