package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyChangesKeepsIdentity(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fat := 1.5
	item := &Item{ID: 3, Name: "Apple", Category: "Fruit", CreatedDate: created, UpdatedDate: created}

	item.ApplyChanges(&Item{
		ID:          99,
		Name:        "Pear",
		Category:    "Fruit",
		Fat:         &fat,
		CreatedDate: time.Now(),
	})

	assert.Equal(t, uint(3), item.ID)
	assert.Equal(t, created, item.CreatedDate)
	assert.Equal(t, created, item.UpdatedDate)
	assert.Equal(t, "Pear", item.Name)
	require.NotNil(t, item.Fat)
	assert.Equal(t, 1.5, *item.Fat)
}

func TestUserHidesPasswordHash(t *testing.T) {
	raw, err := json.Marshal(User{ID: 1, Email: "a@b.com", PasswordHash: "deadbeef"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "deadbeef")
}

func TestItemNullNutritionSerialisesAsNull(t *testing.T) {
	raw, err := json.Marshal(Item{Name: "Apple"})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"salt":null`)
}
