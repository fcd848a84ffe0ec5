package repositories

import (
	"context"
	"testing"

	"equiptrack/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateItemWithLabels(t *testing.T) {
	db := newTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	item := &models.Item{Name: "Webcam", Brand: "Logi", Quantity: 3, Location: "Shelf A"}
	require.NoError(t, repo.Create(ctx, item, []string{"video", "usb", "video"}))

	saved, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Webcam", saved.Name)

	// Duplicates within one set are collapsed on insert
	assert.ElementsMatch(t, []string{"video", "usb"}, saved.ToResponse().Label)
}

func TestUpdateItemReplacesLabels(t *testing.T) {
	db := newTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	item := &models.Item{Name: "Tripod", Quantity: 2}
	require.NoError(t, repo.Create(ctx, item, []string{"photo"}))

	item.Name = "Tripod L"
	item.Quantity = 4
	require.NoError(t, repo.Update(ctx, item, []string{"photo", "video"}))

	saved, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tripod L", saved.Name)
	assert.Equal(t, 4, saved.Quantity)
	assert.ElementsMatch(t, []string{"photo", "video"}, saved.ToResponse().Label)

	// Old set fully replaced, not merged
	require.NoError(t, repo.Update(ctx, item, nil))
	saved, err = repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, saved.ToResponse().Label)
}

func TestDeleteItemRemovesLabels(t *testing.T) {
	db := newTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	item := &models.Item{Name: "Monitor", Quantity: 1}
	require.NoError(t, repo.Create(ctx, item, []string{"display"}))

	require.NoError(t, repo.Delete(ctx, item.ID))

	_, err := repo.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var labels int64
	require.NoError(t, db.Model(&models.ItemLabel{}).Where("item_id = ?", item.ID).Count(&labels).Error)
	assert.Zero(t, labels)
}

func TestListLabelsDistinctSorted(t *testing.T) {
	db := newTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	a := &models.Item{Name: "A", Quantity: 1}
	require.NoError(t, repo.Create(ctx, a, []string{"video", "audio"}))
	b := &models.Item{Name: "B", Quantity: 1}
	require.NoError(t, repo.Create(ctx, b, []string{"video", "cable"}))
	require.NoError(t, repo.CreateMasterLabel(ctx, "spare"))

	labels, err := repo.ListLabels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"audio", "cable", "spare", "video"}, labels)
}

func TestLabelExistsIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateMasterLabel(ctx, "Audio"))

	exists, err := repo.LabelExists(ctx, "audio")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.LabelExists(ctx, "AUDIO")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.LabelExists(ctx, "cable")
	require.NoError(t, err)
	assert.False(t, exists)
}
