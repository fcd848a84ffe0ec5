package repositories

import (
	"context"

	"equiptrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// itemRepository implements ItemRepository interface
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

// Create creates an item together with its label rows
func (r *itemRepository) Create(ctx context.Context, item *models.Item, labels []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return insertLabels(tx, item.ID, labels)
	})
}

// GetByID gets an item by ID with labels
func (r *itemRepository) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).Preload("Labels").Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List lists all items with labels, ordered by ID
func (r *itemRepository) List(ctx context.Context) ([]*models.Item, error) {
	var items []*models.Item
	err := r.db.WithContext(ctx).Preload("Labels").Order("id ASC").Find(&items).Error
	return items, err
}

// Update updates an item and replaces its label set
func (r *itemRepository) Update(ctx context.Context, item *models.Item, labels []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Item{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
			"name":   item.Name,
			"merk":   item.Brand,
			"jumlah": item.Quantity,
			"lokasi": item.Location,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", item.ID).Delete(&models.ItemLabel{}).Error; err != nil {
			return err
		}
		return insertLabels(tx, item.ID, labels)
	})
}

// Delete removes an item's labels and soft deletes the item
func (r *itemRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&models.ItemLabel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Item{}, id).Error
	})
}

// ListLabels lists distinct labels across all items and master rows
func (r *itemRepository) ListLabels(ctx context.Context) ([]string, error) {
	var labels []string
	err := r.db.WithContext(ctx).
		Model(&models.ItemLabel{}).
		Distinct("label").
		Order("label ASC").
		Pluck("label", &labels).Error
	return labels, err
}

// LabelExists checks for an existing label, case-insensitive
func (r *itemRepository) LabelExists(ctx context.Context, label string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ItemLabel{}).
		Where("LOWER(label) = LOWER(?)", label).
		Count(&count).Error
	return count > 0, err
}

// CreateMasterLabel inserts a label row without an item reference
func (r *itemRepository) CreateMasterLabel(ctx context.Context, label string) error {
	return r.db.WithContext(ctx).Create(&models.ItemLabel{Label: label}).Error
}

// insertLabels inserts one label row per entry, skipping duplicates within
// the given set.
func insertLabels(tx *gorm.DB, itemID uint, labels []string) error {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		id := itemID
		if err := tx.Create(&models.ItemLabel{ItemID: &id, Label: l}).Error; err != nil {
			return err
		}
	}
	return nil
}
