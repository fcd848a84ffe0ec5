package services

import (
	"context"
	"errors"
	"strings"

	"equiptrack/internal/adapters/persistence/models"
	"equiptrack/internal/adapters/persistence/repositories"
	"equiptrack/internal/core/domain"

	"gorm.io/gorm"
)

// Inventory service errors
var (
	ErrItemNotFound       = errors.New("item not found")
	ErrInvalidQuantity    = errors.New("quantity must be zero or greater")
	ErrEmptyLabel         = errors.New("label must not be empty")
	ErrLabelAlreadyExists = errors.New("label already exists")
	ErrItemNameRequired   = errors.New("item name is required")
)

// InventoryService handles item and label business logic
type InventoryService struct {
	itemRepo repositories.ItemRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(itemRepo repositories.ItemRepository) *InventoryService {
	return &InventoryService{itemRepo: itemRepo}
}

// ListItems lists the full catalog with cleaned label arrays
func (s *InventoryService) ListItems(ctx context.Context) ([]*models.ItemResponse, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.ItemResponse, len(items))
	for i, item := range items {
		responses[i] = item.ToResponse()
	}
	return responses, nil
}

// ItemInput represents create/update item input
type ItemInput struct {
	ID       uint     `json:"id"`
	Name     string   `json:"name" validate:"required"`
	Brand    string   `json:"merk"`
	Quantity int      `json:"jumlah" validate:"gte=0"`
	Location string   `json:"lokasi"`
	Label    []string `json:"label"`
}

// CreateItem creates a new item with its labels
func (s *InventoryService) CreateItem(ctx context.Context, input *ItemInput) (*models.ItemResponse, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrItemNameRequired
	}
	if input.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	item := &models.Item{
		Name:     strings.TrimSpace(input.Name),
		Brand:    strings.TrimSpace(input.Brand),
		Quantity: input.Quantity,
		Location: strings.TrimSpace(input.Location),
	}

	if err := s.itemRepo.Create(ctx, item, cleanLabelInput(input.Label)); err != nil {
		return nil, err
	}

	created, err := s.itemRepo.GetByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	return created.ToResponse(), nil
}

// UpdateItem updates an item and replaces its labels
func (s *InventoryService) UpdateItem(ctx context.Context, input *ItemInput) (*models.ItemResponse, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrItemNameRequired
	}
	if input.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	existing, err := s.itemRepo.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Brand = strings.TrimSpace(input.Brand)
	existing.Quantity = input.Quantity
	existing.Location = strings.TrimSpace(input.Location)

	if err := s.itemRepo.Update(ctx, existing, cleanLabelInput(input.Label)); err != nil {
		return nil, err
	}

	updated, err := s.itemRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return updated.ToResponse(), nil
}

// DeleteItem deletes an item and its labels
func (s *InventoryService) DeleteItem(ctx context.Context, id uint) error {
	if _, err := s.itemRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}

// ListLabels lists distinct labels, sentinel excluded
func (s *InventoryService) ListLabels(ctx context.Context) ([]string, error) {
	labels, err := s.itemRepo.ListLabels(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l == "" || l == domain.NoLabelSentinel {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// CreateLabel adds a master label. Duplicate check is case-insensitive.
func (s *InventoryService) CreateLabel(ctx context.Context, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return ErrEmptyLabel
	}

	exists, err := s.itemRepo.LabelExists(ctx, label)
	if err != nil {
		return err
	}
	if exists {
		return ErrLabelAlreadyExists
	}

	return s.itemRepo.CreateMasterLabel(ctx, label)
}

// cleanLabelInput trims entries and drops empties and the sentinel before
// they reach storage.
func cleanLabelInput(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" || l == domain.NoLabelSentinel {
			continue
		}
		out = append(out, l)
	}
	return out
}
