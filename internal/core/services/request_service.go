package services

import (
	"context"
	"errors"
	"time"

	"equiptrack/internal/adapters/persistence/models"
	"equiptrack/internal/adapters/persistence/repositories"
	"equiptrack/internal/core/domain"

	"gorm.io/gorm"
)

// RequestService handles the borrow request workflow: a Pending request is
// approved, rejected or cancelled exactly once; approval decrements stock
// and opens the loan.
type RequestService struct {
	requestRepo repositories.RequestRepository
	itemRepo    repositories.ItemRepository
}

// NewRequestService creates a new request service
func NewRequestService(
	requestRepo repositories.RequestRepository,
	itemRepo repositories.ItemRepository,
) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		itemRepo:    itemRepo,
	}
}

// SubmitInput represents submit request input
type SubmitInput struct {
	ItemID   uint `json:"item_id" validate:"required"`
	Quantity int  `json:"jumlah" validate:"required,gte=1"`
}

// Submit files a Pending request for the caller. Stock is not reserved
// here; the authoritative check happens again at approval.
func (s *RequestService) Submit(ctx context.Context, userID uint, input *SubmitInput) (*models.Request, error) {
	if input.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}

	req := &models.Request{
		UserID:      userID,
		ItemID:      input.ItemID,
		Quantity:    input.Quantity,
		RequestedAt: time.Now(),
	}

	if err := s.requestRepo.Submit(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Cancel cancels the caller's own Pending request
func (s *RequestService) Cancel(ctx context.Context, requestID, userID uint) (*models.Request, error) {
	if err := s.requestRepo.Cancel(ctx, requestID, userID); err != nil {
		return nil, err
	}
	return s.requestRepo.GetByID(ctx, requestID)
}

// Approve approves a Pending request: stock is decremented (hard-fail when
// it would go negative) and the loan is created, all in one transaction.
func (s *RequestService) Approve(ctx context.Context, requestID, adminID uint) (*models.Request, error) {
	return s.requestRepo.Approve(ctx, requestID, adminID, time.Now())
}

// Reject rejects a Pending request; no stock effect
func (s *RequestService) Reject(ctx context.Context, requestID, adminID uint) (*models.Request, error) {
	return s.requestRepo.Reject(ctx, requestID, adminID, time.Now())
}

// CatalogForUser returns the catalog annotated with the caller's own
// Pending request per item. Other users' requests never appear here.
func (s *RequestService) CatalogForUser(ctx context.Context, userID uint) ([]*models.CatalogItemResponse, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := s.requestRepo.PendingByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byItem := make(map[uint]*models.Request, len(pending))
	for _, r := range pending {
		byItem[r.ItemID] = r
	}

	out := make([]*models.CatalogItemResponse, len(items))
	for i, item := range items {
		entry := &models.CatalogItemResponse{ItemResponse: item.ToResponse()}
		if r, ok := byItem[item.ID]; ok {
			entry.MyRequest = r.ToResponse()
		}
		out[i] = entry
	}
	return out, nil
}

// PendingQueue returns all Pending requests with requester identity for the
// inventory admin review screen.
func (s *RequestService) PendingQueue(ctx context.Context) ([]*models.PendingRequestResponse, error) {
	reqs, err := s.requestRepo.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*models.PendingRequestResponse, len(reqs))
	for i, r := range reqs {
		entry := &models.PendingRequestResponse{RequestResponse: r.ToResponse()}
		if r.User != nil {
			entry.RequesterEmail = r.User.Email
		}
		if r.Item != nil {
			entry.ItemName = r.Item.Name
			entry.ItemBrand = r.Item.Brand
			entry.ItemLocation = r.Item.Location
			entry.ItemQuantity = r.Item.Quantity
		}
		out[i] = entry
	}
	return out, nil
}

// Catalog returns the plain item list (superadmin read-only view)
func (s *RequestService) Catalog(ctx context.Context) ([]*models.ItemResponse, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*models.ItemResponse, len(items))
	for i, item := range items {
		out[i] = item.ToResponse()
	}
	return out, nil
}

// GetByID gets a request; not-found is normalized to the domain error
func (s *RequestService) GetByID(ctx context.Context, id uint) (*models.Request, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}
