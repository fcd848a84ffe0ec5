package services

import (
	"context"
	"testing"
	"time"

	"equiptrack/internal/adapters/persistence/models"
	"equiptrack/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubRequestRepository records submissions and serves canned pending sets.
type stubRequestRepository struct {
	submitted []*models.Request
	submitErr error
	pending   []*models.Request
	byID      map[uint]*models.Request
}

func (s *stubRequestRepository) Submit(_ context.Context, req *models.Request) error {
	if s.submitErr != nil {
		return s.submitErr
	}
	req.ID = uint(len(s.submitted) + 1)
	req.Status = domain.RequestStatusPending
	s.submitted = append(s.submitted, req)
	return nil
}

func (s *stubRequestRepository) GetByID(_ context.Context, id uint) (*models.Request, error) {
	if r, ok := s.byID[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRequestRepository) ListPending(_ context.Context) ([]*models.Request, error) {
	return s.pending, nil
}

func (s *stubRequestRepository) PendingByUser(_ context.Context, userID uint) ([]*models.Request, error) {
	var out []*models.Request
	for _, r := range s.pending {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRequestRepository) CountPending(_ context.Context) (int64, error) {
	return int64(len(s.pending)), nil
}

func (s *stubRequestRepository) Cancel(_ context.Context, requestID, userID uint) error {
	r, ok := s.byID[requestID]
	if !ok || r.UserID != userID {
		return domain.ErrRequestNotFound
	}
	if r.Status != domain.RequestStatusPending {
		return domain.ErrRequestNotPending
	}
	r.Status = domain.RequestStatusCancelled
	return nil
}

func (s *stubRequestRepository) Approve(_ context.Context, requestID, adminID uint, now time.Time) (*models.Request, error) {
	r, ok := s.byID[requestID]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	r.Status = domain.RequestStatusApproved
	r.AcceptedBy = &adminID
	r.AcceptedAt = &now
	return r, nil
}

func (s *stubRequestRepository) Reject(_ context.Context, requestID, adminID uint, now time.Time) (*models.Request, error) {
	r, ok := s.byID[requestID]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	r.Status = domain.RequestStatusRejected
	r.AcceptedBy = &adminID
	r.AcceptedAt = &now
	return r, nil
}

// stubItemRepository serves a fixed catalog.
type stubItemRepository struct {
	items []*models.Item
}

func (s *stubItemRepository) Create(_ context.Context, item *models.Item, _ []string) error {
	s.items = append(s.items, item)
	return nil
}

func (s *stubItemRepository) GetByID(_ context.Context, id uint) (*models.Item, error) {
	for _, i := range s.items {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubItemRepository) List(_ context.Context) ([]*models.Item, error) {
	return s.items, nil
}

func (s *stubItemRepository) Update(_ context.Context, _ *models.Item, _ []string) error {
	return nil
}

func (s *stubItemRepository) Delete(_ context.Context, _ uint) error { return nil }

func (s *stubItemRepository) ListLabels(_ context.Context) ([]string, error) { return nil, nil }

func (s *stubItemRepository) LabelExists(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (s *stubItemRepository) CreateMasterLabel(_ context.Context, _ string) error { return nil }

func TestSubmitValidatesQuantity(t *testing.T) {
	repo := &stubRequestRepository{}
	svc := NewRequestService(repo, &stubItemRepository{})

	_, err := svc.Submit(context.Background(), 1, &SubmitInput{ItemID: 1, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.submitted)
}

func TestSubmitStampsCallerAndTime(t *testing.T) {
	repo := &stubRequestRepository{}
	svc := NewRequestService(repo, &stubItemRepository{})

	req, err := svc.Submit(context.Background(), 7, &SubmitInput{ItemID: 3, Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, uint(7), req.UserID)
	assert.Equal(t, uint(3), req.ItemID)
	assert.Equal(t, domain.RequestStatusPending, req.Status)
	assert.WithinDuration(t, time.Now(), req.RequestedAt, time.Minute)
}

func TestSubmitPassesRepositoryErrorThrough(t *testing.T) {
	repo := &stubRequestRepository{submitErr: domain.ErrDuplicateRequest}
	svc := NewRequestService(repo, &stubItemRepository{})

	_, err := svc.Submit(context.Background(), 1, &SubmitInput{ItemID: 1, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicateRequest)
}

func TestCatalogForUserAnnotatesOwnPendingOnly(t *testing.T) {
	items := &stubItemRepository{items: []*models.Item{
		{ID: 1, Name: "Webcam", Quantity: 1},
		{ID: 2, Name: "Tripod", Quantity: 3},
	}}
	repo := &stubRequestRepository{pending: []*models.Request{
		{ID: 1, UserID: 7, ItemID: 1, Quantity: 1, Status: domain.RequestStatusPending},
		{ID: 2, UserID: 8, ItemID: 2, Quantity: 1, Status: domain.RequestStatusPending},
	}}
	svc := NewRequestService(repo, items)

	catalog, err := svc.CatalogForUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, catalog, 2)

	// Own pending request is attached to its item
	require.NotNil(t, catalog[0].MyRequest)
	assert.Equal(t, uint(1), catalog[0].MyRequest.ID)

	// Another user's request never leaks into the view
	assert.Nil(t, catalog[1].MyRequest)
}

func TestPendingQueueJoinsRequesterAndItem(t *testing.T) {
	repo := &stubRequestRepository{pending: []*models.Request{
		{
			ID: 1, UserID: 7, ItemID: 1, Quantity: 2, Status: domain.RequestStatusPending,
			User: &models.User{ID: 7, Email: "alice@equiptrack.internal"},
			Item: &models.Item{ID: 1, Name: "Webcam", Brand: "Logi", Location: "Shelf A", Quantity: 4},
		},
	}}
	svc := NewRequestService(repo, &stubItemRepository{})

	queue, err := svc.PendingQueue(context.Background())
	require.NoError(t, err)
	require.Len(t, queue, 1)

	assert.Equal(t, "alice@equiptrack.internal", queue[0].RequesterEmail)
	assert.Equal(t, "Webcam", queue[0].ItemName)
	assert.Equal(t, "Logi", queue[0].ItemBrand)
	assert.Equal(t, "Shelf A", queue[0].ItemLocation)
	assert.Equal(t, 4, queue[0].ItemQuantity)
	assert.Equal(t, 2, queue[0].Quantity)
}

func TestGetByIDNormalizesNotFound(t *testing.T) {
	svc := NewRequestService(&stubRequestRepository{}, &stubItemRepository{})

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}
