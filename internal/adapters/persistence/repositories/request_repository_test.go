package repositories

import (
	"context"
	"testing"
	"time"

	"equiptrack/internal/adapters/persistence/models"
	"equiptrack/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitCreatesPendingRequest(t *testing.T) {
	db := newTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@equiptrack.internal", domain.RoleUser)
	item := seedItem(t, db, "Webcam", 3)

	req := &models.Request{
		UserID:      user.ID,
		ItemID:      item.ID,
		Quantity:    2,
		RequestedAt: time.Now(),
	}
	require.NoError(t, repo.Submit(ctx, req))

	saved, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, saved.Status)
	assert.Equal(t, 2, saved.Quantity)

	// Submitting does not reserve stock
	assert.Equal(t, 3, itemQuantity(t, db, item.ID))
}

func TestSubmitUnknownItem(t *testing.T) {
	db := newTestDB(t)
	repo := NewRequestRepository(db)

	user := seedUser(t, db, "alice@equiptrack.internal", domain.RoleUser)

	err := repo.Submit(context.Background(), &models.Request{
		UserID:      user.ID,
		ItemID:      999,
		Quantity:    1,
		RequestedAt: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestSubmitQuantityBounds(t *testing.T) {
	db := newTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@equiptrack.internal", domain.RoleUser)
	item := seedItem(t, db, "Tripod", 2)

	err := repo.Submit(ctx, &models.Request{
		UserID: user.ID, ItemID: item.ID, Quantity: 0, RequestedAt: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	err = repo.Submit(ctx, &models.Request{
		UserID: user.ID, ItemID: item.ID, Quantity: 3, RequestedAt: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestSubmitRejectsDuplicatePending(t *testing.T) {
	db := newTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@equiptrack.internal", domain.RoleUser)
	item := seedItem(t, db, "Monitor", 5)

	require.NoError(t, repo.Submit(ctx, &models.Request{
		UserID: user.ID, ItemID: item.ID, Quantity: 1, RequestedAt: time.Now(),
	}))

	err := repo.Submit(ctx, &models.Request{
		UserID: user.ID, ItemID: item.ID, Quantity: 1, RequestedAt: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateRequest)

	// A different user can still request the same item
	bob := seedUser(t, db, "bob@equiptrack.internal", domain.RoleUser)
	assert.NoError(t, repo.Submit(ctx, &models.Request{
		UserID: bob.ID, ItemID: item.ID, Quantity: 1, RequestedAt: time.Now(),
	}))
}

func TestSubmitAllowedAfterCancel(t *testing.T) {
	db := newTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@equiptrack.internal", domain.RoleUser)
	item := seedItem(t, db, "Headset", 2)

	first := &models.Request{UserID: user.ID, ItemID: item.ID, Quantity: 1, RequestedAt: time.Now()}
	require.NoError(t, repo.Submit(ctx, first))
	require.NoError(t, repo.Cancel(ctx, first.ID, user.ID))

	// The pending slot is free again
	assert.NoError(t, repo.Submit(ctx, &models.Request{
		UserID: user.ID, ItemID: item.ID, Quantity: 1, RequestedAt: time.Now(),
	}))
}

func TestCancelGuards(t *testing.T) {
	db := newTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@equiptrack.internal", domain.RoleUser)
	bob := seedUser(t, db, "bob@equiptrack.internal", domain.RoleUser)
	item := seedItem(t, db, "Keyboard", 2)

	req := &models.Request{UserID: alice.ID, ItemID: item.ID, Quantity: 1, RequestedAt: time.Now()}
	require.NoError(t, repo.Submit(ctx, req))

	// Someone else's request looks like it does not exist
	assert.ErrorIs(t, repo.Cancel(ctx, req.ID, bob.ID), domain.ErrRequestNotFound)

	require.NoError(t, repo.Cancel(ctx, req.ID, alice.ID))

	// A cancelled request stays cancelled
	assert.ErrorIs(t, repo.Cancel(ctx, req.ID, alice.ID), domain.ErrRequestNotPending)

	saved, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusCancelled, saved.Status)
}

func TestApproveDecrementsStockAndOpensLoan(t *testing.T) {
	db := newTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@equiptrack.internal", domain.RoleUser)
	admin := seedUser(t, db, "admin@equiptrack.internal", domain.RoleAdminInventory)
	item := seedItem(t, db, "Projector", 4)

	req := &models.Request{UserID: user.ID, ItemID: item.ID, Quantity: 3, RequestedAt: time.Now()}
	require.NoError(t, repo.Submit(ctx, req))

	now := time.Now()
	approved, err := repo.Approve(ctx, req.ID, admin.ID, now)
	require.NoError(t, err)

	assert.Equal(t, domain.RequestStatusApproved, approved.Status)
	require.NotNil(t, approved.AcceptedBy)
	assert.Equal(t, admin.ID, *approved.AcceptedBy)
	assert.NotNil(t, approved.AcceptedAt)

	assert.Equal(t, 1, itemQuantity(t, db, item.ID))

	var loan models.Loan
	require.NoError(t, db.Where("request_id = ?", req.ID).First(&loan).Error)
	assert.Equal(t, domain.LoanStatusBorrowed, loan.Status)
	assert.Equal(t, user.ID, loan.UserID)
	assert.Equal(t, 3, loan.Quantity)
}

func TestApproveInsufficientStockLeavesRequestPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@equiptrack.internal", domain.RoleUser)
	admin := seedUser(t, db, "admin@equiptrack.internal", domain.RoleAdminInventory)
	item := seedItem(t, db, "Camera", 5)

	req := &models.Request{UserID: user.ID, ItemID: item.ID, Quantity: 4, RequestedAt: time.Now()}
	require.NoError(t, repo.Submit(ctx, req))

	// Stock drains between submit and approve
	require.NoError(t, db.Model(&models.Item{}).Where("id = ?", item.ID).Update("jumlah", 2).Error)

	_, err := repo.Approve(ctx, req.ID, admin.ID, time.Now())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nothing changed: stock intact, request still pending, no loan
	assert.Equal(t, 2, itemQuantity(t, db, item.ID))

	saved, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, saved.Status)

	var loans int64
	require.NoError(t, db.Model(&models.Loan{}).Where("request_id = ?", req.ID).Count(&loans).Error)
	assert.Zero(t, loans)
}

func TestApproveIsOncePerRequest(t *testing.T) {
	db := newTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@equiptrack.internal", domain.RoleUser)
	admin := seedUser(t, db, "admin@equiptrack.internal", domain.RoleAdminInventory)
	item := seedItem(t, db, "Speaker", 10)

	req := &models.Request{UserID: user.ID, ItemID: item.ID, Quantity: 2, RequestedAt: time.Now()}
	require.NoError(t, repo.Submit(ctx, req))

	_, err := repo.Approve(ctx, req.ID, admin.ID, time.Now())
	require.NoError(t, err)

	// Second approval bounces off the status guard
	_, err = repo.Approve(ctx, req.ID, admin.ID, time.Now())
	assert.ErrorIs(t, err, domain.ErrRequestNotPending)

	// Stock decremented once, exactly one loan
	assert.Equal(t, 8, itemQuantity(t, db, item.ID))

	var loans int64
	require.NoError(t, db.Model(&models.Loan{}).Where("request_id = ?", req.ID).Count(&loans).Error)
	assert.EqualValues(t, 1, loans)
}

func TestApproveUnknownRequest(t *testing.T) {
	db := newTestDB(t)
	repo := NewRequestRepository(db)

	admin := seedUser(t, db, "admin@equiptrack.internal", domain.RoleAdminInventory)

	_, err := repo.Approve(context.Background(), 42, admin.ID, time.Now())
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}

func TestRejectHasNoStockEffect(t *testing.T) {
	db := newTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@equiptrack.internal", domain.RoleUser)
	admin := seedUser(t, db, "admin@equiptrack.internal", domain.RoleAdminInventory)
	item := seedItem(t, db, "Microphone", 6)

	req := &models.Request{UserID: user.ID, ItemID: item.ID, Quantity: 2, RequestedAt: time.Now()}
	require.NoError(t, repo.Submit(ctx, req))

	rejected, err := repo.Reject(ctx, req.ID, admin.ID, time.Now())
	require.NoError(t, err)

	assert.Equal(t, domain.RequestStatusRejected, rejected.Status)
	require.NotNil(t, rejected.AcceptedBy)
	assert.Equal(t, admin.ID, *rejected.AcceptedBy)
	assert.Equal(t, 6, itemQuantity(t, db, item.ID))

	// A rejected request cannot be approved afterwards
	_, err = repo.Approve(ctx, req.ID, admin.ID, time.Now())
	assert.ErrorIs(t, err, domain.ErrRequestNotPending)
}

func TestPendingQueueOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@equiptrack.internal", domain.RoleUser)
	bob := seedUser(t, db, "bob@equiptrack.internal", domain.RoleUser)
	item := seedItem(t, db, "Laptop", 10)

	first := &models.Request{UserID: alice.ID, ItemID: item.ID, Quantity: 1, RequestedAt: time.Now()}
	require.NoError(t, repo.Submit(ctx, first))
	second := &models.Request{UserID: bob.ID, ItemID: item.ID, Quantity: 2, RequestedAt: time.Now()}
	require.NoError(t, repo.Submit(ctx, second))

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	// Newest first, relations loaded for the queue view
	assert.Equal(t, second.ID, pending[0].ID)
	require.NotNil(t, pending[0].User)
	assert.Equal(t, "bob@equiptrack.internal", pending[0].User.Email)
	require.NotNil(t, pending[0].Item)
	assert.Equal(t, "Laptop", pending[0].Item.Name)

	count, err := repo.CountPending(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
