package repositories

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

// seedLoan inserts an approved-request loan directly.
func seedLoan(t *testing.T, db *gorm.DB, userID, itemID uint, quantity int) *models.Loan {
	t.Helper()

	req := &models.Request{
		UserID:      userID,
		ItemID:      itemID,
		Quantity:    quantity,
		Status:      domain.RequestStatusApproved,
		RequestedAt: time.Now(),
	}
	require.NoError(t, db.Create(req).Error)

	loan := &models.Loan{
		RequestID:  req.ID,
		UserID:     userID,
		ItemID:     itemID,
		Quantity:   quantity,
		Status:     domain.LoanStatusBorrowed,
		BorrowedAt: time.Now(),
	}
	require.NoError(t, db.Create(loan).Error)
	return loan
}

func TestReturnRestoresStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@equiptrack.internal", domain.RoleUser)
	item := seedItem(t, db, "Webcam", 0)
	loan := seedLoan(t, db, user.ID, item.ID, 2)

	returned, err := repo.Return(ctx, loan.ID, time.Now())
	require.NoError(t, err)

	assert.Equal(t, domain.LoanStatusReturned, returned.Status)
	assert.NotNil(t, returned.ReturnedAt)
	assert.Equal(t, 2, itemQuantity(t, db, item.ID))
}

func TestReturnIsIdempotentOnStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@equiptrack.internal", domain.RoleUser)
	item := seedItem(t, db, "Tripod", 1)
	loan := seedLoan(t, db, user.ID, item.ID, 1)

	_, err := repo.Return(ctx, loan.ID, time.Now())
	require.NoError(t, err)

	// Second return touches zero rows and must not restore stock again
	_, err = repo.Return(ctx, loan.ID, time.Now())
	assert.ErrorIs(t, err, domain.ErrLoanAlreadyReturned)
	assert.Equal(t, 2, itemQuantity(t, db, item.ID))
}

func TestReturnUnknownLoan(t *testing.T) {
	db := newTestDB(t)
	repo := NewLoanRepository(db)

	_, err := repo.Return(context.Background(), 99, time.Now())
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestListByUserScopesAndOrders(t *testing.T) {
	db := newTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@equiptrack.internal", domain.RoleUser)
	bob := seedUser(t, db, "bob@equiptrack.internal", domain.RoleUser)
	item := seedItem(t, db, "Monitor", 10)

	first := seedLoan(t, db, alice.ID, item.ID, 1)
	second := seedLoan(t, db, alice.ID, item.ID, 2)
	seedLoan(t, db, bob.ID, item.ID, 1)

	mine, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	require.NotNil(t, all[0].User)
	assert.Equal(t, "bob@equiptrack.internal", all[0].User.Email)

	borrowed, err := repo.CountBorrowed(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, borrowed)
}

// TestBorrowReturnCycle walks the Webcam scenario end to end: a single-unit
// item is requested, approved, unavailable while out, then returned.
func TestBorrowReturnCycle(t *testing.T) {
	db := newTestDB(t)
	requestRepo := NewRequestRepository(db)
	loanRepo := NewLoanRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@equiptrack.internal", domain.RoleUser)
	bob := seedUser(t, db, "bob@equiptrack.internal", domain.RoleUser)
	admin := seedUser(t, db, "admin@equiptrack.internal", domain.RoleAdminInventory)
	webcam := seedItem(t, db, "Webcam", 1)

	// Alice requests the only webcam and gets it
	req := &models.Request{UserID: alice.ID, ItemID: webcam.ID, Quantity: 1, RequestedAt: time.Now()}
	require.NoError(t, requestRepo.Submit(ctx, req))

	_, err := requestRepo.Approve(ctx, req.ID, admin.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, itemQuantity(t, db, webcam.ID))

	// Bob cannot request it while it is out
	err = requestRepo.Submit(ctx, &models.Request{
		UserID: bob.ID, ItemID: webcam.ID, Quantity: 1, RequestedAt: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Alice returns it and stock comes back
	var loan models.Loan
	require.NoError(t, db.Where("request_id = ?", req.ID).First(&loan).Error)
	_, err = loanRepo.Return(ctx, loan.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, itemQuantity(t, db, webcam.ID))

	// Now Bob's request goes through
	assert.NoError(t, requestRepo.Submit(ctx, &models.Request{
		UserID: bob.ID, ItemID: webcam.ID, Quantity: 1, RequestedAt: time.Now(),
	}))
}
