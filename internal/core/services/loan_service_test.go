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

// stubLoanRepository is a hand-rolled LoanRepository backed by a slice.
type stubLoanRepository struct {
	loans    []*models.Loan
	returned []uint
}

func (s *stubLoanRepository) GetByID(_ context.Context, id uint) (*models.Loan, error) {
	for _, l := range s.loans {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubLoanRepository) ListByUser(_ context.Context, userID uint) ([]*models.Loan, error) {
	var out []*models.Loan
	for _, l := range s.loans {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubLoanRepository) ListAll(_ context.Context) ([]*models.Loan, error) {
	return s.loans, nil
}

func (s *stubLoanRepository) CountBorrowed(_ context.Context) (int64, error) {
	var n int64
	for _, l := range s.loans {
		if l.Status == domain.LoanStatusBorrowed {
			n++
		}
	}
	return n, nil
}

func (s *stubLoanRepository) Return(ctx context.Context, loanID uint, now time.Time) (*models.Loan, error) {
	loan, err := s.GetByID(ctx, loanID)
	if err != nil {
		return nil, domain.ErrLoanNotFound
	}
	if loan.Status != domain.LoanStatusBorrowed {
		return nil, domain.ErrLoanAlreadyReturned
	}
	loan.Status = domain.LoanStatusReturned
	loan.ReturnedAt = &now
	s.returned = append(s.returned, loanID)
	return loan, nil
}

func newLoanFixture() *stubLoanRepository {
	return &stubLoanRepository{
		loans: []*models.Loan{
			{ID: 1, RequestID: 1, UserID: 10, ItemID: 1, Quantity: 1, Status: domain.LoanStatusBorrowed, BorrowedAt: time.Now()},
			{ID: 2, RequestID: 2, UserID: 20, ItemID: 2, Quantity: 2, Status: domain.LoanStatusBorrowed, BorrowedAt: time.Now()},
		},
	}
}

func TestReturnByBorrower(t *testing.T) {
	repo := newLoanFixture()
	svc := NewLoanService(repo)

	loan, err := svc.Return(context.Background(), 1, 10, domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusReturned, loan.Status)
	assert.Equal(t, []uint{1}, repo.returned)
}

func TestReturnByOtherUserForbidden(t *testing.T) {
	repo := newLoanFixture()
	svc := NewLoanService(repo)

	_, err := svc.Return(context.Background(), 1, 20, domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, repo.returned)
}

func TestReturnByElevatedRoles(t *testing.T) {
	for _, role := range []string{domain.RoleAdminInventory, domain.RoleSuperadmin} {
		repo := newLoanFixture()
		svc := NewLoanService(repo)

		_, err := svc.Return(context.Background(), 1, 99, role)
		assert.NoError(t, err, "role %s", role)
	}
}

func TestReturnAlreadyReturned(t *testing.T) {
	repo := newLoanFixture()
	svc := NewLoanService(repo)

	_, err := svc.Return(context.Background(), 1, 10, domain.RoleUser)
	require.NoError(t, err)

	_, err = svc.Return(context.Background(), 1, 10, domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrLoanAlreadyReturned)
	assert.Len(t, repo.returned, 1)
}

func TestReturnUnknownLoan(t *testing.T) {
	svc := NewLoanService(newLoanFixture())

	_, err := svc.Return(context.Background(), 99, 10, domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestListForCallerScoping(t *testing.T) {
	repo := newLoanFixture()
	svc := NewLoanService(repo)
	ctx := context.Background()

	own, err := svc.ListForCaller(ctx, 10, domain.RoleUser)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, uint(10), own[0].UserID)

	all, err := svc.ListForCaller(ctx, 10, domain.RoleAdminInventory)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	all, err = svc.ListForCaller(ctx, 10, domain.RoleSuperadmin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
