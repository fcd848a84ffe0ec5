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

// LoanService handles loan listing and returns
type LoanService struct {
	loanRepo repositories.LoanRepository
}

// NewLoanService creates a new loan service
func NewLoanService(loanRepo repositories.LoanRepository) *LoanService {
	return &LoanService{loanRepo: loanRepo}
}

// ListForCaller returns the caller's own loans for plain users and the
// full ledger for elevated roles, newest first.
func (s *LoanService) ListForCaller(ctx context.Context, userID uint, role string) ([]*models.LoanResponse, error) {
	var loans []*models.Loan
	var err error

	if domain.IsElevated(role) {
		loans, err = s.loanRepo.ListAll(ctx)
	} else {
		loans, err = s.loanRepo.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]*models.LoanResponse, len(loans))
	for i, l := range loans {
		out[i] = l.ToResponse()
	}
	return out, nil
}

// Return closes a borrowed loan and restores the stock. Only the borrower
// or an elevated role may return; a second return is rejected, so the
// quantity is restored exactly once.
func (s *LoanService) Return(ctx context.Context, loanID, callerID uint, role string) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}

	if loan.UserID != callerID && !domain.IsElevated(role) {
		return nil, domain.ErrForbidden
	}
	if loan.IsReturned() {
		return nil, domain.ErrLoanAlreadyReturned
	}

	return s.loanRepo.Return(ctx, loanID, time.Now())
}
