package repositories

import (
	"context"
	"errors"
	"time"

	"equiptrack/internal/adapters/persistence/models"
	"equiptrack/internal/core/domain"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// GetByID gets a loan by ID with relations
func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Item").
		Where("id = ?", id).
		First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// ListByUser lists a user's loans, newest first
func (r *loanRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Item").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&loans).Error
	return loans, err
}

// ListAll lists all loans, newest first
func (r *loanRepository) ListAll(ctx context.Context) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Item").
		Order("id DESC").
		Find(&loans).Error
	return loans, err
}

// CountBorrowed counts loans still out
func (r *loanRepository) CountBorrowed(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("status = ?", domain.LoanStatusBorrowed).
		Count(&count).Error
	return count, err
}

// Return flips a borrowed loan to returned and restores the item quantity,
// as one transaction. The status guard makes a second return touch zero
// rows, so stock is only restored once.
func (r *loanRepository) Return(ctx context.Context, loanID uint, now time.Time) (*models.Loan, error) {
	var returned models.Loan
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var loan models.Loan
		if err := tx.First(&loan, loanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLoanNotFound
			}
			return err
		}

		res := tx.Model(&models.Loan{}).
			Where("id = ? AND status = ?", loanID, domain.LoanStatusBorrowed).
			Updates(map[string]interface{}{
				"status":          domain.LoanStatusReturned,
				"tanggal_kembali": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrLoanAlreadyReturned
		}

		if err := tx.Model(&models.Item{}).
			Where("id = ?", loan.ItemID).
			Update("jumlah", gorm.Expr("jumlah + ?", loan.Quantity)).Error; err != nil {
			return err
		}

		return tx.First(&returned, loanID).Error
	})
	if err != nil {
		return nil, err
	}
	return &returned, nil
}
