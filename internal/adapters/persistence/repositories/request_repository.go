package repositories

import (
	"context"
	"errors"
	"time"

	"equiptrack/internal/adapters/persistence/models"
	"equiptrack/internal/core/domain"

	"gorm.io/gorm"
)

// requestRepository implements RequestRepository interface
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// Submit inserts a Pending request after re-checking stock and the
// one-pending-per-(user,item) rule inside the transaction.
func (r *requestRepository) Submit(ctx context.Context, req *models.Request) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.First(&item, req.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrItemNotFound
			}
			return err
		}
		if req.Quantity < 1 || req.Quantity > item.Quantity {
			return domain.ErrInsufficientStock
		}

		var pending int64
		if err := tx.Model(&models.Request{}).
			Where("user_id = ? AND item_id = ? AND status = ?", req.UserID, req.ItemID, domain.RequestStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return domain.ErrDuplicateRequest
		}

		req.Status = domain.RequestStatusPending
		return tx.Create(req).Error
	})
}

// GetByID gets a request by ID with relations
func (r *requestRepository) GetByID(ctx context.Context, id uint) (*models.Request, error) {
	var req models.Request
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Item").
		Where("id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListPending lists all pending requests, newest first, with requester and item
func (r *requestRepository) ListPending(ctx context.Context) ([]*models.Request, error) {
	var reqs []*models.Request
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Item").
		Where("status = ?", domain.RequestStatusPending).
		Order("id DESC").
		Find(&reqs).Error
	return reqs, err
}

// PendingByUser lists a user's pending requests
func (r *requestRepository) PendingByUser(ctx context.Context, userID uint) ([]*models.Request, error) {
	var reqs []*models.Request
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, domain.RequestStatusPending).
		Order("id DESC").
		Find(&reqs).Error
	return reqs, err
}

// CountPending counts pending requests
func (r *requestRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Request{}).
		Where("status = ?", domain.RequestStatusPending).
		Count(&count).Error
	return count, err
}

// Cancel flips the caller's own Pending request to Cancelled. The status
// guard in the WHERE clause keeps terminal requests terminal.
func (r *requestRepository) Cancel(ctx context.Context, requestID, userID uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Request{}).
		Where("id = ? AND user_id = ? AND status = ?", requestID, userID, domain.RequestStatusPending).
		Update("status", domain.RequestStatusCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Only the owner learns the request exists at all.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.Request{}).
			Where("id = ? AND user_id = ?", requestID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrRequestNotFound
		}
		return domain.ErrRequestNotPending
	}
	return nil
}

// Approve runs the approval as one transaction: decrement stock guarded
// against going negative, flip the request to Approved, and create the loan
// unless one already references this request. Any failure rolls back the
// whole unit and the request stays Pending.
func (r *requestRepository) Approve(ctx context.Context, requestID, adminID uint, now time.Time) (*models.Request, error) {
	var approved models.Request
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req models.Request
		if err := tx.First(&req, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRequestNotFound
			}
			return err
		}
		if !req.IsPending() {
			return domain.ErrRequestNotPending
		}

		// Stock decrement, hard-fails instead of going negative.
		res := tx.Model(&models.Item{}).
			Where("id = ? AND jumlah >= ?", req.ItemID, req.Quantity).
			Update("jumlah", gorm.Expr("jumlah - ?", req.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInsufficientStock
		}

		// Status guard again in the WHERE clause: two racing approvals
		// serialize on the item update above, the loser bails out here.
		res = tx.Model(&models.Request{}).
			Where("id = ? AND status = ?", requestID, domain.RequestStatusPending).
			Updates(map[string]interface{}{
				"status":      domain.RequestStatusApproved,
				"accepted_by": adminID,
				"accepted_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrRequestNotPending
		}

		// At most one loan per request. The unique index on request_id
		// backs this check up.
		var loans int64
		if err := tx.Model(&models.Loan{}).Where("request_id = ?", requestID).Count(&loans).Error; err != nil {
			return err
		}
		if loans == 0 {
			loan := &models.Loan{
				RequestID:  requestID,
				UserID:     req.UserID,
				ItemID:     req.ItemID,
				Quantity:   req.Quantity,
				Status:     domain.LoanStatusBorrowed,
				BorrowedAt: now,
			}
			if err := tx.Create(loan).Error; err != nil {
				return err
			}
		}

		return tx.First(&approved, requestID).Error
	})
	if err != nil {
		return nil, err
	}
	return &approved, nil
}

// Reject flips a Pending request to Rejected and stamps the admin. No
// stock effect.
func (r *requestRepository) Reject(ctx context.Context, requestID, adminID uint, now time.Time) (*models.Request, error) {
	var rejected models.Request
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Request{}).
			Where("id = ? AND status = ?", requestID, domain.RequestStatusPending).
			Updates(map[string]interface{}{
				"status":      domain.RequestStatusRejected,
				"accepted_by": adminID,
				"accepted_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return r.classifyMissTx(tx, requestID)
		}
		return tx.First(&rejected, requestID).Error
	})
	if err != nil {
		return nil, err
	}
	return &rejected, nil
}

// classifyMissTx distinguishes "request gone" from "request not pending"
// after a guarded update touched zero rows.
func (r *requestRepository) classifyMissTx(tx *gorm.DB, requestID uint) error {
	var count int64
	if err := tx.Model(&models.Request{}).Where("id = ?", requestID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrRequestNotFound
	}
	return domain.ErrRequestNotPending
}
