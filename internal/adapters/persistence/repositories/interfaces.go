package repositories

import (
	"context"
	"time"

	"equiptrack/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RoleRepository defines role repository interface
type RoleRepository interface {
	List(ctx context.Context) ([]*models.Role, error)
	GetByID(ctx context.Context, id uint) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
	Create(ctx context.Context, role *models.Role) error
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// ItemRepository defines inventory item repository interface
type ItemRepository interface {
	Create(ctx context.Context, item *models.Item, labels []string) error
	GetByID(ctx context.Context, id uint) (*models.Item, error)
	List(ctx context.Context) ([]*models.Item, error)
	Update(ctx context.Context, item *models.Item, labels []string) error
	Delete(ctx context.Context, id uint) error
	ListLabels(ctx context.Context) ([]string, error)
	LabelExists(ctx context.Context, label string) (bool, error)
	CreateMasterLabel(ctx context.Context, label string) error
}

// RequestRepository defines request workflow repository interface.
// Submit, Approve, Cancel and Reject each run as one transaction.
type RequestRepository interface {
	Submit(ctx context.Context, req *models.Request) error
	GetByID(ctx context.Context, id uint) (*models.Request, error)
	ListPending(ctx context.Context) ([]*models.Request, error)
	PendingByUser(ctx context.Context, userID uint) ([]*models.Request, error)
	CountPending(ctx context.Context) (int64, error)
	Cancel(ctx context.Context, requestID, userID uint) error
	Approve(ctx context.Context, requestID, adminID uint, now time.Time) (*models.Request, error)
	Reject(ctx context.Context, requestID, adminID uint, now time.Time) (*models.Request, error)
}

// LoanRepository defines loan repository interface
type LoanRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error)
	ListAll(ctx context.Context) ([]*models.Loan, error)
	CountBorrowed(ctx context.Context) (int64, error)
	Return(ctx context.Context, loanID uint, now time.Time) (*models.Loan, error)
}
