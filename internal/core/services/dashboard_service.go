package services

import (
	"context"

	"equiptrack/internal/adapters/persistence/models"
	"equiptrack/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService aggregates per-role landing page data
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DashboardStats represents the dashboard counters
type DashboardStats struct {
	TotalItems      int64 `json:"total_items"`
	PendingRequests int64 `json:"pending_requests"`
	ActiveLoans     int64 `json:"active_loans"`
	TotalUsers      int64 `json:"total_users,omitempty"`
}

// DashboardResponse represents the dashboard payload
type DashboardResponse struct {
	Stats *DashboardStats        `json:"stats"`
	Items []*models.ItemResponse `json:"items"`
}

// GetDashboard builds the dashboard for the caller's role. Plain users see
// counters scoped to themselves; elevated roles see organization-wide
// counters, superadmin additionally the user count.
func (s *DashboardService) GetDashboard(ctx context.Context, userID uint, role string) (*DashboardResponse, error) {
	stats := &DashboardStats{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Item{}).Count(&stats.TotalItems).Error; err != nil {
		return nil, err
	}

	requestQuery := db.Model(&models.Request{}).Where("status = ?", domain.RequestStatusPending)
	loanQuery := db.Model(&models.Loan{}).Where("status = ?", domain.LoanStatusBorrowed)
	if !domain.IsElevated(role) {
		requestQuery = requestQuery.Where("user_id = ?", userID)
		loanQuery = loanQuery.Where("user_id = ?", userID)
	}

	if err := requestQuery.Count(&stats.PendingRequests).Error; err != nil {
		return nil, err
	}
	if err := loanQuery.Count(&stats.ActiveLoans).Error; err != nil {
		return nil, err
	}

	if role == domain.RoleSuperadmin {
		if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
			return nil, err
		}
	}

	var items []*models.Item
	if err := db.Preload("Labels").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	itemResponses := make([]*models.ItemResponse, len(items))
	for i, item := range items {
		itemResponses[i] = item.ToResponse()
	}

	return &DashboardResponse{
		Stats: stats,
		Items: itemResponses,
	}, nil
}
