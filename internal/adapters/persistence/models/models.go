package models

import (
	"sort"
	"time"

	"equiptrack/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// Role represents roles table (superadmin, admin_inventory, user)
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:50;not null" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"column:password_hash;size:255;not null" json:"-"`
	RoleID    uint           `gorm:"not null;index" json:"role_id"`
	AvatarURL *string        `gorm:"size:255" json:"avatar_url"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Role *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	RoleID    uint      `json:"role_id"`
	Role      string    `json:"role,omitempty"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		RoleID:    u.RoleID,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
	if u.Role != nil {
		resp.Role = u.Role.Name
	}
	return resp
}

// RoleName returns the role name or "" when the relation is not loaded.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Inventory Tables
// ============================================================

// Item represents items table. Quantity is the authoritative available
// count: decremented on approval, incremented on return, never negative.
type Item struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Brand     string         `gorm:"column:merk;size:100" json:"merk"`
	Quantity  int            `gorm:"column:jumlah;not null" json:"jumlah"`
	Location  string         `gorm:"column:lokasi;size:200" json:"lokasi"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Labels []ItemLabel `gorm:"foreignKey:ItemID" json:"labels,omitempty"`
}

func (Item) TableName() string {
	return "items"
}

// ItemLabel represents item_labels table. Rows with a NULL item_id are
// master labels that exist only for the label picker.
type ItemLabel struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	ItemID *uint  `gorm:"index" json:"item_id"`
	Label  string `gorm:"size:100;not null" json:"label"`
}

func (ItemLabel) TableName() string {
	return "item_labels"
}

// ItemResponse DTO. Label is deduplicated, sorted, and excludes the "-"
// sentinel the frontend uses for "no label".
type ItemResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Brand     string    `json:"merk"`
	Quantity  int       `json:"jumlah"`
	Location  string    `json:"lokasi"`
	Label     []string  `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *Item) ToResponse() *ItemResponse {
	return &ItemResponse{
		ID:        i.ID,
		Name:      i.Name,
		Brand:     i.Brand,
		Quantity:  i.Quantity,
		Location:  i.Location,
		Label:     cleanLabels(i.Labels),
		CreatedAt: i.CreatedAt,
	}
}

// cleanLabels collapses duplicates, drops the sentinel and empties, and
// sorts for a stable display order.
func cleanLabels(labels []ItemLabel) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l.Label == "" || l.Label == domain.NoLabelSentinel {
			continue
		}
		if _, ok := seen[l.Label]; ok {
			continue
		}
		seen[l.Label] = struct{}{}
		out = append(out, l.Label)
	}
	sort.Strings(out)
	return out
}

// ============================================================
// Workflow Tables
// ============================================================

// Request represents requests table
type Request struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	ItemID      uint       `gorm:"not null;index" json:"item_id"`
	Quantity    int        `gorm:"column:jumlah;not null" json:"jumlah"`
	Status      string     `gorm:"size:20;not null;default:'Pending';index" json:"status"`
	RequestedAt time.Time  `gorm:"not null" json:"requested_at"`
	AcceptedBy  *uint      `json:"accepted_by"`
	AcceptedAt  *time.Time `json:"accepted_at"`

	// Relations
	User     *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Item     *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Acceptor *User `gorm:"foreignKey:AcceptedBy" json:"acceptor,omitempty"`
}

func (Request) TableName() string {
	return "requests"
}

func (r *Request) IsPending() bool {
	return r.Status == domain.RequestStatusPending
}

// RequestResponse DTO
type RequestResponse struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"user_id"`
	ItemID      uint       `json:"item_id"`
	Quantity    int        `json:"jumlah"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	AcceptedBy  *uint      `json:"accepted_by"`
	AcceptedAt  *time.Time `json:"accepted_at"`
}

func (r *Request) ToResponse() *RequestResponse {
	return &RequestResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		ItemID:      r.ItemID,
		Quantity:    r.Quantity,
		Status:      r.Status,
		RequestedAt: r.RequestedAt,
		AcceptedBy:  r.AcceptedBy,
		AcceptedAt:  r.AcceptedAt,
	}
}

// PendingRequestResponse is the admin queue row: a pending request joined
// with requester identity and item summary.
type PendingRequestResponse struct {
	*RequestResponse
	RequesterEmail string `json:"requester_email"`
	ItemName       string `json:"name"`
	ItemBrand      string `json:"merk"`
	ItemLocation   string `json:"lokasi"`
	ItemQuantity   int    `json:"item_jumlah"`
}

// CatalogItemResponse is the user view: an item annotated with the caller's
// own pending request, if any. Other users' requests are never included.
type CatalogItemResponse struct {
	*ItemResponse
	MyRequest *RequestResponse `json:"my_request"`
}

// Loan represents loans table. A loan is a historical record: it is never
// deleted, only flipped to returned.
type Loan struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	RequestID  uint       `gorm:"not null;uniqueIndex" json:"request_id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	ItemID     uint       `gorm:"not null;index" json:"item_id"`
	Quantity   int        `gorm:"column:jumlah;not null" json:"jumlah"`
	Status     string     `gorm:"size:20;not null;default:'borrowed';index" json:"status"`
	BorrowedAt time.Time  `gorm:"column:tanggal_pinjam;not null" json:"tanggal_pinjam"`
	ReturnedAt *time.Time `gorm:"column:tanggal_kembali" json:"tanggal_kembali"`

	// Relations
	Request *Request `gorm:"foreignKey:RequestID" json:"request,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Item    *Item    `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

func (l *Loan) IsReturned() bool {
	return l.Status == domain.LoanStatusReturned
}

// LoanResponse DTO
type LoanResponse struct {
	ID            uint       `json:"id"`
	RequestID     uint       `json:"request_id"`
	UserID        uint       `json:"user_id"`
	ItemID        uint       `json:"item_id"`
	Quantity      int        `json:"jumlah"`
	Status        string     `json:"status"`
	BorrowedAt    time.Time  `json:"tanggal_pinjam"`
	ReturnedAt    *time.Time `json:"tanggal_kembali"`
	ItemName      string     `json:"item_name,omitempty"`
	BorrowerEmail string     `json:"peminjam_email,omitempty"`
}

func (l *Loan) ToResponse() *LoanResponse {
	resp := &LoanResponse{
		ID:         l.ID,
		RequestID:  l.RequestID,
		UserID:     l.UserID,
		ItemID:     l.ItemID,
		Quantity:   l.Quantity,
		Status:     l.Status,
		BorrowedAt: l.BorrowedAt,
		ReturnedAt: l.ReturnedAt,
	}
	if l.Item != nil {
		resp.ItemName = l.Item.Name
	}
	if l.User != nil {
		resp.BorrowerEmail = l.User.Email
	}
	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Role{},
		&User{},
		&RefreshToken{},
		&Item{},
		&ItemLabel{},
		&Request{},
		&Loan{},
	)
}
