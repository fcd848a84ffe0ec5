package domain

// Role names as stored in the roles table
const (
	RoleSuperadmin     = "superadmin"
	RoleAdminInventory = "admin_inventory"
	RoleUser           = "user"
)

// Request statuses. Pending is the only non-terminal state; a request in a
// terminal state never transitions again.
const (
	RequestStatusPending   = "Pending"
	RequestStatusApproved  = "Approved"
	RequestStatusRejected  = "Rejected"
	RequestStatusCancelled = "Cancelled"
)

// Loan statuses
const (
	LoanStatusBorrowed = "borrowed"
	LoanStatusReturned = "returned"
)

// NoLabelSentinel marks "no label" rows in item_labels; filtered from display.
const NoLabelSentinel = "-"

// IsElevated reports whether a role may act on other users' loans.
func IsElevated(role string) bool {
	return role == RoleSuperadmin || role == RoleAdminInventory
}
