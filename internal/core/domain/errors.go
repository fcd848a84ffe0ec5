package domain

import "errors"

// Common domain errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

// Workflow errors. These cross the repository/service boundary: the guarded
// transactions in the repositories return them and handlers map them to
// HTTP status codes.
var (
	ErrItemNotFound        = errors.New("item not found")
	ErrRequestNotFound     = errors.New("request not found")
	ErrLoanNotFound        = errors.New("loan not found")
	ErrInsufficientStock   = errors.New("not enough stock")
	ErrDuplicateRequest    = errors.New("pending request already exists for this item")
	ErrRequestNotPending   = errors.New("request is not pending")
	ErrLoanAlreadyReturned = errors.New("loan already returned")
)
