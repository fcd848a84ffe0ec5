package handlers

import (
	"errors"

	"equiptrack/internal/core/domain"
	"equiptrack/internal/core/services"
	"equiptrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// List returns loans visible to the caller
// @Summary List loans
// @Description Users see their own loans. Inventory admins and superadmins see all loans. Newest first.
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	loans, err := h.loanService.ListForCaller(c.Context(), userID, role)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"loans": loans,
	})
}

// ReturnRequest represents loan return request body
type ReturnRequest struct {
	LoanID uint `json:"loan_id"`
}

// Return marks a loan as returned
// @Summary Return a loan
// @Description Mark a borrowed loan as returned and restore item stock. Allowed for the borrower, inventory admins and superadmins.
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ReturnRequest true "Loan id"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans [put]
func (h *LoanHandler) Return(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	var req ReturnRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.LoanID == 0 {
		return response.BadRequest(c, "Loan ID is required")
	}

	loan, err := h.loanService.Return(c.Context(), req.LoanID, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrLoanAlreadyReturned):
			return response.BadRequest(c, "Loan has already been returned")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only return your own loans")
		default:
			return response.InternalServerError(c, "Failed to return loan")
		}
	}

	return response.Success(c, "Loan returned successfully", fiber.Map{
		"loan": loan.ToResponse(),
	})
}
