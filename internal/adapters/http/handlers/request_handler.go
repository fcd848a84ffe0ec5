package handlers

import (
	"errors"

	"equiptrack/internal/core/domain"
	"equiptrack/internal/core/services"
	"equiptrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequestHandler handles borrow request endpoints
type RequestHandler struct {
	requestService *services.RequestService
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// List returns the role-shaped request view
// @Summary List requests
// @Description Users see the catalog annotated with their own pending request per item. Inventory admins see the pending queue across all users. Superadmins see the plain catalog.
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	switch role {
	case domain.RoleAdminInventory:
		queue, err := h.requestService.PendingQueue(c.Context())
		if err != nil {
			return response.InternalServerError(c, "Failed to list pending requests")
		}
		return response.Success(c, "Pending requests retrieved successfully", fiber.Map{
			"requests": queue,
		})

	case domain.RoleSuperadmin:
		items, err := h.requestService.Catalog(c.Context())
		if err != nil {
			return response.InternalServerError(c, "Failed to list catalog")
		}
		return response.Success(c, "Catalog retrieved successfully", fiber.Map{
			"items": items,
		})

	default:
		items, err := h.requestService.CatalogForUser(c.Context(), userID)
		if err != nil {
			return response.InternalServerError(c, "Failed to list catalog")
		}
		return response.Success(c, "Catalog retrieved successfully", fiber.Map{
			"items": items,
		})
	}
}

// Submit creates a new borrow request
// @Summary Submit borrow request
// @Description Create a pending borrow request for an item
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SubmitInput true "Item and quantity"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /requests [post]
func (h *RequestHandler) Submit(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.ItemID == 0 {
		return response.BadRequest(c, "Item ID is required")
	}

	request, err := h.requestService.Submit(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Quantity must be at least 1")
		case errors.Is(err, domain.ErrItemNotFound):
			return response.NotFound(c, "Item not found")
		case errors.Is(err, domain.ErrInsufficientStock):
			return response.BadRequest(c, "Not enough stock for the requested quantity")
		case errors.Is(err, domain.ErrDuplicateRequest):
			return response.Conflict(c, "You already have a pending request for this item")
		default:
			return response.InternalServerError(c, "Failed to submit request")
		}
	}

	return response.Created(c, "Request submitted successfully", fiber.Map{
		"request": request.ToResponse(),
	})
}

// ActionRequest represents request state transition body
type ActionRequest struct {
	ID     uint   `json:"id"`
	Action string `json:"action"`
}

// Act applies a state transition to a request
// @Summary Act on a request
// @Description Cancel your own pending request, or approve/reject a pending request as inventory admin. Approving decrements stock and opens a loan.
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ActionRequest true "Request id and action (cancel, accept, approve, reject)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /requests [put]
func (h *RequestHandler) Act(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	var req ActionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ID == 0 {
		return response.BadRequest(c, "Request ID is required")
	}

	switch req.Action {
	case "cancel":
		result, err := h.requestService.Cancel(c.Context(), req.ID, userID)
		if err != nil {
			return h.mapWorkflowError(c, err, "Failed to cancel request")
		}
		return response.Success(c, "Request cancelled successfully", fiber.Map{
			"request": result.ToResponse(),
		})

	case "accept", "approve":
		if role != domain.RoleAdminInventory {
			return response.Forbidden(c, "Only inventory admins can approve requests")
		}
		result, err := h.requestService.Approve(c.Context(), req.ID, userID)
		if err != nil {
			return h.mapWorkflowError(c, err, "Failed to approve request")
		}
		return response.Success(c, "Request approved successfully", fiber.Map{
			"request": result.ToResponse(),
		})

	case "reject":
		if role != domain.RoleAdminInventory {
			return response.Forbidden(c, "Only inventory admins can reject requests")
		}
		result, err := h.requestService.Reject(c.Context(), req.ID, userID)
		if err != nil {
			return h.mapWorkflowError(c, err, "Failed to reject request")
		}
		return response.Success(c, "Request rejected successfully", fiber.Map{
			"request": result.ToResponse(),
		})

	default:
		return response.BadRequest(c, "Unknown action")
	}
}

// mapWorkflowError maps workflow errors to HTTP responses
func (h *RequestHandler) mapWorkflowError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrRequestNotFound):
		return response.NotFound(c, "Request not found")
	case errors.Is(err, domain.ErrRequestNotPending):
		return response.BadRequest(c, "Request is no longer pending")
	case errors.Is(err, domain.ErrInsufficientStock):
		return response.BadRequest(c, "Not enough stock to approve this request")
	default:
		return response.InternalServerError(c, fallback)
	}
}
