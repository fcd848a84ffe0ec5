package handlers

import (
	"errors"

	"equiptrack/internal/core/services"
	"equiptrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ItemHandler handles inventory item and label endpoints
type ItemHandler struct {
	inventoryService *services.InventoryService
}

// NewItemHandler creates a new item handler
func NewItemHandler(inventoryService *services.InventoryService) *ItemHandler {
	return &ItemHandler{inventoryService: inventoryService}
}

// ListItems lists the full inventory
// @Summary List items
// @Description List all inventory items with their labels
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /items [get]
func (h *ItemHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.inventoryService.ListItems(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list items")
	}

	return response.Success(c, "Items retrieved successfully", fiber.Map{
		"items": items,
	})
}

// CreateItem creates a new inventory item
// @Summary Create item
// @Description Create a new inventory item with labels (admin only)
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ItemInput true "Item data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /items [post]
func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	var input services.ItemInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.inventoryService.CreateItem(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNameRequired):
			return response.BadRequest(c, "Item name is required")
		case errors.Is(err, services.ErrInvalidQuantity):
			return response.BadRequest(c, "Quantity must be zero or greater")
		default:
			return response.InternalServerError(c, "Failed to create item")
		}
	}

	return response.Created(c, "Item created successfully", fiber.Map{
		"item": item,
	})
}

// UpdateItem updates an inventory item
// @Summary Update item
// @Description Update an inventory item and replace its labels (admin only)
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ItemInput true "Item data with id"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /items [put]
func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	var input services.ItemInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.ID == 0 {
		return response.BadRequest(c, "Item ID is required")
	}

	item, err := h.inventoryService.UpdateItem(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			return response.NotFound(c, "Item not found")
		case errors.Is(err, services.ErrItemNameRequired):
			return response.BadRequest(c, "Item name is required")
		case errors.Is(err, services.ErrInvalidQuantity):
			return response.BadRequest(c, "Quantity must be zero or greater")
		default:
			return response.InternalServerError(c, "Failed to update item")
		}
	}

	return response.Success(c, "Item updated successfully", fiber.Map{
		"item": item,
	})
}

// DeleteItemRequest represents delete item request body
type DeleteItemRequest struct {
	ID uint `json:"id"`
}

// DeleteItem deletes an inventory item
// @Summary Delete item
// @Description Delete an inventory item and its labels (admin only)
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body DeleteItemRequest true "Item id"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /items [delete]
func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	var req DeleteItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ID == 0 {
		return response.BadRequest(c, "Item ID is required")
	}

	if err := h.inventoryService.DeleteItem(c.Context(), req.ID); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return response.NotFound(c, "Item not found")
		}
		return response.InternalServerError(c, "Failed to delete item")
	}

	return response.Success(c, "Item deleted successfully", nil)
}

// ListLabels lists distinct labels
// @Summary List labels
// @Description List all distinct labels in use
// @Tags Labels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /labels [get]
func (h *ItemHandler) ListLabels(c *fiber.Ctx) error {
	labels, err := h.inventoryService.ListLabels(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list labels")
	}

	return response.Success(c, "Labels retrieved successfully", fiber.Map{
		"labels": labels,
	})
}

// CreateLabelRequest represents create label request body
type CreateLabelRequest struct {
	Label string `json:"label"`
}

// CreateLabel adds a new master label
// @Summary Create label
// @Description Add a new label to the label catalog (admin only)
// @Tags Labels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateLabelRequest true "Label"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /labels [post]
func (h *ItemHandler) CreateLabel(c *fiber.Ctx) error {
	var req CreateLabelRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.inventoryService.CreateLabel(c.Context(), req.Label); err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyLabel):
			return response.BadRequest(c, "Label must not be empty")
		case errors.Is(err, services.ErrLabelAlreadyExists):
			return response.Conflict(c, "Label already exists")
		default:
			return response.InternalServerError(c, "Failed to create label")
		}
	}

	return response.Created(c, "Label created successfully", nil)
}
