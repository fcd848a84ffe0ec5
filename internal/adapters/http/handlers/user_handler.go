package handlers

import (
	"errors"
	"strconv"

	"equiptrack/internal/core/services"
	"equiptrack/internal/pkg/pagination"
	"equiptrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management and profile endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers lists all user accounts
// @Summary List users
// @Description List all user accounts with pagination (superadmin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.userService.ListUsers(c.Context(), params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved successfully", result)
}

// CreateUser creates a new user account
// @Summary Create user
// @Description Create a new user account with a role (superadmin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateUserInput true "User data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if input.Password == "" {
		return response.BadRequest(c, "Password is required")
	}
	if input.RoleID == 0 {
		return response.BadRequest(c, "Role is required")
	}

	user, err := h.userService.CreateUser(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return response.Conflict(c, "Email already exists")
		case errors.Is(err, services.ErrRoleNotFound):
			return response.BadRequest(c, "Role not found")
		case errors.Is(err, services.ErrWeakPassword):
			return response.BadRequest(c, "Password must be at least 8 characters")
		default:
			return response.InternalServerError(c, "Failed to create user")
		}
	}

	return response.Created(c, "User created successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// UpdateUser updates a user account
// @Summary Update user
// @Description Update a user's email, password or role (superadmin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body services.UpdateUserInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateUser(c.Context(), uint(userID), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFoundSvc):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return response.Conflict(c, "Email already exists")
		case errors.Is(err, services.ErrRoleNotFound):
			return response.BadRequest(c, "Role not found")
		case errors.Is(err, services.ErrWeakPassword):
			return response.BadRequest(c, "Password must be at least 8 characters")
		default:
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	return response.Success(c, "User updated successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// DeleteUser deletes a user account
// @Summary Delete user
// @Description Delete a user account (superadmin only, not your own)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	callerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.userService.DeleteUser(c.Context(), uint(userID), callerID); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFoundSvc):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrCannotDeleteSelf):
			return response.BadRequest(c, "Cannot delete your own account")
		default:
			return response.InternalServerError(c, "Failed to delete user")
		}
	}

	return response.Success(c, "User deleted successfully", nil)
}

// GetProfile returns the caller's profile
// @Summary Get profile
// @Description Get the authenticated user's profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFoundSvc) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get profile")
	}

	return response.Success(c, "Profile retrieved successfully", fiber.Map{
		"user": profile,
	})
}

// UpdateProfileRequest represents profile update request body. Either a new
// avatar URL or an old/new password pair.
type UpdateProfileRequest struct {
	AvatarURL   string `json:"avatarUrl"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

// UpdateProfile updates the caller's avatar or password
// @Summary Update profile
// @Description Update the authenticated user's avatar URL, or change the password by supplying the old and new one
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateProfileRequest true "Profile changes"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.NewPassword != "" {
		if req.Password == "" {
			return response.BadRequest(c, "Current password is required")
		}

		input := &services.ChangePasswordInput{
			OldPassword: req.Password,
			NewPassword: req.NewPassword,
		}
		if err := h.userService.ChangePassword(c.Context(), userID, input); err != nil {
			switch {
			case errors.Is(err, services.ErrOldPasswordWrong):
				return response.BadRequest(c, "Old password is incorrect")
			case errors.Is(err, services.ErrWeakPassword):
				return response.BadRequest(c, "Password must be at least 8 characters")
			case errors.Is(err, services.ErrUserNotFoundSvc):
				return response.NotFound(c, "User not found")
			default:
				return response.InternalServerError(c, "Failed to change password")
			}
		}

		return response.Success(c, "Password changed successfully", nil)
	}

	if req.AvatarURL != "" {
		if err := h.userService.UpdateAvatar(c.Context(), userID, req.AvatarURL); err != nil {
			if errors.Is(err, services.ErrUserNotFoundSvc) {
				return response.NotFound(c, "User not found")
			}
			return response.InternalServerError(c, "Failed to update avatar")
		}

		return response.Success(c, "Avatar updated successfully", nil)
	}

	return response.BadRequest(c, "Nothing to update")
}

// ListRoles lists all assignable roles
// @Summary List roles
// @Description List all roles that can be assigned to users (superadmin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /roles [get]
func (h *UserHandler) ListRoles(c *fiber.Ctx) error {
	roles, err := h.userService.ListRoles(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list roles")
	}

	return response.Success(c, "Roles retrieved successfully", fiber.Map{
		"roles": roles,
	})
}
