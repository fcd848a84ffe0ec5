package services

import (
	"context"
	"errors"
	"strings"

	"equiptrack/internal/adapters/persistence/models"
	"equiptrack/internal/adapters/persistence/repositories"
	"equiptrack/internal/pkg/pagination"
	"equiptrack/internal/pkg/password"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrUserNotFoundSvc    = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrRoleNotFound       = errors.New("role not found")
	ErrOldPasswordWrong   = errors.New("old password is incorrect")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own account")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// UserService handles user management and profile business logic
type UserService struct {
	userRepo repositories.UserRepository
	roleRepo repositories.RoleRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// ListUsers lists all users with pagination
func (s *UserService) ListUsers(ctx context.Context, params *pagination.Params) (*pagination.Response, error) {
	users, total, err := s.userRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	userResponses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = user.ToResponse()
	}

	return pagination.NewResponse(userResponses, params, total), nil
}

// CreateUserInput represents create user input (superadmin)
type CreateUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	RoleID   uint   `json:"role_id" validate:"required"`
}

// CreateUser creates a new user account
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if !password.ValidatePassword(input.Password) {
		return nil, ErrWeakPassword
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	role, err := s.roleRepo.GetByID(ctx, input.RoleID)
	if err != nil {
		return nil, ErrRoleNotFound
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: hashedPassword,
		RoleID:   role.ID,
		Role:     role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUserInput represents update user input (superadmin)
type UpdateUserInput struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	RoleID   *uint   `json:"role_id"`
}

// UpdateUser updates a user account. Password is only rehashed when one is
// supplied.
func (s *UserService) UpdateUser(ctx context.Context, userID uint, input *UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFoundSvc
		}
		return nil, err
	}

	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if email != user.Email {
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}

	if input.RoleID != nil {
		role, err := s.roleRepo.GetByID(ctx, *input.RoleID)
		if err != nil {
			return nil, ErrRoleNotFound
		}
		user.RoleID = role.ID
		user.Role = role
	}

	if input.Password != nil && *input.Password != "" {
		if !password.ValidatePassword(*input.Password) {
			return nil, ErrWeakPassword
		}
		hashed, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser deletes a user account. Self-deletion is refused.
func (s *UserService) DeleteUser(ctx context.Context, userID, callerID uint) error {
	if userID == callerID {
		return ErrCannotDeleteSelf
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFoundSvc
		}
		return err
	}

	return s.userRepo.Delete(ctx, userID)
}

// GetProfile gets the caller's own profile
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFoundSvc
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateAvatar sets the caller's avatar reference
func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, avatarURL string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFoundSvc
		}
		return err
	}

	user.AvatarURL = &avatarURL
	return s.userRepo.Update(ctx, user)
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"password" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// ChangePassword verifies the old password and stores a new hash
func (s *UserService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFoundSvc
		}
		return err
	}

	if !password.Verify(input.OldPassword, user.Password) {
		return ErrOldPasswordWrong
	}
	if !password.ValidatePassword(input.NewPassword) {
		return ErrWeakPassword
	}

	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	return s.userRepo.Update(ctx, user)
}

// ListRoles lists all roles
func (s *UserService) ListRoles(ctx context.Context) ([]*models.Role, error) {
	return s.roleRepo.List(ctx)
}
