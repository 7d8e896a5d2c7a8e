package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/eventdesk/eventdesk-api/internal/auth"
	"github.com/eventdesk/eventdesk-api/internal/models"
	"github.com/eventdesk/eventdesk-api/internal/policy"
	"gorm.io/gorm"
)

type UserHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewUserHandler(db *gorm.DB, authHandler *auth.AuthHandler) *UserHandler {
	return &UserHandler{db: db, authHandler: authHandler}
}

type UserResponse struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Phone string      `json:"phone,omitempty"`
	Role  models.Role `json:"role"`
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Role:  user.Role,
	}
}

type RegisterUserRequest struct {
	Body struct {
		Name     string      `json:"name" doc:"Full name"`
		Email    string      `json:"email" format:"email" required:"true"`
		Phone    string      `json:"phone,omitempty"`
		Password string      `json:"password" minLength:"6" required:"true"`
		Role     models.Role `json:"role,omitempty" enum:"participant,organizer,admin" doc:"Defaults to participant"`
	}
}

type RegisterUserResponse struct {
	Body UserResponse
}

func (h *UserHandler) HandleRegister(ctx context.Context, input *RegisterUserRequest) (*RegisterUserResponse, error) {
	var existing models.User
	err := h.db.Where("email = ?", input.Body.Email).First(&existing).Error
	if err == nil {
		return nil, huma.Error400BadRequest("This email is already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error500InternalServerError("Database error: " + err.Error())
	}

	hash, err := auth.HashPassword(input.Body.Password)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to hash password")
	}

	role := input.Body.Role
	if role == "" {
		role = models.RoleParticipant
	}

	user := models.User{
		Name:         input.Body.Name,
		Email:        input.Body.Email,
		Phone:        input.Body.Phone,
		PasswordHash: hash,
		Role:         role,
	}
	if err := h.insertUser(&user); err != nil {
		return nil, err
	}

	return &RegisterUserResponse{Body: toUserResponse(&user)}, nil
}

// isDuplicateEmail recognizes the unique-index rejection on users.email. Two
// racing writers can both pass the pre-write existence check; the index makes
// the loser fail here instead.
func isDuplicateEmail(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: users.email")
}

func (h *UserHandler) insertUser(user *models.User) error {
	if err := h.db.Create(user).Error; err != nil {
		if isDuplicateEmail(err) {
			return huma.Error400BadRequest("This email is already registered")
		}
		return huma.Error500InternalServerError("Failed to create user: " + err.Error())
	}
	return nil
}

func (h *UserHandler) saveUser(user *models.User) error {
	if err := h.db.Save(user).Error; err != nil {
		if isDuplicateEmail(err) {
			return huma.Error400BadRequest("This email is already registered")
		}
		return huma.Error500InternalServerError("Failed to update user: " + err.Error())
	}
	return nil
}

type MeRequest struct {
	auth.AuthInput
}

type MeResponse struct {
	Body UserResponse
}

func (h *UserHandler) HandleMe(ctx context.Context, input *MeRequest) (*MeResponse, error) {
	user, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	return &MeResponse{Body: toUserResponse(user)}, nil
}

type UpdateMeRequest struct {
	auth.AuthInput
	Body struct {
		Name     *string `json:"name,omitempty"`
		Email    *string `json:"email,omitempty" format:"email"`
		Phone    *string `json:"phone,omitempty"`
		Password *string `json:"password,omitempty" minLength:"6"`
	}
}

func (h *UserHandler) HandleUpdateMe(ctx context.Context, input *UpdateMeRequest) (*MeResponse, error) {
	user, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := h.applyUserUpdate(user, input.Body.Name, input.Body.Email, input.Body.Phone, input.Body.Password, nil); err != nil {
		return nil, err
	}
	return &MeResponse{Body: toUserResponse(user)}, nil
}

type ListUsersRequest struct {
	auth.AuthInput
}

type ListUsersResponse struct {
	Body []UserResponse
}

func (h *UserHandler) HandleListUsers(ctx context.Context, input *ListUsersRequest) (*ListUsersResponse, error) {
	user, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	if err := policy.Allow(user, policy.ActionListUsers, 0); err != nil {
		return nil, domainError(err)
	}

	var users []models.User
	if err := h.db.Find(&users).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list users")
	}

	res := &ListUsersResponse{Body: make([]UserResponse, len(users))}
	for i := range users {
		res.Body[i] = toUserResponse(&users[i])
	}
	return res, nil
}

type AdminUpdateUserRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Name     *string      `json:"name,omitempty"`
		Email    *string      `json:"email,omitempty" format:"email"`
		Phone    *string      `json:"phone,omitempty"`
		Password *string      `json:"password,omitempty" minLength:"6"`
		Role     *models.Role `json:"role,omitempty" enum:"participant,organizer,admin"`
	}
}

func (h *UserHandler) HandleAdminUpdateUser(ctx context.Context, input *AdminUpdateUserRequest) (*MeResponse, error) {
	caller, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	if err := policy.Allow(caller, policy.ActionManageUsers, 0); err != nil {
		return nil, domainError(err)
	}

	var user models.User
	if err := h.db.First(&user, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}

	if err := h.applyUserUpdate(&user, input.Body.Name, input.Body.Email, input.Body.Phone, input.Body.Password, input.Body.Role); err != nil {
		return nil, err
	}
	return &MeResponse{Body: toUserResponse(&user)}, nil
}

type DeleteUserRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *UserHandler) HandleDeleteUser(ctx context.Context, input *DeleteUserRequest) (*struct{}, error) {
	caller, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	if err := policy.Allow(caller, policy.ActionManageUsers, 0); err != nil {
		return nil, domainError(err)
	}
	if input.ID == caller.ID {
		return nil, huma.Error400BadRequest("Admins cannot delete their own account")
	}

	res := h.db.Unscoped().Delete(&models.User{}, input.ID)
	if res.Error != nil {
		return nil, huma.Error500InternalServerError("Failed to delete user: " + res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return nil, huma.Error404NotFound("User not found")
	}
	return nil, nil
}

func (h *UserHandler) applyUserUpdate(user *models.User, name, email, phone, password *string, role *models.Role) error {
	if name != nil {
		user.Name = *name
	}
	if email != nil && *email != user.Email {
		var existing models.User
		if err := h.db.Where("email = ?", *email).First(&existing).Error; err == nil {
			return huma.Error400BadRequest("This email is already registered")
		}
		user.Email = *email
	}
	if phone != nil {
		user.Phone = *phone
	}
	if password != nil {
		hash, err := auth.HashPassword(*password)
		if err != nil {
			return huma.Error500InternalServerError("Failed to hash password")
		}
		user.PasswordHash = hash
	}
	if role != nil {
		user.Role = *role
	}

	return h.saveUser(user)
}
