package handlers

import (
	"context"

	"github.com/spec-kit/auth-service/internal/api/dto"
	"github.com/spec-kit/auth-service/internal/service"
	"github.com/spec-kit/auth-service/internal/transport"
	"github.com/spec-kit/auth-service/pkg/util"
)

// UsersHandler binds the protected user management patterns to the user service.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Create handles the create_user pattern.
func (h *UsersHandler) Create(ctx context.Context, env *transport.Envelope) (*transport.Result, error) {
	var req dto.CreateUserRequest
	if err := bind(env, &req); err != nil {
		return nil, err
	}

	profile, err := h.users.Create(ctx, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return nil, err
	}
	return &transport.Result{MessageCode: "users.CREATED", Data: profile}, nil
}

// FindAll handles the find_all_users pattern.
func (h *UsersHandler) FindAll(ctx context.Context, _ *transport.Envelope) (*transport.Result, error) {
	profiles, err := h.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return &transport.Result{MessageCode: "users.LISTED", Data: profiles}, nil
}

// GetProfile handles the get_user_profile pattern for the caller's own record,
// resolved from the guard-populated identity.
func (h *UsersHandler) GetProfile(ctx context.Context, env *transport.Envelope) (*transport.Result, error) {
	if env.Identity == nil {
		return nil, util.NewUnauthorized("auth.TOKEN_NOT_PROVIDED")
	}

	profile, err := h.users.Get(ctx, env.Identity.SubjectID)
	if err != nil {
		return nil, err
	}
	return &transport.Result{MessageCode: "users.PROFILE_RETRIEVED", Data: profile}, nil
}

// FindByID handles the find_user_by_id pattern.
func (h *UsersHandler) FindByID(ctx context.Context, env *transport.Envelope) (*transport.Result, error) {
	var req dto.FindUserByIDRequest
	if err := bind(env, &req); err != nil {
		return nil, err
	}

	profile, err := h.users.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &transport.Result{MessageCode: "users.RETRIEVED", Data: profile}, nil
}

// Update handles the update_user pattern.
func (h *UsersHandler) Update(ctx context.Context, env *transport.Envelope) (*transport.Result, error) {
	var req dto.UpdateUserRequest
	if err := bind(env, &req); err != nil {
		return nil, err
	}

	profile, err := h.users.Update(ctx, req.ID, service.UserPatch{
		Name:   req.Name,
		Email:  req.Email,
		Active: req.Active,
		Role:   req.Role,
	})
	if err != nil {
		return nil, err
	}
	return &transport.Result{MessageCode: "users.UPDATED", Data: profile}, nil
}

// Delete handles the delete_user pattern.
func (h *UsersHandler) Delete(ctx context.Context, env *transport.Envelope) (*transport.Result, error) {
	var req dto.DeleteUserRequest
	if err := bind(env, &req); err != nil {
		return nil, err
	}

	if err := h.users.Delete(ctx, req.ID); err != nil {
		return nil, err
	}
	return &transport.Result{MessageCode: "users.DELETED"}, nil
}
