package handlers

import (
	"context"

	"github.com/spec-kit/auth-service/internal/api/dto"
	"github.com/spec-kit/auth-service/internal/service"
	"github.com/spec-kit/auth-service/internal/transport"
)

// AuthHandler binds the authentication message patterns to the auth service.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles the login pattern.
func (h *AuthHandler) Login(ctx context.Context, env *transport.Envelope) (*transport.Result, error) {
	var req dto.LoginRequest
	if err := bind(env, &req); err != nil {
		return nil, err
	}

	result, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return &transport.Result{MessageCode: "auth.LOGIN_SUCCESS", Data: result}, nil
}

// Register handles the register pattern.
func (h *AuthHandler) Register(ctx context.Context, env *transport.Envelope) (*transport.Result, error) {
	var req dto.RegisterRequest
	if err := bind(env, &req); err != nil {
		return nil, err
	}

	result, err := h.auth.Register(ctx, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return nil, err
	}
	return &transport.Result{MessageCode: "auth.REGISTER_SUCCESS", Data: result}, nil
}

// ValidateToken handles the validate_token pattern.
func (h *AuthHandler) ValidateToken(ctx context.Context, env *transport.Envelope) (*transport.Result, error) {
	var req dto.ValidateTokenRequest
	if err := bind(env, &req); err != nil {
		return nil, err
	}

	result := h.auth.ValidateToken(ctx, req.Token, "", "")
	code := "auth.TOKEN_VALID"
	if !result.Valid {
		code = "auth.TOKEN_INVALID"
	}
	return &transport.Result{MessageCode: code, Data: result}, nil
}

// ValidateRequest handles the auth.validate.request event pattern: a
// cross-service validation that answers by event, not by reply.
func (h *AuthHandler) ValidateRequest(ctx context.Context, env *transport.Envelope) (*transport.Result, error) {
	var req dto.ValidateRequestEvent
	if err := bind(env, &req); err != nil {
		return nil, err
	}

	h.auth.ValidateToken(ctx, req.Token, req.RequestID, req.TargetService)
	return &transport.Result{}, nil
}

// LogoutRequest handles the auth.logout.request event pattern.
func (h *AuthHandler) LogoutRequest(ctx context.Context, env *transport.Envelope) (*transport.Result, error) {
	var req dto.LogoutRequestEvent
	if err := bind(env, &req); err != nil {
		return nil, err
	}

	h.auth.Logout(ctx, req.UserID)
	return &transport.Result{MessageCode: "auth.LOGOUT_SUCCESS"}, nil
}
