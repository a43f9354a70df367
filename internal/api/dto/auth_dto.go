package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// LoginRequest payload for the login pattern.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the payload at the boundary.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// RegisterRequest payload for the register pattern.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate checks the payload at the boundary.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.Role, validation.In("admin", "user")),
	)
}

// ValidateTokenRequest payload for the validate_token pattern.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// Validate checks the payload at the boundary.
func (r ValidateTokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
	)
}

// ValidateRequestEvent is the cross-service validation event payload.
type ValidateRequestEvent struct {
	Token         string `json:"token"`
	RequestID     string `json:"requestId"`
	TargetService string `json:"targetService"`
}

// Validate checks the payload at the boundary.
func (r ValidateRequestEvent) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
		validation.Field(&r.RequestID, validation.Required),
	)
}

// LogoutRequestEvent is the logout event payload.
type LogoutRequestEvent struct {
	UserID string `json:"userId"`
}

// Validate checks the payload at the boundary.
func (r LogoutRequestEvent) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
	)
}
