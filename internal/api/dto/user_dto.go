package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateUserRequest payload for the create_user pattern.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate checks the payload at the boundary.
func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.Role, validation.In("admin", "user")),
	)
}

// UpdateUserRequest payload for the update_user pattern. Pointer fields
// distinguish "absent" from zero values.
type UpdateUserRequest struct {
	ID     string  `json:"id"`
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Active *bool   `json:"isActive"`
	Role   *string `json:"role"`
}

// Validate checks the payload at the boundary.
func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, is.UUIDv4),
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(2, 100)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&r.Role, validation.NilOrNotEmpty, validation.In("admin", "user")),
	)
}

// FindUserByIDRequest payload for the find_user_by_id pattern.
type FindUserByIDRequest struct {
	ID string `json:"id"`
}

// Validate checks the payload at the boundary.
func (r FindUserByIDRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, is.UUIDv4),
	)
}

// DeleteUserRequest payload for the delete_user pattern.
type DeleteUserRequest struct {
	ID string `json:"id"`
}

// Validate checks the payload at the boundary.
func (r DeleteUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, is.UUIDv4),
	)
}
