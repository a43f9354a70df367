package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/config"
	"github.com/spec-kit/auth-service/internal/domain"
	"github.com/spec-kit/auth-service/internal/repository"
	"github.com/spec-kit/auth-service/pkg/util"
)

// Profile is the externally visible shape of a user record. The password hash
// never leaves the service layer.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserPatch carries optional field updates; nil means unchanged.
type UserPatch struct {
	Name   *string
	Email  *string
	Active *bool
	Role   *string
}

// UserService exposes user record management for the protected patterns.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(cfg config.AuthConfig, users repository.UserRepository) *UserService {
	return &UserService{users: users, bcryptCost: cfg.BcryptCost}
}

// Create stores a new user with a hashed password.
func (s *UserService) Create(ctx context.Context, name, email, password, role string) (*Profile, error) {
	if role == "" {
		role = string(domain.RoleUser)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.Role(role),
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := profileOf(user)
	return &profile, nil
}

// List returns all user profiles.
func (s *UserService) List(ctx context.Context) ([]Profile, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]Profile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, profileOf(user))
	}
	return profiles, nil
}

// Get returns one user profile by id.
func (s *UserService) Get(ctx context.Context, id string) (*Profile, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	profile := profileOf(user)
	return &profile, nil
}

// Update applies a partial patch to a user record.
func (s *UserService) Update(ctx context.Context, id string, patch UserPatch) (*Profile, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Active != nil {
		user.Active = *patch.Active
	}
	if patch.Role != nil {
		user.Role = domain.Role(*patch.Role)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, mapNotFound(err)
	}
	profile := profileOf(user)
	return &profile, nil
}

// Delete removes a user record.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func profileOf(user *domain.User) Profile {
	return Profile{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return util.NewNotFound("users.NOT_FOUND")
	}
	return err
}
