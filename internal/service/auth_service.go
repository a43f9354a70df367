package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/config"
	"github.com/spec-kit/auth-service/internal/domain"
	"github.com/spec-kit/auth-service/internal/events"
	"github.com/spec-kit/auth-service/internal/repository"
	"github.com/spec-kit/auth-service/pkg/util"
)

// ValidatedUser is the identity returned by token validation.
type ValidatedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TokenResult is the outcome of a successful login or registration.
type TokenResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        Profile   `json:"user"`
}

// ValidationResult is the outcome of a validate_token request.
type ValidationResult struct {
	Valid bool           `json:"valid"`
	User  *ValidatedUser `json:"user,omitempty"`
}

// AuthService coordinates login, registration and token validation flows.
type AuthService struct {
	users      repository.UserRepository
	codec      *auth.TokenCodec
	publisher  events.Publisher
	logger     *zap.Logger
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, codec *auth.TokenCodec, publisher events.Publisher, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		codec:      codec,
		publisher:  publisher,
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
	}
}

// Login authenticates a user by email and password. On success a token is
// issued, locally re-verified against the codec, and a login event published.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewUnauthorized("auth.INVALID_CREDENTIALS")
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, util.NewUnauthorized("auth.INVALID_CREDENTIALS")
	}

	return s.issueAndAnnounce(user)
}

// Register creates a new account and logs it in. Duplicate emails surface as
// Conflict from the user store and are propagated, not retried.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*TokenResult, error) {
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

	return s.issueAndAnnounce(user)
}

// ValidateToken verifies a token without side effects. When invoked with a
// correlation id (cross-service validation) the outcome is also published as
// a token.validated or token.invalid event.
func (s *AuthService) ValidateToken(_ context.Context, token, requestID, targetService string) *ValidationResult {
	claims, err := s.codec.Verify(token)
	if err != nil {
		if requestID != "" {
			s.publisher.Publish(events.NewTokenInvalid(requestID, targetService, "auth.TOKEN_INVALID"))
		}
		return &ValidationResult{Valid: false}
	}

	user := &ValidatedUser{ID: claims.SubjectID, Email: claims.Email, Role: claims.Role}
	if requestID != "" {
		s.publisher.Publish(events.NewTokenValidated(events.Identity(*user), requestID, targetService))
	}
	return &ValidationResult{Valid: true, User: user}
}

// Logout is stateless; tokens are not revoked. It only publishes a logout
// event for downstream bookkeeping.
func (s *AuthService) Logout(_ context.Context, userID string) {
	s.publisher.Publish(events.NewUserLogout(userID))
	s.logger.Info("user logged out", zap.String("user_id", userID))
}

// issueAndAnnounce signs a token for the user, re-verifies it against the
// codec as defense-in-depth, and publishes the login event.
func (s *AuthService) issueAndAnnounce(user *domain.User) (*TokenResult, error) {
	token, expiresAt, err := s.codec.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	claims, err := s.codec.Verify(token)
	if err != nil {
		return nil, util.NewInternalError(fmt.Errorf("issued token failed verification: %w", err))
	}
	if claims.SubjectID != user.ID {
		return nil, util.NewInternalError(fmt.Errorf("issued token subject mismatch"))
	}

	s.publisher.Publish(events.NewUserLogin(events.Identity{
		ID:    user.ID,
		Email: user.Email,
		Role:  string(user.Role),
	}))

	return &TokenResult{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        profileOf(user),
	}, nil
}
