package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/config"
	"github.com/spec-kit/auth-service/pkg/util"
)

func newUserFixture(t *testing.T) (*UserService, *fakeUserRepository) {
	t.Helper()
	repo := newFakeUserRepository()
	return NewUserService(config.AuthConfig{BcryptCost: bcrypt.MinCost}, repo), repo
}

func TestUserCreateHashesPassword(t *testing.T) {
	svc, repo := newUserFixture(t)

	profile, err := svc.Create(context.Background(), "Test User", "a@x.com", "secret-password", "")
	require.NoError(t, err)
	assert.Equal(t, "user", profile.Role)
	assert.True(t, profile.Active)

	stored, err := repo.GetByID(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", stored.PasswordHash)
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "secret-password"))
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	svc, _ := newUserFixture(t)

	_, err := svc.Create(context.Background(), "A", "a@x.com", "secret-password", "")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "B", "a@x.com", "secret-password", "")
	require.Error(t, err)

	var domainErr *util.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestUserGetNotFound(t *testing.T) {
	svc, _ := newUserFixture(t)

	_, err := svc.Get(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.Error(t, err)

	var domainErr *util.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, "users.NOT_FOUND", domainErr.MessageCode)
}

func TestUserUpdateAppliesPatch(t *testing.T) {
	svc, _ := newUserFixture(t)

	profile, err := svc.Create(context.Background(), "Old Name", "a@x.com", "secret-password", "")
	require.NoError(t, err)

	newName := "New Name"
	inactive := false
	updated, err := svc.Update(context.Background(), profile.ID, UserPatch{Name: &newName, Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.False(t, updated.Active)
	assert.Equal(t, "a@x.com", updated.Email)
}

func TestUserDelete(t *testing.T) {
	svc, _ := newUserFixture(t)

	profile, err := svc.Create(context.Background(), "Test User", "a@x.com", "secret-password", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), profile.ID))

	err = svc.Delete(context.Background(), profile.ID)
	var domainErr *util.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestUserList(t *testing.T) {
	svc, _ := newUserFixture(t)

	_, err := svc.Create(context.Background(), "A", "a@x.com", "secret-password", "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "B", "b@x.com", "secret-password", "admin")
	require.NoError(t, err)

	profiles, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
}
