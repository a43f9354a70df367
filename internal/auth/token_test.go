package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCodecRoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	token, expiresAt, err := codec.Issue("user-1", "a@x.com", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.SubjectID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestTokenCodecVerifyStripsBearerPrefix(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	token, _, err := codec.Issue("user-1", "a@x.com", "user")
	require.NoError(t, err)

	claims, err := codec.Verify("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.SubjectID)
}

func TestTokenCodecVerifyExpired(t *testing.T) {
	codec := NewTokenCodec("test-secret", -time.Hour)

	token, _, err := codec.Issue("user-1", "a@x.com", "user")
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenCodecVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenCodec("secret-a", time.Hour)
	verifier := NewTokenCodec("secret-b", time.Hour)

	token, _, err := issuer.Issue("user-1", "a@x.com", "user")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenCodecVerifyMalformed(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	for _, token := range []string{"", "Bearer ", "not-a-token", "a.b.c"} {
		_, err := codec.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", token)
	}
}

func TestStripBearer(t *testing.T) {
	assert.Equal(t, "abc", StripBearer("Bearer abc"))
	assert.Equal(t, "abc", StripBearer("bearer abc"))
	assert.Equal(t, "abc", StripBearer("abc"))
	assert.Equal(t, "", StripBearer(""))
}
