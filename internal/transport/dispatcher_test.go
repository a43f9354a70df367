package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/i18n"
	"github.com/spec-kit/auth-service/internal/observability"
	"github.com/spec-kit/auth-service/pkg/util"
)

type stubLimiter struct {
	reject bool
	keys   []string
}

func (l *stubLimiter) Admit(_ context.Context, key string, _ time.Time) error {
	l.keys = append(l.keys, key)
	if l.reject {
		return util.NewRateLimited()
	}
	return nil
}

type dispatcherFixture struct {
	dispatcher *Dispatcher
	limiter    *stubLimiter
	codec      *auth.TokenCodec
	invoked    map[string]int
}

func newDispatcherFixture(t *testing.T) *dispatcherFixture {
	t.Helper()

	codec := auth.NewTokenCodec("test-secret", time.Hour)
	guard := auth.NewGuard(codec, []string{"login", "broken"})
	translator, err := i18n.NewTranslator("en")
	require.NoError(t, err)

	f := &dispatcherFixture{
		limiter: &stubLimiter{},
		codec:   codec,
		invoked: map[string]int{},
	}
	f.dispatcher = NewDispatcher(f.limiter, guard, translator, observability.NewMetrics(), zap.NewNop())

	f.dispatcher.Register(Route{
		Pattern: "login",
		Subject: RPCSubjectPrefix + "login",
		Public:  true,
		Reply:   true,
		Handler: func(_ context.Context, env *Envelope) (*Result, error) {
			f.invoked["login"]++
			return &Result{MessageCode: "auth.LOGIN_SUCCESS", Data: map[string]string{"access_token": "t"}}, nil
		},
	})
	f.dispatcher.Register(Route{
		Pattern: "create_user",
		Subject: RPCSubjectPrefix + "create_user",
		Reply:   true,
		Handler: func(_ context.Context, env *Envelope) (*Result, error) {
			f.invoked["create_user"]++
			require.NotNil(t, env.Identity)
			return &Result{MessageCode: "users.CREATED"}, nil
		},
	})
	f.dispatcher.Register(Route{
		Pattern: "broken",
		Subject: RPCSubjectPrefix + "broken",
		Public:  true,
		Reply:   true,
		Handler: func(_ context.Context, _ *Envelope) (*Result, error) {
			panic("boom")
		},
	})
	return f
}

func decodeResponse(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp
}

func TestDispatchPublicPatternSucceedsWithoutToken(t *testing.T) {
	f := newDispatcherFixture(t)

	env := ParseEnvelope("login", []byte(`{"email":"a@x.com","password":"secret"}`))
	resp := decodeResponse(t, f.dispatcher.Dispatch(context.Background(), env))

	assert.Equal(t, "Login successful", resp["message"])
	assert.Equal(t, 1, f.invoked["login"])
}

func TestDispatchRateLimitedBeforeGuardAndHandler(t *testing.T) {
	f := newDispatcherFixture(t)
	f.limiter.reject = true

	env := ParseEnvelope("create_user", []byte(`{"name":"x"}`))
	resp := decodeResponse(t, f.dispatcher.Dispatch(context.Background(), env))

	assert.Equal(t, float64(http.StatusTooManyRequests), resp["statusCode"])
	assert.Equal(t, 0, f.invoked["create_user"])
}

func TestDispatchUnauthorizedBeforeHandler(t *testing.T) {
	f := newDispatcherFixture(t)

	env := ParseEnvelope("create_user", []byte(`{"name":"x"}`))
	resp := decodeResponse(t, f.dispatcher.Dispatch(context.Background(), env))

	assert.Equal(t, float64(http.StatusUnauthorized), resp["statusCode"])
	assert.Equal(t, "Authentication token not provided", resp["message"])
	assert.Equal(t, 0, f.invoked["create_user"])
}

func TestDispatchProtectedPatternWithValidToken(t *testing.T) {
	f := newDispatcherFixture(t)

	token, _, err := f.codec.Issue("user-1", "a@x.com", "admin")
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{"token": token, "name": "x"})
	require.NoError(t, err)

	env := ParseEnvelope("create_user", body)
	resp := decodeResponse(t, f.dispatcher.Dispatch(context.Background(), env))

	assert.Equal(t, "User created successfully", resp["message"])
	assert.Equal(t, 1, f.invoked["create_user"])
	assert.Equal(t, "user-1", env.Identity.SubjectID)
}

func TestDispatchDiscardsCallerSuppliedIdentity(t *testing.T) {
	f := newDispatcherFixture(t)

	env := ParseEnvelope("login", []byte(`{"email":"a@x.com"}`))
	env.Identity = &auth.Claims{SubjectID: "forged"}

	f.dispatcher.Dispatch(context.Background(), env)
	assert.Nil(t, env.Identity)
}

func TestDispatchLocalizedErrorEnvelope(t *testing.T) {
	f := newDispatcherFixture(t)

	env := ParseEnvelope("create_user", []byte(`{"lang":"pt"}`))
	resp := decodeResponse(t, f.dispatcher.Dispatch(context.Background(), env))

	assert.Equal(t, "Token de autenticação não fornecido", resp["message"])
}

func TestDispatchRateLimitKeyPrefersEmail(t *testing.T) {
	f := newDispatcherFixture(t)

	env := ParseEnvelope("login", []byte(`{"email":"a@x.com","password":"p"}`))
	f.dispatcher.Dispatch(context.Background(), env)

	require.Len(t, f.limiter.keys, 1)
	assert.Equal(t, "login:a@x.com", f.limiter.keys[0])
}

func TestDispatchHandlerPanicBecomesInternalError(t *testing.T) {
	f := newDispatcherFixture(t)

	env := ParseEnvelope("broken", []byte(`{}`))
	resp := decodeResponse(t, f.dispatcher.Dispatch(context.Background(), env))

	assert.Equal(t, float64(http.StatusInternalServerError), resp["statusCode"])
	assert.Equal(t, "An unexpected error occurred", resp["message"])
}

func TestDispatchUnknownPattern(t *testing.T) {
	f := newDispatcherFixture(t)

	env := ParseEnvelope("nope", []byte(`{}`))
	resp := decodeResponse(t, f.dispatcher.Dispatch(context.Background(), env))

	assert.Equal(t, float64(http.StatusNotFound), resp["statusCode"])
}
