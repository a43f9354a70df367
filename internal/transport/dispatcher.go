package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/i18n"
	"github.com/spec-kit/auth-service/internal/observability"
	"github.com/spec-kit/auth-service/internal/ratelimit"
	"github.com/spec-kit/auth-service/pkg/util"
)

// Handler processes one authorized message and returns the handler outcome.
type Handler func(ctx context.Context, env *Envelope) (*Result, error)

// Result is a handler outcome before localization: a message code for the
// caller's locale plus optional data.
type Result struct {
	MessageCode string
	Data        any
}

// Route binds a message pattern to its handler and metadata. The public flag
// and reply expectation form a static table consulted at dispatch time.
type Route struct {
	Pattern string
	Subject string
	Public  bool
	Reply   bool
	Handler Handler
}

// Dispatcher runs the fixed pipeline for every inbound message:
// rate limiter, access guard, handler, response. Unauthorized and RateLimited
// rejections happen here and never reach a handler.
type Dispatcher struct {
	routes     map[string]Route
	limiter    ratelimit.Limiter
	guard      *auth.Guard
	translator *i18n.Translator
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewDispatcher builds the dispatch layer.
func NewDispatcher(limiter ratelimit.Limiter, guard *auth.Guard, translator *i18n.Translator, metrics *observability.Metrics, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		routes:     make(map[string]Route),
		limiter:    limiter,
		guard:      guard,
		translator: translator,
		metrics:    metrics,
		logger:     logger,
	}
}

// Register adds a route to the pattern table.
func (d *Dispatcher) Register(route Route) {
	d.routes[route.Pattern] = route
}

// Routes returns the registered routes for transport subscription.
func (d *Dispatcher) Routes() []Route {
	routes := make([]Route, 0, len(d.routes))
	for _, r := range d.routes {
		routes = append(routes, r)
	}
	return routes
}

// Dispatch runs one message through the pipeline and returns the marshaled
// response envelope. Event patterns also run the full pipeline; their response
// is discarded by the transport.
func (d *Dispatcher) Dispatch(ctx context.Context, env *Envelope) []byte {
	start := time.Now()
	status := http.StatusOK

	defer func() {
		d.metrics.RecordMessage(env.Pattern, status, time.Since(start))
		d.logger.Info("message handled",
			zap.String("pattern", env.Pattern),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)))
	}()

	route, ok := d.routes[env.Pattern]
	if !ok {
		status = http.StatusNotFound
		return d.errorEnvelope(env, util.NewNotFound("errors.UNKNOWN_PATTERN"))
	}

	if err := d.limiter.Admit(ctx, d.admissionKey(env), time.Now()); err != nil {
		status = util.ToDomainError(err).StatusCode
		return d.errorEnvelope(env, err)
	}

	env.Identity = nil
	claims, err := d.guard.Authorize(env.Pattern, env.Token)
	if err != nil {
		status = util.ToDomainError(err).StatusCode
		return d.errorEnvelope(env, err)
	}
	env.Identity = claims

	result, err := d.invoke(ctx, route, env)
	if err != nil {
		status = util.ToDomainError(err).StatusCode
		return d.errorEnvelope(env, err)
	}

	resp := Response{Data: result.Data}
	if result.MessageCode != "" {
		resp.Message = d.translator.Translate(result.MessageCode, env.Locale)
	}
	data, err := json.Marshal(resp)
	if err != nil {
		status = http.StatusInternalServerError
		return d.errorEnvelope(env, util.NewInternalError(err))
	}
	return data
}

// invoke runs the handler with panic recovery; a panic becomes an internal
// error envelope instead of taking the subscriber down.
func (d *Dispatcher) invoke(ctx context.Context, route Route, env *Envelope) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("handler panic",
				zap.String("pattern", env.Pattern),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			result = nil
			err = util.NewInternalError(nil)
		}
	}()
	return route.Handler(ctx, env)
}

// admissionKey prefers the caller's email for per-identity isolation and falls
// back to the coarse anonymous time bucket.
func (d *Dispatcher) admissionKey(env *Envelope) string {
	var peek struct {
		Email string `json:"email"`
	}
	_ = json.Unmarshal(env.Payload, &peek)
	return ratelimit.Key(env.Pattern, peek.Email, time.Now())
}

func (d *Dispatcher) errorEnvelope(env *Envelope, err error) []byte {
	domainErr := util.ToDomainError(err)

	d.metrics.RecordError(env.Pattern, domainErr.Code)
	if domainErr.StatusCode >= 500 {
		d.logger.Error("message failed", zap.String("pattern", env.Pattern), zap.Error(domainErr))
	} else {
		d.logger.Warn("message rejected",
			zap.String("pattern", env.Pattern),
			zap.String("code", domainErr.Code))
	}

	resp := ErrorResponse{
		Message:    d.translator.Translate(domainErr.MessageCode, env.Locale),
		StatusCode: domainErr.StatusCode,
		Details:    domainErr.Details,
	}
	data, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		return []byte(`{"message":"internal error","statusCode":500}`)
	}
	return data
}
