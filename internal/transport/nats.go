package transport

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/internal/config"
)

// RPCSubjectPrefix is prepended to request/reply pattern names; event patterns
// carry their full subject themselves.
const RPCSubjectPrefix = "auth.rpc."

// queueGroup lets service replicas share inbound load.
const queueGroup = "auth-service"

// Connect establishes the broker connection with logged reconnect handling.
func Connect(cfg config.BrokerConfig, name string, logger *zap.Logger) (*nats.Conn, error) {
	conn, err := nats.Connect(cfg.URL(),
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("broker disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("broker reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to broker", zap.String("url", conn.ConnectedUrl()))
	return conn, nil
}

// Server subscribes the dispatcher's routes on the broker. Each message is
// handled on its own goroutine; no ordering is assumed across messages.
type Server struct {
	conn       *nats.Conn
	dispatcher *Dispatcher
	logger     *zap.Logger
	timeout    time.Duration
	subs       []*nats.Subscription
}

// NewServer creates a broker-facing server over the dispatcher.
func NewServer(conn *nats.Conn, dispatcher *Dispatcher, timeout time.Duration, logger *zap.Logger) *Server {
	return &Server{conn: conn, dispatcher: dispatcher, logger: logger, timeout: timeout}
}

// Start subscribes every registered route. Request/reply routes join a queue
// group; fire-and-forget event routes are plain subscriptions.
func (s *Server) Start() error {
	for _, route := range s.dispatcher.Routes() {
		route := route
		handler := func(msg *nats.Msg) {
			go s.handle(route, msg)
		}

		var (
			sub *nats.Subscription
			err error
		)
		if route.Reply {
			sub, err = s.conn.QueueSubscribe(route.Subject, queueGroup, handler)
		} else {
			sub, err = s.conn.Subscribe(route.Subject, handler)
		}
		if err != nil {
			return err
		}
		s.subs = append(s.subs, sub)
		s.logger.Info("subscribed",
			zap.String("pattern", route.Pattern),
			zap.String("subject", route.Subject),
			zap.Bool("reply", route.Reply))
	}
	return s.conn.Flush()
}

func (s *Server) handle(route Route, msg *nats.Msg) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	env := ParseEnvelope(route.Pattern, msg.Data)
	resp := s.dispatcher.Dispatch(ctx, env)

	if route.Reply && msg.Reply != "" {
		if err := msg.Respond(resp); err != nil {
			s.logger.Warn("respond failed", zap.String("pattern", route.Pattern), zap.Error(err))
		}
	}
}

// Close drains the subscriptions and the connection.
func (s *Server) Close() {
	for _, sub := range s.subs {
		_ = sub.Drain()
	}
	if s.conn != nil && !s.conn.IsClosed() {
		_ = s.conn.Drain()
	}
}
