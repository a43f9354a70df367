package events

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Publisher emits fire-and-forget notifications. Publish returns as soon as
// the event is handed to the broker client; delivery failures are logged and
// never surface into the request path.
type Publisher interface {
	Publish(event Event)
}

// NATSPublisher publishes events to broker subjects derived from the event type.
type NATSPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

// NewNATSPublisher creates a publisher instance.
func NewNATSPublisher(conn *nats.Conn, logger *zap.Logger) *NATSPublisher {
	return &NATSPublisher{conn: conn, logger: logger}
}

// Publish hands the event to the broker client. Errors are swallowed here;
// this is the only component allowed to see them.
func (p *NATSPublisher) Publish(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal event", zap.String("event_type", string(event.Type)), zap.Error(err))
		return
	}

	if err := p.conn.Publish(event.Type.Subject(), data); err != nil {
		p.logger.Warn("publish event",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Error(err))
		return
	}

	p.logger.Debug("event published",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID))
}
