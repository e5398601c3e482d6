package natsrpc

import (
	"context"

	"github.com/nats-io/nats.go"

	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/dmitrijs2005/hashaudit/internal/logging"
	"github.com/dmitrijs2005/hashaudit/internal/protocol"
	"github.com/dmitrijs2005/hashaudit/internal/server/services"
)

// EventSink publishes lifecycle events to NATS. Delivery is best effort:
// publish failures are logged and swallowed, per the Sink contract.
type EventSink struct {
	nc     *nats.Conn
	logger logging.Logger
}

func NewEventSink(nc *nats.Conn, logger logging.Logger) *EventSink {
	return &EventSink{nc: nc, logger: logger.With("module", "event_sink")}
}

func (s *EventSink) Publish(ctx context.Context, e services.Event) {
	data, err := protocol.Marshal(e)
	if err != nil {
		s.logger.Error(ctx, "error marshalling event", "event", string(e.Name), "error", err.Error())
		return
	}

	if err := s.nc.Publish(common.SubjectEventPrefix+string(e.Name), data); err != nil {
		s.logger.Warn(ctx, "error publishing event", "event", string(e.Name), "error", err.Error())
	}
}
