package engine

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/dmitrijs2005/hashaudit/internal/logging"
	"github.com/dmitrijs2005/hashaudit/internal/protocol"
)

// Daemon connects an Engine to NATS: it answers decrypt requests on the
// oracle subject and publishes the asynchronous callbacks.
//
// CallbackDelay simulates the latency of a real decryption ceremony so the
// asynchronous path gets exercised even in local setups.
type Daemon struct {
	nc            *nats.Conn
	engine        *Engine
	logger        logging.Logger
	callbackDelay time.Duration
}

func NewDaemon(nc *nats.Conn, e *Engine, logger logging.Logger, callbackDelay time.Duration) *Daemon {
	return &Daemon{
		nc:            nc,
		engine:        e,
		logger:        logger.With("module", "engine_daemon"),
		callbackDelay: callbackDelay,
	}
}

// Run subscribes to the oracle request subject and blocks until the context
// is cancelled. In-flight evaluations are abandoned on shutdown; the server
// side treats a missing callback as a still-outstanding request.
func (d *Daemon) Run(ctx context.Context) error {
	sub, err := d.nc.Subscribe(common.SubjectOracleDecrypt, func(msg *nats.Msg) {
		d.handleRequest(ctx, msg)
	})
	if err != nil {
		return err
	}

	d.logger.Info(ctx, "Starting decryption engine", "url", d.nc.ConnectedUrl())

	<-ctx.Done()
	d.logger.Info(ctx, "Stopping decryption engine...")

	if err := sub.Unsubscribe(); err != nil {
		d.logger.Error(ctx, "unsubscribe error", "error", err.Error())
	}
	return d.nc.Drain()
}

func (d *Daemon) handleRequest(ctx context.Context, msg *nats.Msg) {
	req := &protocol.DecryptionRequest{}
	if err := protocol.Unmarshal(msg.Data, req); err != nil {
		d.logger.Error(ctx, "malformed decryption request", "error", err.Error())
		return
	}

	requestID, err := d.engine.Accept(req)
	if err != nil {
		d.logger.Error(ctx, "rejecting decryption request", "error", err.Error())
		// no reply: the caller times out and treats it as a failed submit
		return
	}

	accepted, err := protocol.Marshal(&protocol.DecryptionAccepted{RequestID: requestID})
	if err != nil {
		d.logger.Error(ctx, "error marshalling accept reply", "error", err.Error())
		return
	}
	if err := msg.Respond(accepted); err != nil {
		d.logger.Error(ctx, "error replying to decryption request", "error", err.Error())
		return
	}

	d.logger.Info(ctx, "accepted decryption request", "request_id", requestID, "op", string(req.Op))

	go d.process(ctx, requestID, req)
}

func (d *Daemon) process(ctx context.Context, requestID string, req *protocol.DecryptionRequest) {
	select {
	case <-time.After(d.callbackDelay):
	case <-ctx.Done():
		return
	}

	payload, err := d.engine.Evaluate(ctx, req)
	if err != nil {
		d.logger.Error(ctx, "evaluation failed", "request_id", requestID, "error", err.Error())
		return
	}

	data, err := protocol.Marshal(d.engine.BuildCallback(requestID, payload))
	if err != nil {
		d.logger.Error(ctx, "error marshalling callback", "request_id", requestID, "error", err.Error())
		return
	}

	if err := d.nc.Publish(common.SubjectOracleCallback, data); err != nil {
		d.logger.Error(ctx, "error publishing callback", "request_id", requestID, "error", err.Error())
		return
	}
	d.logger.Info(ctx, "published callback", "request_id", requestID)
}
