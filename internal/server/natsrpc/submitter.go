package natsrpc

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/dmitrijs2005/hashaudit/internal/protocol"
)

// OracleSubmitter delivers decryption requests to the engine over NATS
// request/reply. The synchronous reply only acknowledges acceptance and
// carries the request id; the result arrives later on the callback subject.
type OracleSubmitter struct {
	nc      *nats.Conn
	timeout time.Duration
}

func NewOracleSubmitter(nc *nats.Conn, timeout time.Duration) *OracleSubmitter {
	return &OracleSubmitter{nc: nc, timeout: timeout}
}

func (o *OracleSubmitter) Submit(ctx context.Context, req *protocol.DecryptionRequest) (string, error) {
	data, err := protocol.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("error marshalling decryption request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	msg, err := o.nc.RequestWithContext(ctx, common.SubjectOracleDecrypt, data)
	if err != nil {
		return "", fmt.Errorf("error submitting decryption request: %w", err)
	}

	var accepted protocol.DecryptionAccepted
	if err := protocol.Unmarshal(msg.Data, &accepted); err != nil {
		return "", fmt.Errorf("error decoding engine reply: %w", err)
	}
	if accepted.RequestID == "" {
		return "", fmt.Errorf("engine accepted request without an id")
	}

	return accepted.RequestID, nil
}
