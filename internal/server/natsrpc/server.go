// Package natsrpc exposes the audit service over NATS request/reply and
// connects it to the decryption engine's subjects. Every API subject takes a
// CBOR request and answers with a protocol.Response envelope; the access
// token travels in a message header.
package natsrpc

import (
	"context"

	"github.com/nats-io/nats.go"

	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/dmitrijs2005/hashaudit/internal/logging"
	"github.com/dmitrijs2005/hashaudit/internal/protocol"
	"github.com/dmitrijs2005/hashaudit/internal/server/auth"
	"github.com/dmitrijs2005/hashaudit/internal/server/models"
)

// Audit is the slice of the audit service the transport needs. Implemented
// by services.AuditService.
type Audit interface {
	SubmitHash(ctx context.Context, owner string, encryptedHash models.EncryptedValueHandle) (int64, error)
	SubmitGuess(ctx context.Context, targetHashID int64, owner string, encryptedGuess models.EncryptedValueHandle) (int64, error)
	RequestHashReveal(ctx context.Context, hashID int64, requester string) error
	RequestGuessVerification(ctx context.Context, guessID int64, requester string) error
	HandleOracleCallback(ctx context.Context, cb *protocol.DecryptionCallback) error
	GetHash(ctx context.Context, id int64) (*models.HashRecord, error)
	GetGuess(ctx context.Context, id int64) (*models.GuessRecord, error)
	ListGuesses(ctx context.Context, targetHashID int64, requester string) ([]*models.GuessRecord, error)
}

// BlobStore is the slice of the blob store the transport needs: inbound
// ciphertexts are stored before the audit service ever sees them, so the
// service deals in handles only.
type BlobStore interface {
	Put(ctx context.Context, data []byte) (string, error)
}

type handlerFunc func(ctx context.Context, submitterID string, data []byte) *protocol.Response

type Server struct {
	nc        *nats.Conn
	audit     Audit
	blobs     BlobStore
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(nc *nats.Conn, audit Audit, blobs BlobStore, logger logging.Logger, secretKey string) *Server {
	return &Server{
		nc:        nc,
		audit:     audit,
		blobs:     blobs,
		logger:    logger.With("module", "nats_server"),
		jwtSecret: []byte(secretKey),
	}
}

// Run subscribes all API subjects plus the oracle callback subject and blocks
// until the context is cancelled, then drains the connection.
func (s *Server) Run(ctx context.Context) error {

	handlers := map[string]handlerFunc{
		common.SubjectSubmitHash:    s.SubmitHash,
		common.SubjectSubmitGuess:   s.SubmitGuess,
		common.SubjectRequestReveal: s.RequestReveal,
		common.SubjectRequestVerify: s.RequestVerify,
		common.SubjectGetHash:       s.GetHash,
		common.SubjectGetGuess:      s.GetGuess,
		common.SubjectListGuesses:   s.ListGuesses,
	}

	var subs []*nats.Subscription
	for subject, h := range handlers {
		sub, err := s.nc.Subscribe(subject, s.wrap(h))
		if err != nil {
			return err
		}
		subs = append(subs, sub)
	}

	cbSub, err := s.nc.Subscribe(common.SubjectOracleCallback, s.handleCallback)
	if err != nil {
		return err
	}
	subs = append(subs, cbSub)

	s.logger.Info(ctx, "Starting NATS API server", "url", s.nc.ConnectedUrl())

	<-ctx.Done()
	s.logger.Info(ctx, "Stopping NATS API server...")

	for _, sub := range subs {
		if err := sub.Unsubscribe(); err != nil {
			s.logger.Error(ctx, "unsubscribe error", "error", err.Error())
		}
	}
	return s.nc.Drain()
}

// wrap turns an authenticated handler into a NATS request handler: it pulls
// the submitter identity from the access-token header and always answers with
// a marshalled protocol.Response.
func (s *Server) wrap(h handlerFunc) nats.MsgHandler {
	return func(msg *nats.Msg) {
		ctx := context.Background()

		var resp *protocol.Response

		submitterID, err := s.authenticate(msg)
		if err != nil {
			resp = protocol.Fail(common.ErrorUnauthorized)
		} else {
			resp = h(ctx, submitterID, msg.Data)
		}

		data, err := protocol.Marshal(resp)
		if err != nil {
			s.logger.Error(ctx, "error marshalling response", "error", err.Error())
			return
		}
		if err := msg.Respond(data); err != nil {
			s.logger.Error(ctx, "error sending response", "subject", msg.Subject, "error", err.Error())
		}
	}
}

func (s *Server) authenticate(msg *nats.Msg) (string, error) {
	token := msg.Header.Get(common.AccessTokenHeaderName)
	if token == "" {
		return "", common.ErrorUnauthorized
	}
	return auth.GetSubmitterIDFromToken(token, s.jwtSecret)
}

// handleCallback applies an inbound oracle callback. There is no reply
// subject: the engine publishes fire-and-forget, so rejections only get
// logged here.
func (s *Server) handleCallback(msg *nats.Msg) {
	ctx := context.Background()

	cb := &protocol.DecryptionCallback{}
	if err := protocol.Unmarshal(msg.Data, cb); err != nil {
		s.logger.Error(ctx, "malformed oracle callback", "error", err.Error())
		return
	}

	if err := s.audit.HandleOracleCallback(ctx, cb); err != nil {
		s.logger.Error(ctx, "oracle callback rejected", "request_id", cb.RequestID, "error", err.Error())
		return
	}
	s.logger.Info(ctx, "oracle callback applied", "request_id", cb.RequestID)
}
