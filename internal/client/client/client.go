// Package client implements the NATS-backed API client of the audit server.
// Every call is a request/reply exchange: the request is CBOR, the access
// token rides in a message header, and the reply is a protocol.Response
// envelope whose error string maps back to a common sentinel.
package client

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/dmitrijs2005/hashaudit/internal/protocol"
)

// requester is the slice of *nats.Conn the client needs. Tests provide a fake.
type requester interface {
	RequestMsgWithContext(ctx context.Context, msg *nats.Msg) (*nats.Msg, error)
}

type AuditClient struct {
	nc    requester
	conn  *nats.Conn
	token string
}

// NewAuditClient connects to NATS and returns a client with no token set.
// Call SetToken before making authenticated requests.
func NewAuditClient(natsURL string) (*AuditClient, error) {
	conn, err := nats.Connect(natsURL, nats.Name("hashaudit-cli"))
	if err != nil {
		return nil, fmt.Errorf("NATS connect error: %w", err)
	}
	return &AuditClient{nc: conn, conn: conn}, nil
}

func (c *AuditClient) SetToken(token string) {
	c.token = token
}

func (c *AuditClient) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

// call performs one request/reply exchange and decodes the reply body into
// out (out may be nil for calls with empty success bodies).
func (c *AuditClient) call(ctx context.Context, subject string, req any, out any) error {
	data, err := protocol.Marshal(req)
	if err != nil {
		return fmt.Errorf("error marshalling request: %w", err)
	}

	msg := nats.NewMsg(subject)
	msg.Data = data
	msg.Header.Set(common.AccessTokenHeaderName, c.token)

	reply, err := c.nc.RequestMsgWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}

	var resp protocol.Response
	if err := protocol.Unmarshal(reply.Data, &resp); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	if resp.Error != "" {
		return common.FromMessage(resp.Error)
	}

	if out != nil {
		if err := protocol.Unmarshal(resp.Body, out); err != nil {
			return fmt.Errorf("error decoding response body: %w", err)
		}
	}
	return nil
}

func (c *AuditClient) SubmitHash(ctx context.Context, ciphertext []byte) (int64, error) {
	var resp protocol.SubmitHashResponse
	err := c.call(ctx, common.SubjectSubmitHash, &protocol.SubmitHashRequest{Ciphertext: ciphertext}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *AuditClient) SubmitGuess(ctx context.Context, targetHashID int64, ciphertext []byte) (int64, error) {
	var resp protocol.SubmitGuessResponse
	err := c.call(ctx, common.SubjectSubmitGuess, &protocol.SubmitGuessRequest{
		TargetHashID: targetHashID,
		Ciphertext:   ciphertext,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *AuditClient) RequestReveal(ctx context.Context, hashID int64) error {
	return c.call(ctx, common.SubjectRequestReveal, &protocol.RevealRequest{HashID: hashID}, nil)
}

func (c *AuditClient) RequestVerify(ctx context.Context, guessID int64) error {
	return c.call(ctx, common.SubjectRequestVerify, &protocol.VerifyRequest{GuessID: guessID}, nil)
}

func (c *AuditClient) GetHash(ctx context.Context, id int64) (*protocol.GetHashResponse, error) {
	var resp protocol.GetHashResponse
	if err := c.call(ctx, common.SubjectGetHash, &protocol.GetHashRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *AuditClient) GetGuess(ctx context.Context, id int64) (*protocol.GetGuessResponse, error) {
	var resp protocol.GetGuessResponse
	if err := c.call(ctx, common.SubjectGetGuess, &protocol.GetGuessRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *AuditClient) ListGuesses(ctx context.Context, targetHashID int64) ([]protocol.GetGuessResponse, error) {
	var resp protocol.ListGuessesResponse
	if err := c.call(ctx, common.SubjectListGuesses, &protocol.ListGuessesRequest{TargetHashID: targetHashID}, &resp); err != nil {
		return nil, err
	}
	return resp.Guesses, nil
}
