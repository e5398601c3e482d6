package natsrpc

import (
	"context"

	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/dmitrijs2005/hashaudit/internal/protocol"
	"github.com/dmitrijs2005/hashaudit/internal/server/models"
)

func (s *Server) ok(ctx context.Context, body any) *protocol.Response {
	resp, err := protocol.OK(body)
	if err != nil {
		s.logger.Error(ctx, "error encoding response body", "error", err.Error())
		return protocol.Fail(common.ErrorInternal)
	}
	return resp
}

func (s *Server) SubmitHash(ctx context.Context, submitterID string, data []byte) *protocol.Response {

	s.logger.Info(ctx, "Hash submission request")

	var req protocol.SubmitHashRequest
	if err := protocol.Unmarshal(data, &req); err != nil {
		return protocol.Fail(common.ErrorMalformedPayload)
	}

	handle, err := s.blobs.Put(ctx, req.Ciphertext)
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return protocol.Fail(common.ErrorInternal)
	}

	id, err := s.audit.SubmitHash(ctx, submitterID, models.EncryptedValueHandle(handle))
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return protocol.Fail(err)
	}

	s.logger.Info(ctx, "Hash submitted", "hash_id", id)
	return s.ok(ctx, &protocol.SubmitHashResponse{ID: id})
}

func (s *Server) SubmitGuess(ctx context.Context, submitterID string, data []byte) *protocol.Response {

	var req protocol.SubmitGuessRequest
	if err := protocol.Unmarshal(data, &req); err != nil {
		return protocol.Fail(common.ErrorMalformedPayload)
	}

	handle, err := s.blobs.Put(ctx, req.Ciphertext)
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return protocol.Fail(common.ErrorInternal)
	}

	id, err := s.audit.SubmitGuess(ctx, req.TargetHashID, submitterID, models.EncryptedValueHandle(handle))
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return protocol.Fail(err)
	}

	return s.ok(ctx, &protocol.SubmitGuessResponse{ID: id})
}

func (s *Server) RequestReveal(ctx context.Context, submitterID string, data []byte) *protocol.Response {

	var req protocol.RevealRequest
	if err := protocol.Unmarshal(data, &req); err != nil {
		return protocol.Fail(common.ErrorMalformedPayload)
	}

	if err := s.audit.RequestHashReveal(ctx, req.HashID, submitterID); err != nil {
		s.logger.Error(ctx, err.Error())
		return protocol.Fail(err)
	}

	return &protocol.Response{}
}

func (s *Server) RequestVerify(ctx context.Context, submitterID string, data []byte) *protocol.Response {

	var req protocol.VerifyRequest
	if err := protocol.Unmarshal(data, &req); err != nil {
		return protocol.Fail(common.ErrorMalformedPayload)
	}

	if err := s.audit.RequestGuessVerification(ctx, req.GuessID, submitterID); err != nil {
		s.logger.Error(ctx, err.Error())
		return protocol.Fail(err)
	}

	return &protocol.Response{}
}

func (s *Server) GetHash(ctx context.Context, submitterID string, data []byte) *protocol.Response {

	var req protocol.GetHashRequest
	if err := protocol.Unmarshal(data, &req); err != nil {
		return protocol.Fail(common.ErrorMalformedPayload)
	}

	rec, err := s.audit.GetHash(ctx, req.ID)
	if err != nil {
		return protocol.Fail(err)
	}

	return s.ok(ctx, hashToResponse(rec))
}

func (s *Server) GetGuess(ctx context.Context, submitterID string, data []byte) *protocol.Response {

	var req protocol.GetGuessRequest
	if err := protocol.Unmarshal(data, &req); err != nil {
		return protocol.Fail(common.ErrorMalformedPayload)
	}

	rec, err := s.audit.GetGuess(ctx, req.ID)
	if err != nil {
		return protocol.Fail(err)
	}

	return s.ok(ctx, guessToResponse(rec))
}

func (s *Server) ListGuesses(ctx context.Context, submitterID string, data []byte) *protocol.Response {

	var req protocol.ListGuessesRequest
	if err := protocol.Unmarshal(data, &req); err != nil {
		return protocol.Fail(common.ErrorMalformedPayload)
	}

	recs, err := s.audit.ListGuesses(ctx, req.TargetHashID, submitterID)
	if err != nil {
		return protocol.Fail(err)
	}

	resp := &protocol.ListGuessesResponse{Guesses: make([]protocol.GetGuessResponse, 0, len(recs))}
	for _, rec := range recs {
		resp.Guesses = append(resp.Guesses, *guessToResponse(rec))
	}
	return s.ok(ctx, resp)
}

func hashToResponse(rec *models.HashRecord) *protocol.GetHashResponse {
	return &protocol.GetHashResponse{
		ID:          rec.ID,
		State:       string(rec.State),
		Revealed:    rec.Revealed(),
		Hash:        rec.RevealedHash,
		SubmittedAt: rec.SubmittedAt,
	}
}

func guessToResponse(rec *models.GuessRecord) *protocol.GetGuessResponse {
	return &protocol.GetGuessResponse{
		ID:           rec.ID,
		TargetHashID: rec.TargetHashID,
		State:        string(rec.State),
		SubmittedAt:  rec.SubmittedAt,
	}
}
