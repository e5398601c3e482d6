package oracle

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/dmitrijs2005/hashaudit/internal/cryptox"
	"github.com/dmitrijs2005/hashaudit/internal/protocol"
	"github.com/dmitrijs2005/hashaudit/internal/server/ledger"
	"github.com/dmitrijs2005/hashaudit/internal/server/models"
	"github.com/stretchr/testify/require"
)

var proofKey = []byte("test-proof-key")

type fakeSubmitter struct {
	requestID string
	err       error
	submitted []*protocol.DecryptionRequest
}

func (f *fakeSubmitter) Submit(ctx context.Context, req *protocol.DecryptionRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.submitted = append(f.submitted, req)
	return f.requestID, nil
}

func signedCallback(t *testing.T, requestID string, payload []byte) *protocol.DecryptionCallback {
	t.Helper()
	return &protocol.DecryptionCallback{
		RequestID:        requestID,
		CleartextPayload: payload,
		Proof:            cryptox.SignProof(proofKey, requestID, payload),
	}
}

func TestRequestDecryption_SubmitsHandles(t *testing.T) {
	sub := &fakeSubmitter{requestID: "req-1"}
	c := NewClient(sub, ledger.NewMemoryLedger(), proofKey)

	id, err := c.RequestDecryption(context.Background(), protocol.OpEquality,
		[]models.EncryptedValueHandle{"blob/a", "blob/b"})
	require.NoError(t, err)
	require.Equal(t, "req-1", id)

	require.Len(t, sub.submitted, 1)
	require.Equal(t, protocol.OpEquality, sub.submitted[0].Op)
	require.Equal(t, []string{"blob/a", "blob/b"}, sub.submitted[0].Handles)
}

func TestRequestDecryption_SubmitError(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("engine unreachable")}
	c := NewClient(sub, ledger.NewMemoryLedger(), proofKey)

	_, err := c.RequestDecryption(context.Background(), protocol.OpDecrypt,
		[]models.EncryptedValueHandle{"blob/a"})
	require.Error(t, err)
}

func TestOnCallback_HashResult(t *testing.T) {
	l := ledger.NewMemoryLedger()
	ctx := context.Background()
	require.NoError(t, l.Register(ctx, &models.PendingRequest{RequestID: "req-1", TargetRecordID: 7, Kind: models.RecordKindHash}))

	c := NewClient(&fakeSubmitter{}, l, proofKey)

	payload, err := protocol.EncodeStringPayload("abc123")
	require.NoError(t, err)

	res, err := c.OnCallback(ctx, signedCallback(t, "req-1", payload))
	require.NoError(t, err)
	require.Equal(t, int64(7), res.TargetRecordID)
	require.Equal(t, models.RecordKindHash, res.Kind)
	require.Equal(t, "abc123", res.RevealedHash)

	// the entry was consumed: a duplicate callback is a hard error
	_, err = c.OnCallback(ctx, signedCallback(t, "req-1", payload))
	require.ErrorIs(t, err, common.ErrorUnknownRequest)
}

func TestOnCallback_GuessResult(t *testing.T) {
	l := ledger.NewMemoryLedger()
	ctx := context.Background()
	require.NoError(t, l.Register(ctx, &models.PendingRequest{RequestID: "req-2", TargetRecordID: 11, Kind: models.RecordKindGuess}))

	c := NewClient(&fakeSubmitter{}, l, proofKey)

	payload, err := protocol.EncodeBoolPayload(true)
	require.NoError(t, err)

	res, err := c.OnCallback(ctx, signedCallback(t, "req-2", payload))
	require.NoError(t, err)
	require.Equal(t, models.RecordKindGuess, res.Kind)
	require.True(t, res.IsMatch)
}

func TestOnCallback_InvalidProofLeavesLedgerIntact(t *testing.T) {
	l := ledger.NewMemoryLedger()
	ctx := context.Background()
	require.NoError(t, l.Register(ctx, &models.PendingRequest{RequestID: "req-1", TargetRecordID: 7, Kind: models.RecordKindHash}))

	c := NewClient(&fakeSubmitter{}, l, proofKey)

	payload, _ := protocol.EncodeStringPayload("abc123")
	cb := signedCallback(t, "req-1", payload)
	cb.Proof = []byte("forged")

	_, err := c.OnCallback(ctx, cb)
	require.ErrorIs(t, err, common.ErrorInvalidProof)

	// the legitimate callback can still land
	res, err := c.OnCallback(ctx, signedCallback(t, "req-1", payload))
	require.NoError(t, err)
	require.Equal(t, "abc123", res.RevealedHash)
}

func TestOnCallback_MalformedPayloadLeavesLedgerIntact(t *testing.T) {
	l := ledger.NewMemoryLedger()
	ctx := context.Background()
	require.NoError(t, l.Register(ctx, &models.PendingRequest{RequestID: "req-2", TargetRecordID: 11, Kind: models.RecordKindGuess}))

	c := NewClient(&fakeSubmitter{}, l, proofKey)

	// a string payload where a bool is expected, correctly signed
	payload, _ := protocol.EncodeStringPayload("definitely not a bool")

	_, err := c.OnCallback(ctx, signedCallback(t, "req-2", payload))
	require.ErrorIs(t, err, common.ErrorMalformedPayload)

	good, _ := protocol.EncodeBoolPayload(false)
	res, err := c.OnCallback(ctx, signedCallback(t, "req-2", good))
	require.NoError(t, err)
	require.False(t, res.IsMatch)
}

func TestOnCallback_UnknownRequest(t *testing.T) {
	c := NewClient(&fakeSubmitter{}, ledger.NewMemoryLedger(), proofKey)

	payload, _ := protocol.EncodeStringPayload("abc123")
	_, err := c.OnCallback(context.Background(), signedCallback(t, "never-registered", payload))
	require.ErrorIs(t, err, common.ErrorUnknownRequest)
}
