package ledger

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/dmitrijs2005/hashaudit/internal/server/models"
)

// MemoryLedger is a process-local Ledger guarded by a mutex. It is the
// default in development and tests; pending requests do not survive a
// restart.
type MemoryLedger struct {
	mu      sync.Mutex
	pending map[string]models.PendingRequest
}

// NewMemoryLedger constructs an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{pending: make(map[string]models.PendingRequest)}
}

func (l *MemoryLedger) Register(ctx context.Context, req *models.PendingRequest) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.pending[req.RequestID]; ok {
		return common.ErrorDuplicateRequestID
	}
	l.pending[req.RequestID] = *req
	return nil
}

func (l *MemoryLedger) Lookup(ctx context.Context, requestID string) (*models.PendingRequest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	req, ok := l.pending[requestID]
	if !ok {
		return nil, common.ErrorUnknownRequest
	}
	return &req, nil
}

func (l *MemoryLedger) Resolve(ctx context.Context, requestID string) (*models.PendingRequest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	req, ok := l.pending[requestID]
	if !ok {
		return nil, common.ErrorUnknownRequest
	}
	delete(l.pending, requestID)
	return &req, nil
}
