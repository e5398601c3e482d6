// Package ledger tracks outstanding decryption requests and correlates
// asynchronous oracle callbacks back to the records that triggered them.
//
// The ledger is the single point of cross-operation synchronization in the
// audit core: Register and Resolve are linearizable (atomic check-and-insert
// and check-and-remove), so two concurrent callbacks for the same request id
// can never both succeed.
package ledger

import (
	"context"

	"github.com/dmitrijs2005/hashaudit/internal/server/models"
)

// Ledger holds pending decryption requests. It owns only identifiers, never
// record data.
type Ledger interface {
	// Register adds a pending request. It fails with
	// common.ErrorDuplicateRequestID when the request id is already present.
	Register(ctx context.Context, req *models.PendingRequest) error

	// Lookup returns the pending request without consuming it. It fails with
	// common.ErrorUnknownRequest when the id is absent. Callers use it to
	// learn the target record kind before decoding a callback payload.
	Lookup(ctx context.Context, requestID string) (*models.PendingRequest, error)

	// Resolve removes and returns the pending request. A second Resolve for
	// the same id fails with common.ErrorUnknownRequest; this single
	// consumption is what enforces exactly-once callback application.
	Resolve(ctx context.Context, requestID string) (*models.PendingRequest, error)
}
