package models

// RecordKind tells which record kind a pending decryption request resolves.
type RecordKind string

const (
	RecordKindHash  RecordKind = "hash"
	RecordKindGuess RecordKind = "guess"
)

// PendingRequest correlates an outstanding oracle call with the record that
// awaits its result. Entries are created atomically with the oracle
// submission and consumed exactly once by the matching callback.
type PendingRequest struct {
	RequestID      string
	TargetRecordID int64
	Kind           RecordKind
}
