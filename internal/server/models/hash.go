// Package models defines the domain records owned by the HashAudit server:
// encrypted password-hash records, guess records and the pending decryption
// requests that correlate oracle callbacks back to them.
package models

import "time"

// EncryptedValueHandle is an opaque reference to ciphertext held by the
// external encryption engine (a blob-storage key). The audit core never looks
// inside it; only the engine can resolve it to plaintext.
type EncryptedValueHandle string

// RevealState is the lifecycle state of a HashRecord. Transitions only move
// forward: Sealed → DecryptionRequested → Revealed.
type RevealState string

const (
	RevealStateSealed    RevealState = "sealed"
	RevealStateRequested RevealState = "decryption_requested"
	RevealStateRevealed  RevealState = "revealed"
)

// HashRecord is a submitted password hash in encrypted form.
//
// RevealedHash is non-empty if and only if State is RevealStateRevealed.
// ID, Owner, EncryptedHash and SubmittedAt are immutable after creation.
type HashRecord struct {
	ID            int64
	Owner         string
	EncryptedHash EncryptedValueHandle
	State         RevealState
	RevealedHash  string
	SubmittedAt   time.Time
}

// Revealed reports whether the plaintext hash has been exposed.
func (h *HashRecord) Revealed() bool {
	return h.State == RevealStateRevealed
}
