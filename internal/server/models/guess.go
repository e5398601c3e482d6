package models

import "time"

// VerificationState is the lifecycle state of a GuessRecord. A guess starts
// Pending and moves to exactly one terminal state, never back.
type VerificationState string

const (
	VerificationStatePending   VerificationState = "pending"
	VerificationStateCorrect   VerificationState = "correct"
	VerificationStateIncorrect VerificationState = "incorrect"
)

// GuessRecord is an auditor's encrypted guess against a target hash record.
// All fields except State are immutable after creation.
type GuessRecord struct {
	ID             int64
	TargetHashID   int64
	Owner          string
	EncryptedGuess EncryptedValueHandle
	State          VerificationState
	SubmittedAt    time.Time
}

// Verified reports whether the guess has reached a terminal state.
func (g *GuessRecord) Verified() bool {
	return g.State != VerificationStatePending
}
