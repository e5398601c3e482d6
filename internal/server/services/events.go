package services

import "context"

// EventName identifies a lifecycle event of the audit protocol.
type EventName string

const (
	EventHashSubmitted       EventName = "hash_submitted"
	EventDecryptionRequested EventName = "decryption_requested"
	EventHashRevealed        EventName = "hash_revealed"
	EventGuessSubmitted      EventName = "guess_submitted"
	EventGuessVerified       EventName = "guess_verified"
)

// Event is published to external observers on every state transition.
// Delivery is fire-and-forget: only the transition itself is exactly-once,
// not its observation.
type Event struct {
	Name    EventName
	HashID  int64
	GuessID int64
	IsMatch bool
}

// Sink receives lifecycle events. Implementations must not block the caller
// for long and must swallow delivery failures.
type Sink interface {
	Publish(ctx context.Context, e Event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Publish(context.Context, Event) {}
