// Package protocol defines the wire messages exchanged with the decryption
// oracle over NATS. Payloads are CBOR-encoded.
package protocol

import (
	"github.com/fxamacker/cbor/v2"
)

// Operation selects what the engine is asked to do with the submitted
// handles.
type Operation string

const (
	// OpDecrypt decrypts a single handle and returns its plaintext string.
	OpDecrypt Operation = "decrypt"

	// OpEquality evaluates the encrypted equality predicate over exactly two
	// handles and returns only the boolean outcome, never the operands.
	OpEquality Operation = "equality"
)

// DecryptionRequest is published by the server to ask the engine for an
// asynchronous decryption. The engine replies synchronously with
// DecryptionAccepted and later publishes a DecryptionCallback.
type DecryptionRequest struct {
	Op      Operation `cbor:"op"`
	Handles []string  `cbor:"handles"`
}

// DecryptionAccepted carries the engine-assigned request id, unique per
// outstanding call.
type DecryptionAccepted struct {
	RequestID string `cbor:"request_id"`
}

// DecryptionCallback is the one-shot asynchronous result. CleartextPayload is
// a CBOR-encoded string (OpDecrypt) or bool (OpEquality); Proof authenticates
// the payload for this exact request id.
type DecryptionCallback struct {
	RequestID        string `cbor:"request_id"`
	CleartextPayload []byte `cbor:"cleartext_payload"`
	Proof            []byte `cbor:"proof"`
}

// Marshal encodes a message as CBOR.
func Marshal(v any) ([]byte, error) {
	return cbor.Marshal(v)
}

// Unmarshal decodes a CBOR message.
func Unmarshal(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}

// EncodeStringPayload encodes the cleartext payload of an OpDecrypt result.
func EncodeStringPayload(s string) ([]byte, error) {
	return cbor.Marshal(s)
}

// DecodeStringPayload decodes the cleartext payload of an OpDecrypt result.
func DecodeStringPayload(data []byte) (string, error) {
	var s string
	if err := cbor.Unmarshal(data, &s); err != nil {
		return "", err
	}
	return s, nil
}

// EncodeBoolPayload encodes the cleartext payload of an OpEquality result.
func EncodeBoolPayload(b bool) ([]byte, error) {
	return cbor.Marshal(b)
}

// DecodeBoolPayload decodes the cleartext payload of an OpEquality result.
func DecodeBoolPayload(data []byte) (bool, error) {
	var b bool
	if err := cbor.Unmarshal(data, &b); err != nil {
		return false, err
	}
	return b, nil
}
