// Package cryptox implements the cryptographic primitives shared by the
// HashAudit client, server and the development decryption engine: key
// derivation, ciphertext sealing and the HMAC proofs carried by oracle
// callbacks.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/argon2"
)

const nonceSize = 12

var ErrCiphertextTooShort = errors.New("ciphertext too short")

// DeriveKey derives a 32-byte encryption key from a passphrase and salt
// using Argon2id.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}

// HashPassword returns the hex-encoded SHA-256 digest of a password. This is
// the plaintext "hash value" whose encrypted form the audit records hold.
func HashPassword(password []byte) string {
	sum := sha256.Sum256(password)
	return hex.EncodeToString(sum[:])
}

// Seal encrypts plaintext with AES-GCM under key and returns a single blob
// with the random 12-byte nonce prepended to the ciphertext. The key must be
// 16, 24 or 32 bytes long.
func Seal(plaintext, key []byte) ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a blob produced by Seal with the same key.
func Open(blob, key []byte) ([]byte, error) {
	if len(blob) < nonceSize {
		return nil, ErrCiphertextTooShort
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return aesgcm.Open(nil, blob[:nonceSize], blob[nonceSize:], nil)
}

// SignProof computes the proof the engine attaches to a decryption callback:
// HMAC-SHA256 over the request id and the cleartext payload.
func SignProof(key []byte, requestID string, payload []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(requestID))
	mac.Write(payload)
	return mac.Sum(nil)
}

// VerifyProof reports whether proof is a valid signature for the given
// request id and payload. Comparison is constant-time.
func VerifyProof(key []byte, requestID string, payload, proof []byte) bool {
	expected := SignProof(key, requestID, payload)
	return hmac.Equal(expected, proof)
}
