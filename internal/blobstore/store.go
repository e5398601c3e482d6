// Package blobstore stores encrypted value blobs and hands out the opaque
// handles the rest of the system passes around. The audit server never needs
// the blob contents back; only the decryption engine reads them.
package blobstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store is a content-addressed-ish blob store: Put picks the key.
type Store interface {
	// Put stores data and returns the handle it is retrievable under.
	Put(ctx context.Context, data []byte) (string, error)
	// Get returns the blob stored under key, or common.ErrorNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
}

// RandomStorageKey generates a date-prefixed unique object key.
func RandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("blobs/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}
