package blobstore

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	key, err := s.Put(ctx, []byte("ciphertext"))
	require.NoError(t, err)
	require.NotEmpty(t, key)

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, []byte("ciphertext"), got)
}

func TestMemoryStore_GetUnknownKey(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "blobs/no/such/key")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryStore_PutCopiesData(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	data := []byte("original")
	key, err := s.Put(ctx, data)
	require.NoError(t, err)

	data[0] = 'X'

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, []byte("original"), got)
}

func TestRandomStorageKey(t *testing.T) {
	k1 := RandomStorageKey()
	k2 := RandomStorageKey()

	require.True(t, strings.HasPrefix(k1, "blobs/"))
	require.NotEqual(t, k1, k2)
}
