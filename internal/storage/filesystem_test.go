package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	key, err := store.Write(context.Background(), "uploads/p1/hero.png", []byte("bytes"))
	require.NoError(t, err)
	require.Equal(t, "uploads/p1/hero.png", key)

	data, err := store.Read(context.Background(), key)
	require.NoError(t, err)
	require.Equal(t, []byte("bytes"), data)
}

func TestSanitizeKeyRejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Write(context.Background(), "../escape.txt", []byte("x"))
	require.Error(t, err)

	_, err = store.Write(context.Background(), "", []byte("x"))
	require.Error(t, err)

	// Leading slashes are stripped, not rejected.
	key, err := store.Write(context.Background(), "/rooted/file.png", []byte("x"))
	require.NoError(t, err)
	require.Equal(t, "rooted/file.png", key)
}
