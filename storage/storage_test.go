package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoredName(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	t.Run("keeps the original extension", func(t *testing.T) {
		name := StoredName("certidao.pdf", now)
		assert.True(t, strings.HasSuffix(name, ".pdf"))
	})

	t.Run("hash prefix is 32 hex characters", func(t *testing.T) {
		name := StoredName("rg.jpeg", now)
		assert.Len(t, strings.TrimSuffix(name, ".jpeg"), 32)
	})

	t.Run("same name and instant derive the same stored name", func(t *testing.T) {
		assert.Equal(t, StoredName("doc.pdf", now), StoredName("doc.pdf", now))
	})

	t.Run("different instants derive different stored names", func(t *testing.T) {
		later := now.Add(time.Second)
		assert.NotEqual(t, StoredName("doc.pdf", now), StoredName("doc.pdf", later))
	})

	t.Run("directory components are ignored", func(t *testing.T) {
		assert.Equal(t, StoredName("doc.pdf", now), StoredName("/tmp/somewhere/doc.pdf", now))
	})
}

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("upload then download round-trips the content", func(t *testing.T) {
		store, err := NewLocalStorage(t.TempDir())
		require.NoError(t, err)

		content := []byte("%PDF-1.4 fake certificate")
		path, err := store.Upload(ctx, "abc123.pdf", bytes.NewReader(content))
		require.NoError(t, err)
		require.NotEmpty(t, path)

		reader, err := store.Download(ctx, path)
		require.NoError(t, err)
		defer reader.Close()

		got, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("delete removes the file", func(t *testing.T) {
		store, err := NewLocalStorage(t.TempDir())
		require.NoError(t, err)

		path, err := store.Upload(ctx, "gone.pdf", strings.NewReader("bye"))
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, path))

		_, err = store.Download(ctx, path)
		assert.Error(t, err)
	})

	t.Run("deleting a missing file is not an error", func(t *testing.T) {
		store, err := NewLocalStorage(t.TempDir())
		require.NoError(t, err)

		assert.NoError(t, store.Delete(ctx, "never-existed.pdf"))
	})

	t.Run("creates the upload directory", func(t *testing.T) {
		dir := t.TempDir() + "/nested/uploads"
		_, err := NewLocalStorage(dir)
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}
