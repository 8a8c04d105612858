package blob_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abba-Jere11/properties-sub001/internal/blob"
)

func TestStore_PutOpenRemove(t *testing.T) {
	store, err := blob.New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "owner/statement_1.pdf", strings.NewReader("content")))

	rc, err := store.Open(ctx, "owner/statement_1.pdf")
	require.NoError(t, err)

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "content", string(data))

	require.NoError(t, store.Remove(ctx, "owner/statement_1.pdf"))

	_, err = store.Open(ctx, "owner/statement_1.pdf")
	assert.Error(t, err)
}

func TestStore_RejectsEscapingPaths(t *testing.T) {
	store, err := blob.New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	for _, path := range []string{"../outside.txt", "/etc/passwd", "a/../../b", ".", ".."} {
		err := store.Put(ctx, path, strings.NewReader("x"))
		assert.Error(t, err, "path %q must be rejected", path)
	}
}

func TestStore_AcceptsDotPrefixedKeys(t *testing.T) {
	store, err := blob.New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	// Keys whose first segment merely starts with dots stay inside the root.
	for _, path := range []string{"..cache/x", ".hidden", "a/..b"} {
		require.NoError(t, store.Put(ctx, path, strings.NewReader("x")), "path %q", path)

		rc, err := store.Open(ctx, path)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
	}
}
