package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	fs, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)
	return fs, path
}

func doc(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestFileStoreCRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs, _ := newTestStore(t)

	require.NoError(t, fs.Insert(ctx, "events", "e1", doc(t, map[string]any{"id": "e1", "name": "Rock Night"})))
	require.NoError(t, fs.Insert(ctx, "events", "e2", doc(t, map[string]any{"id": "e2", "name": "Jazz Eve"})))

	t.Run("list returns all documents", func(t *testing.T) {
		docs, err := fs.List(ctx, "events")
		require.NoError(t, err)
		require.Len(t, docs, 2)
	})

	t.Run("get returns the matching document", func(t *testing.T) {
		raw, err := fs.Get(ctx, "events", "e2")
		require.NoError(t, err)
		require.JSONEq(t, `{"id":"e2","name":"Jazz Eve"}`, string(raw))
	})

	t.Run("insert with taken id fails", func(t *testing.T) {
		err := fs.Insert(ctx, "events", "e1", doc(t, map[string]any{"id": "e1"}))
		require.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("replace swaps the document", func(t *testing.T) {
		require.NoError(t, fs.Replace(ctx, "events", "e1", doc(t, map[string]any{"id": "e1", "name": "Rock Night II"})))
		raw, err := fs.Get(ctx, "events", "e1")
		require.NoError(t, err)
		require.Contains(t, string(raw), "Rock Night II")
	})

	t.Run("replace of missing id fails", func(t *testing.T) {
		err := fs.Replace(ctx, "events", "nope", doc(t, map[string]any{"id": "nope"}))
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete removes the document", func(t *testing.T) {
		require.NoError(t, fs.Delete(ctx, "events", "e2"))
		_, err := fs.Get(ctx, "events", "e2")
		require.ErrorIs(t, err, ErrNotFound)

		require.ErrorIs(t, fs.Delete(ctx, "events", "e2"), ErrNotFound)
	})

	t.Run("unknown collection lists empty", func(t *testing.T) {
		docs, err := fs.List(ctx, "coupons")
		require.NoError(t, err)
		require.Empty(t, docs)
	})
}

func TestFileStoreReplaceAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs, _ := newTestStore(t)

	require.NoError(t, fs.Insert(ctx, "sectors", "s1", doc(t, map[string]any{"id": "s1"})))

	require.NoError(t, fs.ReplaceAll(ctx, "sectors", []json.RawMessage{
		doc(t, map[string]any{"id": "s2"}),
		doc(t, map[string]any{"id": "s3"}),
	}))

	docs, err := fs.List(ctx, "sectors")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	_, err = fs.Get(ctx, "sectors", "s1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs, path := newTestStore(t)

	require.NoError(t, fs.Insert(ctx, "users", "u1", doc(t, map[string]any{"id": "u1", "email": "a@b.com"})))

	reopened, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)

	raw, err := reopened.Get(ctx, "users", "u1")
	require.NoError(t, err)
	require.Contains(t, string(raw), "a@b.com")
}

func TestDocumentID(t *testing.T) {
	t.Parallel()

	t.Run("string id", func(t *testing.T) {
		id, err := DocumentID(json.RawMessage(`{"id":"abc"}`))
		require.NoError(t, err)
		require.Equal(t, "abc", id)
	})

	t.Run("numeric id normalized to decimal string", func(t *testing.T) {
		id, err := DocumentID(json.RawMessage(`{"id":1}`))
		require.NoError(t, err)
		require.Equal(t, "1", id)
	})

	t.Run("absent id is empty", func(t *testing.T) {
		id, err := DocumentID(json.RawMessage(`{"name":"x"}`))
		require.NoError(t, err)
		require.Empty(t, id)
	})

	t.Run("with id set", func(t *testing.T) {
		out, err := WithDocumentID(json.RawMessage(`{"name":"x"}`), "id-9")
		require.NoError(t, err)
		require.JSONEq(t, `{"name":"x","id":"id-9"}`, string(out))
	})
}
