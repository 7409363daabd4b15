package jsonstore_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"content_admin/internal/storage"
	"content_admin/internal/storage/jsonstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newStore(t *testing.T, mode jsonstore.Mode) (*jsonstore.Store[record], string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", "records.json")

	return jsonstore.New[record](slog.Default(), path, mode), path
}

func TestStore_LoadMissingFile(t *testing.T) {
	for _, mode := range []jsonstore.Mode{jsonstore.Lenient, jsonstore.Strict} {
		s, _ := newStore(t, mode)

		records, err := s.Load(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	}
}

func TestStore_LoadMalformed(t *testing.T) {
	t.Run("lenient swallows parse errors", func(t *testing.T) {
		s, path := newStore(t, jsonstore.Lenient)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		records, err := s.Load(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("strict surfaces parse errors", func(t *testing.T) {
		s, path := newStore(t, jsonstore.Strict)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		_, err := s.Load(context.Background())
		assert.ErrorIs(t, err, storage.ErrMalformedStore)
	})

	t.Run("null document is an empty list", func(t *testing.T) {
		s, path := newStore(t, jsonstore.Strict)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("null"), 0644))

		records, err := s.Load(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})
}

func TestStore_LenientKeepsValidJSON(t *testing.T) {
	for name, doc := range map[string]string{
		"object instead of array": `{"id": "a"}`,
		"wrong field type":        `[{"id": 7, "name": "x"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			s, path := newStore(t, jsonstore.Lenient)
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
			require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

			_, err := s.Load(context.Background())
			assert.ErrorIs(t, err, storage.ErrMalformedStore)

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, doc, string(raw))
		})
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s, path := newStore(t, jsonstore.Strict)

	in := []record{
		{ID: "a", Name: "Colombo <north>"},
		{ID: "b", Name: "යාපනය"},
	}
	require.NoError(t, s.Save(ctx, in))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Colombo <north>")
	assert.Contains(t, string(raw), "යාපනය")
	assert.Contains(t, string(raw), "\n  {")

	out, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	t.Run("overwrites previous content", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, in[:1]))

		out, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, in[:1], out)
	})

	t.Run("nil saves as empty array", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, nil))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(raw))
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestStore_CanceledContext(t *testing.T) {
	s, _ := newStore(t, jsonstore.Lenient)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Save(ctx, nil), context.Canceled)
}
