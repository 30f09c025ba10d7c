package metadata

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mybank/internal/client/client"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "metadata.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLite_SetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k1", []byte{0x01, 0x02}))

	v, err := r.Get(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02}, v)
}

func TestSQLite_GetAbsentReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLite_SetOverwritesAndTouchesUpdatedAt(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	_, err := db.Exec(`UPDATE metadata SET updated_at = '2000-01-01 00:00:00' WHERE key = 'k'`)
	require.NoError(t, err)

	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)

	var updatedAt string
	require.NoError(t, db.QueryRow(`SELECT updated_at FROM metadata WHERE key = 'k'`).Scan(&updatedAt))
	assert.NotEqual(t, "2000-01-01 00:00:00", updatedAt)
}

func TestSQLite_ListDeleteClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{0xAA}))
	require.NoError(t, r.Set(ctx, "b", []byte{0xBB, 0xCC}))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": {0xAA}, "b": {0xBB, 0xCC}}, m)

	require.NoError(t, r.Delete(ctx, "a"))
	require.NoError(t, r.Delete(ctx, "a"))
	v, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, r.Clear(ctx))
	m, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestSQLite_UpdateAppends(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	appendByte := func(b byte) UpdateFunc {
		return func(old []byte) ([]byte, error) {
			return append(old, b), nil
		}
	}

	require.NoError(t, r.Update(ctx, "log", appendByte('a')))
	require.NoError(t, r.Update(ctx, "log", appendByte('b')))

	v, err := r.Get(ctx, "log")
	require.NoError(t, err)
	assert.Equal(t, []byte("ab"), v)
}

func TestSQLite_UpdateErrorRollsBack(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	boom := errors.New("boom")

	require.NoError(t, r.Set(ctx, "k", []byte("keep")))

	err := r.Update(ctx, "k", func(old []byte) ([]byte, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("keep"), v)
}

func TestSQLite_ErrorsWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")
	require.ErrorContains(t, r.Set(ctx, "k", nil), "failed to set metadata[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete metadata[k]")
	require.ErrorContains(t, r.Clear(ctx), "failed to clear metadata")
	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list metadata")
	require.ErrorContains(t, r.Update(ctx, "k", func(old []byte) ([]byte, error) { return old, nil }), "begin tx")
}
