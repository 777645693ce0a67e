package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/px/internal/db"
)

func openTestBackend(t *testing.T) *SQLite {
	t.Helper()
	sqlDB, err := db.Open(filepath.Join(t.TempDir(), "px.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewSQLite(sqlDB)
}

func TestSQLite_InsertAndSelectInCreationOrder(t *testing.T) {
	b := openTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Insert(ctx, Projects, []Row{
		{"id": "p2", "name": "Second", "created_at": "2024-01-02T00:00:00Z"},
		{"id": "p1", "name": "First", "created_at": "2024-01-01T00:00:00Z"},
		{"id": "p3", "name": "Tie", "created_at": "2024-01-02T00:00:00Z"},
	}))

	rows, err := b.Select(ctx, Projects, Query{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "First", rows[0].String("name"))
	assert.Equal(t, "Second", rows[1].String("name"))
	assert.Equal(t, "Tie", rows[2].String("name"))
}

func TestSQLite_SelectNullFilter(t *testing.T) {
	b := openTestBackend(t)
	ctx := context.Background()

	root := "f1"
	require.NoError(t, b.Insert(ctx, Features, []Row{
		{"id": "f1", "name": "Root", "parent_feature_id": (*string)(nil), "created_at": "2024-01-01T00:00:00Z"},
		{"id": "f2", "name": "Child", "parent_feature_id": &root, "created_at": "2024-01-01T00:00:01Z"},
	}))

	roots, err := b.Select(ctx, Features, Eq("parent_feature_id", nil))
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "Root", roots[0].String("name"))
	assert.Nil(t, roots[0].NullString("parent_feature_id"))

	children, err := b.Select(ctx, Features, Eq("parent_feature_id", &root))
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "f1", *children[0].NullString("parent_feature_id"))
}

func TestSQLite_BatchCanReferenceEarlierRow(t *testing.T) {
	b := openTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Insert(ctx, Features, []Row{
		{"id": "a", "name": "A", "created_at": "2024-01-01T00:00:00Z"},
		{"id": "b", "name": "B", "parent_feature_id": "a", "created_at": "2024-01-01T00:00:00Z"},
	}))
}

func TestSQLite_FailedBatchIsRolledBack(t *testing.T) {
	b := openTestBackend(t)
	ctx := context.Background()

	err := b.Insert(ctx, Features, []Row{
		{"id": "a", "name": "A", "created_at": "2024-01-01T00:00:00Z"},
		{"id": "b", "name": "B", "parent_feature_id": "missing", "created_at": "2024-01-01T00:00:00Z"},
	})
	require.Error(t, err)

	rows, err := b.Select(ctx, Features, Query{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSQLite_IDPrefix(t *testing.T) {
	b := openTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Insert(ctx, Projects, []Row{
		{"id": "abc-1", "name": "One", "created_at": "2024-01-01T00:00:00Z"},
		{"id": "abd-2", "name": "Two", "created_at": "2024-01-01T00:00:01Z"},
		{"id": "a_c-3", "name": "Underscore", "created_at": "2024-01-01T00:00:02Z"},
	}))

	rows, err := b.Select(ctx, Projects, Query{IDPrefix: "ab"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = b.Select(ctx, Projects, Query{IDPrefix: "a_"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Underscore", rows[0].String("name"))
}

func TestSQLite_Update(t *testing.T) {
	b := openTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Insert(ctx, Projects, []Row{{"id": "p1", "name": "Old", "created_at": "2024-01-01T00:00:00Z"}}))
	require.NoError(t, b.Update(ctx, Projects, "p1", Row{"name": "New"}))

	rows, err := b.Select(ctx, Projects, Eq("id", "p1"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "New", rows[0].String("name"))
}

func TestSQLite_UpdateMissing(t *testing.T) {
	b := openTestBackend(t)
	err := b.Update(context.Background(), Projects, "nope", Row{"name": "x"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSQLite_DeleteCascades(t *testing.T) {
	b := openTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Insert(ctx, Projects, []Row{{"id": "p1", "name": "Shop", "created_at": "2024-01-01T00:00:00Z"}}))
	require.NoError(t, b.Insert(ctx, Pages, []Row{{"id": "pg1", "name": "Login", "project_id": "p1", "created_at": "2024-01-01T00:00:00Z"}}))

	require.NoError(t, b.Delete(ctx, Projects, "p1"))

	rows, err := b.Select(ctx, Pages, Query{})
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.True(t, errors.Is(b.Delete(ctx, Projects, "p1"), ErrNotFound))
}

func TestSQLite_RejectsUnknownColumn(t *testing.T) {
	b := openTestBackend(t)
	ctx := context.Background()

	_, err := b.Select(ctx, Projects, Eq("name; DROP TABLE projects", "x"))
	assert.Error(t, err)

	err = b.Insert(ctx, Projects, []Row{{"id": "p1", "bogus": "x"}})
	assert.Error(t, err)

	err = b.Update(ctx, Projects, "p1", Row{"id": "p2"})
	assert.Error(t, err)
}

func TestSQLite_RejectsUnknownTable(t *testing.T) {
	b := openTestBackend(t)
	_, err := b.Select(context.Background(), Table("users"), Query{})
	assert.Error(t, err)
}
