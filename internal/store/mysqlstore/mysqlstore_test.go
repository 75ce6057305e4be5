package mysqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Expects a MySQL instance at localhost:3306 with a 'rentstock_test'
// database; skips otherwise.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("mysql", "root:@tcp(localhost:3306)/rentstock_test")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}
	return db
}

func cleanup(t *testing.T, db *sql.DB) {
	t.Helper()
	if _, err := db.Exec("DELETE FROM records"); err != nil {
		t.Logf("failed to clean records table: %v", err)
	}
	db.Close()
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer cleanup(t, db)

	s := New(db)
	ctx := context.Background()
	require.NoError(t, s.EnsureSchema(ctx))

	in := []json.RawMessage{
		json.RawMessage(`{"id": "p1", "name": "drill"}`),
		json.RawMessage(`{"id": "p2", "name": "saw"}`),
	}
	require.NoError(t, s.Save(ctx, "products", in))

	out, err := s.Load(ctx, "products")
	require.NoError(t, err)
	require.Len(t, out, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal(out[0], &first))
	assert.Equal(t, "p1", first["id"])
}

func TestStore_SaveReplacesContents(t *testing.T) {
	db := setupTestDB(t)
	defer cleanup(t, db)

	s := New(db)
	ctx := context.Background()
	require.NoError(t, s.EnsureSchema(ctx))

	require.NoError(t, s.Save(ctx, "products", []json.RawMessage{
		json.RawMessage(`{"id": "p1"}`),
		json.RawMessage(`{"id": "p2"}`),
	}))
	require.NoError(t, s.Save(ctx, "products", []json.RawMessage{
		json.RawMessage(`{"id": "p3"}`),
	}))

	out, err := s.Load(ctx, "products")
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestStore_CollectionsAreIndependent(t *testing.T) {
	db := setupTestDB(t)
	defer cleanup(t, db)

	s := New(db)
	ctx := context.Background()
	require.NoError(t, s.EnsureSchema(ctx))

	require.NoError(t, s.Save(ctx, "products", []json.RawMessage{json.RawMessage(`{"id": "p1"}`)}))
	require.NoError(t, s.Save(ctx, "rentals", []json.RawMessage{json.RawMessage(`{"id": "r1"}`)}))

	products, err := s.Load(ctx, "products")
	require.NoError(t, err)
	assert.Len(t, products, 1)

	rentals, err := s.Load(ctx, "rentals")
	require.NoError(t, err)
	assert.Len(t, rentals, 1)
}
