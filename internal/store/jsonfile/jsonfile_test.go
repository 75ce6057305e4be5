package jsonfile

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileIsEmptyCollection(t *testing.T) {
	s := New(afero.NewMemMapFs(), "data")

	records, err := s.Load(context.Background(), "products")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := New(afero.NewMemMapFs(), "data")

	in := []json.RawMessage{
		json.RawMessage(`{"id":"p1","name":"drill"}`),
		json.RawMessage(`{"id":"p2","name":"saw"}`),
	}
	require.NoError(t, s.Save(context.Background(), "products", in))

	out, err := s.Load(context.Background(), "products")
	require.NoError(t, err)
	require.Len(t, out, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal(out[0], &first))
	assert.Equal(t, "p1", first["id"])
	assert.Equal(t, "drill", first["name"])
}

func TestSave_ReplacesContents(t *testing.T) {
	s := New(afero.NewMemMapFs(), "data")
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "products", []json.RawMessage{
		json.RawMessage(`{"id":"p1"}`),
		json.RawMessage(`{"id":"p2"}`),
	}))
	require.NoError(t, s.Save(ctx, "products", []json.RawMessage{
		json.RawMessage(`{"id":"p3"}`),
	}))

	out, err := s.Load(ctx, "products")
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestSave_NilRecordsWritesEmptyArray(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, "data")

	require.NoError(t, s.Save(context.Background(), "rentals", nil))

	data, err := afero.ReadFile(fs, "data/rentals.json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, "data")

	require.NoError(t, s.Save(context.Background(), "products", []json.RawMessage{
		json.RawMessage(`{"id":"p1"}`),
	}))

	exists, err := afero.Exists(fs, "data/products.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLoad_CorruptFileFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data/products.json", []byte("not json"), 0o644))

	s := New(fs, "data")
	_, err := s.Load(context.Background(), "products")
	assert.Error(t, err)
}
