package store

import (
	"context"
	"encoding/json"

	apperrors "rentstock/internal/errors"
)

// Collection names used by the backend. Every backend persists each
// collection as one unit: Load returns the full contents, Save replaces
// them. There is no record-level update primitive.
const (
	Products  = "products"
	Customers = "customers"
	Rentals   = "rentals"
	Users     = "users"
)

type Store interface {
	Load(ctx context.Context, collection string) ([]json.RawMessage, error)
	Save(ctx context.Context, collection string, records []json.RawMessage) error
}

func Decode[T any](records []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(records))
	for _, raw := range records {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, apperrors.NewStorageError("decoding record", err)
		}
		out = append(out, item)
	}
	return out, nil
}

func Encode[T any](items []T) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, apperrors.NewStorageError("encoding record", err)
		}
		out = append(out, raw)
	}
	return out, nil
}
