package store

import (
	"context"
	"encoding/json"
	"sync"

	apperrors "rentstock/internal/errors"

	"go.uber.org/zap"
)

// Coordinator serializes all read-modify-write cycles against the
// underlying store. Request handlers run concurrently, but every
// collection mutation is a whole-collection rewrite, so two interleaved
// cycles against the same collection would lose updates. A single
// process-wide lock held across the full read-check-write span makes
// reserve/release against any product linearizable.
type Coordinator struct {
	mu     sync.Mutex
	store  Store
	logger *zap.Logger
}

func NewCoordinator(store Store, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		store:  store,
		logger: logger,
	}
}

// Exec runs fn under the coordinator lock. Collection writes staged on
// the Tx are flushed only after fn returns nil; any error from fn
// discards all staged writes. A flush failure part-way through restores
// the collections already written, so no half-applied commit is ever
// observable.
func (c *Coordinator) Exec(ctx context.Context, fn func(tx *Tx) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return apperrors.NewStorageError("transaction aborted", err)
	}

	tx := &Tx{
		ctx:   ctx,
		store: c.store,
		index: make(map[string]int),
	}

	if err := fn(tx); err != nil {
		return err
	}

	return tx.flush(c.logger)
}

type stagedWrite struct {
	collection string
	records    []json.RawMessage
}

// Tx buffers collection writes staged during one Exec cycle. Loads
// observe earlier stages in the same cycle, so a caller that staged a
// change reads its own write.
type Tx struct {
	ctx    context.Context
	store  Store
	writes []stagedWrite
	index  map[string]int
}

func (tx *Tx) Load(collection string) ([]json.RawMessage, error) {
	if i, ok := tx.index[collection]; ok {
		return tx.writes[i].records, nil
	}

	records, err := tx.store.Load(tx.ctx, collection)
	if err != nil {
		return nil, apperrors.NewStorageError("loading collection "+collection, err)
	}
	return records, nil
}

// Stage records the new full contents of a collection. Staging the same
// collection twice keeps its original position in the flush order.
func (tx *Tx) Stage(collection string, records []json.RawMessage) {
	if i, ok := tx.index[collection]; ok {
		tx.writes[i].records = records
		return
	}
	tx.index[collection] = len(tx.writes)
	tx.writes = append(tx.writes, stagedWrite{collection: collection, records: records})
}

type applied struct {
	collection string
	prior      []json.RawMessage
}

func (tx *Tx) flush(logger *zap.Logger) error {
	var done []applied
	for _, w := range tx.writes {
		prior, err := tx.store.Load(tx.ctx, w.collection)
		if err != nil {
			tx.rollback(done, logger)
			return apperrors.NewStorageError("snapshotting collection "+w.collection, err)
		}
		if err := tx.store.Save(tx.ctx, w.collection, w.records); err != nil {
			tx.rollback(done, logger)
			return apperrors.NewStorageError("saving collection "+w.collection, err)
		}
		done = append(done, applied{collection: w.collection, prior: prior})
	}
	return nil
}

func (tx *Tx) rollback(done []applied, logger *zap.Logger) {
	// The caller may have aborted mid-flush; the restore must still run.
	ctx := context.WithoutCancel(tx.ctx)
	for i := len(done) - 1; i >= 0; i-- {
		if err := tx.store.Save(ctx, done[i].collection, done[i].prior); err != nil {
			logger.Error("rollback failed",
				zap.String("collection", done[i].collection),
				zap.Error(err))
		}
	}
}

// LoadAll reads a collection through the transaction and decodes it.
func LoadAll[T any](tx *Tx, collection string) ([]T, error) {
	records, err := tx.Load(collection)
	if err != nil {
		return nil, err
	}
	return Decode[T](records)
}

// StageAll encodes items and stages them as the collection's new contents.
func StageAll[T any](tx *Tx, collection string, items []T) error {
	records, err := Encode(items)
	if err != nil {
		return err
	}
	tx.Stage(collection, records)
	return nil
}
