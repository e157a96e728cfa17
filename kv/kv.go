// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the key-value persistence boundary of the ledger.
package kv

// Getter wraps methods for getting kvs.
type Getter interface {
	// Get value for given key.
	// An error returned if key not found. It can be checked via IsNotFound.
	Get(key []byte) (value []byte, err error)
	Has(key []byte) (bool, error)
	IsNotFound(error) bool

	NewIterator(r Range) Iterator
}

// Putter wraps methods for putting kvs.
type Putter interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// GetPutter wraps methods for getting/putting kvs.
type GetPutter interface {
	Getter
	Putter
}

// Store is the full store surface, with atomic batches.
type Store interface {
	GetPutter

	NewBatch() Batch
	NewKeyspace(space string) Keyspace
	Close() error
}

// Batch defines a batch of putting ops, written atomically.
type Batch interface {
	Putter

	Len() int
	Write() error
}

// Keyspace is a logical partition of a store. All keys are transparently
// prefixed with the space name.
type Keyspace interface {
	GetPutter

	// NewBatchPutter prefixes puts of the given batch with the space name.
	// The caller still owns the batch and decides when it is written.
	NewBatchPutter(b Batch) Putter
}

// Range describes a key range [Start, Limit).
type Range struct {
	Start []byte
	Limit []byte
}

// Iterator iterates kvs.
type Iterator interface {
	Next() bool
	Release()
	Error() error

	Key() []byte
	Value() []byte
}
