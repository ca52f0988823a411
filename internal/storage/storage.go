package storage

import (
	"context"
	"errors"
)

// Bucket names a logical table of the ledger store.
type Bucket string

const (
	BucketAccounts Bucket = "accounts"
	BucketCars     Bucket = "cars"
	BucketRents    Bucket = "rents"
	BucketSeq      Bucket = "seq"
)

var (
	ErrKeyNotFound = errors.New("storage: key not found")
	ErrKeyExists   = errors.New("storage: key already exists")
)

// Entry is a key/value pair returned by List.
type Entry struct {
	Key   []byte
	Value []byte
}

// UpdateFunc transforms the current value of a key inside an atomic
// read-modify-write. current is nil and found is false when the key is
// absent. A returned error aborts the update and is propagated unchanged,
// so callers may surface their own typed errors through Update.
type UpdateFunc func(current []byte, found bool) ([]byte, error)

// Store is the key-value capability backing the ledger. Implementations must
// provide per-key atomicity for Update and PutIfAbsent; registries rely on
// that rather than on load+save pairs for every state transition.
type Store interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(ctx context.Context, bucket Bucket, key []byte) ([]byte, error)

	// MayGet returns the value and true if the key exists; no error when absent.
	MayGet(ctx context.Context, bucket Bucket, key []byte) ([]byte, bool, error)

	// Put writes the value unconditionally.
	Put(ctx context.Context, bucket Bucket, key, value []byte) error

	// PutIfAbsent writes the value only if the key does not exist yet,
	// otherwise returns ErrKeyExists.
	PutIfAbsent(ctx context.Context, bucket Bucket, key, value []byte) error

	// Update applies fn to the current value of key as a single atomic
	// read-modify-write and returns the stored result.
	Update(ctx context.Context, bucket Bucket, key []byte, fn UpdateFunc) ([]byte, error)

	// List returns every entry of bucket in ascending byte order of the keys.
	// Numeric ids are encoded big-endian, so this yields id order.
	List(ctx context.Context, bucket Bucket) ([]Entry, error)

	Close() error
}
