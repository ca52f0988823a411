package memory

import (
	"context"
	"sort"
	"sync"

	"fleetrental-backend/internal/storage"
)

// Store is an in-memory ledger store. It backs tests and single-node runs;
// all operations are guarded by one mutex, which trivially satisfies the
// per-key atomicity the registries expect.
type Store struct {
	mu      sync.RWMutex
	buckets map[storage.Bucket]map[string][]byte
}

func NewStore() *Store {
	return &Store{
		buckets: make(map[storage.Bucket]map[string][]byte),
	}
}

func (s *Store) bucket(name storage.Bucket) map[string][]byte {
	b, ok := s.buckets[name]
	if !ok {
		b = make(map[string][]byte)
		s.buckets[name] = b
	}
	return b
}

func (s *Store) Get(ctx context.Context, bucket storage.Bucket, key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.buckets[bucket][string(key)]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return clone(value), nil
}

func (s *Store) MayGet(ctx context.Context, bucket storage.Bucket, key []byte) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.buckets[bucket][string(key)]
	if !ok {
		return nil, false, nil
	}
	return clone(value), true, nil
}

func (s *Store) Put(ctx context.Context, bucket storage.Bucket, key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bucket(bucket)[string(key)] = clone(value)
	return nil
}

func (s *Store) PutIfAbsent(ctx context.Context, bucket storage.Bucket, key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.bucket(bucket)
	if _, ok := b[string(key)]; ok {
		return storage.ErrKeyExists
	}
	b[string(key)] = clone(value)
	return nil
}

func (s *Store) Update(ctx context.Context, bucket storage.Bucket, key []byte, fn storage.UpdateFunc) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.bucket(bucket)
	current, found := b[string(key)]

	next, err := fn(clone(current), found)
	if err != nil {
		return nil, err
	}
	b[string(key)] = clone(next)
	return next, nil
}

func (s *Store) List(ctx context.Context, bucket storage.Bucket) ([]storage.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := s.buckets[bucket]
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]storage.Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, storage.Entry{Key: []byte(k), Value: clone(b[k])})
	}
	return entries, nil
}

func (s *Store) Close() error {
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
