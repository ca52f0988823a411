package redis

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"fleetrental-backend/internal/storage"
)

const keyPrefix = "fleetledger"

// maxUpdateRetries bounds the optimistic WATCH/MULTI loop in Update.
const maxUpdateRetries = 16

// Store keeps the ledger buckets in Redis. Keys are namespaced as
// fleetledger:<bucket>:<hex key>; Update relies on WATCH-based optimistic
// transactions for the atomic read-modify-write contract.
type Store struct {
	client *redis.Client
}

func NewStore(url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Store{client: client}, nil
}

func redisKey(bucket storage.Bucket, key []byte) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, bucket, hex.EncodeToString(key))
}

func (s *Store) Get(ctx context.Context, bucket storage.Bucket, key []byte) ([]byte, error) {
	value, err := s.client.Get(ctx, redisKey(bucket, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *Store) MayGet(ctx context.Context, bucket storage.Bucket, key []byte) ([]byte, bool, error) {
	value, err := s.Get(ctx, bucket, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *Store) Put(ctx context.Context, bucket storage.Bucket, key, value []byte) error {
	return s.client.Set(ctx, redisKey(bucket, key), value, 0).Err()
}

func (s *Store) PutIfAbsent(ctx context.Context, bucket storage.Bucket, key, value []byte) error {
	ok, err := s.client.SetNX(ctx, redisKey(bucket, key), value, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return storage.ErrKeyExists
	}
	return nil
}

func (s *Store) Update(ctx context.Context, bucket storage.Bucket, key []byte, fn storage.UpdateFunc) ([]byte, error) {
	k := redisKey(bucket, key)
	var result []byte

	txFn := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, k).Bytes()
		found := true
		if errors.Is(err, redis.Nil) {
			current, found = nil, false
		} else if err != nil {
			return err
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, next, 0)
			return nil
		})
		if err != nil {
			return err
		}
		result = next
		return nil
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txFn, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, fmt.Errorf("update %s: too many optimistic transaction conflicts", k)
}

func (s *Store) List(ctx context.Context, bucket storage.Bucket) ([]storage.Entry, error) {
	pattern := fmt.Sprintf("%s:%s:*", keyPrefix, bucket)
	prefixLen := len(pattern) - 1

	var entries []storage.Entry
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		full := iter.Val()
		key, err := hex.DecodeString(full[prefixLen:])
		if err != nil {
			return nil, fmt.Errorf("decode key %s: %w", full, err)
		}
		value, err := s.client.Get(ctx, full).Bytes()
		if errors.Is(err, redis.Nil) {
			continue // deleted between scan and get
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, storage.Entry{Key: key, Value: value})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].Key, entries[j].Key) < 0
	})
	return entries, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
