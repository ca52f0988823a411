package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fleetrental-backend/internal/storage"

	_ "github.com/lib/pq"
)

// Store persists the ledger buckets in a single key-value relation. Update
// takes a row lock (SELECT ... FOR UPDATE) so the read-modify-write is atomic
// even if the host ever relaxes its per-invocation serialization.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the backing relation if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS ledger_kv (
			bucket TEXT  NOT NULL,
			key    BYTEA NOT NULL,
			value  BYTEA NOT NULL,
			PRIMARY KEY (bucket, key)
		)`)
	if err != nil {
		return fmt.Errorf("create ledger_kv: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, bucket storage.Bucket, key []byte) ([]byte, error) {
	var value []byte
	query := `SELECT value FROM ledger_kv WHERE bucket = $1 AND key = $2`
	err := s.db.QueryRowContext(ctx, query, string(bucket), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
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
	query := `INSERT INTO ledger_kv (bucket, key, value) VALUES ($1, $2, $3)
	          ON CONFLICT (bucket, key) DO UPDATE SET value = EXCLUDED.value`
	_, err := s.db.ExecContext(ctx, query, string(bucket), key, value)
	return err
}

func (s *Store) PutIfAbsent(ctx context.Context, bucket storage.Bucket, key, value []byte) error {
	query := `INSERT INTO ledger_kv (bucket, key, value) VALUES ($1, $2, $3)
	          ON CONFLICT (bucket, key) DO NOTHING`
	res, err := s.db.ExecContext(ctx, query, string(bucket), key, value)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrKeyExists
	}
	return nil
}

func (s *Store) Update(ctx context.Context, bucket storage.Bucket, key []byte, fn storage.UpdateFunc) ([]byte, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var current []byte
	found := true
	query := `SELECT value FROM ledger_kv WHERE bucket = $1 AND key = $2 FOR UPDATE`
	err = tx.QueryRowContext(ctx, query, string(bucket), key).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		current, found = nil, false
	} else if err != nil {
		return nil, err
	}

	next, err := fn(current, found)
	if err != nil {
		return nil, err
	}

	upsert := `INSERT INTO ledger_kv (bucket, key, value) VALUES ($1, $2, $3)
	           ON CONFLICT (bucket, key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := tx.ExecContext(ctx, upsert, string(bucket), key, next); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *Store) List(ctx context.Context, bucket storage.Bucket) ([]storage.Entry, error) {
	query := `SELECT key, value FROM ledger_kv WHERE bucket = $1 ORDER BY key`
	rows, err := s.db.QueryContext(ctx, query, string(bucket))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []storage.Entry
	for rows.Next() {
		var e storage.Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
