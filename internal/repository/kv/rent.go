package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/repository"
	"fleetrental-backend/internal/storage"
)

type rentRepository struct {
	store storage.Store
}

func NewRentRepository(store storage.Store) repository.RentRepository {
	return &rentRepository{store: store}
}

func (r *rentRepository) NextID(ctx context.Context) (uint64, error) {
	value, err := r.store.Update(ctx, storage.BucketSeq, storage.SeqKey, func(current []byte, found bool) ([]byte, error) {
		var seq uint64
		if found {
			seq = storage.KeyUint64(current)
		}
		return storage.Uint64Key(seq + 1), nil
	})
	if err != nil {
		return 0, fmt.Errorf("advance rent sequence: %w", err)
	}
	return storage.KeyUint64(value), nil
}

func (r *rentRepository) Create(ctx context.Context, rent *domain.Rent) error {
	value, err := json.Marshal(rent)
	if err != nil {
		return fmt.Errorf("encode rent: %w", err)
	}

	// Ids come from NextID, so a collision here indicates a corrupted counter.
	err = r.store.PutIfAbsent(ctx, storage.BucketRents, storage.Uint64Key(rent.ID), value)
	if errors.Is(err, storage.ErrKeyExists) {
		return fmt.Errorf("rent %d already recorded", rent.ID)
	}
	return err
}

func (r *rentRepository) GetByID(ctx context.Context, id uint64) (*domain.Rent, error) {
	value, err := r.store.Get(ctx, storage.BucketRents, storage.Uint64Key(id))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, &domain.RentNotFoundError{RentID: id}
	}
	if err != nil {
		return nil, err
	}

	var rent domain.Rent
	if err := json.Unmarshal(value, &rent); err != nil {
		return nil, fmt.Errorf("decode rent %d: %w", id, err)
	}
	return &rent, nil
}

func (r *rentRepository) List(ctx context.Context) ([]domain.Rent, error) {
	entries, err := r.store.List(ctx, storage.BucketRents)
	if err != nil {
		return nil, err
	}

	rents := make([]domain.Rent, 0, len(entries))
	for _, e := range entries {
		var rent domain.Rent
		if err := json.Unmarshal(e.Value, &rent); err != nil {
			return nil, fmt.Errorf("decode rent %d: %w", storage.KeyUint64(e.Key), err)
		}
		rents = append(rents, rent)
	}
	return rents, nil
}
