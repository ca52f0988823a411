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

type carRepository struct {
	store storage.Store
}

func NewCarRepository(store storage.Store) repository.CarRepository {
	return &carRepository{store: store}
}

func (r *carRepository) Create(ctx context.Context, car *domain.Car) error {
	car.Status = domain.CarStatusAvailable

	value, err := json.Marshal(car)
	if err != nil {
		return fmt.Errorf("encode car: %w", err)
	}

	err = r.store.PutIfAbsent(ctx, storage.BucketCars, storage.Uint64Key(car.ID), value)
	if errors.Is(err, storage.ErrKeyExists) {
		return &domain.CarAlreadyExistsError{CarID: car.ID}
	}
	return err
}

func (r *carRepository) GetByID(ctx context.Context, id uint64) (*domain.Car, error) {
	value, err := r.store.Get(ctx, storage.BucketCars, storage.Uint64Key(id))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, &domain.CarNotFoundError{CarID: id}
	}
	if err != nil {
		return nil, err
	}

	var car domain.Car
	if err := json.Unmarshal(value, &car); err != nil {
		return nil, fmt.Errorf("decode car %d: %w", id, err)
	}
	return &car, nil
}

func (r *carRepository) List(ctx context.Context) ([]domain.Car, error) {
	entries, err := r.store.List(ctx, storage.BucketCars)
	if err != nil {
		return nil, err
	}

	cars := make([]domain.Car, 0, len(entries))
	for _, e := range entries {
		var car domain.Car
		if err := json.Unmarshal(e.Value, &car); err != nil {
			return nil, fmt.Errorf("decode car %d: %w", storage.KeyUint64(e.Key), err)
		}
		cars = append(cars, car)
	}
	return cars, nil
}

func (r *carRepository) Reserve(ctx context.Context, id uint64) (*domain.Car, error) {
	return r.transition(ctx, id, func(car *domain.Car) error {
		if car.Status != domain.CarStatusAvailable {
			return &domain.CarNotAvailableError{CarID: id}
		}
		car.Status = domain.CarStatusInUse
		return nil
	})
}

func (r *carRepository) Release(ctx context.Context, id uint64) (*domain.Car, error) {
	return r.transition(ctx, id, func(car *domain.Car) error {
		if car.Status != domain.CarStatusInUse {
			return &domain.CarNotRentedError{CarID: id}
		}
		car.Status = domain.CarStatusAvailable
		return nil
	})
}

// transition applies a status change as one atomic compare-and-set; two
// concurrent reservations can never both observe Available.
func (r *carRepository) transition(ctx context.Context, id uint64, fn func(*domain.Car) error) (*domain.Car, error) {
	var car domain.Car

	_, err := r.store.Update(ctx, storage.BucketCars, storage.Uint64Key(id), func(current []byte, found bool) ([]byte, error) {
		if !found {
			return nil, &domain.CarNotFoundError{CarID: id}
		}
		if err := json.Unmarshal(current, &car); err != nil {
			return nil, fmt.Errorf("decode car %d: %w", id, err)
		}
		if err := fn(&car); err != nil {
			return nil, err
		}
		return json.Marshal(&car)
	})
	if err != nil {
		return nil, err
	}
	return &car, nil
}
