package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/repository"
	"fleetrental-backend/internal/storage/memory"
)

func newCarRepo(t *testing.T) repository.CarRepository {
	t.Helper()
	return NewCarRepository(memory.NewStore())
}

func TestCarRepository_Create(t *testing.T) {
	repo := newCarRepo(t)
	ctx := context.Background()

	car := &domain.Car{ID: 1, Name: "Model 3", Model: "2024", RentFee: 10, DepositFee: 5, Status: domain.CarStatusInUse}
	require.NoError(t, repo.Create(ctx, car))

	t.Run("new cars are available", func(t *testing.T) {
		stored, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.CarStatusAvailable, stored.Status)
		assert.Equal(t, uint64(10), stored.RentFee)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		err := repo.Create(ctx, &domain.Car{ID: 1, Name: "Clone"})
		var exists *domain.CarAlreadyExistsError
		require.ErrorAs(t, err, &exists)
		assert.Equal(t, uint64(1), exists.CarID)
	})
}

func TestCarRepository_GetByID_NotFound(t *testing.T) {
	repo := newCarRepo(t)

	_, err := repo.GetByID(context.Background(), 42)
	var notFound *domain.CarNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint64(42), notFound.CarID)
}

func TestCarRepository_List(t *testing.T) {
	repo := newCarRepo(t)
	ctx := context.Background()

	for _, id := range []uint64{9, 2, 5} {
		require.NoError(t, repo.Create(ctx, &domain.Car{ID: id, Name: "car"}))
	}

	cars, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cars, 3)
	assert.Equal(t, uint64(2), cars[0].ID)
	assert.Equal(t, uint64(5), cars[1].ID)
	assert.Equal(t, uint64(9), cars[2].ID)
}

func TestCarRepository_ReserveRelease(t *testing.T) {
	repo := newCarRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &domain.Car{ID: 1, Name: "Model 3"}))

	t.Run("reserve available car", func(t *testing.T) {
		car, err := repo.Reserve(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.CarStatusInUse, car.Status)
	})

	t.Run("double reserve fails", func(t *testing.T) {
		_, err := repo.Reserve(ctx, 1)
		var notAvailable *domain.CarNotAvailableError
		require.ErrorAs(t, err, &notAvailable)
		assert.Equal(t, uint64(1), notAvailable.CarID)
	})

	t.Run("release returns car to fleet", func(t *testing.T) {
		car, err := repo.Release(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.CarStatusAvailable, car.Status)
	})

	t.Run("double release fails", func(t *testing.T) {
		_, err := repo.Release(ctx, 1)
		var notRented *domain.CarNotRentedError
		require.ErrorAs(t, err, &notRented)
		assert.Equal(t, uint64(1), notRented.CarID)
	})

	t.Run("unknown car", func(t *testing.T) {
		_, err := repo.Reserve(ctx, 99)
		var notFound *domain.CarNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}
