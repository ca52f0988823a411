package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleetrental-backend/internal/domain"
)

func newRentalFixture() (*mockRentRepository, *mockCarRepository, *mockAccountRepository, RentalService) {
	rentRepo := new(mockRentRepository)
	carRepo := new(mockCarRepository)
	accountRepo := new(mockAccountRepository)
	svc := NewRentalService(rentRepo, carRepo, accountRepo, nil)
	return rentRepo, carRepo, accountRepo, svc
}

func availableCar() *domain.Car {
	return &domain.Car{ID: 1, Name: "Model 3", RentFee: 10, DepositFee: 5, Status: domain.CarStatusAvailable}
}

func reservedCar() *domain.Car {
	car := availableCar()
	car.Status = domain.CarStatusInUse
	return car
}

func TestRentalService_BeginRental(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path escrows cost and records rent", func(t *testing.T) {
		rentRepo, carRepo, accountRepo, svc := newRentalFixture()

		accountRepo.On("GetByAddress", ctx, "alice").Return(&domain.Account{Address: "alice", Balance: 100}, nil)
		carRepo.On("Reserve", ctx, uint64(1)).Return(reservedCar(), nil)
		accountRepo.On("Debit", ctx, "alice", uint64(25)).Return(&domain.Account{Address: "alice", Balance: 75}, nil)
		rentRepo.On("NextID", ctx).Return(uint64(1), nil)
		rentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rent")).Return(nil)

		rent, err := svc.BeginRental(ctx, "alice", 1, 0, 120)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), rent.ID)
		assert.Equal(t, uint64(25), rent.RentCost)
		assert.Equal(t, uint64(75), rent.Renter.Balance)
		assert.Equal(t, domain.CarStatusInUse, rent.CarStatus)

		rentRepo.AssertExpectations(t)
		carRepo.AssertExpectations(t)
		accountRepo.AssertExpectations(t)
	})

	t.Run("invalid dates rejected before any write", func(t *testing.T) {
		_, carRepo, accountRepo, svc := newRentalFixture()

		_, err := svc.BeginRental(ctx, "alice", 1, 120, 0)
		var invalid *domain.InvalidDateRangeError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, uint64(120), invalid.StartDate)

		carRepo.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything)
		accountRepo.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown renter leaves car untouched", func(t *testing.T) {
		_, carRepo, accountRepo, svc := newRentalFixture()

		accountRepo.On("GetByAddress", ctx, "ghost").Return(nil, &domain.AccountNotFoundError{Address: "ghost"})

		_, err := svc.BeginRental(ctx, "ghost", 1, 0, 120)
		var notFound *domain.AccountNotFoundError
		require.ErrorAs(t, err, &notFound)

		carRepo.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything)
	})

	t.Run("car already rented", func(t *testing.T) {
		_, carRepo, accountRepo, svc := newRentalFixture()

		accountRepo.On("GetByAddress", ctx, "alice").Return(&domain.Account{Address: "alice"}, nil)
		carRepo.On("Reserve", ctx, uint64(1)).Return(nil, &domain.CarNotAvailableError{CarID: 1})

		_, err := svc.BeginRental(ctx, "alice", 1, 0, 120)
		var notAvailable *domain.CarNotAvailableError
		require.ErrorAs(t, err, &notAvailable)

		carRepo.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
		accountRepo.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("overflowing fee schedule releases the reservation", func(t *testing.T) {
		rentRepo, carRepo, accountRepo, svc := newRentalFixture()

		hugeFees := reservedCar()
		hugeFees.RentFee = math.MaxUint64

		accountRepo.On("GetByAddress", ctx, "alice").Return(&domain.Account{Address: "alice", Balance: 100}, nil)
		carRepo.On("Reserve", ctx, uint64(1)).Return(hugeFees, nil)
		carRepo.On("Release", ctx, uint64(1)).Return(availableCar(), nil)

		_, err := svc.BeginRental(ctx, "alice", 1, 0, 120)
		var overflow *domain.RentCostOverflowError
		require.ErrorAs(t, err, &overflow)

		carRepo.AssertCalled(t, "Release", ctx, uint64(1))
		accountRepo.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
		rentRepo.AssertNotCalled(t, "NextID", mock.Anything)
	})

	t.Run("insufficient balance releases the reservation", func(t *testing.T) {
		rentRepo, carRepo, accountRepo, svc := newRentalFixture()

		accountRepo.On("GetByAddress", ctx, "alice").Return(&domain.Account{Address: "alice", Balance: 10}, nil)
		carRepo.On("Reserve", ctx, uint64(1)).Return(reservedCar(), nil)
		accountRepo.On("Debit", ctx, "alice", uint64(25)).Return(nil, &domain.InsufficientBalanceError{Address: "alice", Available: 10})
		carRepo.On("Release", ctx, uint64(1)).Return(availableCar(), nil)

		_, err := svc.BeginRental(ctx, "alice", 1, 0, 120)
		var insufficient *domain.InsufficientBalanceError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, uint64(10), insufficient.Available)

		carRepo.AssertCalled(t, "Release", ctx, uint64(1))
		rentRepo.AssertNotCalled(t, "NextID", mock.Anything)
	})

	t.Run("sequence failure refunds debit and releases car", func(t *testing.T) {
		rentRepo, carRepo, accountRepo, svc := newRentalFixture()

		accountRepo.On("GetByAddress", ctx, "alice").Return(&domain.Account{Address: "alice", Balance: 100}, nil)
		carRepo.On("Reserve", ctx, uint64(1)).Return(reservedCar(), nil)
		accountRepo.On("Debit", ctx, "alice", uint64(25)).Return(&domain.Account{Address: "alice", Balance: 75}, nil)
		rentRepo.On("NextID", ctx).Return(uint64(0), errors.New("sequence unavailable"))
		accountRepo.On("Deposit", ctx, "alice", uint64(25)).Return(uint64(100), nil)
		carRepo.On("Release", ctx, uint64(1)).Return(availableCar(), nil)

		_, err := svc.BeginRental(ctx, "alice", 1, 0, 120)
		require.Error(t, err)

		accountRepo.AssertCalled(t, "Deposit", ctx, "alice", uint64(25))
		carRepo.AssertCalled(t, "Release", ctx, uint64(1))
		rentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRentalService_EndRental(t *testing.T) {
	ctx := context.Background()

	t.Run("releases the rented car", func(t *testing.T) {
		rentRepo, carRepo, _, svc := newRentalFixture()

		rentRepo.On("GetByID", ctx, uint64(1)).Return(&domain.Rent{ID: 1, CarID: 7}, nil)
		rentRepo.On("List", ctx).Return([]domain.Rent{{ID: 1, CarID: 7}}, nil)
		carRepo.On("Release", ctx, uint64(7)).Return(availableCar(), nil)

		rent, err := svc.EndRental(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, uint64(7), rent.CarID)
	})

	t.Run("unknown rent", func(t *testing.T) {
		rentRepo, carRepo, _, svc := newRentalFixture()

		rentRepo.On("GetByID", ctx, uint64(9)).Return(nil, &domain.RentNotFoundError{RentID: 9})

		_, err := svc.EndRental(ctx, 9)
		var notFound *domain.RentNotFoundError
		require.ErrorAs(t, err, &notFound)

		carRepo.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
	})

	t.Run("already closed rental", func(t *testing.T) {
		rentRepo, carRepo, _, svc := newRentalFixture()

		rentRepo.On("GetByID", ctx, uint64(1)).Return(&domain.Rent{ID: 1, CarID: 7}, nil)
		rentRepo.On("List", ctx).Return([]domain.Rent{{ID: 1, CarID: 7}}, nil)
		carRepo.On("Release", ctx, uint64(7)).Return(nil, &domain.CarNotRentedError{CarID: 7})

		_, err := svc.EndRental(ctx, 1)
		var notRented *domain.CarNotRentedError
		require.ErrorAs(t, err, &notRented)
	})

	t.Run("superseded rental cannot free the car", func(t *testing.T) {
		rentRepo, carRepo, _, svc := newRentalFixture()

		rentRepo.On("GetByID", ctx, uint64(1)).Return(&domain.Rent{ID: 1, CarID: 7}, nil)
		rentRepo.On("List", ctx).Return([]domain.Rent{{ID: 1, CarID: 7}, {ID: 2, CarID: 7}}, nil)

		_, err := svc.EndRental(ctx, 1)
		var closed *domain.RentAlreadyClosedError
		require.ErrorAs(t, err, &closed)
		assert.Equal(t, uint64(1), closed.RentID)

		carRepo.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
	})
}
