package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fleetrental-backend/internal/domain"
)

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockAccountRepository) GetByAddress(ctx context.Context, address string) (*domain.Account, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountRepository) Deposit(ctx context.Context, address string, amount uint64) (uint64, error) {
	args := m.Called(ctx, address, amount)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockAccountRepository) Withdraw(ctx context.Context, address string, amount uint64) (uint64, error) {
	args := m.Called(ctx, address, amount)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockAccountRepository) Debit(ctx context.Context, address string, amount uint64) (*domain.Account, error) {
	args := m.Called(ctx, address, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

type mockCarRepository struct {
	mock.Mock
}

func (m *mockCarRepository) Create(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *mockCarRepository) GetByID(ctx context.Context, id uint64) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *mockCarRepository) List(ctx context.Context) ([]domain.Car, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Car), args.Error(1)
}

func (m *mockCarRepository) Reserve(ctx context.Context, id uint64) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *mockCarRepository) Release(ctx context.Context, id uint64) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

type mockRentRepository struct {
	mock.Mock
}

func (m *mockRentRepository) NextID(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockRentRepository) Create(ctx context.Context, rent *domain.Rent) error {
	args := m.Called(ctx, rent)
	return args.Error(0)
}

func (m *mockRentRepository) GetByID(ctx context.Context, id uint64) (*domain.Rent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rent), args.Error(1)
}

func (m *mockRentRepository) List(ctx context.Context) ([]domain.Rent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rent), args.Error(1)
}
