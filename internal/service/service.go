package service

import (
	"context"

	"fleetrental-backend/internal/domain"
)

type AccountService interface {
	OpenAccount(ctx context.Context, address, name, lastname string) (*domain.Account, error)
	Deposit(ctx context.Context, address string, amount uint64) (uint64, error)
	Withdraw(ctx context.Context, address string, amount uint64) (uint64, error)
	GetBalance(ctx context.Context, address string) (uint64, error)
}

type FleetService interface {
	RegisterCar(ctx context.Context, id uint64, name, model string, rentFee, depositFee uint64) (*domain.Car, error)
	GetCar(ctx context.Context, id uint64) (*domain.Car, error)
	ListCars(ctx context.Context) ([]domain.Car, error)
}

type RentalService interface {
	BeginRental(ctx context.Context, renterAddress string, carID, startDate, endDate uint64) (*domain.Rent, error)
	EndRental(ctx context.Context, rentID uint64) (*domain.Rent, error)
	GetRental(ctx context.Context, rentID uint64) (*domain.Rent, error)
}
