package repository

import (
	"context"

	"fleetrental-backend/internal/domain"
)

// AccountRepository owns Account records and is the sole writer of balances.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByAddress(ctx context.Context, address string) (*domain.Account, error)

	// Deposit credits the balance and returns the new balance. Fails with
	// AmountOverflowError when the balance would exceed the numeric range.
	Deposit(ctx context.Context, address string, amount uint64) (uint64, error)

	// Withdraw debits the balance and returns the new balance. Fails with
	// InsufficientBalanceError when amount exceeds the balance.
	Withdraw(ctx context.Context, address string, amount uint64) (uint64, error)

	// Debit applies the withdraw rule on behalf of the rental ledger and
	// returns the updated account for snapshotting into the rent record.
	Debit(ctx context.Context, address string, amount uint64) (*domain.Account, error)
}

// CarRepository owns Car records and is the sole writer of the availability
// status.
type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id uint64) (*domain.Car, error)
	List(ctx context.Context) ([]domain.Car, error)

	// Reserve flips Available -> InUse as one atomic compare-and-set and
	// returns the updated car. Fails with CarNotAvailableError if the car is
	// already in use.
	Reserve(ctx context.Context, id uint64) (*domain.Car, error)

	// Release flips InUse -> Available. Fails with CarNotRentedError if the
	// car is not in use, which defends against double-close.
	Release(ctx context.Context, id uint64) (*domain.Car, error)
}

// RentRepository owns Rent records and the rent sequence counter.
type RentRepository interface {
	// NextID atomically increments the sequence and returns the new value.
	// The counter starts at zero, so the first issued id is 1.
	NextID(ctx context.Context) (uint64, error)

	Create(ctx context.Context, rent *domain.Rent) error
	GetByID(ctx context.Context, id uint64) (*domain.Rent, error)
	List(ctx context.Context) ([]domain.Rent, error)
}
