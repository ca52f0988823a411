package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/repository"
	"fleetrental-backend/internal/storage"
)

type accountRepository struct {
	store storage.Store
}

func NewAccountRepository(store storage.Store) repository.AccountRepository {
	return &accountRepository{store: store}
}

func accountKey(address string) []byte {
	return []byte(address)
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	account.Balance = 0
	account.CreatedOn = time.Now().UTC().Format("2006-01-02")

	value, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("encode account: %w", err)
	}

	err = r.store.PutIfAbsent(ctx, storage.BucketAccounts, accountKey(account.Address), value)
	if errors.Is(err, storage.ErrKeyExists) {
		return &domain.AccountAlreadyExistsError{Address: account.Address}
	}
	return err
}

func (r *accountRepository) GetByAddress(ctx context.Context, address string) (*domain.Account, error) {
	value, err := r.store.Get(ctx, storage.BucketAccounts, accountKey(address))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, &domain.AccountNotFoundError{Address: address}
	}
	if err != nil {
		return nil, err
	}

	var account domain.Account
	if err := json.Unmarshal(value, &account); err != nil {
		return nil, fmt.Errorf("decode account %s: %w", address, err)
	}
	return &account, nil
}

func (r *accountRepository) Deposit(ctx context.Context, address string, amount uint64) (uint64, error) {
	account, err := r.update(ctx, address, func(account *domain.Account) error {
		if account.Balance > math.MaxUint64-amount {
			return &domain.AmountOverflowError{Address: address, Balance: account.Balance, Amount: amount}
		}
		account.Balance += amount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

func (r *accountRepository) Withdraw(ctx context.Context, address string, amount uint64) (uint64, error) {
	account, err := r.Debit(ctx, address, amount)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

func (r *accountRepository) Debit(ctx context.Context, address string, amount uint64) (*domain.Account, error) {
	return r.update(ctx, address, func(account *domain.Account) error {
		if amount > account.Balance {
			return &domain.InsufficientBalanceError{Address: address, Available: account.Balance}
		}
		account.Balance -= amount
		return nil
	})
}

// update runs fn against the stored account as a single atomic
// read-modify-write and returns the updated record.
func (r *accountRepository) update(ctx context.Context, address string, fn func(*domain.Account) error) (*domain.Account, error) {
	var account domain.Account

	_, err := r.store.Update(ctx, storage.BucketAccounts, accountKey(address), func(current []byte, found bool) ([]byte, error) {
		if !found {
			return nil, &domain.AccountNotFoundError{Address: address}
		}
		if err := json.Unmarshal(current, &account); err != nil {
			return nil, fmt.Errorf("decode account %s: %w", address, err)
		}
		if err := fn(&account); err != nil {
			return nil, err
		}
		return json.Marshal(&account)
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}
