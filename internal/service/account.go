package service

import (
	"context"
	"log/slog"

	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/logger"
	"fleetrental-backend/internal/metrics"
	"fleetrental-backend/internal/repository"
)

type accountService struct {
	accountRepo repository.AccountRepository
	collector   *metrics.Collector
	log         *slog.Logger
}

func NewAccountService(accountRepo repository.AccountRepository, collector *metrics.Collector) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		collector:   collector,
		log:         logger.WithService("account"),
	}
}

func (s *accountService) OpenAccount(ctx context.Context, address, name, lastname string) (*domain.Account, error) {
	account := &domain.Account{
		Address:  address,
		Name:     name,
		Lastname: lastname,
	}

	err := s.accountRepo.Create(ctx, account)
	s.collector.RecordOperation("open_account", err)
	if err != nil {
		return nil, err
	}

	s.log.Info("Account opened", "address", address)
	s.collector.SetAccountBalance(address, 0)
	return account, nil
}

func (s *accountService) Deposit(ctx context.Context, address string, amount uint64) (uint64, error) {
	balance, err := s.accountRepo.Deposit(ctx, address, amount)
	s.collector.RecordOperation("deposit", err)
	if err != nil {
		return 0, err
	}

	s.log.Info("Deposit applied", "address", address, "amount", amount, "balance", balance)
	s.collector.SetAccountBalance(address, balance)
	return balance, nil
}

func (s *accountService) Withdraw(ctx context.Context, address string, amount uint64) (uint64, error) {
	balance, err := s.accountRepo.Withdraw(ctx, address, amount)
	s.collector.RecordOperation("withdraw", err)
	if err != nil {
		return 0, err
	}

	s.log.Info("Withdrawal applied", "address", address, "amount", amount, "balance", balance)
	s.collector.SetAccountBalance(address, balance)
	return balance, nil
}

func (s *accountService) GetBalance(ctx context.Context, address string) (uint64, error) {
	account, err := s.accountRepo.GetByAddress(ctx, address)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}
