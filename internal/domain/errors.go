package domain

import "fmt"

// Typed failures for the rental ledger. Each error carries the identifying
// key (address, car id or rent id) so callers can correlate failures without
// additional lookups.

type AccountAlreadyExistsError struct {
	Address string
}

func (e *AccountAlreadyExistsError) Error() string {
	return fmt.Sprintf("account already exists (address %s)", e.Address)
}

type AccountNotFoundError struct {
	Address string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account does not exist (address %s)", e.Address)
}

type CarAlreadyExistsError struct {
	CarID uint64
}

func (e *CarAlreadyExistsError) Error() string {
	return fmt.Sprintf("car already exists (car_id %d)", e.CarID)
}

type CarNotFoundError struct {
	CarID uint64
}

func (e *CarNotFoundError) Error() string {
	return fmt.Sprintf("car does not exist (car_id %d)", e.CarID)
}

type CarNotAvailableError struct {
	CarID uint64
}

func (e *CarNotAvailableError) Error() string {
	return fmt.Sprintf("car is not available for rent (car_id %d)", e.CarID)
}

type CarNotRentedError struct {
	CarID uint64
}

func (e *CarNotRentedError) Error() string {
	return fmt.Sprintf("car is not rented (car_id %d)", e.CarID)
}

type RentNotFoundError struct {
	RentID uint64
}

func (e *RentNotFoundError) Error() string {
	return fmt.Sprintf("rent does not exist (rent_id %d)", e.RentID)
}

// RentAlreadyClosedError reports an attempt to end a rental that a later
// rental of the same car has superseded.
type RentAlreadyClosedError struct {
	RentID uint64
}

func (e *RentAlreadyClosedError) Error() string {
	return fmt.Sprintf("rent is already closed (rent_id %d)", e.RentID)
}

type InvalidDateRangeError struct {
	StartDate uint64
	EndDate   uint64
}

func (e *InvalidDateRangeError) Error() string {
	return fmt.Sprintf("end date %d is before start date %d", e.EndDate, e.StartDate)
}

// InsufficientBalanceError reports the balance that was available at the time
// of the failed debit.
type InsufficientBalanceError struct {
	Address   string
	Available uint64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance (address %s, available %d)", e.Address, e.Available)
}

// RentCostOverflowError reports a fee schedule whose total escrow amount
// exceeds the numeric range of the ledger for the requested rental window.
type RentCostOverflowError struct {
	CarID uint64
}

func (e *RentCostOverflowError) Error() string {
	return fmt.Sprintf("rent cost overflows (car_id %d)", e.CarID)
}

// AmountOverflowError reports a deposit that would push the balance past the
// numeric range of the ledger.
type AmountOverflowError struct {
	Address string
	Balance uint64
	Amount  uint64
}

func (e *AmountOverflowError) Error() string {
	return fmt.Sprintf("deposit overflows balance (address %s, balance %d, amount %d)", e.Address, e.Balance, e.Amount)
}
