package service

import (
	"context"
	"log/slog"

	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/logger"
	"fleetrental-backend/internal/metrics"
	"fleetrental-backend/internal/repository"
	"fleetrental-backend/internal/utils"
)

type rentalService struct {
	rentRepo    repository.RentRepository
	carRepo     repository.CarRepository
	accountRepo repository.AccountRepository
	collector   *metrics.Collector
	log         *slog.Logger
}

func NewRentalService(
	rentRepo repository.RentRepository,
	carRepo repository.CarRepository,
	accountRepo repository.AccountRepository,
	collector *metrics.Collector,
) RentalService {
	return &rentalService{
		rentRepo:    rentRepo,
		carRepo:     carRepo,
		accountRepo: accountRepo,
		collector:   collector,
		log:         logger.WithService("rental"),
	}
}

// BeginRental reserves the car, escrows the rent cost from the renter's
// balance and records the rental. All validations that need no car state run
// before the reservation write, and any failure after the reservation
// releases the car again, so no failure path leaves a car InUse without a
// matching rent record.
func (s *rentalService) BeginRental(ctx context.Context, renterAddress string, carID, startDate, endDate uint64) (*domain.Rent, error) {
	rent, err := s.beginRental(ctx, renterAddress, carID, startDate, endDate)
	s.collector.RecordOperation("begin_rental", err)
	return rent, err
}

func (s *rentalService) beginRental(ctx context.Context, renterAddress string, carID, startDate, endDate uint64) (*domain.Rent, error) {
	if endDate < startDate {
		return nil, &domain.InvalidDateRangeError{StartDate: startDate, EndDate: endDate}
	}

	// Cheap existence precheck; the balance itself is verified by the debit.
	if _, err := s.accountRepo.GetByAddress(ctx, renterAddress); err != nil {
		return nil, err
	}

	car, err := s.carRepo.Reserve(ctx, carID)
	if err != nil {
		return nil, err
	}

	// Fee schedule comes from the record the reservation returned, never
	// from an earlier read.
	cost, err := utils.RentalCost(car, startDate, endDate)
	if err != nil {
		s.compensateReservation(ctx, carID)
		return nil, err
	}

	renter, err := s.accountRepo.Debit(ctx, renterAddress, cost)
	if err != nil {
		s.compensateReservation(ctx, carID)
		return nil, err
	}

	rentID, err := s.rentRepo.NextID(ctx)
	if err != nil {
		s.compensateDebit(ctx, renterAddress, cost)
		s.compensateReservation(ctx, carID)
		return nil, err
	}

	rent := &domain.Rent{
		ID:        rentID,
		Renter:    *renter,
		CarID:     carID,
		CarStatus: car.Status,
		StartDate: startDate,
		EndDate:   endDate,
		RentCost:  cost,
	}

	if err := s.rentRepo.Create(ctx, rent); err != nil {
		s.compensateDebit(ctx, renterAddress, cost)
		s.compensateReservation(ctx, carID)
		return nil, err
	}

	s.log.Info("Rental started",
		"rent_id", rentID, "car_id", carID, "renter", renterAddress,
		"start_date", startDate, "end_date", endDate, "cost", cost)
	s.collector.CarReserved()
	s.collector.SetAccountBalance(renterAddress, renter.Balance)
	return rent, nil
}

// EndRental closes a rental by flipping the car back to Available. The rent
// record itself stays immutable and no balance changes on close.
func (s *rentalService) EndRental(ctx context.Context, rentID uint64) (*domain.Rent, error) {
	rent, err := s.endRental(ctx, rentID)
	s.collector.RecordOperation("end_rental", err)
	return rent, err
}

func (s *rentalService) endRental(ctx context.Context, rentID uint64) (*domain.Rent, error) {
	rent, err := s.rentRepo.GetByID(ctx, rentID)
	if err != nil {
		return nil, err
	}

	// Only the car's newest rental may release it; a superseded record must
	// not free the car from under a later renter.
	latest, err := s.latestRentForCar(ctx, rent.CarID)
	if err != nil {
		return nil, err
	}
	if latest != rentID {
		return nil, &domain.RentAlreadyClosedError{RentID: rentID}
	}

	if _, err := s.carRepo.Release(ctx, rent.CarID); err != nil {
		return nil, err
	}

	s.log.Info("Rental ended", "rent_id", rentID, "car_id", rent.CarID)
	s.collector.CarReleased()
	return rent, nil
}

func (s *rentalService) GetRental(ctx context.Context, rentID uint64) (*domain.Rent, error) {
	return s.rentRepo.GetByID(ctx, rentID)
}

// latestRentForCar returns the highest rent id recorded for the car. Rents
// come back from the ledger in id order.
func (s *rentalService) latestRentForCar(ctx context.Context, carID uint64) (uint64, error) {
	rents, err := s.rentRepo.List(ctx)
	if err != nil {
		return 0, err
	}

	var latest uint64
	for _, r := range rents {
		if r.CarID == carID {
			latest = r.ID
		}
	}
	return latest, nil
}

// compensateReservation reverts a car reservation after a later step of
// begin_rental failed. A failed compensation leaves the car stuck InUse, so
// it is logged at error level for operator intervention.
func (s *rentalService) compensateReservation(ctx context.Context, carID uint64) {
	if _, err := s.carRepo.Release(ctx, carID); err != nil {
		s.log.Error("Failed to revert car reservation", "car_id", carID, "error", err)
	}
}

// compensateDebit re-credits an escrow debit after a later step failed.
func (s *rentalService) compensateDebit(ctx context.Context, address string, amount uint64) {
	if _, err := s.accountRepo.Deposit(ctx, address, amount); err != nil {
		s.log.Error("Failed to revert escrow debit", "address", address, "amount", amount, "error", err)
	}
}
