package utils

import (
	"math"

	"fleetrental-backend/internal/domain"
)

// RentPeriod is the fixed number of time units that one rental fee covers.
// Partial periods are free: only fully elapsed periods are billed.
const RentPeriod uint64 = 60

// RentalCost computes the escrow amount for renting car over [startDate,
// endDate]: the flat deposit fee plus the rental fee per fully elapsed rent
// period. Integer arithmetic only; a total that exceeds the uint64 range
// fails rather than wrapping. The fee schedule must come from the car record
// read after the reservation succeeded, never from a stale copy.
func RentalCost(car *domain.Car, startDate, endDate uint64) (uint64, error) {
	if endDate < startDate {
		return 0, &domain.InvalidDateRangeError{StartDate: startDate, EndDate: endDate}
	}
	periods := (endDate - startDate) / RentPeriod
	if periods != 0 && car.RentFee > math.MaxUint64/periods {
		return 0, &domain.RentCostOverflowError{CarID: car.ID}
	}
	fee := car.RentFee * periods
	if car.DepositFee > math.MaxUint64-fee {
		return 0, &domain.RentCostOverflowError{CarID: car.ID}
	}
	return car.DepositFee + fee, nil
}
