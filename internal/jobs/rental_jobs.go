package jobs

import (
	"context"
	"time"

	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/logger"
)

// ReportOverdueRentals scans the ledger for open rentals past their end date,
// logs each one and exports the count as a gauge. Rentals are never mutated
// here; settlement of overdue rentals stays a manual decision.
func (jr *JobRunner) ReportOverdueRentals() {
	jr.runWithRecovery("ReportOverdueRentals", func() {
		ctx := context.Background()

		overdue, err := jr.overdueRentals(ctx, uint64(time.Now().Unix()))
		if err != nil {
			logger.Error("Failed to scan for overdue rentals", "error", err)
			return
		}

		for _, rent := range overdue {
			logger.Warn("Rental overdue",
				"rent_id", rent.ID, "car_id", rent.CarID,
				"renter", rent.Renter.Address, "end_date", rent.EndDate)
		}
		jr.collector.SetOverdueRentals(len(overdue))
		logger.Info("Overdue rental scan finished", "overdue", len(overdue))
	})
}

// overdueRentals returns the open rental per car whose end date has passed.
// A rental is open when it is the latest record for its car and the car is
// still InUse; earlier records for the same car were closed by a release.
func (jr *JobRunner) overdueRentals(ctx context.Context, now uint64) ([]domain.Rent, error) {
	rents, err := jr.rentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	// Rents arrive in id order, so the last record per car wins.
	latest := make(map[uint64]domain.Rent)
	for _, rent := range rents {
		latest[rent.CarID] = rent
	}

	var overdue []domain.Rent
	for carID, rent := range latest {
		if rent.EndDate >= now {
			continue
		}
		car, err := jr.carRepo.GetByID(ctx, carID)
		if err != nil {
			logger.Error("Failed to load car for overdue scan", "car_id", carID, "error", err)
			continue
		}
		if car.Status == domain.CarStatusInUse {
			overdue = append(overdue, rent)
		}
	}
	return overdue, nil
}
