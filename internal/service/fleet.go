package service

import (
	"context"
	"log/slog"

	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/logger"
	"fleetrental-backend/internal/metrics"
	"fleetrental-backend/internal/repository"
)

type fleetService struct {
	carRepo   repository.CarRepository
	collector *metrics.Collector
	log       *slog.Logger
}

func NewFleetService(carRepo repository.CarRepository, collector *metrics.Collector) FleetService {
	return &fleetService{
		carRepo:   carRepo,
		collector: collector,
		log:       logger.WithService("fleet"),
	}
}

func (s *fleetService) RegisterCar(ctx context.Context, id uint64, name, model string, rentFee, depositFee uint64) (*domain.Car, error) {
	car := &domain.Car{
		ID:         id,
		Name:       name,
		Model:      model,
		RentFee:    rentFee,
		DepositFee: depositFee,
	}

	err := s.carRepo.Create(ctx, car)
	s.collector.RecordOperation("register_car", err)
	if err != nil {
		return nil, err
	}

	s.log.Info("Car registered", "car_id", id, "model", model, "rent_fee", rentFee, "deposit_fee", depositFee)
	return car, nil
}

func (s *fleetService) GetCar(ctx context.Context, id uint64) (*domain.Car, error) {
	return s.carRepo.GetByID(ctx, id)
}

func (s *fleetService) ListCars(ctx context.Context) ([]domain.Car, error) {
	return s.carRepo.List(ctx)
}
