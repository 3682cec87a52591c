package service

import (
	"context"

	"github.com/spec-kit/metering-service/internal/domain"
	"github.com/spec-kit/metering-service/internal/repository"
	apperrors "github.com/spec-kit/metering-service/pkg/util"
)

// MeterService manages meters and their readings.
type MeterService struct {
	meters   repository.MeterRepository
	readings repository.ReadingRepository
}

// NewMeterService builds the service.
func NewMeterService(meters repository.MeterRepository, readings repository.ReadingRepository) *MeterService {
	return &MeterService{meters: meters, readings: readings}
}

// Create registers a meter for a company.
func (s *MeterService) Create(ctx context.Context, meter *domain.Meter) error {
	if meter.CompanyID == "" || meter.Serial == "" {
		return apperrors.NewValidationError("company_id and serial required", nil)
	}
	if !meter.Type.Valid() {
		return apperrors.NewValidationError("unknown meter type", map[string]any{"type": meter.Type})
	}
	if meter.Status == "" {
		meter.Status = domain.MeterStatusActive
	}
	return s.meters.Create(ctx, meter)
}

// Update replaces mutable meter fields.
func (s *MeterService) Update(ctx context.Context, meter *domain.Meter) error {
	if !meter.Type.Valid() {
		return apperrors.NewValidationError("unknown meter type", map[string]any{"type": meter.Type})
	}
	return s.meters.Update(ctx, meter)
}

// Get fetches one meter.
func (s *MeterService) Get(ctx context.Context, id string) (*domain.Meter, error) {
	return s.meters.GetByID(ctx, id)
}

// ListByCompany returns a page of a company's meters.
func (s *MeterService) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*domain.Meter, error) {
	return s.meters.ListByCompany(ctx, companyID, normalizeLimit(limit), offset)
}

// RecordReading stores a new counter value for a meter. Counter values are
// cumulative, so a value below the latest recorded one is rejected.
func (s *MeterService) RecordReading(ctx context.Context, reading *domain.Reading) error {
	meter, err := s.meters.GetByID(ctx, reading.MeterID)
	if err != nil {
		return err
	}
	if meter.Status != domain.MeterStatusActive {
		return apperrors.NewValidationError("meter is not active", map[string]any{"meter_id": meter.ID})
	}

	latest, err := s.readings.GetLatestByMeter(ctx, reading.MeterID)
	if err != nil && !pgxNoRows(err) {
		return err
	}
	if latest != nil && reading.Value < latest.Value {
		return apperrors.NewValidationError("reading below previous counter value", map[string]any{
			"previous": latest.Value,
			"value":    reading.Value,
		})
	}

	return s.readings.Create(ctx, reading)
}

// ListReadings returns a page of a meter's readings, newest first.
func (s *MeterService) ListReadings(ctx context.Context, meterID string, limit, offset int) ([]*domain.Reading, error) {
	return s.readings.ListByMeter(ctx, meterID, normalizeLimit(limit), offset)
}
