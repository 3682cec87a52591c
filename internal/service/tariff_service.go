package service

import (
	"context"

	"github.com/spec-kit/metering-service/internal/domain"
	"github.com/spec-kit/metering-service/internal/repository"
	apperrors "github.com/spec-kit/metering-service/pkg/util"
)

// TariffService manages unit prices.
type TariffService struct {
	tariffs repository.TariffRepository
}

// NewTariffService builds the service.
func NewTariffService(tariffs repository.TariffRepository) *TariffService {
	return &TariffService{tariffs: tariffs}
}

// Create registers a tariff.
func (s *TariffService) Create(ctx context.Context, tariff *domain.Tariff) error {
	if err := validateTariff(tariff); err != nil {
		return err
	}
	return s.tariffs.Create(ctx, tariff)
}

// Update replaces mutable tariff fields.
func (s *TariffService) Update(ctx context.Context, tariff *domain.Tariff) error {
	if err := validateTariff(tariff); err != nil {
		return err
	}
	return s.tariffs.Update(ctx, tariff)
}

// Get fetches one tariff.
func (s *TariffService) Get(ctx context.Context, id string) (*domain.Tariff, error) {
	return s.tariffs.GetByID(ctx, id)
}

// List returns a page of tariffs.
func (s *TariffService) List(ctx context.Context, limit, offset int) ([]*domain.Tariff, error) {
	return s.tariffs.List(ctx, normalizeLimit(limit), offset)
}

func validateTariff(tariff *domain.Tariff) error {
	if tariff.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	if !tariff.MeterType.Valid() {
		return apperrors.NewValidationError("unknown meter type", map[string]any{"meter_type": tariff.MeterType})
	}
	if tariff.PricePerUnit <= 0 {
		return apperrors.NewValidationError("price_per_unit must be positive", nil)
	}
	if tariff.ValidTo != nil && tariff.ValidTo.Before(tariff.ValidFrom) {
		return apperrors.NewValidationError("valid_to before valid_from", nil)
	}
	return nil
}
