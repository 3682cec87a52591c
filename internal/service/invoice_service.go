package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/metering-service/internal/domain"
	"github.com/spec-kit/metering-service/internal/repository"
	apperrors "github.com/spec-kit/metering-service/pkg/util"
)

// InvoiceService issues invoices from reading deltas priced by the active
// tariff.
type InvoiceService struct {
	invoices  repository.InvoiceRepository
	companies repository.CompanyRepository
	meters    repository.MeterRepository
	readings  repository.ReadingRepository
	tariffs   repository.TariffRepository
}

// InvoiceDependencies bundles collaborators for the invoice service.
type InvoiceDependencies struct {
	Invoices  repository.InvoiceRepository
	Companies repository.CompanyRepository
	Meters    repository.MeterRepository
	Readings  repository.ReadingRepository
	Tariffs   repository.TariffRepository
}

// NewInvoiceService builds the service.
func NewInvoiceService(deps InvoiceDependencies) *InvoiceService {
	return &InvoiceService{
		invoices:  deps.Invoices,
		companies: deps.Companies,
		meters:    deps.Meters,
		readings:  deps.Readings,
		tariffs:   deps.Tariffs,
	}
}

// Issue creates an invoice for a company over a period. Consumption per
// meter is the difference between the first and last reading inside the
// period, priced by the tariff active at period end. Meters without at
// least two readings in the period contribute nothing.
func (s *InvoiceService) Issue(ctx context.Context, companyID string, from, to time.Time) (*domain.Invoice, error) {
	if !to.After(from) {
		return nil, apperrors.NewValidationError("period_to must follow period_from", nil)
	}

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	meters, err := s.meters.ListByCompany(ctx, company.ID, 200, 0)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, meter := range meters {
		readings, err := s.readings.ListByMeterBetween(ctx, meter.ID, from, to)
		if err != nil {
			return nil, err
		}
		if len(readings) < 2 {
			continue
		}
		consumed := readings[len(readings)-1].Value - readings[0].Value
		if consumed <= 0 {
			continue
		}

		tariff, err := s.tariffs.GetActiveByMeterType(ctx, meter.Type, to)
		if err != nil {
			if pgxNoRows(err) {
				return nil, apperrors.NewValidationError("no active tariff for meter type",
					map[string]any{"meter_type": meter.Type})
			}
			return nil, err
		}
		total += consumed * tariff.PricePerUnit
	}

	invoice := &domain.Invoice{
		Number:      newInvoiceNumber(),
		CompanyID:   company.ID,
		PeriodFrom:  from,
		PeriodTo:    to,
		TotalAmount: total,
		Status:      domain.InvoiceStatusIssued,
	}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// MarkPaid settles an issued invoice.
func (s *InvoiceService) MarkPaid(ctx context.Context, id string) error {
	return s.invoices.MarkPaid(ctx, id)
}

// Get fetches one invoice.
func (s *InvoiceService) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

// ListByCompany returns a page of a company's invoices.
func (s *InvoiceService) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*domain.Invoice, error) {
	return s.invoices.ListByCompany(ctx, companyID, normalizeLimit(limit), offset)
}

func newInvoiceNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("INV-%s", id[:12])
}
