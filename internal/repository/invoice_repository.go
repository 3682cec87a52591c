package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/metering-service/internal/domain"
)

// InvoiceRepository defines persistence access for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	MarkPaid(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*domain.Invoice, error)
}

type invoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository returns a Postgres-backed implementation.
func NewInvoiceRepository(pool *pgxpool.Pool) InvoiceRepository {
	return &invoiceRepository{pool: pool}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	const query = `
        INSERT INTO invoices (number, company_id, period_from, period_to, total_amount, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, issued_at`

	return r.pool.QueryRow(ctx, query,
		invoice.Number,
		invoice.CompanyID,
		invoice.PeriodFrom,
		invoice.PeriodTo,
		invoice.TotalAmount,
		invoice.Status,
	).Scan(&invoice.ID, &invoice.IssuedAt)
}

func (r *invoiceRepository) MarkPaid(ctx context.Context, id string) error {
	const query = `
        UPDATE invoices SET status=$1, paid_at=NOW()
        WHERE id=$2 AND status=$3`

	cmd, err := r.pool.Exec(ctx, query, domain.InvoiceStatusPaid, id, domain.InvoiceStatusIssued)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	const query = `
        SELECT id, number, company_id, period_from, period_to, total_amount, status, issued_at, paid_at
        FROM invoices WHERE id=$1`

	var inv domain.Invoice
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&inv.ID,
		&inv.Number,
		&inv.CompanyID,
		&inv.PeriodFrom,
		&inv.PeriodTo,
		&inv.TotalAmount,
		&inv.Status,
		&inv.IssuedAt,
		&inv.PaidAt,
	); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*domain.Invoice, error) {
	const query = `
        SELECT id, number, company_id, period_from, period_to, total_amount, status, issued_at, paid_at
        FROM invoices WHERE company_id=$1 ORDER BY issued_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		if err := rows.Scan(
			&inv.ID,
			&inv.Number,
			&inv.CompanyID,
			&inv.PeriodFrom,
			&inv.PeriodTo,
			&inv.TotalAmount,
			&inv.Status,
			&inv.IssuedAt,
			&inv.PaidAt,
		); err != nil {
			return nil, err
		}
		invoices = append(invoices, &inv)
	}
	return invoices, rows.Err()
}
