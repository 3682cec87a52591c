package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/metering-service/internal/domain"
)

// MeterRepository defines persistence access for meters.
type MeterRepository interface {
	Create(ctx context.Context, meter *domain.Meter) error
	Update(ctx context.Context, meter *domain.Meter) error
	GetByID(ctx context.Context, id string) (*domain.Meter, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*domain.Meter, error)
}

type meterRepository struct {
	pool *pgxpool.Pool
}

// NewMeterRepository returns a Postgres-backed implementation.
func NewMeterRepository(pool *pgxpool.Pool) MeterRepository {
	return &meterRepository{pool: pool}
}

func (r *meterRepository) Create(ctx context.Context, meter *domain.Meter) error {
	const query = `
        INSERT INTO meters (company_id, serial, type, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		meter.CompanyID,
		meter.Serial,
		meter.Type,
		meter.Status,
	).Scan(&meter.ID, &meter.CreatedAt, &meter.UpdatedAt)
}

func (r *meterRepository) Update(ctx context.Context, meter *domain.Meter) error {
	const query = `
        UPDATE meters SET serial=$1, type=$2, status=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query, meter.Serial, meter.Type, meter.Status, meter.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *meterRepository) GetByID(ctx context.Context, id string) (*domain.Meter, error) {
	const query = `
        SELECT id, company_id, serial, type, status, created_at, updated_at
        FROM meters WHERE id=$1`

	var m domain.Meter
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.CompanyID,
		&m.Serial,
		&m.Type,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *meterRepository) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*domain.Meter, error) {
	const query = `
        SELECT id, company_id, serial, type, status, created_at, updated_at
        FROM meters WHERE company_id=$1 ORDER BY serial LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meters []*domain.Meter
	for rows.Next() {
		var m domain.Meter
		if err := rows.Scan(
			&m.ID,
			&m.CompanyID,
			&m.Serial,
			&m.Type,
			&m.Status,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		meters = append(meters, &m)
	}
	return meters, rows.Err()
}
