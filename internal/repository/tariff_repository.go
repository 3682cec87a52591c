package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/metering-service/internal/domain"
)

// TariffRepository defines persistence access for tariffs.
type TariffRepository interface {
	Create(ctx context.Context, tariff *domain.Tariff) error
	Update(ctx context.Context, tariff *domain.Tariff) error
	GetByID(ctx context.Context, id string) (*domain.Tariff, error)
	GetActiveByMeterType(ctx context.Context, meterType domain.MeterType, at time.Time) (*domain.Tariff, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Tariff, error)
}

type tariffRepository struct {
	pool *pgxpool.Pool
}

// NewTariffRepository returns a Postgres-backed implementation.
func NewTariffRepository(pool *pgxpool.Pool) TariffRepository {
	return &tariffRepository{pool: pool}
}

func (r *tariffRepository) Create(ctx context.Context, tariff *domain.Tariff) error {
	const query = `
        INSERT INTO tariffs (name, meter_type, price_per_unit, valid_from, valid_to)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		tariff.Name,
		tariff.MeterType,
		tariff.PricePerUnit,
		tariff.ValidFrom,
		tariff.ValidTo,
	).Scan(&tariff.ID, &tariff.CreatedAt, &tariff.UpdatedAt)
}

func (r *tariffRepository) Update(ctx context.Context, tariff *domain.Tariff) error {
	const query = `
        UPDATE tariffs SET name=$1, meter_type=$2, price_per_unit=$3, valid_from=$4, valid_to=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		tariff.Name,
		tariff.MeterType,
		tariff.PricePerUnit,
		tariff.ValidFrom,
		tariff.ValidTo,
		tariff.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tariffRepository) GetByID(ctx context.Context, id string) (*domain.Tariff, error) {
	const query = `
        SELECT id, name, meter_type, price_per_unit, valid_from, valid_to, created_at, updated_at
        FROM tariffs WHERE id=$1`

	return scanTariff(r.pool.QueryRow(ctx, query, id))
}

func (r *tariffRepository) GetActiveByMeterType(ctx context.Context, meterType domain.MeterType, at time.Time) (*domain.Tariff, error) {
	const query = `
        SELECT id, name, meter_type, price_per_unit, valid_from, valid_to, created_at, updated_at
        FROM tariffs
        WHERE meter_type=$1 AND valid_from <= $2 AND (valid_to IS NULL OR valid_to >= $2)
        ORDER BY valid_from DESC LIMIT 1`

	return scanTariff(r.pool.QueryRow(ctx, query, meterType, at))
}

func (r *tariffRepository) List(ctx context.Context, limit, offset int) ([]*domain.Tariff, error) {
	const query = `
        SELECT id, name, meter_type, price_per_unit, valid_from, valid_to, created_at, updated_at
        FROM tariffs ORDER BY valid_from DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tariffs []*domain.Tariff
	for rows.Next() {
		var t domain.Tariff
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.MeterType,
			&t.PricePerUnit,
			&t.ValidFrom,
			&t.ValidTo,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tariffs = append(tariffs, &t)
	}
	return tariffs, rows.Err()
}

func scanTariff(row pgx.Row) (*domain.Tariff, error) {
	var t domain.Tariff
	if err := row.Scan(
		&t.ID,
		&t.Name,
		&t.MeterType,
		&t.PricePerUnit,
		&t.ValidFrom,
		&t.ValidTo,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}
