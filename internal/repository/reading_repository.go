package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/metering-service/internal/domain"
)

// ReadingRepository defines persistence access for meter readings.
type ReadingRepository interface {
	Create(ctx context.Context, reading *domain.Reading) error
	GetLatestByMeter(ctx context.Context, meterID string) (*domain.Reading, error)
	ListByMeter(ctx context.Context, meterID string, limit, offset int) ([]*domain.Reading, error)
	ListByMeterBetween(ctx context.Context, meterID string, from, to time.Time) ([]*domain.Reading, error)
}

type readingRepository struct {
	pool *pgxpool.Pool
}

// NewReadingRepository returns a Postgres-backed implementation.
func NewReadingRepository(pool *pgxpool.Pool) ReadingRepository {
	return &readingRepository{pool: pool}
}

func (r *readingRepository) Create(ctx context.Context, reading *domain.Reading) error {
	const query = `
        INSERT INTO readings (meter_id, value, taken_at)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		reading.MeterID,
		reading.Value,
		reading.TakenAt,
	).Scan(&reading.ID, &reading.CreatedAt)
}

func (r *readingRepository) GetLatestByMeter(ctx context.Context, meterID string) (*domain.Reading, error) {
	const query = `
        SELECT id, meter_id, value, taken_at, created_at
        FROM readings WHERE meter_id=$1 ORDER BY taken_at DESC LIMIT 1`

	var reading domain.Reading
	if err := r.pool.QueryRow(ctx, query, meterID).Scan(
		&reading.ID,
		&reading.MeterID,
		&reading.Value,
		&reading.TakenAt,
		&reading.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &reading, nil
}

func (r *readingRepository) ListByMeter(ctx context.Context, meterID string, limit, offset int) ([]*domain.Reading, error) {
	const query = `
        SELECT id, meter_id, value, taken_at, created_at
        FROM readings WHERE meter_id=$1 ORDER BY taken_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, meterID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReadings(rows)
}

func (r *readingRepository) ListByMeterBetween(ctx context.Context, meterID string, from, to time.Time) ([]*domain.Reading, error) {
	const query = `
        SELECT id, meter_id, value, taken_at, created_at
        FROM readings WHERE meter_id=$1 AND taken_at >= $2 AND taken_at <= $3
        ORDER BY taken_at ASC`

	rows, err := r.pool.Query(ctx, query, meterID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReadings(rows)
}

func scanReadings(rows pgx.Rows) ([]*domain.Reading, error) {
	var readings []*domain.Reading
	for rows.Next() {
		var reading domain.Reading
		if err := rows.Scan(
			&reading.ID,
			&reading.MeterID,
			&reading.Value,
			&reading.TakenAt,
			&reading.CreatedAt,
		); err != nil {
			return nil, err
		}
		readings = append(readings, &reading)
	}
	return readings, rows.Err()
}
