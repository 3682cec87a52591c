package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/metering-service/internal/domain"
)

// SystemParameterRepository reads and writes named configuration records.
// The signing material provider re-reads its parameter through this
// interface on every token operation so that rotations take effect without
// a restart.
type SystemParameterRepository interface {
	GetByName(ctx context.Context, name string) (*domain.SystemParameter, error)
	Upsert(ctx context.Context, param *domain.SystemParameter) error
}

type systemParameterRepository struct {
	pool *pgxpool.Pool
}

// NewSystemParameterRepository returns a Postgres-backed implementation.
func NewSystemParameterRepository(pool *pgxpool.Pool) SystemParameterRepository {
	return &systemParameterRepository{pool: pool}
}

func (r *systemParameterRepository) GetByName(ctx context.Context, name string) (*domain.SystemParameter, error) {
	const query = `
        SELECT name, value, ttl_seconds, updated_at
        FROM system_parameters WHERE name=$1`

	var p domain.SystemParameter
	if err := r.pool.QueryRow(ctx, query, name).Scan(
		&p.Name,
		&p.Value,
		&p.TTLSeconds,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *systemParameterRepository) Upsert(ctx context.Context, param *domain.SystemParameter) error {
	const query = `
        INSERT INTO system_parameters (name, value, ttl_seconds)
        VALUES ($1, $2, $3)
        ON CONFLICT (name) DO UPDATE SET value=$2, ttl_seconds=$3, updated_at=NOW()`

	cmd, err := r.pool.Exec(ctx, query, param.Name, param.Value, param.TTLSeconds)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
