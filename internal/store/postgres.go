package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/billing-estimator/internal/db"
	"github.com/sells-group/billing-estimator/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS estimates (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	specialty   TEXT NOT NULL,
	zip_code    TEXT NOT NULL,
	input       JSONB NOT NULL,
	calculation JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_estimates_specialty ON estimates(specialty);
CREATE INDEX IF NOT EXISTS idx_estimates_created_at ON estimates(created_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveEstimate(ctx context.Context, in model.FormInput, calc model.Calculation) (*model.Estimate, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	inputJSON, err := json.Marshal(in)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal input")
	}
	calcJSON, err := json.Marshal(calc)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal calculation")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO estimates (id, specialty, zip_code, input, calculation, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, in.Specialty, in.ZipCode, inputJSON, calcJSON, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert estimate")
	}

	return &model.Estimate{ID: id, Input: in, Calculation: calc, CreatedAt: now}, nil
}

func (s *PostgresStore) GetEstimate(ctx context.Context, id string) (*model.Estimate, error) {
	var est model.Estimate
	var inputJSON, calcJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, input, calculation, created_at FROM estimates WHERE id = $1`,
		id,
	).Scan(&est.ID, &inputJSON, &calcJSON, &est.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrap(ErrNotFound, id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get estimate %s", id)
	}

	if err := decodeEstimate(&est, inputJSON, calcJSON); err != nil {
		return nil, eris.Wrap(err, "postgres")
	}
	return &est, nil
}

func (s *PostgresStore) ListEstimates(ctx context.Context, filter EstimateFilter) ([]model.Estimate, error) {
	query := `SELECT id, input, calculation, created_at FROM estimates WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Specialty != "" {
		query += fmt.Sprintf(` AND specialty = $%d`, argIdx)
		args = append(args, filter.Specialty)
		argIdx++
	}
	if filter.ZipCode != "" {
		query += fmt.Sprintf(` AND zip_code = $%d`, argIdx)
		args = append(args, filter.ZipCode)
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, filter.limit())
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list estimates")
	}
	defer rows.Close()

	var out []model.Estimate
	for rows.Next() {
		var est model.Estimate
		var inputJSON, calcJSON []byte
		if err := rows.Scan(&est.ID, &inputJSON, &calcJSON, &est.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan estimate")
		}
		if err := decodeEstimate(&est, inputJSON, calcJSON); err != nil {
			return nil, eris.Wrap(err, "postgres")
		}
		out = append(out, est)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list estimates iterate")
}
