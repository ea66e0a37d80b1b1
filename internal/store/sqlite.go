package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/billing-estimator/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS estimates (
	id          TEXT PRIMARY KEY,
	specialty   TEXT NOT NULL,
	zip_code    TEXT NOT NULL,
	input       TEXT NOT NULL,
	calculation TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_estimates_specialty ON estimates(specialty);
CREATE INDEX IF NOT EXISTS idx_estimates_created_at ON estimates(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveEstimate(ctx context.Context, in model.FormInput, calc model.Calculation) (*model.Estimate, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	inputJSON, err := json.Marshal(in)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal input")
	}
	calcJSON, err := json.Marshal(calc)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal calculation")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO estimates (id, specialty, zip_code, input, calculation, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, in.Specialty, in.ZipCode, string(inputJSON), string(calcJSON), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert estimate")
	}

	return &model.Estimate{ID: id, Input: in, Calculation: calc, CreatedAt: now}, nil
}

func (s *SQLiteStore) GetEstimate(ctx context.Context, id string) (*model.Estimate, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, input, calculation, created_at FROM estimates WHERE id = ?`,
		id,
	)
	est, err := scanEstimate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrap(ErrNotFound, id)
	}
	return est, err
}

func (s *SQLiteStore) ListEstimates(ctx context.Context, filter EstimateFilter) ([]model.Estimate, error) {
	query := `SELECT id, input, calculation, created_at FROM estimates WHERE 1=1`
	var args []any

	if filter.Specialty != "" {
		query += ` AND specialty = ?`
		args = append(args, filter.Specialty)
	}
	if filter.ZipCode != "" {
		query += ` AND zip_code = ?`
		args = append(args, filter.ZipCode)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, filter.limit())

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list estimates")
	}
	defer rows.Close()

	var out []model.Estimate
	for rows.Next() {
		est, err := scanEstimate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *est)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list estimates iterate")
}

type scannable interface {
	Scan(dest ...any) error
}

func scanEstimate(row scannable) (*model.Estimate, error) {
	var est model.Estimate
	var inputJSON, calcJSON string

	err := row.Scan(&est.ID, &inputJSON, &calcJSON, &est.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan estimate")
	}
	if err := decodeEstimate(&est, []byte(inputJSON), []byte(calcJSON)); err != nil {
		return nil, eris.Wrap(err, "sqlite")
	}
	return &est, nil
}

func decodeEstimate(est *model.Estimate, inputJSON, calcJSON []byte) error {
	if err := json.Unmarshal(inputJSON, &est.Input); err != nil {
		return eris.Wrap(err, "unmarshal input")
	}
	if err := json.Unmarshal(calcJSON, &est.Calculation); err != nil {
		return eris.Wrap(err, "unmarshal calculation")
	}
	return nil
}
