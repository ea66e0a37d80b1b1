package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return &PostgresStore{pool: mock}, mock
}

var estimateColumns = []string{"id", "input", "calculation", "created_at"}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS estimates`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveEstimate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO estimates`).
		WithArgs(pgxmock.AnyArg(), "cardiology", "12345", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	est, err := s.SaveEstimate(context.Background(), sampleInput("cardiology", "12345"), sampleCalculation())
	require.NoError(t, err)
	assert.NotEmpty(t, est.ID)
	assert.Equal(t, 12750.0, est.Calculation.User.MonthlyRevenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveEstimate_Error(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO estimates`).
		WillReturnError(errors.New("connection reset"))

	_, err := s.SaveEstimate(context.Background(), sampleInput("cardiology", "12345"), sampleCalculation())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert estimate")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetEstimate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	inputJSON, err := json.Marshal(sampleInput("radiology", "560001"))
	require.NoError(t, err)
	calcJSON, err := json.Marshal(sampleCalculation())
	require.NoError(t, err)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, input, calculation, created_at FROM estimates WHERE id = \$1`).
		WithArgs("est-1").
		WillReturnRows(pgxmock.NewRows(estimateColumns).AddRow("est-1", inputJSON, calcJSON, created))

	est, err := s.GetEstimate(context.Background(), "est-1")
	require.NoError(t, err)
	assert.Equal(t, "est-1", est.ID)
	assert.Equal(t, "radiology", est.Input.Specialty)
	assert.Equal(t, 100.0, est.Calculation.User.TotalMonthlyClaims)
	assert.Equal(t, created, est.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetEstimate_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, input, calculation, created_at FROM estimates WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetEstimate(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListEstimates(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	inputJSON, err := json.Marshal(sampleInput("cardiology", "12345"))
	require.NoError(t, err)
	calcJSON, err := json.Marshal(sampleCalculation())
	require.NoError(t, err)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, input, calculation, created_at FROM estimates WHERE true AND specialty = \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("cardiology", 10, 5).
		WillReturnRows(pgxmock.NewRows(estimateColumns).
			AddRow("a", inputJSON, calcJSON, now).
			AddRow("b", inputJSON, calcJSON, now))

	list, err := s.ListEstimates(context.Background(), EstimateFilter{Specialty: "cardiology", Limit: 10, Offset: 5})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListEstimates_DefaultLimit(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, input, calculation, created_at FROM estimates WHERE true ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(defaultListLimit).
		WillReturnRows(pgxmock.NewRows(estimateColumns))

	list, err := s.ListEstimates(context.Background(), EstimateFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}
