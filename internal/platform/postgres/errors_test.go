package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kotonoha/kotonoha-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantIs   error
		wantMsg  string
		wantNone bool
	}{
		{
			name:     "nil_error",
			err:      nil,
			wantNone: true,
		},
		{
			name:   "sql_no_rows",
			err:    sql.ErrNoRows,
			wantIs: store.ErrNotFound,
		},
		{
			name:   "wrapped_sql_no_rows",
			err:    fmt.Errorf("query record: %w", sql.ErrNoRows),
			wantIs: store.ErrNotFound,
		},
		{
			name: "check_constraint_violation",
			err: &pgconn.PgError{
				Code:           checkViolationCode,
				ConstraintName: "learning_records_proficiency_forward_check",
			},
			wantIs:  store.ErrInvalidEntity,
			wantMsg: "check constraint violation",
		},
		{
			name: "not_null_violation",
			err: &pgconn.PgError{
				Code:       notNullViolationCode,
				ColumnName: "next_due_at",
			},
			wantIs:  store.ErrInvalidEntity,
			wantMsg: "not null violation",
		},
		{
			name: "unknown_pg_code",
			err: &pgconn.PgError{
				Code:    "57P01",
				Message: "terminating connection",
			},
			wantIs: store.ErrStorageUnavailable,
		},
		{
			name:   "generic_error",
			err:    errors.New("connection refused"),
			wantIs: store.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := mapError(tt.err)

			if tt.wantNone {
				assert.Nil(t, result)
				return
			}

			require.Error(t, result)
			assert.ErrorIs(t, result, tt.wantIs)
			if tt.wantMsg != "" {
				assert.Contains(t, result.Error(), tt.wantMsg)
			}
		})
	}
}
