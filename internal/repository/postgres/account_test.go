package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypresslabs/identity-server/internal/model"
)

func TestNewAccountRepository(t *testing.T) {
	db := &Connection{}
	repo := NewAccountRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "no rows maps to not found",
			err:  pgx.ErrNoRows,
			want: model.ErrNotFound,
		},
		{
			name: "unique violation maps to conflict",
			err:  &pgconn.PgError{Code: "23505"},
			want: model.ErrConflict,
		},
		{
			name: "other pg error is wrapped",
			err:  &pgconn.PgError{Code: "42601"},
			want: nil,
		},
		{
			name: "arbitrary error is wrapped",
			err:  errors.New("connection reset"),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError("failed", tt.err)
			require.Error(t, got)
			if tt.want != nil {
				assert.ErrorIs(t, got, tt.want)
				return
			}
			assert.NotErrorIs(t, got, model.ErrNotFound)
			assert.NotErrorIs(t, got, model.ErrConflict)
			assert.Contains(t, got.Error(), "failed")
		})
	}
}
