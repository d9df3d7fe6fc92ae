package availability

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotPicker/internal/domain"
)

var selectSlotsQuery = regexp.QuoteMeta("FROM specialist_availability WHERE specialist_id = $1")

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_GetAvailableSlots(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(selectSlotsQuery).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"slot_date", "slot_time"}).
			AddRow("2024-06-10", "09:00").
			AddRow("2024-06-10", "10:00").
			AddRow("2024-06-11", "12:00"))

	got, err := repo.GetAvailableSlots(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, []domain.AvailabilityRecord{
		{Date: "2024-06-10", Slots: []string{"09:00", "10:00"}},
		{Date: "2024-06-11", Slots: []string{"12:00"}},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAvailableSlots_NoRows(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(selectSlotsQuery).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"slot_date", "slot_time"}))

	got, err := repo.GetAvailableSlots(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAvailableSlots_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "query fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectSlotsQuery).WithArgs(int64(5)).
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: ErrExecQuery,
		},
		{
			name: "null value cannot be scanned",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectSlotsQuery).WithArgs(int64(5)).
					WillReturnRows(sqlmock.NewRows([]string{"slot_date", "slot_time"}).
						AddRow("2024-06-10", nil))
			},
			wantErr: ErrScanRow,
		},
		{
			name: "rows iteration fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectSlotsQuery).WithArgs(int64(5)).
					WillReturnRows(sqlmock.NewRows([]string{"slot_date", "slot_time"}).
						AddRow("2024-06-10", "09:00").
						AddRow("2024-06-10", "10:00").
						RowError(1, errors.New("stream interrupted")))
			},
			wantErr: ErrScanRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setup(mock)

			_, err := repo.GetAvailableSlots(context.Background(), 5)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
