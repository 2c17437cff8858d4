package room

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	return repo, mock, func() { sqlxDB.Close() }
}

func TestListRoomsOfType(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "room_type", "created_at"}).
		AddRow(1, "P1", "private", now).
		AddRow(2, "P2", "private", now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, room_type, created_at FROM rooms WHERE room_type = $1 AND ($2 = '' OR name = $2) ORDER BY name")).
		WithArgs("private", "").
		WillReturnRows(rows)

	rooms, err := repo.ListRoomsOfType(context.Background(), "private", "")
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	require.Equal(t, "P1", rooms[0].Name)
}

func TestGetTimeSlotByID(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, start_time, end_time FROM time_slots WHERE id = $1")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_time", "end_time"}).AddRow(3, "11:00", "12:00"))

	slot, err := repo.GetTimeSlotByID(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "11:00-12:00", slot.Range())
}

func TestCountActiveByRoomAndSlot(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	rows := sqlmock.NewRows([]string{"room_id", "time_slot_id", "booked"}).
		AddRow(1, 2, 1).
		AddRow(5, 2, 3)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT room_id, time_slot_id, COUNT(*) AS booked FROM bookings WHERE date = $1 AND status = 'ACTIVE' GROUP BY room_id, time_slot_id")).
		WithArgs("2026-09-14").
		WillReturnRows(rows)

	counts, err := repo.CountActiveByRoomAndSlot(context.Background(), "2026-09-14")
	require.NoError(t, err)
	require.Len(t, counts, 2)
	require.Equal(t, 3, counts[1].Booked)
}
