package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombook/internal/room"
)

func setupMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB, room.DefaultSeatCapacity())

	return repo, mock, func() { sqlxDB.Close() }
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "room_id", "user_id", "team_id", "time_slot_id", "date", "status", "booked_at", "cancelled_at",
	})
}

func TestCountActiveBookings(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("private", "P1", "2026-03-11", 5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountActiveBookings(context.Background(), "private", "P1", "2026-03-11", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCountActiveBookingsSharedFiltersByRoom(t *testing.T) {
	// The S1 seed must not absorb bookings sitting in S2 or S3.
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings b JOIN rooms r ON r.id = b.room_id WHERE r.room_type = \$1 AND r.name = \$2`).
		WithArgs("shared", "S1", "2026-03-11", 5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountActiveBookings(context.Background(), "shared", "S1", "2026-03-11", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestHasActiveUserBooking(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(1, "2026-03-11", 5).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.HasActiveUserBooking(context.Background(), 1, "2026-03-11", 5)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAssignRoomPrivate(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	intent := privateIntent(1, "P1")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT r.id FROM rooms r WHERE r.room_type").
		WithArgs("private", "P1", "2026-03-11", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(3, 1, nil, 5, "2026-03-11").
		WillReturnRows(bookingRows().AddRow(10, 3, 1, nil, 5, "2026-03-11", "ACTIVE", time.Now(), nil))
	mock.ExpectCommit()

	b, err := repo.AssignRoom(context.Background(), intent)
	require.NoError(t, err)
	assert.Equal(t, 10, b.ID)
	assert.Equal(t, 3, b.RoomID)
	require.NotNil(t, b.UserID)
	assert.Equal(t, 1, *b.UserID)
	assert.Nil(t, b.TeamID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignRoomNoCandidate(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT r.id FROM rooms r WHERE r.room_type").
		WithArgs("private", "P1", "2026-03-11", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.AssignRoom(context.Background(), privateIntent(1, "P1"))
	assert.ErrorIs(t, err, ErrNoAvailability)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignRoomUniqueViolation(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT r.id FROM rooms r WHERE r.room_type").
		WithArgs("private", "P1", "2026-03-11", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(3, 1, nil, 5, "2026-03-11").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.AssignRoom(context.Background(), privateIntent(1, "P1"))
	assert.ErrorIs(t, err, ErrNoAvailability)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignRoomSharedPoolsSeats(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	intent := &Intent{
		Date:        "2026-03-11",
		Slot:        room.TimeSlot{ID: 5, StartTime: "14:00", EndTime: "15:00"},
		RoomType:    room.TypeShared,
		RoomName:    "S1",
		UserID:      2,
		SeatsNeeded: 1,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT r.id FROM rooms r LEFT JOIN bookings b").
		WithArgs("2026-03-11", 5, 1, 4).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(12, 2, nil, 5, "2026-03-11").
		WillReturnRows(bookingRows().AddRow(11, 12, 2, nil, 5, "2026-03-11", "ACTIVE", time.Now(), nil))
	mock.ExpectCommit()

	b, err := repo.AssignRoom(context.Background(), intent)
	require.NoError(t, err)
	assert.Equal(t, 12, b.RoomID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignRoomTeamBooking(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	teamID := 7
	intent := &Intent{
		Date:        "2026-03-11",
		Slot:        room.TimeSlot{ID: 5, StartTime: "14:00", EndTime: "15:00"},
		RoomType:    room.TypeConference,
		RoomName:    "C1",
		UserID:      1,
		TeamID:      &teamID,
		SeatsNeeded: 1,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT r.id FROM rooms r WHERE r.room_type").
		WithArgs("conference", "C1", "2026-03-11", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(9, nil, 7, 5, "2026-03-11").
		WillReturnRows(bookingRows().AddRow(13, 9, nil, 7, 5, "2026-03-11", "ACTIVE", time.Now(), nil))
	mock.ExpectCommit()

	b, err := repo.AssignRoom(context.Background(), intent)
	require.NoError(t, err)
	assert.Nil(t, b.UserID)
	require.NotNil(t, b.TeamID)
	assert.Equal(t, 7, *b.TeamID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE id").
		WithArgs(99).
		WillReturnRows(bookingRows())

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec("UPDATE bookings").
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Cancel(context.Background(), 4))

	mock.ExpectExec("UPDATE bookings").
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Cancel(context.Background(), 4), ErrAlreadyCancelled)
}
