package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"roombook/internal/room"
)

const bookingColumns = `id, room_id, user_id, team_id, time_slot_id, date::text AS date, status, booked_at, cancelled_at`

type PostgresRepository struct {
	db   *sqlx.DB
	caps room.SeatCapacity
}

func NewRepository(db *sqlx.DB, caps room.SeatCapacity) *PostgresRepository {
	return &PostgresRepository{db: db, caps: caps}
}

func (r *PostgresRepository) CountActiveBookings(ctx context.Context, roomType, roomName, date string, slotID int) (int, error) {
	// The counter key names one room, so only bookings sitting in that
	// exact room count against its seed.
	query := `
		SELECT COUNT(*)
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		WHERE r.room_type = $1
		  AND r.name = $2
		  AND b.date = $3
		  AND b.time_slot_id = $4
		  AND b.status = 'ACTIVE'
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, roomType, roomName, date, slotID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *PostgresRepository) HasActiveUserBooking(ctx context.Context, userID int, date string, slotID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE user_id = $1 AND date = $2 AND time_slot_id = $3 AND status = 'ACTIVE'
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, date, slotID)
	return exists, err
}

func (r *PostgresRepository) HasActiveTeamBooking(ctx context.Context, teamID int, date string, slotID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE team_id = $1 AND date = $2 AND time_slot_id = $3 AND status = 'ACTIVE'
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, teamID, date, slotID)
	return exists, err
}

// AssignRoom selects the first candidate room for the intent and inserts
// the booking in a single transaction. The partial unique index on
// (room_id, date, time_slot_id) is the final fence: a unique violation
// means another request won the room first and is reported the same way
// as an empty candidate set.
func (r *PostgresRepository) AssignRoom(ctx context.Context, intent *Intent) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	roomID, err := r.pickRoom(ctx, tx, intent)
	if err != nil {
		return nil, err
	}

	var userID, teamID *int
	if intent.TeamID != nil {
		teamID = intent.TeamID
	} else {
		uid := intent.UserID
		userID = &uid
	}

	insert := `
		INSERT INTO bookings (room_id, user_id, team_id, time_slot_id, date, status)
		VALUES ($1, $2, $3, $4, $5, 'ACTIVE')
		RETURNING ` + bookingColumns

	var b Booking
	err = tx.GetContext(ctx, &b, insert, roomID, userID, teamID, intent.Slot.ID, intent.Date)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrNoAvailability
		}
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	return &b, nil
}

func (r *PostgresRepository) pickRoom(ctx context.Context, tx *sqlx.Tx, intent *Intent) (int, error) {
	var query string
	var args []interface{}

	if intent.RoomType == room.TypeShared {
		// First shared room, by name, with enough free seats left in
		// the slot for the whole request.
		query = `
			SELECT r.id
			FROM rooms r
			LEFT JOIN bookings b
			  ON b.room_id = r.id AND b.date = $1 AND b.time_slot_id = $2 AND b.status = 'ACTIVE'
			WHERE r.room_type = 'shared'
			GROUP BY r.id, r.name
			HAVING COUNT(b.id) + $3 <= $4
			ORDER BY r.name
			LIMIT 1
		`
		args = []interface{}{intent.Date, intent.Slot.ID, intent.SeatsNeeded, r.caps.For(room.TypeShared)}
	} else {
		query = `
			SELECT r.id
			FROM rooms r
			WHERE r.room_type = $1
			  AND ($2 = '' OR r.name = $2)
			  AND NOT EXISTS (
				SELECT 1 FROM bookings b
				WHERE b.room_id = r.id AND b.date = $3 AND b.time_slot_id = $4 AND b.status = 'ACTIVE'
			  )
			ORDER BY r.name
			LIMIT 1
		`
		args = []interface{}{intent.RoomType, intent.RoomName, intent.Date, intent.Slot.ID}
	}

	var roomID int
	err := tx.GetContext(ctx, &roomID, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNoAvailability
		}
		return 0, fmt.Errorf("failed to select candidate room: %w", err)
	}

	return roomID, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &b, nil
}

func (r *PostgresRepository) GetDetailsByID(ctx context.Context, id int) (*BookingWithDetails, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		JOIN time_slots ts ON ts.id = b.time_slot_id
		LEFT JOIN users u ON u.id = b.user_id
		LEFT JOIN teams t ON t.id = b.team_id
		WHERE b.id = $1
	`

	var b BookingWithDetails
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &b, nil
}

func (r *PostgresRepository) Cancel(ctx context.Context, id int) error {
	query := `
		UPDATE bookings
		SET status = 'CANCELLED', cancelled_at = NOW()
		WHERE id = $1 AND status = 'ACTIVE'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAlreadyCancelled
	}

	return nil
}

const detailColumns = `
	b.id, b.room_id, b.user_id, b.team_id, b.time_slot_id, b.date::text AS date,
	b.status, b.booked_at, b.cancelled_at,
	r.name AS room_name, r.room_type,
	ts.start_time, ts.end_time,
	u.username, t.name AS team_name`

func (r *PostgresRepository) ListForUser(ctx context.Context, userID int) ([]BookingWithDetails, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		JOIN time_slots ts ON ts.id = b.time_slot_id
		LEFT JOIN users u ON u.id = b.user_id
		LEFT JOIN teams t ON t.id = b.team_id
		WHERE b.user_id = $1 OR b.team_id IN (SELECT team_id FROM team_members WHERE user_id = $1)
		ORDER BY b.date DESC, ts.start_time DESC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, userID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context, limit, offset int) ([]BookingWithDetails, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		JOIN time_slots ts ON ts.id = b.time_slot_id
		LEFT JOIN users u ON u.id = b.user_id
		LEFT JOIN teams t ON t.id = b.team_id
		ORDER BY b.date DESC, ts.start_time DESC, b.id DESC
		LIMIT $1 OFFSET $2
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, limit, offset)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}
