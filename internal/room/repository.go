package room

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type SlotBookingCount struct {
	RoomID     int `db:"room_id"`
	TimeSlotID int `db:"time_slot_id"`
	Booked     int `db:"booked"`
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListRooms(ctx context.Context) ([]Room, error) {
	query := `
		SELECT id, name, room_type, created_at
		FROM rooms
		ORDER BY name
	`

	var rooms []Room
	err := r.db.SelectContext(ctx, &rooms, query)
	if err != nil {
		return nil, err
	}

	return rooms, nil
}

// ListRoomsOfType returns rooms of the given type ordered by name; when
// name is non-empty the result is narrowed to that single room.
func (r *repository) ListRoomsOfType(ctx context.Context, roomType, name string) ([]Room, error) {
	query := `
		SELECT id, name, room_type, created_at
		FROM rooms
		WHERE room_type = $1 AND ($2 = '' OR name = $2)
		ORDER BY name
	`

	var rooms []Room
	err := r.db.SelectContext(ctx, &rooms, query, roomType, name)
	if err != nil {
		return nil, err
	}

	return rooms, nil
}

func (r *repository) ListTimeSlots(ctx context.Context) ([]TimeSlot, error) {
	query := `
		SELECT id, start_time, end_time
		FROM time_slots
		ORDER BY start_time
	`

	var slots []TimeSlot
	err := r.db.SelectContext(ctx, &slots, query)
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) GetTimeSlotByID(ctx context.Context, id int) (*TimeSlot, error) {
	query := `
		SELECT id, start_time, end_time
		FROM time_slots
		WHERE id = $1
	`

	var slot TimeSlot
	err := r.db.GetContext(ctx, &slot, query, id)
	if err != nil {
		return nil, err
	}

	return &slot, nil
}

func (r *repository) CountActiveByRoomAndSlot(ctx context.Context, date string) ([]SlotBookingCount, error) {
	query := `
		SELECT room_id, time_slot_id, COUNT(*) AS booked
		FROM bookings
		WHERE date = $1 AND status = 'ACTIVE'
		GROUP BY room_id, time_slot_id
	`

	var counts []SlotBookingCount
	err := r.db.SelectContext(ctx, &counts, query, date)
	if err != nil {
		return nil, err
	}

	return counts, nil
}
