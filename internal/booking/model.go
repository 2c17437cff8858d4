package booking

import (
	"time"

	"roombook/internal/availability"
	"roombook/internal/room"
)

const (
	StatusActive    = "ACTIVE"
	StatusCancelled = "CANCELLED"
)

// Booking is a row in the authoritative bookings table. Exactly one of
// UserID and TeamID is set.
type Booking struct {
	ID          int        `db:"id" json:"id"`
	RoomID      int        `db:"room_id" json:"room_id"`
	UserID      *int       `db:"user_id" json:"user_id,omitempty"`
	TeamID      *int       `db:"team_id" json:"team_id,omitempty"`
	TimeSlotID  int        `db:"time_slot_id" json:"time_slot_id"`
	Date        string     `db:"date" json:"date"`
	Status      string     `db:"status" json:"status"`
	BookedAt    time.Time  `db:"booked_at" json:"booked_at"`
	CancelledAt *time.Time `db:"cancelled_at" json:"cancelled_at,omitempty"`
}

// BookingWithDetails joins the room, slot and requester columns used by
// the listing endpoints.
type BookingWithDetails struct {
	Booking
	RoomName  string  `db:"room_name" json:"room_name"`
	RoomType  string  `db:"room_type" json:"room_type"`
	StartTime string  `db:"start_time" json:"start_time"`
	EndTime   string  `db:"end_time" json:"end_time"`
	Username  *string `db:"username" json:"username,omitempty"`
	TeamName  *string `db:"team_name" json:"team_name,omitempty"`
}

type BookRequest struct {
	Date     string `json:"date" binding:"required"`
	SlotID   int    `json:"slot_id" binding:"required"`
	RoomType string `json:"room_type" binding:"required,roomtype"`
	RoomName string `json:"room_name"`
	TeamName string `json:"team_name"`
}

// Intent is a fully validated booking request. It carries everything the
// admission counter and the room assignment need, so neither has to
// repeat lookups the validation gate already did.
type Intent struct {
	Date        string
	Slot        room.TimeSlot
	RoomType    string
	RoomName    string
	UserID      int
	TeamID      *int
	SeatsNeeded int
}

// Key addresses the admission counter for this intent. All requests for
// the same (date, slot, type, identity) contend on the same counter.
func (i *Intent) Key() availability.Key {
	return availability.Key{
		Date:      i.Date,
		SlotRange: i.Slot.Range(),
		RoomType:  i.RoomType,
		RoomName:  i.RoomName,
	}
}
