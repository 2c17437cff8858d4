package room

import "time"

const (
	TypePrivate    = "private"
	TypeConference = "conference"
	TypeShared     = "shared"
)

// SeatCapacity maps a room type to the number of seats a single room of
// that type offers within one time slot.
type SeatCapacity map[string]int

func NewSeatCapacity(private, conference, shared int) SeatCapacity {
	return SeatCapacity{
		TypePrivate:    private,
		TypeConference: conference,
		TypeShared:     shared,
	}
}

func DefaultSeatCapacity() SeatCapacity {
	return NewSeatCapacity(1, 1, 4)
}

func (c SeatCapacity) For(roomType string) int {
	return c[roomType]
}

func ValidType(roomType string) bool {
	switch roomType {
	case TypePrivate, TypeConference, TypeShared:
		return true
	}
	return false
}

type Room struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	RoomType  string    `db:"room_type" json:"room_type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TimeSlot is a fixed daily interval; times are wall-clock "HH:MM".
type TimeSlot struct {
	ID        int    `db:"id" json:"id"`
	StartTime string `db:"start_time" json:"start_time"`
	EndTime   string `db:"end_time" json:"end_time"`
}

// Range renders the slot as "09:00-10:00", the form used in counter keys.
func (s TimeSlot) Range() string {
	return s.StartTime + "-" + s.EndTime
}

// StartAt and EndAt anchor the wall-clock times on the given date.
func (s TimeSlot) StartAt(date time.Time) time.Time {
	return clockOn(date, s.StartTime)
}

func (s TimeSlot) EndAt(date time.Time) time.Time {
	return clockOn(date, s.EndTime)
}

func clockOn(date time.Time, hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

type RoomAvailability struct {
	Name           string `json:"name"`
	SeatsAvailable *int   `json:"seats_available,omitempty"`
}

type RoomTypeAvailability struct {
	Type  string             `json:"type"`
	Rooms []RoomAvailability `json:"available_rooms"`
	Count int                `json:"count"`
}

type SlotAvailability struct {
	Date      string                 `json:"date"`
	SlotID    int                    `json:"slot_id"`
	Slot      string                 `json:"slot"`
	RoomTypes []RoomTypeAvailability `json:"room_types"`
}
