package availability

import (
	"fmt"
	"strings"
	"time"
)

// KeyPrefix is shared by every availability counter so the reconciler can
// enumerate them.
const KeyPrefix = "room_availability/"

const dateLayout = "2006-01-02"

// Key addresses one admission counter: a (date, slot, room type, room name)
// combination. Its string form is
// "room_availability/<date>/<HH:MM-HH:MM>/<type>/<name>" and round-trips
// through ParseKey.
type Key struct {
	Date      string // ISO date, e.g. "2026-09-14"
	SlotRange string // e.g. "09:00-10:00"
	RoomType  string
	RoomName  string
}

func NewKey(date time.Time, slotRange, roomType, roomName string) Key {
	return Key{
		Date:      date.Format(dateLayout),
		SlotRange: slotRange,
		RoomType:  roomType,
		RoomName:  roomName,
	}
}

func (k Key) String() string {
	return KeyPrefix + k.Date + "/" + k.SlotRange + "/" + k.RoomType + "/" + k.RoomName
}

// DateValue parses the date component back out; the reconciler relies on
// this during eviction.
func (k Key) DateValue() (time.Time, error) {
	return time.Parse(dateLayout, k.Date)
}

func ParseKey(s string) (Key, error) {
	rest, ok := strings.CutPrefix(s, KeyPrefix)
	if !ok {
		return Key{}, fmt.Errorf("availability: key %q lacks prefix %q", s, KeyPrefix)
	}

	parts := strings.Split(rest, "/")
	if len(parts) != 4 {
		return Key{}, fmt.Errorf("availability: key %q has %d segments, want 4", s, len(parts))
	}

	key := Key{
		Date:      parts[0],
		SlotRange: parts[1],
		RoomType:  parts[2],
		RoomName:  parts[3],
	}
	if _, err := key.DateValue(); err != nil {
		return Key{}, fmt.Errorf("availability: key %q has bad date: %w", s, err)
	}
	return key, nil
}
