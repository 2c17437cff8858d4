package room

import (
	"context"
	"time"
)

type Service interface {
	ListTimeSlots(ctx context.Context) ([]TimeSlot, error)
	AvailabilityForDate(ctx context.Context, date time.Time) ([]SlotAvailability, error)
}

type service struct {
	repo Repository
	caps SeatCapacity
}

func NewService(repo Repository, caps SeatCapacity) Service {
	return &service{repo: repo, caps: caps}
}

func (s *service) ListTimeSlots(ctx context.Context) ([]TimeSlot, error) {
	return s.repo.ListTimeSlots(ctx)
}

// AvailabilityForDate builds the per-slot availability listing: private and
// conference rooms appear while unbooked, shared rooms while seats remain.
func (s *service) AvailabilityForDate(ctx context.Context, date time.Time) ([]SlotAvailability, error) {
	rooms, err := s.repo.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	slots, err := s.repo.ListTimeSlots(ctx)
	if err != nil {
		return nil, err
	}

	dateStr := date.Format("2006-01-02")
	counts, err := s.repo.CountActiveByRoomAndSlot(ctx, dateStr)
	if err != nil {
		return nil, err
	}

	booked := make(map[[2]int]int, len(counts))
	for _, c := range counts {
		booked[[2]int{c.RoomID, c.TimeSlotID}] = c.Booked
	}

	result := make([]SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		byType := map[string][]RoomAvailability{}

		for _, room := range rooms {
			n := booked[[2]int{room.ID, slot.ID}]

			switch room.RoomType {
			case TypeShared:
				free := s.caps.For(TypeShared) - n
				if free > 0 {
					seats := free
					byType[TypeShared] = append(byType[TypeShared], RoomAvailability{
						Name:           room.Name,
						SeatsAvailable: &seats,
					})
				}
			default:
				if n == 0 {
					byType[room.RoomType] = append(byType[room.RoomType], RoomAvailability{Name: room.Name})
				}
			}
		}

		entry := SlotAvailability{
			Date:   dateStr,
			SlotID: slot.ID,
			Slot:   slot.StartTime + " - " + slot.EndTime,
		}
		for _, roomType := range []string{TypePrivate, TypeConference, TypeShared} {
			avail, ok := byType[roomType]
			if !ok {
				continue
			}
			count := len(avail)
			if roomType == TypeShared {
				count = 0
				for _, a := range avail {
					count += *a.SeatsAvailable
				}
			}
			entry.RoomTypes = append(entry.RoomTypes, RoomTypeAvailability{
				Type:  roomType,
				Rooms: avail,
				Count: count,
			})
		}

		result = append(result, entry)
	}

	return result, nil
}
