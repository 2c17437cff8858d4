package room

import "context"

type Repository interface {
	ListRooms(ctx context.Context) ([]Room, error)
	ListRoomsOfType(ctx context.Context, roomType, name string) ([]Room, error)
	ListTimeSlots(ctx context.Context) ([]TimeSlot, error)
	GetTimeSlotByID(ctx context.Context, id int) (*TimeSlot, error)
	CountActiveByRoomAndSlot(ctx context.Context, date string) ([]SlotBookingCount, error)
}
