package booking

import "context"

type Repository interface {
	// CountActiveBookings returns the number of ACTIVE bookings for the
	// (type, identity, date, slot) tuple. For shared rooms the identity
	// is ignored and all rooms of the type are counted together.
	CountActiveBookings(ctx context.Context, roomType, roomName, date string, slotID int) (int, error)
	HasActiveUserBooking(ctx context.Context, userID int, date string, slotID int) (bool, error)
	HasActiveTeamBooking(ctx context.Context, teamID int, date string, slotID int) (bool, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	GetDetailsByID(ctx context.Context, id int) (*BookingWithDetails, error)
	Cancel(ctx context.Context, id int) error
	ListForUser(ctx context.Context, userID int) ([]BookingWithDetails, error)
	ListAll(ctx context.Context, limit, offset int) ([]BookingWithDetails, error)
}

// Assigner owns the authoritative admission decision: pick a concrete
// room for the intent and persist the booking, or report that nothing
// is left with ErrNoAvailability.
type Assigner interface {
	AssignRoom(ctx context.Context, intent *Intent) (*Booking, error)
}
