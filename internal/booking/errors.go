package booking

import "errors"

// ValidationError marks a request the gate rejected before any counter
// or database write happened. Handlers map it to a 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func newValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

var (
	ErrMissingFields    = newValidationError("date, slot_id, room_type and room_name are required")
	ErrBadDate          = newValidationError("invalid date format, expected YYYY-MM-DD")
	ErrPastDate         = newValidationError("cannot book a date in the past")
	ErrStaleSlot        = newValidationError("booking is only allowed for future time slots")
	ErrUnknownSlot      = newValidationError("invalid slot_id")
	ErrUnknownRoomType  = newValidationError("unknown room_type")
	ErrUnknownTeam      = newValidationError("invalid team name")
	ErrNotTeamMember    = newValidationError("you are not a member of this team")
	ErrChildIndividual  = newValidationError("users under 10 cannot book a room individually")
	ErrTeamRoomType     = newValidationError("teams can only book conference rooms")
	ErrTeamTooSmall     = newValidationError("conference rooms require a team of at least 3 members")
	ErrTeamSharedRoom   = newValidationError("teams cannot book shared desks")
	ErrDuplicateBooking = newValidationError("an active booking for this slot already exists for the requester")
)

// ErrNoAvailability is the expected denial outcome of an admission
// attempt: every candidate room is taken, or the final uniqueness fence
// in the database turned the insert away. Handlers map it to a 409.
var ErrNoAvailability = errors.New("no available room for the requested slot")

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotBookingOwner  = errors.New("booking belongs to another user")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
)
