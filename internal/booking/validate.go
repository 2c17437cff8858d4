package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"roombook/internal/room"
	"roombook/internal/team"
	"roombook/internal/user"
)

const minimumIndividualAge = 10

const minimumTeamSize = 3

// Gate runs every booking rule before a request is allowed to touch the
// admission counter or the database. Rules are checked in a fixed order
// and the first failure wins; the duplicate check runs last because it
// is the only rule that costs a query against the bookings table.
type Gate struct {
	rooms    room.Repository
	teams    team.Repository
	users    user.Repository
	bookings Repository
	now      func() time.Time
}

func NewGate(rooms room.Repository, teams team.Repository, users user.Repository, bookings Repository) *Gate {
	return &Gate{
		rooms:    rooms,
		teams:    teams,
		users:    users,
		bookings: bookings,
		now:      time.Now,
	}
}

// Validate checks the request against all booking rules and returns a
// fully resolved Intent, or a ValidationError naming the violated rule.
func (g *Gate) Validate(ctx context.Context, userID int, req BookRequest) (*Intent, error) {
	if req.Date == "" || req.SlotID == 0 || req.RoomType == "" || req.RoomName == "" {
		return nil, ErrMissingFields
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, ErrBadDate
	}

	if !room.ValidType(req.RoomType) {
		return nil, ErrUnknownRoomType
	}

	now := g.now()
	today := now.Format("2006-01-02")
	if req.Date < today {
		return nil, ErrPastDate
	}

	slot, err := g.rooms.GetTimeSlotByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnknownSlot
		}
		return nil, fmt.Errorf("failed to resolve time slot: %w", err)
	}

	// Same-day bookings must target a slot that has not started yet.
	if req.Date == today && slot.StartTime <= now.Format("15:04") {
		return nil, ErrStaleSlot
	}

	intent := &Intent{
		Date:        req.Date,
		Slot:        *slot,
		RoomType:    req.RoomType,
		RoomName:    req.RoomName,
		UserID:      userID,
		SeatsNeeded: 1,
	}

	if req.TeamName != "" {
		if err := g.validateTeam(ctx, userID, req, intent); err != nil {
			return nil, err
		}
	} else {
		requester, err := g.users.FindByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load requester: %w", err)
		}
		if age := requester.Age(now); age != nil && *age < minimumIndividualAge {
			return nil, ErrChildIndividual
		}
	}

	dup, err := g.hasDuplicate(ctx, intent)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing bookings: %w", err)
	}
	if dup {
		return nil, ErrDuplicateBooking
	}

	return intent, nil
}

func (g *Gate) validateTeam(ctx context.Context, userID int, req BookRequest, intent *Intent) error {
	t, err := g.teams.GetByName(ctx, req.TeamName)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			return ErrUnknownTeam
		}
		return fmt.Errorf("failed to load team: %w", err)
	}

	member, err := g.teams.IsMember(ctx, t.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to check team membership: %w", err)
	}
	if !member {
		return ErrNotTeamMember
	}

	if req.RoomType == room.TypeShared {
		return ErrTeamSharedRoom
	}
	if req.RoomType != room.TypeConference {
		return ErrTeamRoomType
	}

	members, err := g.teams.ListMembers(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("failed to list team members: %w", err)
	}
	if len(members) < minimumTeamSize {
		return ErrTeamTooSmall
	}

	intent.TeamID = &t.ID
	// Children under 10 attend without taking a seat, so the counter
	// reservation covers only the seat-consuming members.
	intent.SeatsNeeded = team.SeatsNeeded(members, g.now())
	return nil
}

func (g *Gate) hasDuplicate(ctx context.Context, intent *Intent) (bool, error) {
	if intent.TeamID != nil {
		return g.bookings.HasActiveTeamBooking(ctx, *intent.TeamID, intent.Date, intent.Slot.ID)
	}
	return g.bookings.HasActiveUserBooking(ctx, intent.UserID, intent.Date, intent.Slot.ID)
}
