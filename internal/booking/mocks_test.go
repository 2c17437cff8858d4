package booking

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"roombook/internal/room"
	"roombook/internal/team"
	"roombook/internal/user"
)

type MockRoomRepo struct {
	mock.Mock
}

func (m *MockRoomRepo) ListRooms(ctx context.Context) ([]room.Room, error) {
	args := m.Called(ctx)
	return args.Get(0).([]room.Room), args.Error(1)
}

func (m *MockRoomRepo) ListRoomsOfType(ctx context.Context, roomType, name string) ([]room.Room, error) {
	args := m.Called(ctx, roomType, name)
	return args.Get(0).([]room.Room), args.Error(1)
}

func (m *MockRoomRepo) ListTimeSlots(ctx context.Context) ([]room.TimeSlot, error) {
	args := m.Called(ctx)
	return args.Get(0).([]room.TimeSlot), args.Error(1)
}

func (m *MockRoomRepo) GetTimeSlotByID(ctx context.Context, id int) (*room.TimeSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.TimeSlot), args.Error(1)
}

func (m *MockRoomRepo) CountActiveByRoomAndSlot(ctx context.Context, date string) ([]room.SlotBookingCount, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]room.SlotBookingCount), args.Error(1)
}

type MockTeamRepo struct {
	mock.Mock
}

func (m *MockTeamRepo) Create(ctx context.Context, name string, teamLeadID int) (*team.Team, error) {
	args := m.Called(ctx, name, teamLeadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*team.Team), args.Error(1)
}

func (m *MockTeamRepo) GetByName(ctx context.Context, name string) (*team.Team, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*team.Team), args.Error(1)
}

func (m *MockTeamRepo) ListMembers(ctx context.Context, teamID int) ([]team.Member, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).([]team.Member), args.Error(1)
}

func (m *MockTeamRepo) IsMember(ctx context.Context, teamID, userID int) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTeamRepo) AddMember(ctx context.Context, teamID, userID int) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

func (m *MockTeamRepo) RemoveMember(ctx context.Context, teamID, userID int) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, username, email, passwordHash, role string, dateOfBirth *time.Time) (*user.User, error) {
	args := m.Called(ctx, username, email, passwordHash, role, dateOfBirth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepo) SetActive(ctx context.Context, id int, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CountActiveBookings(ctx context.Context, roomType, roomName, date string, slotID int) (int, error) {
	args := m.Called(ctx, roomType, roomName, date, slotID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepo) HasActiveUserBooking(ctx context.Context, userID int, date string, slotID int) (bool, error) {
	args := m.Called(ctx, userID, date, slotID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepo) HasActiveTeamBooking(ctx context.Context, teamID int, date string, slotID int) (bool, error) {
	args := m.Called(ctx, teamID, date, slotID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingRepo) GetDetailsByID(ctx context.Context, id int) (*BookingWithDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BookingWithDetails), args.Error(1)
}

func (m *MockBookingRepo) Cancel(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepo) ListForUser(ctx context.Context, userID int) ([]BookingWithDetails, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]BookingWithDetails), args.Error(1)
}

func (m *MockBookingRepo) ListAll(ctx context.Context, limit, offset int) ([]BookingWithDetails, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]BookingWithDetails), args.Error(1)
}
