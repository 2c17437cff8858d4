package booking

import (
	"context"
	"fmt"

	"roombook/internal/availability"
	"roombook/internal/logger"
	"roombook/internal/metrics"
	"roombook/internal/room"
)

// Coordinator runs the admission protocol for one booking attempt:
// seed the counter if absent, take the seats, then let the database
// make the final call. The counter decrement is compensated on every
// path that does not end in a committed booking, including denials,
// faults and panics on the way to the insert.
type Coordinator struct {
	cache    *availability.Cache
	assigner Assigner
	counts   Repository
	caps     room.SeatCapacity
}

func NewCoordinator(cache *availability.Cache, assigner Assigner, counts Repository, caps room.SeatCapacity) *Coordinator {
	return &Coordinator{
		cache:    cache,
		assigner: assigner,
		counts:   counts,
		caps:     caps,
	}
}

// Reserve admits the intent through the counter and, when the counter
// agrees, asks the assigner for a concrete room. ErrNoAvailability is
// the only expected denial.
func (c *Coordinator) Reserve(ctx context.Context, intent *Intent) (*Booking, error) {
	key := intent.Key()

	seed := func(ctx context.Context) (int64, error) {
		count, err := c.counts.CountActiveBookings(ctx, intent.RoomType, intent.RoomName, intent.Date, intent.Slot.ID)
		if err != nil {
			return 0, err
		}
		free := int64(c.caps.For(intent.RoomType) - count)
		if free < 0 {
			free = 0
		}
		return free, nil
	}

	if err := c.cache.Ensure(ctx, key, seed); err != nil {
		return nil, fmt.Errorf("failed to seed admission counter: %w", err)
	}

	left, err := c.cache.Reserve(ctx, key, intent.SeatsNeeded)
	if err != nil {
		// The decrement did not apply, so there is nothing to undo.
		return nil, fmt.Errorf("failed to reserve seats: %w", err)
	}

	// From here the decrement stands until the booking commits.
	committed := false
	defer func() {
		if committed {
			return
		}
		c.release(ctx, key, intent.SeatsNeeded)
	}()

	if left < 0 {
		return nil, ErrNoAvailability
	}

	booking, err := c.assigner.AssignRoom(ctx, intent)
	if err != nil {
		return nil, err
	}

	committed = true
	return booking, nil
}

// release undoes a counter decrement. It runs detached from the request
// context so a caller timeout cannot strand the counter; if the store
// itself fails, the counter stays understated until the next
// reconciliation pass and the failure is surfaced for alerting.
func (c *Coordinator) release(ctx context.Context, key availability.Key, n int) {
	if err := c.cache.Release(context.WithoutCancel(ctx), key, n); err != nil {
		metrics.RecordCompensationFailure()
		logger.Error("counter compensation failed, value understated until reconciliation",
			"key", key.String(), "seats", n, "error", err)
	}
}
