package availability

import (
	"context"
	"fmt"
	"time"

	"roombook/internal/logger"
	"roombook/internal/metrics"
	"roombook/internal/room"
)

// Inventory lists the rooms and slots counters are maintained for.
type Inventory interface {
	ListRooms(ctx context.Context) ([]room.Room, error)
	ListTimeSlots(ctx context.Context) ([]room.TimeSlot, error)
}

// ActiveCounter reports the authoritative ACTIVE booking count for one
// counter key's dimensions.
type ActiveCounter interface {
	CountActiveBookings(ctx context.Context, roomType, roomName, date string, slotID int) (int, error)
}

// Reconciler maintains counters for a rolling window of future days and
// retires counters for past dates. It never participates in individual
// reservations; creates are idempotent and deletes only target expired
// dates, so it is safe to run alongside live traffic.
type Reconciler struct {
	store      Store
	inventory  Inventory
	bookings   ActiveCounter
	caps       room.SeatCapacity
	windowDays int
	now        func() time.Time
}

func NewReconciler(store Store, inventory Inventory, bookings ActiveCounter, caps room.SeatCapacity, windowDays int) *Reconciler {
	if windowDays <= 0 {
		windowDays = 7
	}
	return &Reconciler{
		store:      store,
		inventory:  inventory,
		bookings:   bookings,
		caps:       caps,
		windowDays: windowDays,
		now:        time.Now,
	}
}

// Run performs one reconciliation pass: evict counters dated before today,
// then seed missing counters for today through today+windowDays-1. Seeds
// recompute remaining capacity from the authoritative count instead of
// resetting to full capacity, so a key recreated after eviction agrees
// with the lazy-init path.
func (r *Reconciler) Run(ctx context.Context) error {
	today := dateOnly(r.now())

	if err := r.evict(ctx, today); err != nil {
		return err
	}
	return r.seed(ctx, today)
}

func (r *Reconciler) evict(ctx context.Context, today time.Time) error {
	keys, err := r.store.Keys(ctx, KeyPrefix)
	if err != nil {
		return fmt.Errorf("availability: list keys: %w", err)
	}

	for _, raw := range keys {
		key, err := ParseKey(raw)
		if err != nil {
			logger.Error("reconcile: skipping unparseable counter key", "key", raw, "err", err)
			continue
		}

		keyDate, _ := key.DateValue()
		if !keyDate.Before(today) {
			continue
		}

		if err := r.store.Delete(ctx, raw); err != nil {
			logger.Error("reconcile: failed to delete expired counter", "key", raw, "err", err)
			continue
		}
		metrics.ReconcileKeysDeletedTotal.Inc()
		logger.Debug("reconcile: deleted expired counter", "key", raw)
	}
	return nil
}

func (r *Reconciler) seed(ctx context.Context, today time.Time) error {
	rooms, err := r.inventory.ListRooms(ctx)
	if err != nil {
		return fmt.Errorf("availability: list rooms: %w", err)
	}
	slots, err := r.inventory.ListTimeSlots(ctx)
	if err != nil {
		return fmt.Errorf("availability: list slots: %w", err)
	}

	for offset := 0; offset < r.windowDays; offset++ {
		date := today.AddDate(0, 0, offset)
		dateStr := date.Format(dateLayout)

		for _, slot := range slots {
			for _, rm := range rooms {
				key := NewKey(date, slot.Range(), rm.RoomType, rm.Name)

				exists, err := r.store.Exists(ctx, key.String())
				if err != nil {
					return fmt.Errorf("availability: exists check: %w", err)
				}
				if exists {
					continue
				}

				count, err := r.bookings.CountActiveBookings(ctx, rm.RoomType, rm.Name, dateStr, slot.ID)
				if err != nil {
					return fmt.Errorf("availability: count bookings: %w", err)
				}

				value := int64(r.caps.For(rm.RoomType) - count)
				if value < 0 {
					value = 0
				}

				created, err := r.store.SetIfAbsent(ctx, key.String(), value)
				if err != nil {
					return fmt.Errorf("availability: seed write: %w", err)
				}
				if created {
					metrics.ReconcileKeysCreatedTotal.Inc()
				}
			}
		}
	}
	return nil
}

// Start runs one pass immediately, then repeats on the given interval until
// the context is cancelled.
func (r *Reconciler) Start(ctx context.Context, interval time.Duration) {
	if err := r.Run(ctx); err != nil {
		logger.Error("reconciliation pass failed", "err", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("reconciliation job stopped")
			return
		case <-ticker.C:
			if err := r.Run(ctx); err != nil {
				logger.Error("reconciliation pass failed", "err", err)
			}
		}
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
