package availability

import (
	"context"
	"fmt"

	"roombook/internal/metrics"
)

// SeedFunc computes the initial value for an uninitialized counter,
// normally room-type capacity minus the authoritative ACTIVE booking count.
type SeedFunc func(ctx context.Context) (int64, error)

// Cache gives the reservation path its admission counters. Values are
// hints: bounded above by true capacity, reconciled elsewhere, and only
// trustworthy inside the reserve/release protocol.
type Cache struct {
	store Store
}

func NewCache(store Store) *Cache {
	return &Cache{store: store}
}

// Ensure seeds the counter for key if it does not exist yet. Concurrent
// initializers may both compute the seed; SetIfAbsent keeps the first
// writer and the loser's value is discarded.
func (c *Cache) Ensure(ctx context.Context, key Key, seed SeedFunc) error {
	exists, err := c.store.Exists(ctx, key.String())
	if err != nil {
		return fmt.Errorf("availability: exists check: %w", err)
	}
	if exists {
		return nil
	}

	value, err := seed(ctx)
	if err != nil {
		return fmt.Errorf("availability: seed: %w", err)
	}

	created, err := c.store.SetIfAbsent(ctx, key.String(), value)
	if err != nil {
		return fmt.Errorf("availability: seed write: %w", err)
	}
	if created {
		metrics.RecordCounterSeed()
	}
	return nil
}

// Reserve atomically takes n seats and returns the counter value after the
// decrement. A negative result means the reservation must be denied and the
// decrement undone by the caller.
func (c *Cache) Reserve(ctx context.Context, key Key, n int) (int64, error) {
	return c.store.DecrBy(ctx, key.String(), int64(n))
}

// Release compensates a reservation.
func (c *Cache) Release(ctx context.Context, key Key, n int) error {
	_, err := c.store.IncrBy(ctx, key.String(), int64(n))
	return err
}

// Value reads the current counter. Absent keys report false.
func (c *Cache) Value(ctx context.Context, key Key) (int64, bool, error) {
	exists, err := c.store.Exists(ctx, key.String())
	if err != nil || !exists {
		return 0, false, err
	}
	// DECRBY 0 reads without mutating.
	v, err := c.store.DecrBy(ctx, key.String(), 0)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}
