package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "hello", format("hello", nil))
	assert.Equal(t, "hello a=1 b=two", format("hello", []interface{}{"a", 1, "b", "two"}))
	assert.Equal(t, "hello dangling", format("hello", []interface{}{"dangling"}))
}

func TestLoggersUsableWithoutInit(t *testing.T) {
	// Packages log during their own tests, where nothing calls Init.
	assert.NotNil(t, InfoLogger)
	assert.NotNil(t, ErrorLogger)
	assert.NotNil(t, DebugLogger)
	assert.NotPanics(t, func() {
		Info("counter seeded", "key", "room_availability/2026-03-11/09:00-10:00/private/P1")
		Debug("evicted stale key")
		Error("compensation failed", "seats", 1)
	})
}

func TestInitSetsLoggers(t *testing.T) {
	Init()
	assert.NotNil(t, InfoLogger)
	assert.NotNil(t, ErrorLogger)
	assert.NotNil(t, DebugLogger)
}
