package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Camilo-marin10/restaurante/internal/model"
)

func TestWindowForWeekday(t *testing.T) {
	store := newMemStore()
	r := NewHoursResolver(store)
	ctx := context.Background()

	t.Run("open day", func(t *testing.T) {
		w, err := r.WindowForWeekday(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, mustClock(t, "10:00"), w.Open)
		assert.Equal(t, mustClock(t, "22:00"), w.Close)
	})

	t.Run("inactive day is closed", func(t *testing.T) {
		_, err := r.WindowForWeekday(ctx, 0)
		assert.ErrorIs(t, err, ErrClosed)
	})

	t.Run("missing row is closed", func(t *testing.T) {
		delete(store.hours, 3)
		_, err := r.WindowForWeekday(ctx, 3)
		assert.ErrorIs(t, err, ErrClosed)
	})

	t.Run("active row without bounds is closed", func(t *testing.T) {
		store.hours[4] = &model.BusinessHours{Weekday: 4, IsActive: true}
		_, err := r.WindowForWeekday(ctx, 4)
		assert.ErrorIs(t, err, ErrClosed)
	})

	t.Run("malformed time is closed", func(t *testing.T) {
		store.hours[5] = &model.BusinessHours{
			Weekday: 5, IsActive: true,
			OpenTime: hhmm("ten"), CloseTime: hhmm("22:00"),
		}
		_, err := r.WindowForWeekday(ctx, 5)
		assert.ErrorIs(t, err, ErrClosed)
	})

	t.Run("weekday out of range", func(t *testing.T) {
		_, err := r.WindowForWeekday(ctx, 7)
		assert.ErrorIs(t, err, ErrBadWeekday)
		_, err = r.WindowForWeekday(ctx, -1)
		assert.ErrorIs(t, err, ErrBadWeekday)
	})
}

func TestWindowFor(t *testing.T) {
	store := newMemStore()
	r := NewHoursResolver(store)
	ctx := context.Background()

	// 2025-06-02 is a Monday.
	w, err := r.WindowFor(ctx, "2025-06-02")
	require.NoError(t, err)
	assert.True(t, w.Contains(NewInterval(mustClock(t, "13:00"), 2)))
	assert.False(t, w.Contains(NewInterval(mustClock(t, "21:30"), 1)))
	assert.False(t, w.Contains(NewInterval(mustClock(t, "09:00"), 1)))
	// Ending exactly at close is inside the window.
	assert.True(t, w.Contains(NewInterval(mustClock(t, "21:00"), 1)))

	// 2025-06-08 is a Sunday.
	_, err = r.WindowFor(ctx, "2025-06-08")
	assert.ErrorIs(t, err, ErrClosed)
}
