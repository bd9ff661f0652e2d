package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Camilo-marin10/restaurante/internal/model"
)

func TestSweeperRun(t *testing.T) {
	store := newMemStore()
	today := "2025-06-02"

	ended := store.seed(model.Reservation{
		TableID: 1, CustomerID: 1, Date: today,
		Start: "10:00", DurationHours: 1, Status: model.StatusConfirmed,
	})
	running := store.seed(model.Reservation{
		TableID: 2, CustomerID: 1, Date: today,
		Start: "13:30", DurationHours: 2, Status: model.StatusConfirmed,
	})
	upcoming := store.seed(model.Reservation{
		TableID: 3, CustomerID: 2, Date: today,
		Start: "19:00", DurationHours: 2, Status: model.StatusConfirmed,
	})
	pending := store.seed(model.Reservation{
		TableID: 4, CustomerID: 2, Date: today,
		Start: "10:00", DurationHours: 1, Status: model.StatusPending,
	})
	tomorrow := store.seed(model.Reservation{
		TableID: 1, CustomerID: 2, Date: "2025-06-03",
		Start: "10:00", DurationHours: 1, Status: model.StatusConfirmed,
	})

	clock := FixedClock{T: time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)}
	sw := NewSweeper(store, clock)

	n, err := sw.Run(context.Background())
	require.NoError(t, err)
	// The stale booking takes two steps in one run, the running one
	// takes a single step.
	assert.Equal(t, 3, n)

	statusOf := func(id uint64) string {
		r, _ := store.ReservationByID(context.Background(), id)
		return r.Status
	}
	assert.Equal(t, model.StatusCompleted, statusOf(ended.ID))
	assert.Equal(t, model.StatusInProgress, statusOf(running.ID))
	assert.Equal(t, model.StatusConfirmed, statusOf(upcoming.ID))
	assert.Equal(t, model.StatusPending, statusOf(pending.ID))
	assert.Equal(t, model.StatusConfirmed, statusOf(tomorrow.ID))

	// Sweeping again changes nothing.
	n, err = sw.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSweeperCompletesInProgress(t *testing.T) {
	store := newMemStore()
	r := store.seed(model.Reservation{
		TableID: 1, CustomerID: 1, Date: "2025-06-02",
		Start: "12:00", DurationHours: 1, Status: model.StatusInProgress,
	})
	clock := FixedClock{T: time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)}

	n, err := NewSweeper(store, clock).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	got, _ := store.ReservationByID(context.Background(), r.ID)
	assert.Equal(t, model.StatusCompleted, got.Status)
}
