package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Camilo-marin10/restaurante/internal/model"
)

const monday = "2025-06-02"

func TestFindTableSmallestFits(t *testing.T) {
	store := newMemStore()
	a := NewAssigner(store)
	ctx := context.Background()
	iv := NewInterval(mustClock(t, "13:00"), 2)

	// Capacities are {2, 4, 4, 6}; a party of 3 gets the lowest-id
	// four-top, not the six-top.
	got, err := a.FindTable(ctx, monday, iv, 3, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.ID)

	// A party of 1 still gets the smallest table that fits.
	got, err = a.FindTable(ctx, monday, iv, 1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.ID)
}

func TestFindTableSkipsConflicts(t *testing.T) {
	store := newMemStore()
	store.seed(model.Reservation{TableID: 2, Date: monday, Start: "13:00", DurationHours: 2, Status: model.StatusConfirmed})
	a := NewAssigner(store)
	iv := NewInterval(mustClock(t, "14:00"), 1)

	// Table 2 is occupied until 15:00; the tie-broken sibling takes over.
	got, err := a.FindTable(context.Background(), monday, iv, 3, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got.ID)

	// A back-to-back booking at 15:00 lands on table 2 again.
	got, err = a.FindTable(context.Background(), monday, NewInterval(mustClock(t, "15:00"), 1), 3, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.ID)
}

func TestFindTableNoCandidate(t *testing.T) {
	store := newMemStore()
	a := NewAssigner(store)
	iv := NewInterval(mustClock(t, "13:00"), 2)

	// Nothing seats a party of 7.
	_, err := a.FindTable(context.Background(), monday, iv, 7, 0, 0)
	assert.ErrorIs(t, err, ErrNoTable)

	// Cancelled bookings do not occupy the slot.
	store.seed(model.Reservation{TableID: 4, Date: monday, Start: "13:00", DurationHours: 2, Status: model.StatusCancelled})
	got, err := a.FindTable(context.Background(), monday, iv, 5, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), got.ID)
}

func TestFindTablePreferred(t *testing.T) {
	store := newMemStore()
	a := NewAssigner(store)
	ctx := context.Background()
	iv := NewInterval(mustClock(t, "13:00"), 2)

	got, err := a.FindTable(ctx, monday, iv, 4, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.ID)

	// Too small for the party.
	_, err = a.FindTable(ctx, monday, iv, 4, 1, 0)
	assert.ErrorIs(t, err, ErrNoTable)

	// Inactive tables are never assigned.
	store.tables[3].IsActive = false
	_, err = a.FindTable(ctx, monday, iv, 5, 4, 0)
	assert.ErrorIs(t, err, ErrNoTable)

	// Occupied at the requested window.
	store.seed(model.Reservation{TableID: 2, Date: monday, Start: "12:00", DurationHours: 2, Status: model.StatusConfirmed})
	_, err = a.FindTable(ctx, monday, iv, 4, 2, 0)
	assert.ErrorIs(t, err, ErrNoTable)
}

func TestListAvailable(t *testing.T) {
	store := newMemStore()
	store.seed(model.Reservation{TableID: 2, Date: monday, Start: "13:00", DurationHours: 2, Status: model.StatusConfirmed})
	a := NewAssigner(store)

	got, err := a.ListAvailable(context.Background(), monday, NewInterval(mustClock(t, "13:00"), 1), 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(3), got[0].ID)
	assert.Equal(t, uint64(4), got[1].ID)
}
