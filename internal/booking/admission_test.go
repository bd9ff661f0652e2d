package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Camilo-marin10/restaurante/internal/model"
)

// newAdmission returns the service over a fresh fixture store with the
// clock pinned to Monday 2025-06-02 at 09:00 UTC, one hour before the
// restaurant opens.
func newAdmission() (*AdmissionService, *memStore) {
	store := newMemStore()
	clock := FixedClock{T: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)}
	return NewAdmissionService(store, clock), store
}

func staffReq() Request {
	return Request{
		CustomerID: 1,
		TableID:    2,
		Date:       "2025-06-02",
		Start:      "13:00",
		PartySize:  4,
		Duration:   2,
	}
}

func requireValidation(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.Error(t, err)
	ve, ok := AsValidation(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	return ve
}

func TestAdmitStaffCreate(t *testing.T) {
	svc, store := newAdmission()

	r, err := svc.Admit(context.Background(), staffReq(), ChannelStaff, 0)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, r.Status)
	assert.Equal(t, uint64(2), r.TableID)
	assert.Equal(t, "13:00", r.Start)
	assert.Len(t, r.Code, CodeLength)
	require.Len(t, store.reservations, 1)
}

func TestAdmitCustomerCreate(t *testing.T) {
	svc, _ := newAdmission()

	req := staffReq()
	req.TableID = 0
	req.PartySize = 1

	r, err := svc.Admit(context.Background(), req, ChannelCustomer, 0)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, r.Status)
	// Smallest fitting table wins the auto-assignment.
	assert.Equal(t, uint64(1), r.TableID)
}

func TestAdmitOverlap(t *testing.T) {
	svc, _ := newAdmission()
	ctx := context.Background()

	_, err := svc.Admit(ctx, staffReq(), ChannelStaff, 0)
	require.NoError(t, err)

	req := staffReq()
	req.CustomerID = 2
	req.Start = "14:00"
	req.Duration = 1
	_, err = svc.Admit(ctx, req, ChannelStaff, 0)
	ve := requireValidation(t, err)
	assert.True(t, ve.Has(KindOverlap))
	assert.Contains(t, ve.Error(), "13:00 to 15:00")

	// Back to back is allowed.
	req.Start = "15:00"
	_, err = svc.Admit(ctx, req, ChannelStaff, 0)
	assert.NoError(t, err)
}

func TestAdmitOutsideHours(t *testing.T) {
	svc, _ := newAdmission()
	ctx := context.Background()

	req := staffReq()
	req.Start = "21:30"
	req.Duration = 1
	ve := requireValidation(t, mustFail(svc.Admit(ctx, req, ChannelStaff, 0)))
	assert.True(t, ve.Has(KindOutsideHours))
	assert.Contains(t, ve.Error(), "closes at 22:00")

	req = staffReq()
	req.Start = "09:30"
	ve = requireValidation(t, mustFail(svc.Admit(ctx, req, ChannelStaff, 0)))
	assert.True(t, ve.Has(KindOutsideHours))
	assert.Contains(t, ve.Error(), "opening time (10:00)")

	// Sunday is a closed day.
	req = staffReq()
	req.Date = "2025-06-08"
	ve = requireValidation(t, mustFail(svc.Admit(ctx, req, ChannelStaff, 0)))
	assert.True(t, ve.Has(KindOutsideHours))
	assert.Contains(t, ve.Error(), "closed on Sunday")
}

func TestAdmitPast(t *testing.T) {
	svc, _ := newAdmission()
	ctx := context.Background()

	req := staffReq()
	req.Date = "2025-05-31" // the Saturday before, an open day
	ve := requireValidation(t, mustFail(svc.Admit(ctx, req, ChannelStaff, 0)))
	assert.True(t, ve.Has(KindPastDateTime))
	assert.Contains(t, ve.Error(), "date cannot be in the past")

	req = staffReq()
	req.Date = "2025-06-02"
	req.Start = "10:00"
	// Clock reads 09:00, so 10:00 today is fine.
	_, err := svc.Admit(ctx, req, ChannelStaff, 0)
	assert.NoError(t, err)
}

func TestAdmitStartInPastToday(t *testing.T) {
	store := newMemStore()
	clock := FixedClock{T: time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)}
	svc := NewAdmissionService(store, clock)

	req := staffReq() // 13:00 today, one hour ago
	ve := requireValidation(t, mustFail(svc.Admit(context.Background(), req, ChannelStaff, 0)))
	assert.True(t, ve.Has(KindPastDateTime))
	assert.Contains(t, ve.Error(), "start time cannot be in the past")
}

func TestAdmitDuplicate(t *testing.T) {
	svc, _ := newAdmission()
	ctx := context.Background()

	_, err := svc.Admit(ctx, staffReq(), ChannelStaff, 0)
	require.NoError(t, err)

	// Same customer, same date and start, different table.
	req := staffReq()
	req.TableID = 4
	ve := requireValidation(t, mustFail(svc.Admit(ctx, req, ChannelStaff, 0)))
	assert.True(t, ve.Has(KindDuplicate))
}

func TestAdmitCapacity(t *testing.T) {
	svc, _ := newAdmission()

	req := staffReq()
	req.PartySize = 5 // table 2 seats 4
	ve := requireValidation(t, mustFail(svc.Admit(context.Background(), req, ChannelStaff, 0)))
	assert.True(t, ve.Has(KindCapacity))
	assert.Contains(t, ve.Error(), "capacity of table T2")
}

func TestAdmitUnknownReferences(t *testing.T) {
	svc, store := newAdmission()
	ctx := context.Background()

	req := staffReq()
	req.CustomerID = 99
	ve := requireValidation(t, mustFail(svc.Admit(ctx, req, ChannelStaff, 0)))
	assert.True(t, ve.Has(KindNotFound))
	assert.Contains(t, ve.Error(), "customer not found")

	req = staffReq()
	req.TableID = 99
	ve = requireValidation(t, mustFail(svc.Admit(ctx, req, ChannelStaff, 0)))
	assert.Contains(t, ve.Error(), "selected table is not available")

	store.tables[1].IsActive = false
	ve = requireValidation(t, mustFail(svc.Admit(ctx, staffReq(), ChannelStaff, 0)))
	assert.Contains(t, ve.Error(), "selected table is not available")
}

func TestAdmitFieldAccumulation(t *testing.T) {
	svc, store := newAdmission()

	req := Request{
		CustomerID: 1,
		Date:       "not-a-date",
		Start:      "25:00",
		PartySize:  4,
		Duration:   1.25,
	}
	ve := requireValidation(t, mustFail(svc.Admit(context.Background(), req, ChannelStaff, 0)))
	// One response carries every stage-one failure.
	require.Len(t, ve.Failures, 4)
	assert.Contains(t, ve.Error(), "table is required")
	assert.Contains(t, ve.Error(), "invalid date format")
	assert.Contains(t, ve.Error(), "HH:MM")
	assert.Contains(t, ve.Error(), "half-hour steps")
	// A failed admission writes nothing.
	assert.Empty(t, store.reservations)
}

func TestAdmitNoTableAvailable(t *testing.T) {
	svc, store := newAdmission()
	ctx := context.Background()

	for id := uint64(1); id <= 4; id++ {
		store.seed(model.Reservation{
			TableID: id, CustomerID: 2, Date: "2025-06-02",
			Start: "13:00", DurationHours: 2, Status: model.StatusConfirmed,
		})
	}
	req := staffReq()
	req.TableID = 0
	ve := requireValidation(t, mustFail(svc.Admit(ctx, req, ChannelCustomer, 0)))
	assert.True(t, ve.Has(KindNoTable))
}

func TestAdmitUpdate(t *testing.T) {
	svc, _ := newAdmission()
	ctx := context.Background()

	created, err := svc.Admit(ctx, staffReq(), ChannelStaff, 0)
	require.NoError(t, err)

	// Shifting within the booking's own window is not a self-conflict.
	req := staffReq()
	req.Start = "14:00"
	updated, err := svc.Admit(ctx, req, ChannelStaff, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "14:00", updated.Start)
	assert.Equal(t, created.Code, updated.Code)

	// Unknown id.
	_, err = svc.Admit(ctx, req, ChannelStaff, 999)
	ve := requireValidation(t, err)
	assert.True(t, ve.Has(KindNotFound))
}

func TestAdmitUpdateStatus(t *testing.T) {
	svc, _ := newAdmission()
	ctx := context.Background()

	created, err := svc.Admit(ctx, staffReq(), ChannelStaff, 0)
	require.NoError(t, err)

	req := staffReq()
	req.Status = model.StatusCancelled
	updated, err := svc.Admit(ctx, req, ChannelStaff, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, updated.Status)

	// Cancelled is terminal.
	req.Status = model.StatusConfirmed
	ve := requireValidation(t, mustFail(svc.Admit(ctx, req, ChannelStaff, created.ID)))
	assert.Contains(t, ve.Error(), "cannot change status from Cancelled")
}

func TestAdmitUpdatePastStartAllowed(t *testing.T) {
	store := newMemStore()
	seeded := store.seed(model.Reservation{
		CustomerID: 1, TableID: 2, Date: "2025-06-02",
		Start: "13:00", PartySize: 4, DurationHours: 2,
		Status: model.StatusConfirmed,
	})
	clock := FixedClock{T: time.Date(2025, 6, 2, 13, 30, 0, 0, time.UTC)}
	svc := NewAdmissionService(store, clock)

	// The original start has passed; editing the notes must still work.
	req := staffReq()
	req.Notes = "window seat"
	updated, err := svc.Admit(context.Background(), req, ChannelStaff, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "window seat", updated.Notes)
}

func TestAdmitCodeRetry(t *testing.T) {
	svc, store := newAdmission()
	store.createErrs = []error{ErrCodeExists}

	r, err := svc.Admit(context.Background(), staffReq(), ChannelStaff, 0)
	require.NoError(t, err)
	assert.Len(t, r.Code, CodeLength)
	require.Len(t, store.reservations, 1)
}

func TestEndTime(t *testing.T) {
	assert.Equal(t, "15:00", EndTime("13:00", 2))
	assert.Equal(t, "13:30", EndTime("13:00", 0.5))
	assert.Equal(t, "", EndTime("bogus", 1))
}

// mustFail drops the reservation half of an Admit result so the error
// can feed straight into requireValidation.
func mustFail(_ *model.Reservation, err error) error { return err }
