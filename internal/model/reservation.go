package model

import "time"

// Reservation is the central booking record. A reservation occupies
// one table for a half-open time window [Start, Start+Duration) on a
// single calendar date. The end time is always derived, never stored.
//
// Fields:
//  ID            - primary key identifier.
//  Code          - 8-char uppercase alphanumeric code, unique, shown to guests.
//  Date          - calendar date "2006-01-02" (no time component).
//  Start         - start time of day "HH:MM", minute precision.
//  PartySize     - number of guests, >= 1.
//  DurationHours - estimated duration in hours, 0.5 steps, >= 0.5.
//  Status        - lifecycle state, see constants below.
//  CustomerID    - owning user (role CUSTOMER or STAFF-entered on behalf).
//  TableID       - assigned table; set at creation, required from then on.
//  Notes         - optional free text.
type Reservation struct {
	ID            uint64    // reservations.id
	Code          string    // reservations.code
	Date          string    // reservations.reserved_on
	Start         string    // reservations.start_time
	PartySize     int       // reservations.party_size
	DurationHours float64   // reservations.duration_hours
	Status        string    // reservations.status
	CustomerID    uint64    // reservations.customer_id
	TableID       uint64    // reservations.table_id
	Notes         string    // reservations.notes
	CreatedAt     time.Time // reservations.created_at
	UpdatedAt     time.Time // reservations.updated_at
}

// Lifecycle states. Completed, Cancelled and NoShow are terminal.
const (
	StatusPending    = "Pending"
	StatusConfirmed  = "Confirmed"
	StatusInProgress = "InProgress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
	StatusNoShow     = "NoShow"
)

// ActiveStatuses are the states that occupy a table slot. Reservations
// in any other state never count toward overlap conflicts.
var ActiveStatuses = []string{StatusPending, StatusConfirmed, StatusInProgress}

// transitions lists the allowed forward moves; there are no
// back-transitions out of any state.
var transitions = map[string][]string{
	StatusPending:    {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted},
}

// CanTransition reports whether a reservation may move from one
// lifecycle state to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the state admits no further transitions.
func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusCancelled || status == StatusNoShow
}

// IsActive reports whether the state occupies a table slot.
func IsActive(status string) bool {
	for _, s := range ActiveStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}
