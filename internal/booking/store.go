package booking

import (
	"context"
	"errors"

	"github.com/Camilo-marin10/restaurante/internal/model"
)

// ErrCodeExists is returned by Store.CreateReservation when the
// generated reservation code collides with an existing row. The
// admission service retries once with a fresh code before giving up.
var ErrCodeExists = errors.New("reservation code already exists")

// Store is the persistence surface the booking core needs. The SQL
// implementation lives in the repository package; tests use an
// in-memory fake.
type Store interface {
	// Transact runs fn against a store bound to a single serializable
	// transaction. The conflict check and the reservation write must
	// happen inside one Transact call so two concurrent admissions can
	// never both claim the same table window.
	Transact(ctx context.Context, fn func(Store) error) error

	CustomerExists(ctx context.Context, id uint64) (bool, error)

	// TableByID returns nil when no such table exists.
	TableByID(ctx context.Context, id uint64) (*model.Table, error)
	// ActiveTablesByCapacity lists active tables with capacity >=
	// minSeats, ordered by capacity ascending then id ascending.
	ActiveTablesByCapacity(ctx context.Context, minSeats int) ([]model.Table, error)

	// HoursForWeekday returns the configured row for a weekday, or nil
	// when none exists.
	HoursForWeekday(ctx context.Context, weekday int) (*model.BusinessHours, error)

	// ActiveReservations lists reservations occupying the table on the
	// given ISO date (states Pending, Confirmed, InProgress), ordered
	// by start time ascending.
	ActiveReservations(ctx context.Context, tableID uint64, date string) ([]model.Reservation, error)
	// HasDuplicate reports whether the customer already holds a
	// non-terminal reservation at exactly (date, start), excluding the
	// reservation under edit when excludeID is non-zero.
	HasDuplicate(ctx context.Context, customerID uint64, date, start string, excludeID uint64) (bool, error)
	// ReservationsOnDate lists reservations on the date whose status is
	// in states.
	ReservationsOnDate(ctx context.Context, date string, states ...string) ([]model.Reservation, error)

	ReservationByID(ctx context.Context, id uint64) (*model.Reservation, error)
	CreateReservation(ctx context.Context, r *model.Reservation) error
	UpdateReservation(ctx context.Context, r *model.Reservation) error
	UpdateReservationStatus(ctx context.Context, id uint64, status string) error
}
