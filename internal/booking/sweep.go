package booking

import (
	"context"

	"github.com/Camilo-marin10/restaurante/internal/model"
)

// Sweeper advances today's reservations through their lifecycle:
// Confirmed bookings whose start time has passed become InProgress,
// InProgress bookings whose end time has passed become Completed.
// Pending bookings are never touched; confirming them is a staff
// decision. The sweep only looks at the current date, so a run is
// always idempotent and cheap.
type Sweeper struct {
	store Store
	clock Clock
}

func NewSweeper(store Store, clock Clock) *Sweeper {
	return &Sweeper{store: store, clock: clock}
}

// Run performs one sweep and returns how many status changes it made.
func (s *Sweeper) Run(ctx context.Context) (int, error) {
	now := s.clock.Now()
	today := now.Format("2006-01-02")
	nowClock := ClockOf(now)

	rows, err := s.store.ReservationsOnDate(ctx, today, model.StatusConfirmed, model.StatusInProgress)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, r := range rows {
		iv := reservationInterval(r)
		switch r.Status {
		case model.StatusConfirmed:
			if iv.Start > nowClock {
				continue
			}
			if err := s.store.UpdateReservationStatus(ctx, r.ID, model.StatusInProgress); err != nil {
				return changed, err
			}
			changed++
			// A booking found long after its window closed moves all
			// the way through in a single run.
			if iv.End <= nowClock {
				if err := s.store.UpdateReservationStatus(ctx, r.ID, model.StatusCompleted); err != nil {
					return changed, err
				}
				changed++
			}
		case model.StatusInProgress:
			if iv.End > nowClock {
				continue
			}
			if err := s.store.UpdateReservationStatus(ctx, r.ID, model.StatusCompleted); err != nil {
				return changed, err
			}
			changed++
		}
	}
	return changed, nil
}
