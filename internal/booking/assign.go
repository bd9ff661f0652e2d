package booking

import (
	"context"

	"github.com/Camilo-marin10/restaurante/internal/model"
)

// Assigner selects a table for a booking. The policy is
// smallest-fits-first: among active tables with enough seats, prefer
// the lowest capacity, breaking ties by id. A small party therefore
// never takes a six-top while a deuce is free. The policy is greedy
// and ignores future demand, which keeps it O(tables) per request.
type Assigner struct {
	store Store
}

func NewAssigner(store Store) *Assigner {
	return &Assigner{store: store}
}

// FindTable picks a table for the window. When preferredID is non-zero
// the caller chose a specific table: it must be active, seat the party
// and be conflict-free, otherwise ErrNoTable. With no preference the
// first conflict-free candidate in smallest-fits-first order wins.
func (a *Assigner) FindTable(ctx context.Context, date string, iv Interval, partySize int, preferredID, excludeResID uint64) (*model.Table, error) {
	if preferredID != 0 {
		t, err := a.store.TableByID(ctx, preferredID)
		if err != nil {
			return nil, err
		}
		if t == nil || !t.IsActive || t.Capacity < partySize {
			return nil, ErrNoTable
		}
		free, err := a.tableFree(ctx, t.ID, date, iv, excludeResID)
		if err != nil {
			return nil, err
		}
		if !free {
			return nil, ErrNoTable
		}
		return t, nil
	}

	candidates, err := a.store.ActiveTablesByCapacity(ctx, partySize)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		free, err := a.tableFree(ctx, candidates[i].ID, date, iv, excludeResID)
		if err != nil {
			return nil, err
		}
		if free {
			return &candidates[i], nil
		}
	}
	return nil, ErrNoTable
}

// ListAvailable returns every active, large-enough, conflict-free
// table for the window, in smallest-fits-first order. Used to populate
// table pickers.
func (a *Assigner) ListAvailable(ctx context.Context, date string, iv Interval, partySize int) ([]model.Table, error) {
	candidates, err := a.store.ActiveTablesByCapacity(ctx, partySize)
	if err != nil {
		return nil, err
	}
	available := make([]model.Table, 0, len(candidates))
	for _, t := range candidates {
		free, err := a.tableFree(ctx, t.ID, date, iv, 0)
		if err != nil {
			return nil, err
		}
		if free {
			available = append(available, t)
		}
	}
	return available, nil
}

func (a *Assigner) tableFree(ctx context.Context, tableID uint64, date string, iv Interval, excludeResID uint64) (bool, error) {
	existing, err := a.store.ActiveReservations(ctx, tableID, date)
	if err != nil {
		return false, err
	}
	return len(FindConflicts(existing, iv, excludeResID)) == 0, nil
}
