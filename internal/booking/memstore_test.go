package booking

import (
	"context"
	"sort"

	"github.com/Camilo-marin10/restaurante/internal/model"
)

// memStore is an in-memory Store used by the booking tests. Transact
// runs the function directly; isolation is the SQL implementation's
// concern.
type memStore struct {
	customers    map[uint64]bool
	tables       []model.Table
	hours        map[int]*model.BusinessHours
	reservations []model.Reservation
	nextID       uint64
	createErrs   []error // popped on each CreateReservation call
}

func hhmm(s string) *string { return &s }

// newMemStore builds the standard fixture: two customers, four active
// tables with capacities 2, 4, 4 and 6, and a week that opens 10:00 to
// 22:00 except Sunday.
func newMemStore() *memStore {
	s := &memStore{
		customers: map[uint64]bool{1: true, 2: true},
		tables: []model.Table{
			{ID: 1, Name: "T1", Capacity: 2, Zone: "Interior", IsActive: true},
			{ID: 2, Name: "T2", Capacity: 4, Zone: "Interior", IsActive: true},
			{ID: 3, Name: "T3", Capacity: 4, Zone: "Terraza", IsActive: true},
			{ID: 4, Name: "T4", Capacity: 6, Zone: "VIP", IsActive: true},
		},
		hours:  map[int]*model.BusinessHours{},
		nextID: 1,
	}
	for wd := 0; wd <= 6; wd++ {
		if wd == 0 {
			s.hours[wd] = &model.BusinessHours{Weekday: wd, IsActive: false}
			continue
		}
		s.hours[wd] = &model.BusinessHours{
			Weekday: wd, IsActive: true,
			OpenTime: hhmm("10:00"), CloseTime: hhmm("22:00"),
		}
	}
	return s
}

func (s *memStore) Transact(ctx context.Context, fn func(Store) error) error {
	return fn(s)
}

func (s *memStore) CustomerExists(ctx context.Context, id uint64) (bool, error) {
	return s.customers[id], nil
}

func (s *memStore) TableByID(ctx context.Context, id uint64) (*model.Table, error) {
	for i := range s.tables {
		if s.tables[i].ID == id {
			t := s.tables[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (s *memStore) ActiveTablesByCapacity(ctx context.Context, minSeats int) ([]model.Table, error) {
	var out []model.Table
	for _, t := range s.tables {
		if t.IsActive && t.Capacity >= minSeats {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Capacity != out[j].Capacity {
			return out[i].Capacity < out[j].Capacity
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memStore) HoursForWeekday(ctx context.Context, weekday int) (*model.BusinessHours, error) {
	return s.hours[weekday], nil
}

func (s *memStore) ActiveReservations(ctx context.Context, tableID uint64, date string) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range s.reservations {
		if r.TableID == tableID && r.Date == date && model.IsActive(r.Status) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

func (s *memStore) HasDuplicate(ctx context.Context, customerID uint64, date, start string, excludeID uint64) (bool, error) {
	for _, r := range s.reservations {
		if r.ID == excludeID {
			continue
		}
		if r.CustomerID == customerID && r.Date == date && r.Start == start && model.IsActive(r.Status) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) ReservationsOnDate(ctx context.Context, date string, states ...string) ([]model.Reservation, error) {
	match := func(status string) bool {
		if len(states) == 0 {
			return true
		}
		for _, st := range states {
			if st == status {
				return true
			}
		}
		return false
	}
	var out []model.Reservation
	for _, r := range s.reservations {
		if r.Date == date && match(r.Status) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memStore) ReservationByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	for i := range s.reservations {
		if s.reservations[i].ID == id {
			r := s.reservations[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (s *memStore) CreateReservation(ctx context.Context, r *model.Reservation) error {
	if len(s.createErrs) > 0 {
		err := s.createErrs[0]
		s.createErrs = s.createErrs[1:]
		if err != nil {
			return err
		}
	}
	r.ID = s.nextID
	s.nextID++
	s.reservations = append(s.reservations, *r)
	return nil
}

func (s *memStore) UpdateReservation(ctx context.Context, r *model.Reservation) error {
	for i := range s.reservations {
		if s.reservations[i].ID == r.ID {
			s.reservations[i] = *r
			return nil
		}
	}
	return nil
}

func (s *memStore) UpdateReservationStatus(ctx context.Context, id uint64, status string) error {
	for i := range s.reservations {
		if s.reservations[i].ID == id {
			s.reservations[i].Status = status
			return nil
		}
	}
	return nil
}

// seed inserts a reservation directly, bypassing admission.
func (s *memStore) seed(r model.Reservation) model.Reservation {
	if r.ID == 0 {
		r.ID = s.nextID
		s.nextID++
	} else if r.ID >= s.nextID {
		s.nextID = r.ID + 1
	}
	if r.Code == "" {
		r.Code = "SEEDCODE"
	}
	s.reservations = append(s.reservations, r)
	return r
}
