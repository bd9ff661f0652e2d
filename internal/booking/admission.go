package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Camilo-marin10/restaurante/internal/model"
)

// Channel identifies who is booking. It controls only the initial
// lifecycle state: staff-entered reservations start Confirmed,
// customer self-service requests start Pending until staff confirm.
type Channel string

const (
	ChannelStaff    Channel = "staff"
	ChannelCustomer Channel = "customer"
)

// Request is one admission attempt, either a new reservation or an
// edit of an existing one. TableID zero means auto-assign. Status is
// only honoured on staff edits.
type Request struct {
	CustomerID uint64  `validate:"required"`
	TableID    uint64  // optional; zero requests auto-assignment
	Date       string  `validate:"required"`
	Start      string  `validate:"required"`
	PartySize  int     `validate:"required,gte=1"`
	Duration   float64 `validate:"required,gte=0.5"`
	Notes      string
	Status     string // staff edits only; empty keeps/derives the state
}

// AdmissionService runs the full validation pipeline and commits the
// reservation. The pipeline short-circuits at the first failing stage
// but accumulates every failure within a stage, so a request with a
// bad date and a bad party size reports both at once. A successful
// admission performs exactly one write; a failed one performs none.
type AdmissionService struct {
	store    Store
	clock    Clock
	validate *validator.Validate
}

func NewAdmissionService(store Store, clock Clock) *AdmissionService {
	return &AdmissionService{
		store:    store,
		clock:    clock,
		validate: validator.New(),
	}
}

// Admit validates req and, on success, persists the reservation. For
// updates existingID names the reservation under edit; its own window
// is excluded from overlap and duplicate checks. The conflict check
// and the write run inside a single serializable transaction so two
// concurrent requests can never both take the same table slot.
func (s *AdmissionService) Admit(ctx context.Context, req Request, ch Channel, existingID uint64) (*model.Reservation, error) {
	var out *model.Reservation
	err := s.store.Transact(ctx, func(tx Store) error {
		r, err := s.admit(ctx, tx, req, ch, existingID)
		if err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AdmissionService) admit(ctx context.Context, store Store, req Request, ch Channel, existingID uint64) (*model.Reservation, error) {
	isUpdate := existingID != 0

	var existing *model.Reservation
	if isUpdate {
		var err error
		existing, err = store.ReservationByID(ctx, existingID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, &ValidationError{Failures: []Failure{
				{Message: "reservation not found", Kind: KindNotFound},
			}}
		}
	}

	// Stage 1: field validation. Every broken field is reported.
	date, start, fails := s.validateFields(req, ch)
	if len(fails) > 0 {
		return nil, &ValidationError{Failures: fails}
	}
	iv := NewInterval(start, req.Duration)

	// Stage 2: the whole window must fit inside business hours.
	resolver := NewHoursResolver(store)
	window, err := resolver.WindowFor(ctx, date)
	if err != nil {
		if errors.Is(err, ErrClosed) {
			wd, _ := Weekday(date)
			return nil, &ValidationError{Failures: []Failure{{
				Field:   "date",
				Message: fmt.Sprintf("the restaurant is closed on %s", model.WeekdayNames[wd]),
				Kind:    KindOutsideHours,
			}}}
		}
		return nil, err
	}
	if fails := checkWindow(window, iv); len(fails) > 0 {
		return nil, &ValidationError{Failures: fails}
	}

	// Stage 3: no booking in the past. Edits keep their original start
	// time even when it has since passed, so only the date is checked.
	now := s.clock.Now()
	today := now.Format("2006-01-02")
	var pastFails []Failure
	if date < today {
		pastFails = append(pastFails, Failure{
			Field:   "date",
			Message: "reservation date cannot be in the past",
			Kind:    KindPastDateTime,
		})
	} else if !isUpdate && date == today && start < ClockOf(now) {
		pastFails = append(pastFails, Failure{
			Field:   "start",
			Message: "reservation start time cannot be in the past",
			Kind:    KindPastDateTime,
		})
	}
	if len(pastFails) > 0 {
		return nil, &ValidationError{Failures: pastFails}
	}

	// Stage 4: references and capacity.
	ok, err := store.CustomerExists(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ValidationError{Failures: []Failure{
			{Field: "customer_id", Message: "customer not found", Kind: KindNotFound},
		}}
	}
	var table *model.Table
	if req.TableID != 0 {
		table, err = store.TableByID(ctx, req.TableID)
		if err != nil {
			return nil, err
		}
		if table == nil || !table.IsActive {
			return nil, &ValidationError{Failures: []Failure{
				{Field: "table_id", Message: "the selected table is not available", Kind: KindNotFound},
			}}
		}
		if req.PartySize > table.Capacity {
			return nil, &ValidationError{Failures: []Failure{{
				Field: "party_size",
				Message: fmt.Sprintf("party size (%d) exceeds the capacity of table %s (%d)",
					req.PartySize, table.Name, table.Capacity),
				Kind: KindCapacity,
			}}}
		}
	}

	// Stage 5: overlap on the chosen table. The first conflict in
	// start order names the occupied window.
	if table != nil {
		active, err := store.ActiveReservations(ctx, table.ID, date)
		if err != nil {
			return nil, err
		}
		if conflicts := FindConflicts(active, iv, existingID); len(conflicts) > 0 {
			w := reservationInterval(conflicts[0])
			return nil, &ValidationError{Failures: []Failure{{
				Message: fmt.Sprintf("table %s is already booked from %s to %s",
					table.Name, w.Start, w.End),
				Kind: KindOverlap,
			}}}
		}
	}

	// Stage 6: one reservation per customer per exact (date, start).
	dup, err := store.HasDuplicate(ctx, req.CustomerID, date, start.String(), existingID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, &ValidationError{Failures: []Failure{{
			Message: "this customer already has a reservation for the same date and time",
			Kind:    KindDuplicate,
		}}}
	}

	// Stage 7: auto-assignment when no table was chosen.
	if table == nil {
		assigner := NewAssigner(store)
		table, err = assigner.FindTable(ctx, date, iv, req.PartySize, 0, existingID)
		if err != nil {
			if errors.Is(err, ErrNoTable) {
				return nil, &ValidationError{Failures: []Failure{{
					Message: "no tables are available for the requested time and party size",
					Kind:    KindNoTable,
				}}}
			}
			return nil, err
		}
	}

	// Stage 8: commit.
	if isUpdate {
		return s.commitUpdate(ctx, store, existing, req, date, start, table)
	}
	return s.commitCreate(ctx, store, req, ch, date, start, table)
}

func (s *AdmissionService) commitCreate(ctx context.Context, store Store, req Request, ch Channel, date string, start ClockTime, table *model.Table) (*model.Reservation, error) {
	status := model.StatusConfirmed
	if ch == ChannelCustomer {
		status = model.StatusPending
	}
	r := &model.Reservation{
		Date:          date,
		Start:         start.String(),
		PartySize:     req.PartySize,
		DurationHours: req.Duration,
		Status:        status,
		CustomerID:    req.CustomerID,
		TableID:       table.ID,
		Notes:         req.Notes,
	}
	// The code column is unique; on the unlikely collision a second
	// code is generated before the error surfaces.
	for attempt := 0; attempt < 2; attempt++ {
		code, err := NewCode()
		if err != nil {
			return nil, err
		}
		r.Code = code
		err = store.CreateReservation(ctx, r)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, ErrCodeExists) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("reservation code collision persisted after retry")
}

func (s *AdmissionService) commitUpdate(ctx context.Context, store Store, existing *model.Reservation, req Request, date string, start ClockTime, table *model.Table) (*model.Reservation, error) {
	status := existing.Status
	if req.Status != "" && req.Status != existing.Status {
		if !model.ValidStatus(req.Status) || !model.CanTransition(existing.Status, req.Status) {
			return nil, &ValidationError{Failures: []Failure{{
				Field:   "status",
				Message: fmt.Sprintf("cannot change status from %s to %s", existing.Status, req.Status),
				Kind:    KindField,
			}}}
		}
		status = req.Status
	}
	r := *existing
	r.Date = date
	r.Start = start.String()
	r.PartySize = req.PartySize
	r.DurationHours = req.Duration
	r.Status = status
	r.CustomerID = req.CustomerID
	r.TableID = table.ID
	r.Notes = req.Notes
	if err := store.UpdateReservation(ctx, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// validateFields runs stage 1 and returns the normalized date and
// parsed start time alongside any accumulated failures.
func (s *AdmissionService) validateFields(req Request, ch Channel) (string, ClockTime, []Failure) {
	var fails []Failure

	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fails = append(fails, fieldFailure(fe))
			}
		} else {
			fails = append(fails, Failure{Message: "invalid request", Kind: KindField})
		}
	}
	// Staff enter reservations against a concrete table; only the
	// customer flow may leave the choice to auto-assignment.
	if ch == ChannelStaff && req.TableID == 0 {
		fails = append(fails, Failure{Field: "table_id", Message: "table is required", Kind: KindField})
	}

	var date string
	if req.Date != "" {
		var err error
		date, err = ParseDate(req.Date)
		if err != nil {
			fails = append(fails, Failure{Field: "date", Message: "invalid date format", Kind: KindField})
		}
	}
	var start ClockTime
	if req.Start != "" {
		var err error
		start, err = ParseClock(req.Start)
		if err != nil {
			fails = append(fails, Failure{Field: "start", Message: "start time must be HH:MM in 24-hour format", Kind: KindField})
		}
	}
	if req.Duration >= 0.5 && !halfHourStep(req.Duration) {
		fails = append(fails, Failure{Field: "duration", Message: "duration must be in half-hour steps", Kind: KindField})
	}
	return date, start, fails
}

func fieldFailure(fe validator.FieldError) Failure {
	switch fe.Field() {
	case "CustomerID":
		return Failure{Field: "customer_id", Message: "customer is required", Kind: KindField}
	case "Date":
		return Failure{Field: "date", Message: "date is required", Kind: KindField}
	case "Start":
		return Failure{Field: "start", Message: "start time is required", Kind: KindField}
	case "PartySize":
		return Failure{Field: "party_size", Message: "party size must be at least 1", Kind: KindField}
	case "Duration":
		return Failure{Field: "duration", Message: "duration must be at least 0.5 hours", Kind: KindField}
	}
	return Failure{Field: fe.Field(), Message: "invalid value", Kind: KindField}
}

func halfHourStep(hours float64) bool {
	doubled := hours * 2
	return doubled == float64(int(doubled))
}

func checkWindow(w Window, iv Interval) []Failure {
	var fails []Failure
	if iv.Start < w.Open {
		fails = append(fails, Failure{
			Field:   "start",
			Message: fmt.Sprintf("reservations start at opening time (%s)", w.Open),
			Kind:    KindOutsideHours,
		})
	}
	if iv.End > w.Close {
		fails = append(fails, Failure{
			Message: fmt.Sprintf("the reservation would end at %s; the restaurant closes at %s", iv.End, w.Close),
			Kind:    KindOutsideHours,
		})
	}
	return fails
}

// DurationOptions are the stay lengths offered in booking forms.
// Admission itself accepts any half-hour multiple of at least 0.5.
var DurationOptions = []float64{1, 1.5, 2, 2.5, 3}

// EndTime derives the "HH:MM" end of a booking from its start and
// duration. Used when rendering reservations; the value is never
// stored.
func EndTime(start string, durationHours float64) string {
	t, err := ParseClock(start)
	if err != nil {
		return ""
	}
	return NewInterval(t, durationHours).End.String()
}
