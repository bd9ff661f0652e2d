package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Camilo-marin10/restaurante/internal/booking"
	"github.com/Camilo-marin10/restaurante/internal/model"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx,
// letting the same query code run inside and outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLStore is the MySQL implementation of booking.Store. The zero
// value is not usable; construct with NewSQLStore.
type SQLStore struct {
	db *sql.DB
	q  querier
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db, q: db} }

var _ booking.Store = (*SQLStore)(nil)

// Transact runs fn against a store bound to one serializable
// transaction. Serializable isolation is what makes the admission
// pipeline's check-then-insert safe: two concurrent bookings for the
// same table window cannot both commit. Calling Transact on an
// already transactional store just runs fn in the open transaction.
func (s *SQLStore) Transact(ctx context.Context, fn func(booking.Store) error) error {
	if _, ok := s.q.(*sql.Tx); ok {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	if err := fn(&SQLStore{db: s.db, q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *SQLStore) CustomerExists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := s.q.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE id=? AND role=? AND is_active=1 LIMIT 1",
		id, model.RoleCustomer).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLStore) TableByID(ctx context.Context, id uint64) (*model.Table, error) {
	var t model.Table
	err := s.q.QueryRowContext(ctx,
		"SELECT "+tableCols+" FROM restaurant_tables WHERE id=? LIMIT 1",
		id).Scan(&t.ID, &t.Name, &t.Capacity, &t.Zone, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *SQLStore) ActiveTablesByCapacity(ctx context.Context, minSeats int) ([]model.Table, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT "+tableCols+" FROM restaurant_tables WHERE is_active=1 AND capacity>=? ORDER BY capacity ASC, id ASC",
		minSeats)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Table, 0)
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.ID, &t.Name, &t.Capacity, &t.Zone, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLStore) HoursForWeekday(ctx context.Context, weekday int) (*model.BusinessHours, error) {
	row := s.q.QueryRowContext(ctx,
		"SELECT id,weekday,is_active,open_time,close_time,created_at,updated_at FROM business_hours WHERE weekday=? LIMIT 1",
		weekday)
	h, err := scanHours(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

const reservationCols = "id,code,reserved_on,start_time,party_size,duration_hours,status,customer_id,table_id,notes,created_at,updated_at"

func (s *SQLStore) ActiveReservations(ctx context.Context, tableID uint64, date string) ([]model.Reservation, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE table_id=? AND reserved_on=? AND status IN (?,?,?) ORDER BY start_time ASC",
		tableID, date, model.StatusPending, model.StatusConfirmed, model.StatusInProgress)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (s *SQLStore) HasDuplicate(ctx context.Context, customerID uint64, date, start string, excludeID uint64) (bool, error) {
	var one int
	err := s.q.QueryRowContext(ctx,
		"SELECT 1 FROM reservations WHERE customer_id=? AND reserved_on=? AND start_time=? AND status IN (?,?,?) AND id<>? LIMIT 1",
		customerID, date, start+":00", model.StatusPending, model.StatusConfirmed, model.StatusInProgress, excludeID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLStore) ReservationsOnDate(ctx context.Context, date string, states ...string) ([]model.Reservation, error) {
	q := "SELECT " + reservationCols + " FROM reservations WHERE reserved_on=?"
	args := []any{date}
	if len(states) > 0 {
		q += " AND status IN (?" + strings.Repeat(",?", len(states)-1) + ")"
		for _, st := range states {
			args = append(args, st)
		}
	}
	q += " ORDER BY start_time ASC, id ASC"
	rows, err := s.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (s *SQLStore) ReservationByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	row := s.q.QueryRowContext(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE id=? LIMIT 1", id)
	r, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *SQLStore) CreateReservation(ctx context.Context, r *model.Reservation) error {
	res, err := s.q.ExecContext(ctx,
		"INSERT INTO reservations (code, reserved_on, start_time, party_size, duration_hours, status, customer_id, table_id, notes) VALUES (?,?,?,?,?,?,?,?,?)",
		r.Code, r.Date, r.Start+":00", r.PartySize, r.DurationHours, r.Status, r.CustomerID, r.TableID, nullableString(r.Notes))
	if err != nil {
		// 1062 can only come from the unique code index here.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return booking.ErrCodeExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	r.ID = uint64(id)
	return s.q.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM reservations WHERE id=?", r.ID).
		Scan(&r.CreatedAt, &r.UpdatedAt)
}

func (s *SQLStore) UpdateReservation(ctx context.Context, r *model.Reservation) error {
	_, err := s.q.ExecContext(ctx,
		"UPDATE reservations SET reserved_on=?, start_time=?, party_size=?, duration_hours=?, status=?, customer_id=?, table_id=?, notes=? WHERE id=?",
		r.Date, r.Start+":00", r.PartySize, r.DurationHours, r.Status, r.CustomerID, r.TableID, nullableString(r.Notes), r.ID)
	return err
}

func (s *SQLStore) UpdateReservationStatus(ctx context.Context, id uint64, status string) error {
	_, err := s.q.ExecContext(ctx, "UPDATE reservations SET status=? WHERE id=?", status, id)
	return err
}

func collectReservations(rows *sql.Rows) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0)
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanReservation(row rowScanner) (model.Reservation, error) {
	var r model.Reservation
	var reservedOn time.Time
	var start string
	var notes sql.NullString
	err := row.Scan(&r.ID, &r.Code, &reservedOn, &start, &r.PartySize, &r.DurationHours,
		&r.Status, &r.CustomerID, &r.TableID, &notes, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return r, err
	}
	r.Date = reservedOn.Format("2006-01-02")
	r.Start = trimClock(start)
	if notes.Valid {
		r.Notes = notes.String
	}
	return r, nil
}

func nullableString(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
