package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Camilo-marin10/restaurante/internal/booking"
	"github.com/Camilo-marin10/restaurante/internal/model"
)

// ReservationRepo reads reservations joined with their customer and
// table for display. Writes go through the transactional store; this
// repo only covers queries that sit outside the admission pipeline.
type ReservationRepo struct{ DB *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

// ReservationDetail is a reservation row flattened with the customer
// and table it references, as returned to both staff and customers.
// End is derived from start plus duration; it is not a column.
type ReservationDetail struct {
	ID            uint64    `json:"id"`
	Code          string    `json:"code"`
	Date          string    `json:"date"`
	Start         string    `json:"start"`
	End           string    `json:"end"`
	PartySize     int       `json:"party_size"`
	DurationHours float64   `json:"duration_hours"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	CustomerID    uint64    `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	TableID       uint64    `json:"table_id"`
	TableName     string    `json:"table_name"`
	TableZone     string    `json:"table_zone"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListFilter narrows List. Zero values mean "no filter". Dates are ISO
// (YYYY-MM-DD); FromDate/ToDate are inclusive.
type ListFilter struct {
	Date       string
	FromDate   string
	ToDate     string
	Status     string
	CustomerID uint64
}

const detailQuery = `SELECT r.id, r.code, r.reserved_on, r.start_time, r.party_size, r.duration_hours,
       r.status, r.notes, r.created_at,
       u.id, u.name, u.email,
       t.id, t.name, t.zone
FROM reservations r
JOIN users u ON u.id = r.customer_id
JOIN restaurant_tables t ON t.id = r.table_id`

// List returns reservations matching the filter ordered by date then
// start time ascending, so the earliest booking comes first.
func (r *ReservationRepo) List(ctx context.Context, f ListFilter) ([]ReservationDetail, error) {
	var conds []string
	var args []any
	if f.Date != "" {
		conds = append(conds, "r.reserved_on = ?")
		args = append(args, f.Date)
	}
	if f.FromDate != "" {
		conds = append(conds, "r.reserved_on >= ?")
		args = append(args, f.FromDate)
	}
	if f.ToDate != "" {
		conds = append(conds, "r.reserved_on <= ?")
		args = append(args, f.ToDate)
	}
	if f.Status != "" {
		conds = append(conds, "r.status = ?")
		args = append(args, f.Status)
	}
	if f.CustomerID != 0 {
		conds = append(conds, "r.customer_id = ?")
		args = append(args, f.CustomerID)
	}
	q := detailQuery
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY r.reserved_on ASC, r.start_time ASC"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ReservationDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetDetail returns one reservation or ErrNotFound.
func (r *ReservationRepo) GetDetail(ctx context.Context, id uint64) (ReservationDetail, error) {
	row := r.DB.QueryRowContext(ctx, detailQuery+" WHERE r.id = ?", id)
	d, err := scanDetail(row)
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

// GetDetailForCustomer enforces ownership: ErrNotFound when the row
// does not exist, ErrForbidden when it belongs to another customer.
func (r *ReservationRepo) GetDetailForCustomer(ctx context.Context, id, customerID uint64) (ReservationDetail, error) {
	d, err := r.GetDetail(ctx, id)
	if err != nil {
		return d, err
	}
	if d.CustomerID != customerID {
		return ReservationDetail{}, ErrForbidden
	}
	return d, nil
}

// GetByCode looks a reservation up by its public code, for front-desk
// check-in. Codes are stored uppercase.
func (r *ReservationRepo) GetByCode(ctx context.Context, code string) (ReservationDetail, error) {
	row := r.DB.QueryRowContext(ctx, detailQuery+" WHERE r.code = ?", strings.ToUpper(strings.TrimSpace(code)))
	d, err := scanDetail(row)
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

// Delete removes a reservation row outright. Staff only; customers
// cancel through the status transition instead.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM reservations WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus changes just the lifecycle state after the transition
// has been validated with model.CanTransition.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE reservations SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish a missing row from an update to the same value.
		var cur string
		err := r.DB.QueryRowContext(ctx, "SELECT status FROM reservations WHERE id=? LIMIT 1", id).Scan(&cur)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func scanDetail(row rowScanner) (ReservationDetail, error) {
	var d ReservationDetail
	var reservedOn time.Time
	var start string
	var notes sql.NullString
	err := row.Scan(
		&d.ID, &d.Code, &reservedOn, &start, &d.PartySize, &d.DurationHours,
		&d.Status, &notes, &d.CreatedAt,
		&d.CustomerID, &d.CustomerName, &d.CustomerEmail,
		&d.TableID, &d.TableName, &d.TableZone,
	)
	if err != nil {
		return d, err
	}
	d.Date = reservedOn.Format("2006-01-02")
	d.Start = trimClock(start)
	d.End = booking.EndTime(d.Start, d.DurationHours)
	if notes.Valid {
		d.Notes = notes.String
	}
	return d, nil
}

// StatusCounts aggregates today's bookings for the staff dashboard.
type StatusCounts struct {
	Total   int            `json:"total"`
	Covers  int            `json:"covers"`
	ByState map[string]int `json:"by_status"`
}

// CountOnDate tallies reservations and covers (summed party sizes) for
// one date, broken down by status.
func (r *ReservationRepo) CountOnDate(ctx context.Context, date string) (StatusCounts, error) {
	counts := StatusCounts{ByState: map[string]int{}}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT status, COUNT(*), COALESCE(SUM(party_size),0) FROM reservations WHERE reserved_on=? GROUP BY status",
		date)
	if err != nil {
		return counts, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n, covers int
		if err := rows.Scan(&status, &n, &covers); err != nil {
			return counts, err
		}
		counts.ByState[status] = n
		counts.Total += n
		if status != model.StatusCancelled && status != model.StatusNoShow {
			counts.Covers += covers
		}
	}
	return counts, rows.Err()
}
