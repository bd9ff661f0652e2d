package repository

import (
	"context"
	"database/sql"

	"github.com/Camilo-marin10/restaurante/internal/model"
)

// HoursRepo manages the seven weekly business-hours rows. Weekday 0 is
// Sunday. Open and close times are stored as nullable TIME columns;
// both are null when the day is marked inactive.
type HoursRepo struct{ DB *sql.DB }

func NewHoursRepo(db *sql.DB) *HoursRepo { return &HoursRepo{DB: db} }

// EnsureDefaults seeds one row per weekday if none exists yet. The
// defaults open Monday through Saturday 10:00 to 22:00 and keep Sunday
// closed. INSERT IGNORE makes the call safe to repeat on every boot.
func (r *HoursRepo) EnsureDefaults(ctx context.Context) error {
	const q = `INSERT IGNORE INTO business_hours (weekday, is_active, open_time, close_time) VALUES (?,?,?,?)`
	for wd := 0; wd <= 6; wd++ {
		var err error
		if wd == 0 {
			_, err = r.DB.ExecContext(ctx, q, wd, false, nil, nil)
		} else {
			_, err = r.DB.ExecContext(ctx, q, wd, true, "10:00:00", "22:00:00")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// List returns the seven rows ordered by weekday.
func (r *HoursRepo) List(ctx context.Context) ([]model.BusinessHours, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,weekday,is_active,open_time,close_time,created_at,updated_at FROM business_hours ORDER BY weekday ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.BusinessHours, 0, 7)
	for rows.Next() {
		h, err := scanHours(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// GetByWeekday returns ErrNotFound when the weekday has no row.
func (r *HoursRepo) GetByWeekday(ctx context.Context, weekday int) (model.BusinessHours, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT id,weekday,is_active,open_time,close_time,created_at,updated_at FROM business_hours WHERE weekday=? LIMIT 1",
		weekday)
	h, err := scanHours(row)
	if err == sql.ErrNoRows {
		return h, ErrNotFound
	}
	return h, err
}

// UpdateDay sets one weekday's window. Inactive days have their bounds
// nulled regardless of what the caller passes, so an inactive row can
// never look half-configured.
func (r *HoursRepo) UpdateDay(ctx context.Context, weekday int, isActive bool, open, close *string) error {
	if !isActive {
		open, close = nil, nil
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE business_hours SET is_active=?, open_time=?, close_time=? WHERE weekday=?",
		isActive, open, close, weekday)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	// RowsAffected is zero both for a missing weekday and for a no-op
	// update, so confirm the row exists before reporting not found.
	if n == 0 {
		var id uint64
		err := r.DB.QueryRowContext(ctx, "SELECT id FROM business_hours WHERE weekday=? LIMIT 1", weekday).Scan(&id)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	return nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanHours(row rowScanner) (model.BusinessHours, error) {
	var h model.BusinessHours
	var open, close sql.NullString
	err := row.Scan(&h.ID, &h.Weekday, &h.IsActive, &open, &close, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return h, err
	}
	if open.Valid {
		v := trimClock(open.String)
		h.OpenTime = &v
	}
	if close.Valid {
		v := trimClock(close.String)
		h.CloseTime = &v
	}
	return h, nil
}

// trimClock narrows a TIME column value ("10:00:00") to "HH:MM".
func trimClock(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
