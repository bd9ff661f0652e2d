package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Camilo-marin10/restaurante/internal/model"
)

// TableRepo provides CRUD operations on the restaurant's physical
// tables. Zone values are validated at the handler layer against
// model.TableZones.
type TableRepo struct{ DB *sql.DB }

func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{DB: db} }

var ErrTableNameExists = errors.New("table name already exists")

const tableCols = "id,name,capacity,zone,is_active,created_at,updated_at"

// Create inserts a table and returns its ID.
func (r *TableRepo) Create(ctx context.Context, name string, capacity int, zone string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO restaurant_tables (name, capacity, zone) VALUES (?,?,?)",
		strings.TrimSpace(name), capacity, zone)
	if err != nil {
		if isDuplicateEntry(err) {
			return 0, ErrTableNameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID returns ErrNotFound when no such table exists.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (model.Table, error) {
	var t model.Table
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+tableCols+" FROM restaurant_tables WHERE id=? LIMIT 1",
		id).Scan(&t.ID, &t.Name, &t.Capacity, &t.Zone, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return t, ErrNotFound
	}
	return t, err
}

// List returns all tables ordered by zone then name. When activeOnly is
// set, inactive tables are skipped.
func (r *TableRepo) List(ctx context.Context, activeOnly bool) ([]model.Table, error) {
	q := "SELECT " + tableCols + " FROM restaurant_tables"
	if activeOnly {
		q += " WHERE is_active=1"
	}
	q += " ORDER BY zone ASC, name ASC"
	rows, err := r.DB.QueryContext(ctx, q)
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

// Update rewrites name, capacity, zone and active flag.
func (r *TableRepo) Update(ctx context.Context, id uint64, name string, capacity int, zone string, isActive bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE restaurant_tables SET name=?, capacity=?, zone=?, is_active=? WHERE id=?",
		strings.TrimSpace(name), capacity, zone, isActive, id)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrTableNameExists
		}
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

// Delete removes a table. MySQL error 1451 means reservations still
// reference the row; that surfaces as ErrConflict so callers can
// suggest deactivating instead.
func (r *TableRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM restaurant_tables WHERE id=?", id)
	if err != nil {
		if isFKRestricted(err) {
			return ErrConflict
		}
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
