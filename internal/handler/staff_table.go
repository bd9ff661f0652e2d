package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Camilo-marin10/restaurante/internal/model"
	"github.com/Camilo-marin10/restaurante/internal/repository"
)

type tableReq struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Zone     string `json:"zone"`
	IsActive *bool  `json:"is_active"` // nil keeps the current value on update
}

func (r *tableReq) normalize() (string, bool) {
	r.Name = strings.TrimSpace(r.Name)
	if r.Zone == "" {
		r.Zone = "Interior"
	}
	if r.Name == "" || r.Capacity < 1 || r.Capacity > 50 || !model.ValidZone(r.Zone) {
		return "", false
	}
	return r.Name, true
}

// ListTables returns every table; ?active=true narrows to active ones.
func (h *StaffHandler) ListTables(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	tables, err := h.Tables.List(ctx, c.QueryParam("active") == "true")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list tables failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"tables": tables})
}

// CreateTable adds a table to the floor plan.
func (h *StaffHandler) CreateTable(c echo.Context) error {
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name, ok := req.normalize()
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, capacity 1-50 and a valid zone are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	id, err := h.Tables.Create(ctx, name, req.Capacity, req.Zone)
	if err != nil {
		if err == repository.ErrTableNameExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "table name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create table failed"})
	}
	t, err := h.Tables.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load table failed"})
	}
	return c.JSON(http.StatusCreated, t)
}

// UpdateTable rewrites a table's name, capacity, zone and active flag.
// Deactivating keeps existing bookings but removes the table from
// future assignment.
func (h *StaffHandler) UpdateTable(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	current, err := h.Tables.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load table failed"})
	}
	// Absent fields keep their current values.
	if req.Name == "" {
		req.Name = current.Name
	}
	if req.Capacity == 0 {
		req.Capacity = current.Capacity
	}
	if req.Zone == "" {
		req.Zone = current.Zone
	}
	isActive := current.IsActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	name, ok := req.normalize()
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, capacity 1-50 and a valid zone are required"})
	}

	if err := h.Tables.Update(ctx, id, name, req.Capacity, req.Zone, isActive); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		case repository.ErrTableNameExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "table name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update table failed"})
	}
	t, err := h.Tables.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load table failed"})
	}
	return c.JSON(http.StatusOK, t)
}

// DeleteTable removes a table outright. Tables with reservation history
// cannot be deleted; deactivate them instead.
func (h *StaffHandler) DeleteTable(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Tables.Delete(ctx, id); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "table has reservations; deactivate it instead"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete table failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListZones returns the allowed zone values for table forms.
func (h *StaffHandler) ListZones(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"zones": model.TableZones})
}
