package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Camilo-marin10/restaurante/internal/model"
	"github.com/Camilo-marin10/restaurante/internal/repository"
)

type customerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"` // create only; ignored on update
	IsActive *bool  `json:"is_active"`
}

func (r *customerReq) normalize() bool {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return r.Name != "" && strings.Count(r.Email, "@") == 1
}

// CreateCustomer registers a walk-in or phone customer from the front
// desk. The account always gets the CUSTOMER role.
func (h *StaffHandler) CreateCustomer(c echo.Context) error {
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !req.normalize() || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	id, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, model.RoleCustomer, h.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create customer failed"})
	}
	return c.JSON(http.StatusCreated, userPart{ID: id, Name: req.Name, Email: req.Email, Role: model.RoleCustomer})
}

// UpdateCustomer rewrites a customer's name, email and active flag.
// Deactivating blocks login and new bookings but keeps history intact.
func (h *StaffHandler) UpdateCustomer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	current, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load customer failed"})
	}
	if current.Role != model.RoleCustomer {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}
	// Absent fields keep their current values.
	if req.Name == "" {
		req.Name = current.Name
	}
	if req.Email == "" {
		req.Email = current.Email
	}
	isActive := current.IsActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	if !req.normalize() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and a valid email are required"})
	}

	if err := h.Users.UpdateCustomer(ctx, id, req.Name, req.Email, isActive); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		case repository.ErrEmailExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update customer failed"})
	}
	return c.JSON(http.StatusOK, userPart{ID: id, Name: req.Name, Email: req.Email, Role: model.RoleCustomer})
}

// DeleteCustomer removes a customer account outright. Customers with
// reservation history cannot be deleted; deactivate the account instead.
func (h *StaffHandler) DeleteCustomer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Users.DeleteCustomer(ctx, id); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "customer has reservations; deactivate the account instead"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete customer failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
