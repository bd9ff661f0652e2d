package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Camilo-marin10/restaurante/internal/booking"
	"github.com/Camilo-marin10/restaurante/internal/model"
	"github.com/Camilo-marin10/restaurante/internal/repository"
)

// CustomerHandler serves the self-service endpoints. Customers only
// ever see and touch their own bookings; ownership is enforced in the
// repository, not trusted from the request.
type CustomerHandler struct {
	Reservations *repository.ReservationRepo
	Admission    *booking.AdmissionService
}

func NewCustomerHandler(reservations *repository.ReservationRepo, admission *booking.AdmissionService) *CustomerHandler {
	if reservations == nil || admission == nil {
		panic("nil dependency passed to NewCustomerHandler")
	}
	return &CustomerHandler{Reservations: reservations, Admission: admission}
}

type customerReservationReq struct {
	TableID   uint64  `json:"table_id"` // optional; zero auto-assigns
	Date      string  `json:"date"`
	Start     string  `json:"start"`
	PartySize int     `json:"party_size"`
	Duration  float64 `json:"duration_hours"`
	Notes     string  `json:"notes"`
}

// Create books for the authenticated customer. The booking lands
// Pending and waits for staff confirmation; the customer identity
// comes from the token, never from the body.
func (h *CustomerHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req customerReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	r, err := h.Admission.Admit(ctx, booking.Request{
		CustomerID: uid,
		TableID:    req.TableID,
		Date:       strings.TrimSpace(req.Date),
		Start:      strings.TrimSpace(req.Start),
		PartySize:  req.PartySize,
		Duration:   req.Duration,
		Notes:      strings.TrimSpace(req.Notes),
	}, booking.ChannelCustomer, 0)
	if err != nil {
		return respondAdmission(c, err)
	}
	detail, err := h.Reservations.GetDetail(ctx, r.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	return c.JSON(http.StatusCreated, detail)
}

// ListMine returns the customer's own bookings, earliest first.
func (h *CustomerHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	list, err := h.Reservations.List(ctx, repository.ListFilter{CustomerID: uid})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list})
}

// Get returns one of the customer's bookings.
func (h *CustomerHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	detail, err := h.Reservations.GetDetailForCustomer(ctx, id, uid)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	return c.JSON(http.StatusOK, detail)
}

// Cancel moves one of the customer's bookings to Cancelled. Only
// Pending and Confirmed bookings can still be cancelled; an in-progress
// or finished visit cannot.
func (h *CustomerHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	detail, err := h.Reservations.GetDetailForCustomer(ctx, id, uid)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	if !model.CanTransition(detail.Status, model.StatusCancelled) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation can no longer be cancelled"})
	}
	if err := h.Reservations.UpdateStatus(ctx, id, model.StatusCancelled); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	detail.Status = model.StatusCancelled
	return c.JSON(http.StatusOK, detail)
}
