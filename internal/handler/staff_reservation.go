package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Camilo-marin10/restaurante/internal/booking"
	"github.com/Camilo-marin10/restaurante/internal/model"
	"github.com/Camilo-marin10/restaurante/internal/queue"
	"github.com/Camilo-marin10/restaurante/internal/repository"
	queue_publisher "github.com/Camilo-marin10/restaurante/internal/service"
)

type reservationReq struct {
	CustomerID uint64  `json:"customer_id"`
	TableID    uint64  `json:"table_id"`
	Date       string  `json:"date"`
	Start      string  `json:"start"`
	PartySize  int     `json:"party_size"`
	Duration   float64 `json:"duration_hours"`
	Notes      string  `json:"notes"`
	Status     string  `json:"status"`
}

func (r reservationReq) toAdmission() booking.Request {
	return booking.Request{
		CustomerID: r.CustomerID,
		TableID:    r.TableID,
		Date:       strings.TrimSpace(r.Date),
		Start:      strings.TrimSpace(r.Start),
		PartySize:  r.PartySize,
		Duration:   r.Duration,
		Notes:      strings.TrimSpace(r.Notes),
		Status:     strings.TrimSpace(r.Status),
	}
}

// ListReservations returns the reservation book, optionally filtered
// by ?date, ?from, ?to, ?status and ?customer_id.
func (h *StaffHandler) ListReservations(c echo.Context) error {
	var f repository.ListFilter
	f.Date = strings.TrimSpace(c.QueryParam("date"))
	f.FromDate = strings.TrimSpace(c.QueryParam("from"))
	f.ToDate = strings.TrimSpace(c.QueryParam("to"))
	f.Status = strings.TrimSpace(c.QueryParam("status"))
	if f.Status != "" && !model.ValidStatus(f.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	if v := c.QueryParam("customer_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer_id"})
		}
		f.CustomerID = id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	list, err := h.Reservations.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list})
}

// CreateReservation books on behalf of a customer. Staff bookings are
// Confirmed immediately and the confirmation event is published.
func (h *StaffHandler) CreateReservation(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	r, err := h.Admission.Admit(ctx, req.toAdmission(), booking.ChannelStaff, 0)
	if err != nil {
		return respondAdmission(c, err)
	}
	detail, err := h.Reservations.GetDetail(ctx, r.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	publishConfirmed(detail)
	return c.JSON(http.StatusCreated, detail)
}

// GetReservation returns one reservation with customer and table.
func (h *StaffHandler) GetReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	detail, err := h.Reservations.GetDetail(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	return c.JSON(http.StatusOK, detail)
}

// GetReservationByCode looks a booking up by its public code for
// front-desk check-in.
func (h *StaffHandler) GetReservationByCode(c echo.Context) error {
	code := strings.TrimSpace(c.Param("code"))
	if len(code) != booking.CodeLength {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid code"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	detail, err := h.Reservations.GetByCode(ctx, code)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	return c.JSON(http.StatusOK, detail)
}

// UpdateReservation re-runs the full admission pipeline for an edit,
// excluding the booking's own window from conflict checks.
func (h *StaffHandler) UpdateReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	prev, err := h.Reservations.GetDetail(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}

	r, err := h.Admission.Admit(ctx, req.toAdmission(), booking.ChannelStaff, id)
	if err != nil {
		return respondAdmission(c, err)
	}
	detail, err := h.Reservations.GetDetail(ctx, r.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	// An edit may carry the Pending->Confirmed transition; the
	// confirmation event fires here exactly as it does on the status
	// route.
	if becameConfirmed(prev.Status, detail.Status) {
		publishConfirmed(detail)
	}
	return c.JSON(http.StatusOK, detail)
}

// becameConfirmed reports whether a status change newly entered the
// Confirmed state.
func becameConfirmed(prev, next string) bool {
	return prev != model.StatusConfirmed && next == model.StatusConfirmed
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateReservationStatus moves a booking along its lifecycle. The
// transition table is the single authority: Pending can be confirmed,
// cancelled or marked no-show, and so on. Confirming publishes the
// confirmation event.
func (h *StaffHandler) UpdateReservationStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil || !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	detail, err := h.Reservations.GetDetail(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	if !model.CanTransition(detail.Status, req.Status) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "cannot change status from " + detail.Status + " to " + req.Status,
		})
	}
	if err := h.Reservations.UpdateStatus(ctx, id, req.Status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	detail.Status = req.Status
	if req.Status == model.StatusConfirmed {
		publishConfirmed(detail)
	}
	return c.JSON(http.StatusOK, detail)
}

// DeleteReservation removes the row outright. Customers cancel through
// the status transition; hard delete is a staff cleanup tool.
func (h *StaffHandler) DeleteReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Reservations.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete reservation failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// SearchCustomers backs the customer picker on the staff booking form.
func (h *StaffHandler) SearchCustomers(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	users, err := h.Users.SearchCustomers(ctx, c.QueryParam("q"), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search customers failed"})
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	}
	return c.JSON(http.StatusOK, echo.Map{"customers": out})
}

// publishConfirmed fires the confirmation event in the background; a
// broker outage never delays or fails the request.
func publishConfirmed(d repository.ReservationDetail) {
	ev := queue.ReservationConfirmedEvent{
		ReservationID: d.ID,
		Code:          d.Code,
		CustomerID:    d.CustomerID,
		CustomerName:  d.CustomerName,
		CustomerEmail: d.CustomerEmail,
		Date:          d.Date,
		Start:         d.Start,
		End:           d.End,
		PartySize:     d.PartySize,
		DurationHours: d.DurationHours,
		TableID:       d.TableID,
		TableName:     d.TableName,
		TableZone:     d.TableZone,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishReservationConfirmed(ctx, ev)
	}()
}
