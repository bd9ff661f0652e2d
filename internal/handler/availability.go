package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Camilo-marin10/restaurante/internal/booking"
	"github.com/Camilo-marin10/restaurante/internal/model"
)

// AvailabilityHandler answers the public "which tables are free"
// query that front ends use to render a table picker before booking.
type AvailabilityHandler struct {
	Store booking.Store
}

func NewAvailabilityHandler(store booking.Store) *AvailabilityHandler {
	if store == nil {
		panic("nil store passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Store: store}
}

type availableTable struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Zone     string `json:"zone"`
}

// Availability lists free tables for ?date, ?start, ?duration_hours
// and ?party_size in smallest-fits-first order. The window must fall
// inside business hours; a closed day returns an empty list with the
// resolved reason.
func (h *AvailabilityHandler) Availability(c echo.Context) error {
	date, err := booking.ParseDate(strings.TrimSpace(c.QueryParam("date")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required (YYYY-MM-DD or DD/MM/YYYY)"})
	}
	start, err := booking.ParseClock(strings.TrimSpace(c.QueryParam("start")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start is required (HH:MM, 24-hour)"})
	}
	duration, err := strconv.ParseFloat(c.QueryParam("duration_hours"), 64)
	if err != nil || duration < 0.5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration_hours must be at least 0.5"})
	}
	partySize, err := strconv.Atoi(c.QueryParam("party_size"))
	if err != nil || partySize < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "party_size must be at least 1"})
	}

	iv := booking.NewInterval(start, duration)
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	resolver := booking.NewHoursResolver(h.Store)
	window, err := resolver.WindowFor(ctx, date)
	if err != nil {
		if errors.Is(err, booking.ErrClosed) {
			wd, _ := booking.Weekday(date)
			return c.JSON(http.StatusOK, echo.Map{
				"tables": []availableTable{},
				"reason": "closed on " + model.WeekdayNames[wd],
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resolve hours failed"})
	}
	if !window.Contains(iv) {
		return c.JSON(http.StatusOK, echo.Map{
			"tables": []availableTable{},
			"reason": "outside business hours (" + window.Open.String() + " to " + window.Close.String() + ")",
		})
	}

	assigner := booking.NewAssigner(h.Store)
	tables, err := assigner.ListAvailable(ctx, date, iv, partySize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list availability failed"})
	}
	out := make([]availableTable, 0, len(tables))
	for _, t := range tables {
		out = append(out, availableTable{ID: t.ID, Name: t.Name, Capacity: t.Capacity, Zone: t.Zone})
	}
	return c.JSON(http.StatusOK, echo.Map{"tables": out})
}

// BookingOptions returns the static choices front ends offer when
// composing a reservation form.
func (h *AvailabilityHandler) BookingOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"durations": booking.DurationOptions,
		"zones":     model.TableZones,
	})
}
