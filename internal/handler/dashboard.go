package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Camilo-marin10/restaurante/internal/repository"
)

// Dashboard gives staff a live picture of the day: it first advances
// any bookings whose window has started or ended, then reports today's
// totals and the next five days of upcoming reservations.
func (h *StaffHandler) Dashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if _, err := h.Sweeper.Run(ctx); err != nil {
		c.Logger().Warnf("dashboard: sweep failed: %v", err)
	}

	now := h.Clock.Now()
	today := now.Format("2006-01-02")

	counts, err := h.Reservations.CountOnDate(ctx, today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count reservations failed"})
	}
	todayList, err := h.Reservations.List(ctx, repository.ListFilter{Date: today})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	upcoming, err := h.Reservations.List(ctx, repository.ListFilter{
		FromDate: now.AddDate(0, 0, 1).Format("2006-01-02"),
		ToDate:   now.AddDate(0, 0, 5).Format("2006-01-02"),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list upcoming failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"date":     today,
		"counts":   counts,
		"today":    todayList,
		"upcoming": upcoming,
	})
}

// RunSweep triggers the lifecycle sweep on demand, outside its
// per-minute schedule.
func (h *StaffHandler) RunSweep(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	n, err := h.Sweeper.Run(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sweep failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"advanced": n})
}
