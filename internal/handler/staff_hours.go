package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Camilo-marin10/restaurante/internal/booking"
	"github.com/Camilo-marin10/restaurante/internal/model"
	"github.com/Camilo-marin10/restaurante/internal/repository"
)

type hoursDay struct {
	Weekday   int     `json:"weekday"`
	Name      string  `json:"name"`
	IsActive  bool    `json:"is_active"`
	OpenTime  *string `json:"open_time"`
	CloseTime *string `json:"close_time"`
}

type hoursUpdateReq struct {
	IsActive  bool    `json:"is_active"`
	OpenTime  *string `json:"open_time"`
	CloseTime *string `json:"close_time"`
}

// ListHours returns the weekly schedule, one row per weekday starting
// with Sunday.
func (h *StaffHandler) ListHours(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	rows, err := h.Hours.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list hours failed"})
	}
	out := make([]hoursDay, 0, len(rows))
	for _, r := range rows {
		out = append(out, hoursDay{
			Weekday:   r.Weekday,
			Name:      model.WeekdayNames[r.Weekday],
			IsActive:  r.IsActive,
			OpenTime:  r.OpenTime,
			CloseTime: r.CloseTime,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"hours": out})
}

// UpdateHours sets one weekday's window. An active day needs both
// bounds in HH:MM with open strictly before close; an inactive day
// drops them.
func (h *StaffHandler) UpdateHours(c echo.Context) error {
	weekday, err := strconv.Atoi(c.Param("weekday"))
	if err != nil || weekday < 0 || weekday > 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "weekday must be 0 (Sunday) to 6 (Saturday)"})
	}
	var req hoursUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	var open, close *string
	if req.IsActive {
		if req.OpenTime == nil || req.CloseTime == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "open_time and close_time are required for an active day"})
		}
		o, err := booking.ParseClock(*req.OpenTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "open_time must be HH:MM in 24-hour format"})
		}
		cl, err := booking.ParseClock(*req.CloseTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "close_time must be HH:MM in 24-hour format"})
		}
		if o >= cl {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "open_time must be before close_time"})
		}
		// Store the normalized HH:MM:SS form MySQL expects.
		os, cs := o.String()+":00", cl.String()+":00"
		open, close = &os, &cs
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Hours.UpdateDay(ctx, weekday, req.IsActive, open, close); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "weekday not configured"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update hours failed"})
	}
	row, err := h.Hours.GetByWeekday(ctx, weekday)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load hours failed"})
	}
	return c.JSON(http.StatusOK, hoursDay{
		Weekday:   row.Weekday,
		Name:      model.WeekdayNames[row.Weekday],
		IsActive:  row.IsActive,
		OpenTime:  row.OpenTime,
		CloseTime: row.CloseTime,
	})
}
