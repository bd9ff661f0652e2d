// Package handler defines the HTTP handlers for the reservation API.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Camilo-marin10/restaurante/internal/booking"
)

// getUserID extracts the user_id set by the JWT middleware and
// converts it to uint64. JSON numbers come back as float64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// admissionStatus maps a validation failure kind onto an HTTP status.
// Field problems are plain 400s, business-rule rejections are 422,
// and anything contested by existing state is a 409.
func admissionStatus(k booking.Kind) int {
	switch k {
	case booking.KindField:
		return http.StatusBadRequest
	case booking.KindNotFound:
		return http.StatusNotFound
	case booking.KindOutsideHours, booking.KindPastDateTime, booking.KindCapacity:
		return http.StatusUnprocessableEntity
	case booking.KindOverlap, booking.KindDuplicate, booking.KindNoTable:
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

// respondAdmission renders an admission pipeline error. Validation
// errors carry their failures to the client; anything else is an
// internal error that should not leak detail.
func respondAdmission(c echo.Context, err error) error {
	if ve, ok := booking.AsValidation(err); ok {
		status := admissionStatus(ve.Failures[0].Kind)
		return c.JSON(status, echo.Map{
			"error":    "validation_failed",
			"failures": ve.Failures,
		})
	}
	c.Logger().Errorf("admission: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation failed"})
}
