package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Camilo-marin10/restaurante/internal/model"
)

func TestBecameConfirmed(t *testing.T) {
	// The confirmation event must fire whenever an edit lands a booking
	// in Confirmed, and only then.
	assert.True(t, becameConfirmed(model.StatusPending, model.StatusConfirmed))
	assert.False(t, becameConfirmed(model.StatusConfirmed, model.StatusConfirmed))
	assert.False(t, becameConfirmed(model.StatusPending, model.StatusPending))
	assert.False(t, becameConfirmed(model.StatusPending, model.StatusCancelled))
	assert.False(t, becameConfirmed(model.StatusConfirmed, model.StatusCancelled))
}
