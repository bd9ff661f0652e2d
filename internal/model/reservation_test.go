package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		from, to string
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusNoShow, true},
		{StatusPending, StatusInProgress, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusNoShow, StatusPending, false},
		{"Bogus", StatusPending, false},
	}
	for _, tc := range testCases {
		t.Run(tc.from+"->"+tc.to, func(t *testing.T) {
			assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to))
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	for _, s := range ActiveStatuses {
		assert.True(t, IsActive(s), s)
		assert.False(t, IsTerminal(s), s)
	}
	for _, s := range []string{StatusCompleted, StatusCancelled, StatusNoShow} {
		assert.True(t, IsTerminal(s), s)
		assert.False(t, IsActive(s), s)
	}
	assert.True(t, ValidStatus(StatusPending))
	assert.False(t, ValidStatus("pending"))
	assert.False(t, ValidStatus(""))
}
