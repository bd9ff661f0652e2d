package booking

import (
	"errors"
	"strings"
)

// Kind classifies a validation failure so callers and tests can branch
// on the reason without parsing messages.
type Kind string

const (
	KindField         Kind = "field"
	KindOutsideHours  Kind = "outside_business_hours"
	KindPastDateTime  Kind = "past_date_time"
	KindCapacity      Kind = "capacity_exceeded"
	KindOverlap       Kind = "overlap_conflict"
	KindDuplicate     Kind = "duplicate_booking"
	KindNoTable       Kind = "no_table_available"
	KindNotFound      Kind = "not_found"
)

// Failure is one user-facing validation message. Field is empty for
// failures that concern the request as a whole (overlap, duplicate,
// no availability).
type Failure struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Kind    Kind   `json:"-"`
}

// ValidationError carries the ordered list of failures produced by one
// admission attempt. The pipeline short-circuits between stages but
// accumulates every failure inside a stage, so the list may hold more
// than one entry.
type ValidationError struct {
	Failures []Failure
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether any failure carries the given kind.
func (e *ValidationError) Has(k Kind) bool {
	for _, f := range e.Failures {
		if f.Kind == k {
			return true
		}
	}
	return false
}

// AsValidation unwraps err into a *ValidationError when possible.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ErrClosed is returned by the hours resolver when the restaurant does
// not open on the requested date.
var ErrClosed = errors.New("closed on this day")

// ErrBadWeekday signals a configuration error: a weekday index outside
// 0..6 reached the resolver.
var ErrBadWeekday = errors.New("weekday index out of range")

// ErrNoTable is returned by the assignment engine when no active,
// large-enough, conflict-free table exists for the requested window.
var ErrNoTable = errors.New("no table available")
