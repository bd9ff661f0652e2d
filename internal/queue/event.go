// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a reservation reaches the
// Confirmed state, either at staff creation or when staff confirm a
// pending request. It carries enough for downstream consumers to log
// and notify without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64  `json:"reservation_id"`
	Code          string  `json:"code"`
	CustomerID    uint64  `json:"customer_id"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	Date          string  `json:"date"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	PartySize     int     `json:"party_size"`
	DurationHours float64 `json:"duration_hours"`
	TableID       uint64  `json:"table_id"`
	TableName     string  `json:"table_name"`
	TableZone     string  `json:"table_zone"`
	ConfirmedAt   string  `json:"confirmed_at"`
}
