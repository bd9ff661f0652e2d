package model

import "time"

// Table is a physical dining table owned by the restaurant. Only
// active tables take part in availability and auto-assignment.
// Capacity is always at least 1; the repository rejects anything
// smaller on insert and update.
type Table struct {
	ID        uint64    // restaurant_tables.id
	Name      string    // restaurant_tables.name
	Capacity  int       // restaurant_tables.capacity
	Zone      string    // restaurant_tables.zone
	IsActive  bool      // restaurant_tables.is_active
	CreatedAt time.Time // restaurant_tables.created_at
	UpdatedAt time.Time // restaurant_tables.updated_at
}

// Zones accepted for restaurant_tables.zone.
var TableZones = []string{"Interior", "Terraza", "VIP", "Barra", "Otro"}

// ValidZone reports whether z is one of the accepted zone tags.
func ValidZone(z string) bool {
	for _, v := range TableZones {
		if v == z {
			return true
		}
	}
	return false
}
