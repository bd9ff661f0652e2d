package model

import "time"

// BusinessHours holds the opening window for one weekday. There is
// exactly one row per weekday 0 (Sunday) through 6 (Saturday). When
// the day is inactive both time columns are null, meaning closed all
// day. Times are stored as "HH:MM" strings at minute precision.
//
// Fields:
//  Weekday   - 0..6, unique.
//  IsActive  - whether the restaurant opens on this weekday.
//  OpenTime  - opening time of day (nil when closed).
//  CloseTime - closing time of day (nil when closed).
type BusinessHours struct {
	ID        uint64    // business_hours.id
	Weekday   int       // business_hours.weekday
	IsActive  bool      // business_hours.is_active
	OpenTime  *string   // business_hours.open_time (nullable)
	CloseTime *string   // business_hours.close_time (nullable)
	CreatedAt time.Time // business_hours.created_at
	UpdatedAt time.Time // business_hours.updated_at
}

// WeekdayNames maps weekday indices to display names, Sunday first.
var WeekdayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}
