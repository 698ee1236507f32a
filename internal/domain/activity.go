package domain

import "time"

// ActivityType enumerates the kinds of field actions a user can log.
type ActivityType string

const (
	ActivityTypeMeeting ActivityType = "meeting"
	ActivityTypeSale    ActivityType = "sale"
	ActivityTypeSample  ActivityType = "sample"
)

// Valid reports whether the activity type is a known value.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityTypeMeeting, ActivityTypeSale, ActivityTypeSample:
		return true
	}
	return false
}

// ActivityPayload is the structured record attached to every activity.
// Amount is meaningful for sales, Quantity for samples; both are ignored
// for meetings.
type ActivityPayload struct {
	Contact  string   `json:"contact" validate:"required"`
	Notes    string   `json:"notes"`
	Amount   *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Quantity *int     `json:"quantity,omitempty" validate:"omitempty,gt=0"`
}

// Activity is a single field action logged by a user. Coordinates are
// optional as a pair; an activity either has both or neither.
type Activity struct {
	ID        string
	UserID    string
	Type      ActivityType
	Payload   ActivityPayload
	Lat       *float64
	Lng       *float64
	CreatedAt time.Time
}

// HasLocation reports whether geolocation was captured for the activity.
func (a Activity) HasLocation() bool {
	return a.Lat != nil && a.Lng != nil
}

// RecentActivity is an activity joined with its submitting username,
// used for the admin dashboard feed.
type RecentActivity struct {
	Username  string
	Type      ActivityType
	Timestamp time.Time
	Lat       *float64
	Lng       *float64
}

// HasLocation reports whether geolocation was captured.
func (r RecentActivity) HasLocation() bool {
	return r.Lat != nil && r.Lng != nil
}

// Stats aggregates the admin dashboard counters. Counts are computed
// live from the store, never cached.
type Stats struct {
	Meetings int64
	Sales    int64
	Samples  int64
	Users    int
	Recent   []RecentActivity
}
