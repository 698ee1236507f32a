package dto

import (
	"time"

	"github.com/spec-kit/field-activity-service/internal/domain"
)

// LogActivityRequest payload for POST /api/log.
type LogActivityRequest struct {
	Type    string                 `json:"type"`
	Payload domain.ActivityPayload `json:"payload"`
	Lat     *float64               `json:"lat"`
	Lng     *float64               `json:"lng"`
}

// LogActivityResponse returns the created id and store-assigned timestamp.
type LogActivityResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityResponse is one entry in mylogs listings.
type ActivityResponse struct {
	ID        string                 `json:"id"`
	Type      domain.ActivityType    `json:"type"`
	Payload   domain.ActivityPayload `json:"payload"`
	Lat       *float64               `json:"lat,omitempty"`
	Lng       *float64               `json:"lng,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// NewActivityResponse maps a domain activity.
func NewActivityResponse(activity domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:        activity.ID,
		Type:      activity.Type,
		Payload:   activity.Payload,
		Lat:       activity.Lat,
		Lng:       activity.Lng,
		CreatedAt: activity.CreatedAt,
	}
}

// RecentActivityResponse is one row of the dashboard feed. HasLocation
// lets clients render a "no location" marker without null checks.
type RecentActivityResponse struct {
	Username    string              `json:"username"`
	Type        domain.ActivityType `json:"type"`
	Timestamp   time.Time           `json:"timestamp"`
	Lat         *float64            `json:"lat,omitempty"`
	Lng         *float64            `json:"lng,omitempty"`
	HasLocation bool                `json:"has_location"`
}

// StatsResponse is the admin dashboard aggregate.
type StatsResponse struct {
	Meetings int64                    `json:"meetings"`
	Sales    int64                    `json:"sales"`
	Samples  int64                    `json:"samples"`
	Users    int                      `json:"users"`
	Recent   []RecentActivityResponse `json:"recent"`
}

// NewStatsResponse maps domain stats.
func NewStatsResponse(stats domain.Stats) StatsResponse {
	recent := make([]RecentActivityResponse, 0, len(stats.Recent))
	for _, entry := range stats.Recent {
		recent = append(recent, RecentActivityResponse{
			Username:    entry.Username,
			Type:        entry.Type,
			Timestamp:   entry.Timestamp,
			Lat:         entry.Lat,
			Lng:         entry.Lng,
			HasLocation: entry.HasLocation(),
		})
	}
	return StatsResponse{
		Meetings: stats.Meetings,
		Sales:    stats.Sales,
		Samples:  stats.Samples,
		Users:    stats.Users,
		Recent:   recent,
	}
}
