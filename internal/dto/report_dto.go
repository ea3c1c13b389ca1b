package dto

import "time"

// CreateReportRequest covers both lost and found submissions; the route
// fixes the kind. Secret is required for lost reports only and is never
// echoed back.
type CreateReportRequest struct {
	Plate        string    `json:"plate"`
	Secret       string    `json:"secret,omitempty"`
	City         string    `json:"city"`
	Neighborhood string    `json:"neighborhood,omitempty"`
	EventAt      time.Time `json:"event_at"`
	Description  string    `json:"description,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
}

type ReportSearchQuery struct {
	Plate    string
	City     string
	DateFrom *time.Time
	DateTo   *time.Time
}
