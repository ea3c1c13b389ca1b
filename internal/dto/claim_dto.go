package dto

import "github.com/google/uuid"

type CreateClaimRequest struct {
	LostReportID  uuid.UUID `json:"lost_report_id"`
	FoundReportID uuid.UUID `json:"found_report_id"`
	Secret        string    `json:"secret"`
}

type SetSafeLocationRequest struct {
	SafeLocationID uuid.UUID `json:"safe_location_id"`
}

type CloseMatchRequest struct {
	Status string `json:"status"`
}

type SendMessageRequest struct {
	Body string `json:"body"`
}
