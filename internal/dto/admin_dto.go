package dto

type FlagReportRequest struct {
	Reason string `json:"reason"`
}
