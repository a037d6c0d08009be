// Package domain holds DTOs and ports for the analyze service
package domain

import (
	"time"

	"chatstats/internal/core/report"
)

// AnalyzeInput is the JSON body of POST /analyze
type AnalyzeInput struct {
	Text      string `json:"text" validate:"required" example:"[1/2/24, 10:00:00] Alice: hello there"`
	DateOrder string `json:"date_order,omitempty" validate:"date_order" example:"dmy"`
}

// Upload is one multipart export file already read into memory
type Upload struct {
	Filename    string
	ContentType string
	Body        []byte
	DateOrder   string
}

// RunSummary reports what the engine did with the input
type RunSummary struct {
	Lines         int `json:"lines"`
	Notices       int `json:"notices"`
	Messages      int `json:"messages"`
	Continuations int `json:"continuations"`
	Dropped       int `json:"dropped"`
	Undated       int `json:"undated"`
	Untimed       int `json:"untimed"`
}

// Analysis is the response of both analyze endpoints
// ID is set only when the report was archived
type Analysis struct {
	ID      string        `json:"id,omitempty"`
	Report  report.Report `json:"report"`
	Summary RunSummary    `json:"summary"`
}

// StoredReport is an archived report
type StoredReport struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Report    report.Report `json:"report"`
}

// ReportSummary is one row of the recent reports listing
type ReportSummary struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	TotalMessages int       `json:"total_messages"`
	TotalUsers    int       `json:"total_users"`
}

// DailyCount is one day of the per report rollup
type DailyCount struct {
	Day      string `json:"day" example:"2024-02-01"`
	Messages uint32 `json:"messages" example:"12"`
}
