package dto

import "time"

// ExportFormat enumerates file formats for schedule exports.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportRequest asks for the current schedule rendered to a file.
type ExportRequest struct {
	Format  ExportFormat   `json:"format" validate:"required,oneof=csv pdf"`
	Filters ScheduleFilter `json:"filters"`
}

// ExportResponse points at the rendered file.
type ExportResponse struct {
	ID          string       `json:"id"`
	Format      ExportFormat `json:"format"`
	Sessions    int          `json:"sessions"`
	DownloadURL string       `json:"downloadUrl"`
	ExpiresAt   time.Time    `json:"expiresAt"`
}

// ExportFile is a stored export ready to stream.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
