package dto

import (
	"time"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

// DatasetInfo describes the active dataset snapshot.
type DatasetInfo struct {
	Version  string               `json:"version"`
	Source   string               `json:"source"`
	LoadedAt time.Time            `json:"loadedAt"`
	Counts   models.DatasetCounts `json:"counts"`
}

// DashboardResponse carries entity counts and the lists used by filter dropdowns.
type DashboardResponse struct {
	Dataset  DatasetInfo           `json:"dataset"`
	Groups   []models.StudentGroup `json:"groups"`
	Teachers []models.Teacher      `json:"teachers"`
	Rooms    []models.Room         `json:"rooms"`
	System   models.SystemMetrics  `json:"system"`
}
