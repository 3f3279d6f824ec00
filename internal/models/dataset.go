package models

import (
	"sort"
	"time"
)

// Dataset is the snapshot of all scheduling inputs. It is treated as read-only once loaded.
type Dataset struct {
	Version       string            `json:"version"`
	Source        string            `json:"source"`
	LoadedAt      time.Time         `json:"loaded_at"`
	Teachers      []Teacher         `json:"teachers"`
	Rooms         []Room            `json:"rooms"`
	Groups        []StudentGroup    `json:"groups"`
	Subjects      []Subject         `json:"subjects"`
	Teaches       []TeachAssignment `json:"teaches"`
	Timeslots     []Timeslot        `json:"timeslots"`
	Registrations []Registration    `json:"registrations"`
}

// SortTimeslots orders timeslots ascending by identifier, keeping input order for equal ids.
func (d *Dataset) SortTimeslots() {
	sort.SliceStable(d.Timeslots, func(i, j int) bool {
		return d.Timeslots[i].ID < d.Timeslots[j].ID
	})
}

// Counts summarises table sizes.
func (d *Dataset) Counts() DatasetCounts {
	if d == nil {
		return DatasetCounts{}
	}
	return DatasetCounts{
		Teachers:      len(d.Teachers),
		Rooms:         len(d.Rooms),
		Groups:        len(d.Groups),
		Subjects:      len(d.Subjects),
		Teaches:       len(d.Teaches),
		Timeslots:     len(d.Timeslots),
		Registrations: len(d.Registrations),
	}
}

// DatasetCounts holds per-table row counts.
type DatasetCounts struct {
	Teachers      int `json:"teachers" yaml:"teachers"`
	Rooms         int `json:"rooms" yaml:"rooms"`
	Groups        int `json:"groups" yaml:"groups"`
	Subjects      int `json:"subjects" yaml:"subjects"`
	Teaches       int `json:"teaches" yaml:"teaches"`
	Timeslots     int `json:"timeslots" yaml:"timeslots"`
	Registrations int `json:"registrations" yaml:"registrations"`
}
