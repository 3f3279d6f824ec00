package dto

import (
	"time"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/internal/scheduler"
)

// ScheduleFilter narrows a generated schedule. Empty fields match everything.
type ScheduleFilter struct {
	GroupID   string `form:"groupId" json:"groupId,omitempty"`
	TeacherID string `form:"teacherId" json:"teacherId,omitempty"`
	RoomID    string `form:"roomId" json:"roomId,omitempty"`
	Day       string `form:"day" json:"day,omitempty"`
}

// Empty reports whether no field is set.
func (f ScheduleFilter) Empty() bool {
	return f == ScheduleFilter{}
}

// Match reports whether a session passes the filter.
func (f ScheduleFilter) Match(s models.ScheduledSession) bool {
	if f.GroupID != "" && s.GroupID != f.GroupID {
		return false
	}
	if f.TeacherID != "" && s.TeacherID != f.TeacherID {
		return false
	}
	if f.RoomID != "" && s.RoomID != f.RoomID {
		return false
	}
	if f.Day != "" && s.Day != f.Day {
		return false
	}
	return true
}

// ScheduleSummary aggregates a run.
type ScheduleSummary struct {
	Tasks    int                     `json:"tasks"`
	Placed   int                     `json:"placed"`
	Unplaced int                     `json:"unplaced"`
	Sessions int                     `json:"sessions"`
	Passes   []scheduler.PassSummary `json:"passes"`
}

// GeneratedSchedule is the result of one generation request.
type GeneratedSchedule struct {
	Sessions       []models.ScheduledSession `json:"sessions"`
	Unplaced       []models.TaskOutcome      `json:"unplaced"`
	Summary        ScheduleSummary           `json:"summary"`
	DatasetVersion string                    `json:"datasetVersion"`
	Windows        string                    `json:"windows"`
	Strategy       string                    `json:"strategy"`
	GeneratedAt    time.Time                 `json:"generatedAt"`
	Cached         bool                      `json:"cached"`
}

// Filtered returns a copy with sessions and unplaced tasks narrowed by f. The summary is left untouched.
func (g GeneratedSchedule) Filtered(f ScheduleFilter) GeneratedSchedule {
	if f.Empty() {
		return g
	}
	out := g
	out.Sessions = make([]models.ScheduledSession, 0, len(g.Sessions))
	for _, s := range g.Sessions {
		if f.Match(s) {
			out.Sessions = append(out.Sessions, s)
		}
	}
	out.Unplaced = make([]models.TaskOutcome, 0, len(g.Unplaced))
	for _, o := range g.Unplaced {
		if f.GroupID == "" || o.Task.GroupID == f.GroupID {
			out.Unplaced = append(out.Unplaced, o)
		}
	}
	return out
}
