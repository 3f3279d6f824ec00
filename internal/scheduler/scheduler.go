// Package scheduler assigns class sessions to (teacher, room, timeslot) triples with a
// longest-task-first greedy search over ordered period windows.
package scheduler

import (
	"sort"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

// PassSummary describes one executed pass.
type PassSummary struct {
	Pass      int    `json:"pass"`
	Window    Window `json:"window"`
	Tasks     int    `json:"tasks"`
	Placed    int    `json:"placed"`
	Sessions  int    `json:"sessions"`
	Leftovers int    `json:"leftovers"`
}

// Result is the outcome of a full run.
type Result struct {
	// Sessions is sorted ascending by timeslot id.
	Sessions []models.ScheduledSession
	// Outcomes holds one entry per built task, in task order.
	Outcomes []models.TaskOutcome
	Passes   []PassSummary
}

// Unplaced returns the outcomes of tasks left without sessions.
func (r *Result) Unplaced() []models.TaskOutcome {
	out := make([]models.TaskOutcome, 0)
	for _, o := range r.Outcomes {
		if o.Status == models.PlacementUnplaced {
			out = append(out, o)
		}
	}
	return out
}

// Complete reports whether every task was placed.
func (r *Result) Complete() bool {
	return len(r.Unplaced()) == 0
}

// Scheduler runs the multi-pass placement. It keeps no state between runs.
type Scheduler struct {
	policy Policy
}

// New validates the policy and returns a scheduler.
func New(policy Policy) (*Scheduler, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{policy: policy}, nil
}

// Policy returns the configured policy.
func (s *Scheduler) Policy() Policy {
	return s.policy
}

// Generate builds tasks from ds and places them pass by pass. A pass runs only while the
// previous one left tasks behind; tasks unplaced after the last pass are reported in
// Outcomes and contribute no sessions.
func (s *Scheduler) Generate(ds *models.Dataset) *Result {
	p := newPlanner(ds)
	tasks := BuildTasks(ds)

	outcomes := make([]models.TaskOutcome, len(tasks))
	for i, task := range tasks {
		outcomes[i] = models.TaskOutcome{Task: task, Status: models.PlacementUnplaced, Reason: models.ReasonNoFeasibleSlot}
	}

	result := &Result{Sessions: make([]models.ScheduledSession, 0)}
	pending := tasks
	for i, window := range s.policy.Windows {
		if i > 0 && len(pending) == 0 {
			break
		}
		round := p.runRound(pending, result.Sessions, window)
		for _, o := range round.Outcomes {
			o.Pass = i + 1
			outcomes[o.Task.Seq] = o
		}
		result.Sessions = append(result.Sessions, round.Placed...)
		result.Passes = append(result.Passes, PassSummary{
			Pass:      i + 1,
			Window:    window,
			Tasks:     len(pending),
			Placed:    len(pending) - len(round.Leftovers),
			Sessions:  len(round.Placed),
			Leftovers: len(round.Leftovers),
		})
		pending = round.Leftovers
	}

	sort.SliceStable(result.Sessions, func(i, j int) bool {
		return result.Sessions[i].TimeslotID < result.Sessions[j].TimeslotID
	})
	result.Outcomes = outcomes
	return result
}
