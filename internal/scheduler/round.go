package scheduler

import "github.com/noah-isme/class-scheduler-api/internal/models"

// RoundResult is the output of one pass.
type RoundResult struct {
	Placed    []models.ScheduledSession
	Leftovers []models.Task
	// Outcomes holds one entry per input task, in input order. Pass is left at zero.
	Outcomes []models.TaskOutcome
}

// RunRound places tasks in the given order using only periods in allowed. Sessions placed
// earlier in the round block later tasks just like committed ones do.
func RunRound(ds *models.Dataset, tasks []models.Task, committed []models.ScheduledSession, allowed Window) RoundResult {
	return newPlanner(ds).runRound(tasks, committed, allowed)
}

func (p *planner) runRound(tasks []models.Task, committed []models.ScheduledSession, allowed Window) RoundResult {
	window := p.window(allowed)
	result := RoundResult{
		Outcomes: make([]models.TaskOutcome, 0, len(tasks)),
	}
	for _, task := range tasks {
		sessions, reason := p.place(task, window, committed, result.Placed)
		if len(sessions) == 0 {
			result.Leftovers = append(result.Leftovers, task)
			result.Outcomes = append(result.Outcomes, models.TaskOutcome{
				Task:   task,
				Status: models.PlacementUnplaced,
				Reason: reason,
			})
			continue
		}
		result.Placed = append(result.Placed, sessions...)
		result.Outcomes = append(result.Outcomes, models.TaskOutcome{
			Task:     task,
			Status:   models.PlacementPlaced,
			Sessions: len(sessions),
		})
	}
	return result
}
