package scheduler

import (
	"sort"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

// BuildTasks expands registrations into theory and practice tasks, longest first.
// Registrations whose subject cannot be resolved contribute no task.
func BuildTasks(ds *models.Dataset) []models.Task {
	if ds == nil {
		return nil
	}
	subjects := make(map[string]models.Subject, len(ds.Subjects))
	for _, subject := range ds.Subjects {
		if _, exists := subjects[subject.ID]; !exists {
			subjects[subject.ID] = subject
		}
	}

	tasks := make([]models.Task, 0, len(ds.Registrations)*2)
	for _, reg := range ds.Registrations {
		subject, ok := subjects[reg.SubjectID]
		if !ok {
			continue
		}
		if subject.Theory > 0 {
			tasks = append(tasks, models.Task{
				GroupID:   reg.GroupID,
				SubjectID: reg.SubjectID,
				Type:      models.ComponentTheory,
				Hours:     subject.Theory,
				Subject:   subject,
			})
		}
		if subject.Practice > 0 {
			tasks = append(tasks, models.Task{
				GroupID:   reg.GroupID,
				SubjectID: reg.SubjectID,
				Type:      models.ComponentPractice,
				Hours:     subject.Practice,
				Subject:   subject,
			})
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Hours > tasks[j].Hours
	})
	for i := range tasks {
		tasks[i].Seq = i
	}
	return tasks
}
