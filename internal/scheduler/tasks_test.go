package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

func TestBuildTasksSplitsComponentsLongestFirst(t *testing.T) {
	ds := &models.Dataset{
		Subjects: []models.Subject{
			{ID: "A", Theory: 2, Practice: 3},
			{ID: "B", Theory: 1},
			{ID: "Z"},
		},
		Registrations: []models.Registration{
			{GroupID: "g1", SubjectID: "B"},
			{GroupID: "g1", SubjectID: "missing"},
			{GroupID: "g1", SubjectID: "A"},
			{GroupID: "g2", SubjectID: "B"},
			{GroupID: "g2", SubjectID: "Z"},
		},
	}

	tasks := BuildTasks(ds)

	require.Len(t, tasks, 4)
	assert.Equal(t, models.Task{Seq: 0, GroupID: "g1", SubjectID: "A", Type: models.ComponentPractice, Hours: 3, Subject: ds.Subjects[0]}, tasks[0])
	assert.Equal(t, models.ComponentTheory, tasks[1].Type)
	assert.Equal(t, 2, tasks[1].Hours)
	assert.Equal(t, "g1", tasks[2].GroupID, "equal hours keep registration order")
	assert.Equal(t, "g2", tasks[3].GroupID)
	for i, task := range tasks {
		assert.Equal(t, i, task.Seq)
	}
}

func TestBuildTasksUsesFirstSubjectWithID(t *testing.T) {
	ds := &models.Dataset{
		Subjects: []models.Subject{
			{ID: "A", Name: "first", Theory: 1},
			{ID: "A", Name: "second", Theory: 4},
		},
		Registrations: []models.Registration{{GroupID: "g1", SubjectID: "A"}},
	}

	tasks := BuildTasks(ds)

	require.Len(t, tasks, 1)
	assert.Equal(t, "first", tasks[0].Subject.Name)
	assert.Equal(t, 1, tasks[0].Hours)
}
