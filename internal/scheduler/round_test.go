package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

func TestRunRoundBlocksIntraRoundCollisions(t *testing.T) {
	ds := &models.Dataset{
		Teachers:  []models.Teacher{{ID: "T1"}},
		Rooms:     []models.Room{{ID: "R1", Type: "Theory"}},
		Teaches:   []models.TeachAssignment{{SubjectID: "S1", TeacherID: "T1"}},
		Timeslots: daySlots("Mon", 1, 1, 2),
	}
	tasks := []models.Task{
		{Seq: 0, GroupID: "G1", SubjectID: "S1", Type: models.ComponentTheory, Hours: 1},
		{Seq: 1, GroupID: "G2", SubjectID: "S1", Type: models.ComponentTheory, Hours: 1},
		{Seq: 2, GroupID: "G3", SubjectID: "S1", Type: models.ComponentTheory, Hours: 1},
		{Seq: 3, GroupID: "G4", SubjectID: "none", Type: models.ComponentTheory, Hours: 1},
	}

	round := RunRound(ds, tasks, nil, Window{1, 2})

	require.Len(t, round.Placed, 2)
	assert.Equal(t, 1, round.Placed[0].Period)
	assert.Equal(t, 2, round.Placed[1].Period)
	require.Len(t, round.Leftovers, 2)
	assert.Equal(t, "G3", round.Leftovers[0].GroupID)
	assert.Equal(t, "G4", round.Leftovers[1].GroupID)
	require.Len(t, round.Outcomes, 4)
	assert.Equal(t, models.ReasonNoFeasibleSlot, round.Outcomes[2].Reason)
	assert.Equal(t, models.ReasonNoTeacher, round.Outcomes[3].Reason)
}

func TestRunRoundRespectsCommittedSchedule(t *testing.T) {
	ds := &models.Dataset{
		Teachers:  []models.Teacher{{ID: "T1"}},
		Rooms:     []models.Room{{ID: "R1", Type: "Theory"}},
		Teaches:   []models.TeachAssignment{{SubjectID: "S1", TeacherID: "T1"}},
		Timeslots: daySlots("Mon", 1, 1, 2, 3),
	}
	committed := []models.ScheduledSession{{TimeslotID: 1, TeacherID: "other", RoomID: "R1", GroupID: "other"}}
	tasks := []models.Task{{GroupID: "G1", SubjectID: "S1", Type: models.ComponentTheory, Hours: 2}}

	round := RunRound(ds, tasks, committed, Window{1, 2, 3})

	require.Len(t, round.Placed, 2)
	assert.Equal(t, 2, round.Placed[0].TimeslotID)
	assert.Equal(t, 3, round.Placed[1].TimeslotID)
	assert.Empty(t, round.Leftovers)
}
