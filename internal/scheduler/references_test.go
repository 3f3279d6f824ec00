package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

func TestCheckReferences(t *testing.T) {
	ds := &models.Dataset{
		Teachers: []models.Teacher{{ID: "T1"}},
		Groups:   []models.StudentGroup{{ID: "G1"}},
		Subjects: []models.Subject{{ID: "S1"}},
		Registrations: []models.Registration{
			{GroupID: "G1", SubjectID: "S1"},
			{GroupID: "G9", SubjectID: "S1"},
		},
		Teaches: []models.TeachAssignment{
			{SubjectID: "S1", TeacherID: "T1"},
			{SubjectID: "S2", TeacherID: "T7"},
		},
	}

	issues := CheckReferences(ds)

	require.Len(t, issues, 3)
	assert.Equal(t, ReferenceIssue{Table: "register", Row: 2, Column: "group_id", Value: "G9"}, issues[0])
	assert.Equal(t, "teach row 2: subject_id \"S2\" not found", issues[1].String())
	assert.Equal(t, "T7", issues[2].Value)
	assert.Empty(t, CheckReferences(nil))
}
