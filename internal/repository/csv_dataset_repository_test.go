package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

func writeDatasetDir(t *testing.T, overrides map[string]string) string {
	t.Helper()
	files := map[string]string{
		TeacherFile:      "\ufeffteacher_id,teacher_name\nT1,Alice\nT2,Bob\n",
		RoomFile:         "room_id,room_name,room_type\nR1,101,Theory\nL1,Lab A,Computer Lab\n",
		StudentGroupFile: "group_id , group_name,advisor,student_count\nG1,CS-1,Dr. X,32\nG2,CS-2,,\n",
		TeachFile:        "subject_id,teacher_id\nS1,T1\nS2,T2\n",
		TimeslotFile:     "timeslot_id,day,period,start,end\n2,Mon,2,09:00,09:50\n1,Mon,1,08:00,08:50\n",
		RegisterFile:     "group_id,subject_id\nG1,S1\nG2,S2\n",
		SubjectFile:      "subject_id,subject_name,theory,practice,credit\nS1,Programming,2,3,3\nS2,English, 1 ,,1\n",
	}
	for name, content := range overrides {
		files[name] = content
	}
	dir := t.TempDir()
	for name, content := range files {
		if content == "" {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestCSVDatasetRepositoryLoad(t *testing.T) {
	dir := writeDatasetDir(t, nil)
	repo := NewCSVDatasetRepository(dir)

	ds, err := repo.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []models.Teacher{{ID: "T1", Name: "Alice"}, {ID: "T2", Name: "Bob"}}, ds.Teachers)
	assert.Equal(t, "Computer Lab", ds.Rooms[1].Type)
	assert.Equal(t, models.StudentGroup{ID: "G1", Name: "CS-1", Advisor: "Dr. X", StudentCount: 32}, ds.Groups[0])
	assert.Equal(t, float64(0), ds.Groups[1].StudentCount)
	assert.Equal(t, 1, ds.Timeslots[0].ID, "timeslots sorted by id")
	assert.Equal(t, "08:00", ds.Timeslots[0].Start)
	assert.Equal(t, models.Subject{ID: "S1", Name: "Programming", Theory: 2, Practice: 3, Credit: 3}, ds.Subjects[0])
	assert.Equal(t, models.Subject{ID: "S2", Name: "English", Theory: 1, Practice: 0, Credit: 1}, ds.Subjects[1])
	assert.Len(t, ds.Registrations, 2)
	assert.Len(t, ds.Teaches, 2)
	assert.Equal(t, "csv:"+dir, repo.Source())
}

func TestCSVDatasetRepositoryMissingFile(t *testing.T) {
	dir := writeDatasetDir(t, map[string]string{RoomFile: ""})

	_, err := NewCSVDatasetRepository(dir).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), RoomFile)
}

func TestCSVDatasetRepositoryInvalidNumber(t *testing.T) {
	dir := writeDatasetDir(t, map[string]string{
		SubjectFile: "subject_id,subject_name,theory,practice,credit\nS1,Programming,two,3,3\n",
	})

	_, err := NewCSVDatasetRepository(dir).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subject.csv line 2: column theory")
}

func TestCSVDatasetRepositoryWholeNumberDecimals(t *testing.T) {
	dir := writeDatasetDir(t, map[string]string{
		SubjectFile: "subject_id,subject_name,theory,practice,credit\nS1,Programming,3.0 ,2 ,3\n",
	})

	ds, err := NewCSVDatasetRepository(dir).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Subjects[0].Theory)
	assert.Equal(t, 2, ds.Subjects[0].Practice)

	dir = writeDatasetDir(t, map[string]string{
		SubjectFile: "subject_id,subject_name,theory,practice,credit\nS1,Programming,2.5,0,3\n",
	})
	_, err = NewCSVDatasetRepository(dir).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid integer "2.5"`)
}

func TestCSVDatasetRepositoryCancelled(t *testing.T) {
	dir := writeDatasetDir(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVDatasetRepository(dir).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
