package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, register string) string {
	t.Helper()
	files := map[string]string{
		"teacher.csv":       "teacher_id,teacher_name\nT1,Alice\n",
		"room.csv":          "room_id,room_name,room_type\nR1,101,Theory\n",
		"student_group.csv": "group_id,group_name,advisor,student_count\nG1,CS-1,Dr. X,30\n",
		"teach.csv":         "subject_id,teacher_id\nS1,T1\n",
		"timeslot.csv":      "timeslot_id,day,period,start,end\n1,Mon,1,08:00,08:50\n2,Mon,2,09:00,09:50\n3,Mon,3,10:00,10:50\n",
		"register.csv":      register,
		"subject.csv":       "subject_id,subject_name,theory,practice,credit\nS1,Programming,2,0,2\n",
	}
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateJSON(t *testing.T) {
	dir := writeDataset(t, "group_id,subject_id\nG1,S1\n")

	out, err := runCLI(t, "generate", "--data", dir)
	require.NoError(t, err)

	var res generateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Sessions, 2)
	assert.Equal(t, 1, res.Sessions[0].TimeslotID)
	assert.Equal(t, 2, res.Sessions[1].TimeslotID)
	assert.Equal(t, "Alice", res.Sessions[0].TeacherName)
	assert.Empty(t, res.Unplaced)
	assert.Equal(t, "1,2,3,4,6,7,8;9,10,11,12", res.Windows)
}

func TestGenerateCSVToFile(t *testing.T) {
	dir := writeDataset(t, "group_id,subject_id\nG1,S1\n")
	target := filepath.Join(t.TempDir(), "schedule.csv")

	_, err := runCLI(t, "generate", "--data", dir, "--format", "csv", "--out", target)
	require.NoError(t, err)

	body, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Timeslot")
	assert.Contains(t, string(body), "Programming")
}

type failingClose struct {
	bytes.Buffer
}

func (f *failingClose) Close() error { return errors.New("disk full") }

func TestGenerateReportsCloseError(t *testing.T) {
	dir := writeDataset(t, "group_id,subject_id\nG1,S1\n")
	sink := &failingClose{}
	original := createOutput
	createOutput = func(string) (io.WriteCloser, error) { return sink, nil }
	t.Cleanup(func() { createOutput = original })

	_, err := runCLI(t, "generate", "--data", dir, "--out", "schedule.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close schedule.json: disk full")
	assert.Contains(t, sink.String(), "sessions")
}

func TestGenerateRejectsBadFlags(t *testing.T) {
	dir := writeDataset(t, "group_id,subject_id\nG1,S1\n")

	_, err := runCLI(t, "generate", "--data", dir, "--format", "xml")
	assert.Error(t, err)

	_, err = runCLI(t, "generate", "--data", dir, "--windows", "1,x")
	assert.Error(t, err)
}

func TestValidateReportsDanglingReferences(t *testing.T) {
	clean := writeDataset(t, "group_id,subject_id\nG1,S1\n")
	out, err := runCLI(t, "validate", "--data", clean, "--format", "json")
	require.NoError(t, err)

	var report validateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 3, report.Counts.Timeslots)
	assert.Equal(t, 1, report.Tasks)
	assert.Empty(t, report.Issues)

	broken := writeDataset(t, "group_id,subject_id\nG1,S1\nG1,S9\n")
	out, err = runCLI(t, "validate", "--data", broken, "--format", "json")
	require.Error(t, err)
	assert.Contains(t, out, "S9")
}
