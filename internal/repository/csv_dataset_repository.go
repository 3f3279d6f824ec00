package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

// CSV file names expected in the dataset directory.
const (
	TeacherFile      = "teacher.csv"
	RoomFile         = "room.csv"
	StudentGroupFile = "student_group.csv"
	TeachFile        = "teach.csv"
	TimeslotFile     = "timeslot.csv"
	RegisterFile     = "register.csv"
	SubjectFile      = "subject.csv"
)

const utf8BOM = "\ufeff"

// CSVDatasetRepository loads scheduling inputs from a directory of CSV exports.
type CSVDatasetRepository struct {
	dir string
}

// NewCSVDatasetRepository creates a repository reading from dir.
func NewCSVDatasetRepository(dir string) *CSVDatasetRepository {
	return &CSVDatasetRepository{dir: dir}
}

// Source describes where the data comes from.
func (r *CSVDatasetRepository) Source() string {
	return "csv:" + r.dir
}

// Load reads all seven tables. Timeslots are returned sorted by id.
func (r *CSVDatasetRepository) Load(ctx context.Context) (*models.Dataset, error) {
	ds := &models.Dataset{}

	steps := []struct {
		file  string
		apply func(row csvRow) error
	}{
		{TeacherFile, func(row csvRow) error {
			ds.Teachers = append(ds.Teachers, models.Teacher{ID: row.str("teacher_id"), Name: row.str("teacher_name")})
			return nil
		}},
		{RoomFile, func(row csvRow) error {
			ds.Rooms = append(ds.Rooms, models.Room{ID: row.str("room_id"), Name: row.str("room_name"), Type: row.str("room_type")})
			return nil
		}},
		{StudentGroupFile, func(row csvRow) error {
			count, err := row.float("student_count")
			if err != nil {
				return err
			}
			ds.Groups = append(ds.Groups, models.StudentGroup{
				ID:           row.str("group_id"),
				Name:         row.str("group_name"),
				Advisor:      row.str("advisor"),
				StudentCount: count,
			})
			return nil
		}},
		{TeachFile, func(row csvRow) error {
			ds.Teaches = append(ds.Teaches, models.TeachAssignment{SubjectID: row.str("subject_id"), TeacherID: row.str("teacher_id")})
			return nil
		}},
		{TimeslotFile, func(row csvRow) error {
			id, err := row.int("timeslot_id")
			if err != nil {
				return err
			}
			period, err := row.int("period")
			if err != nil {
				return err
			}
			ds.Timeslots = append(ds.Timeslots, models.Timeslot{
				ID:     id,
				Day:    row.str("day"),
				Period: period,
				Start:  row.str("start"),
				End:    row.str("end"),
			})
			return nil
		}},
		{RegisterFile, func(row csvRow) error {
			ds.Registrations = append(ds.Registrations, models.Registration{GroupID: row.str("group_id"), SubjectID: row.str("subject_id")})
			return nil
		}},
		{SubjectFile, func(row csvRow) error {
			subject := models.Subject{ID: row.str("subject_id"), Name: row.str("subject_name")}
			var err error
			if subject.Theory, err = row.int("theory"); err != nil {
				return err
			}
			if subject.Practice, err = row.int("practice"); err != nil {
				return err
			}
			if subject.Credit, err = row.int("credit"); err != nil {
				return err
			}
			ds.Subjects = append(ds.Subjects, subject)
			return nil
		}},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.readFile(step.file, step.apply); err != nil {
			return nil, err
		}
	}

	ds.SortTimeslots()
	return ds, nil
}

func (r *CSVDatasetRepository) readFile(name string, apply func(row csvRow) error) error {
	f, err := os.Open(filepath.Join(r.dir, name))
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("read %s header: %w", name, err)
	}
	columns := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		if _, exists := columns[h]; !exists {
			columns[h] = i
		}
	}

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("read %s line %d: %w", name, line, err)
		}
		row := csvRow{file: name, line: line, columns: columns, values: record}
		if err := apply(row); err != nil {
			return err
		}
	}
}

type csvRow struct {
	file    string
	line    int
	columns map[string]int
	values  []string
}

func (r csvRow) str(column string) string {
	idx, ok := r.columns[column]
	if !ok || idx >= len(r.values) {
		return ""
	}
	return r.values[idx]
}

// int parses a numeric column; a blank cell reads as zero. Whole-number decimals
// such as "3.0" are accepted, fractional values are not.
func (r csvRow) int(column string) (int, error) {
	raw := strings.TrimSpace(r.str(column))
	if raw == "" {
		return 0, nil
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%s line %d: column %s: invalid integer %q", r.file, r.line, column, raw)
	}
	return int(f), nil
}

func (r csvRow) float(column string) (float64, error) {
	raw := strings.TrimSpace(r.str(column))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s line %d: column %s: invalid number %q", r.file, r.line, column, raw)
	}
	return v, nil
}
