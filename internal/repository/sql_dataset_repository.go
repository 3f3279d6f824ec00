package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

// QueryObserver receives query timings, typically the metrics service.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// SQLDatasetRepository reads scheduling inputs from relational tables.
type SQLDatasetRepository struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewSQLDatasetRepository constructs the repository. observer may be nil.
func NewSQLDatasetRepository(db *sqlx.DB, observer QueryObserver) *SQLDatasetRepository {
	return &SQLDatasetRepository{db: db, observer: observer}
}

// Source describes where the data comes from.
func (r *SQLDatasetRepository) Source() string {
	return "database:" + r.db.DriverName()
}

// Load reads all seven tables in one pass. Row order in teaches and registers is
// significant, so both tables carry an ordinal id column and are read in id order.
func (r *SQLDatasetRepository) Load(ctx context.Context) (*models.Dataset, error) {
	ds := &models.Dataset{}

	queries := []struct {
		label string
		dest  interface{}
		query string
	}{
		{"teachers", &ds.Teachers, `SELECT teacher_id, teacher_name FROM teachers ORDER BY teacher_id`},
		{"rooms", &ds.Rooms, `SELECT room_id, room_name, room_type FROM rooms ORDER BY room_id`},
		{"student_groups", &ds.Groups, `SELECT group_id, group_name, advisor, student_count FROM student_groups ORDER BY group_id`},
		{"subjects", &ds.Subjects, `SELECT subject_id, subject_name, theory, practice, credit FROM subjects ORDER BY subject_id`},
		{"teaches", &ds.Teaches, `SELECT subject_id, teacher_id FROM teaches ORDER BY id`},
		{"timeslots", &ds.Timeslots, `SELECT timeslot_id, day, period, start_time AS "start", end_time AS "end" FROM timeslots ORDER BY timeslot_id`},
		{"registers", &ds.Registrations, `SELECT group_id, subject_id FROM registers ORDER BY id`},
	}

	for _, q := range queries {
		started := time.Now()
		if err := r.db.SelectContext(ctx, q.dest, q.query); err != nil {
			return nil, fmt.Errorf("load %s: %w", q.label, err)
		}
		if r.observer != nil {
			r.observer.ObserveDBQuery("dataset_"+q.label, time.Since(started))
		}
	}

	ds.SortTimeslots()
	return ds, nil
}
