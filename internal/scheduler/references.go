package scheduler

import (
	"fmt"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

// ReferenceIssue is a row pointing at an entity that does not exist.
// Dangling rows are tolerated by the scheduler; they only explain why tasks end up unplaced.
type ReferenceIssue struct {
	Table  string `json:"table" yaml:"table"`
	Row    int    `json:"row" yaml:"row"`
	Column string `json:"column" yaml:"column"`
	Value  string `json:"value" yaml:"value"`
}

func (i ReferenceIssue) String() string {
	return fmt.Sprintf("%s row %d: %s %q not found", i.Table, i.Row, i.Column, i.Value)
}

// CheckReferences lists registrations and teach rows whose foreign keys do not resolve.
// Rows are numbered from 1 in input order.
func CheckReferences(ds *models.Dataset) []ReferenceIssue {
	if ds == nil {
		return nil
	}

	groups := make(map[string]struct{}, len(ds.Groups))
	for _, g := range ds.Groups {
		groups[g.ID] = struct{}{}
	}
	subjects := make(map[string]struct{}, len(ds.Subjects))
	for _, s := range ds.Subjects {
		subjects[s.ID] = struct{}{}
	}
	teachers := make(map[string]struct{}, len(ds.Teachers))
	for _, t := range ds.Teachers {
		teachers[t.ID] = struct{}{}
	}

	var issues []ReferenceIssue
	check := func(table string, row int, column, value string, set map[string]struct{}) {
		if _, ok := set[value]; !ok {
			issues = append(issues, ReferenceIssue{Table: table, Row: row, Column: column, Value: value})
		}
	}

	for i, r := range ds.Registrations {
		check("register", i+1, "group_id", r.GroupID, groups)
		check("register", i+1, "subject_id", r.SubjectID, subjects)
	}
	for i, t := range ds.Teaches {
		check("teach", i+1, "subject_id", t.SubjectID, subjects)
		check("teach", i+1, "teacher_id", t.TeacherID, teachers)
	}
	return issues
}
