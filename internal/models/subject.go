package models

// Subject carries the weekly hour load of a course split into theory and practice components.
type Subject struct {
	ID       string `db:"subject_id" json:"subject_id"`
	Name     string `db:"subject_name" json:"subject_name"`
	Theory   int    `db:"theory" json:"theory"`
	Practice int    `db:"practice" json:"practice"`
	Credit   int    `db:"credit" json:"credit"`
}

// Registration declares that a student group must receive the full hour load of a subject.
type Registration struct {
	GroupID   string `db:"group_id" json:"group_id"`
	SubjectID string `db:"subject_id" json:"subject_id"`
}
