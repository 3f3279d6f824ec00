package models

// Teacher represents an instructor who may be linked to subjects through TeachAssignment rows.
type Teacher struct {
	ID   string `db:"teacher_id" json:"teacher_id"`
	Name string `db:"teacher_name" json:"teacher_name"`
}

// TeachAssignment marks a teacher as qualified to teach a subject.
type TeachAssignment struct {
	SubjectID string `db:"subject_id" json:"subject_id"`
	TeacherID string `db:"teacher_id" json:"teacher_id"`
}
