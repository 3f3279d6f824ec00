package models

// StudentGroup is a cohort of students attending sessions together.
type StudentGroup struct {
	ID           string  `db:"group_id" json:"group_id"`
	Name         string  `db:"group_name" json:"group_name"`
	Advisor      string  `db:"advisor" json:"advisor"`
	StudentCount float64 `db:"student_count" json:"student_count"`
}
