package models

import "fmt"

// Timeslot is one teaching period on a given day.
type Timeslot struct {
	ID     int    `db:"timeslot_id" json:"timeslot_id"`
	Day    string `db:"day" json:"day"`
	Period int    `db:"period" json:"period"`
	Start  string `db:"start" json:"start"`
	End    string `db:"end" json:"end"`
}

// TimeRange formats the slot as "start - end".
func (t Timeslot) TimeRange() string {
	return fmt.Sprintf("%s - %s", t.Start, t.End)
}

// Follows reports whether t directly follows prev: same day and the next period.
func (t Timeslot) Follows(prev Timeslot) bool {
	return t.Day == prev.Day && t.Period == prev.Period+1
}
