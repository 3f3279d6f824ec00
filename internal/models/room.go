package models

import "strings"

// Room is a physical location. RoomType decides which session components it accepts.
type Room struct {
	ID   string `db:"room_id" json:"room_id"`
	Name string `db:"room_name" json:"room_name"`
	Type string `db:"room_type" json:"room_type"`
}

// AcceptsTheory reports whether the room is a lecture room.
func (r Room) AcceptsTheory() bool {
	return r.Type == "Theory" || r.Type == "Classroom"
}

// AcceptsPractice reports whether the room is a lab or practice room. Matching is case-sensitive.
func (r Room) AcceptsPractice() bool {
	return strings.Contains(r.Type, "Lab") || r.Type == "Practice" || strings.Contains(r.Type, "Computer")
}
