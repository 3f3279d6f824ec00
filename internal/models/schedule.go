package models

// ComponentType distinguishes the theory and practice parts of a subject.
type ComponentType string

const (
	ComponentTheory   ComponentType = "Theory"
	ComponentPractice ComponentType = "Practice"
)

// Task is one subject component owed to a student group, to be placed as a contiguous block.
type Task struct {
	Seq       int           `json:"seq"`
	GroupID   string        `json:"group_id"`
	SubjectID string        `json:"subject_id"`
	Type      ComponentType `json:"type"`
	Hours     int           `json:"hours"`
	Subject   Subject       `json:"-"`
}

// ScheduledSession is a single occupied timeslot of a placed task.
type ScheduledSession struct {
	GroupID     string        `json:"group_id" yaml:"group_id"`
	GroupName   string        `json:"group_name" yaml:"group_name"`
	Advisor     string        `json:"advisor" yaml:"advisor"`
	SubjectID   string        `json:"subject_id" yaml:"subject_id"`
	SubjectName string        `json:"subject_name" yaml:"subject_name"`
	SubjectType ComponentType `json:"subject_type" yaml:"subject_type"`
	Theory      int           `json:"theory" yaml:"theory"`
	Practice    int           `json:"practice" yaml:"practice"`
	Credit      int           `json:"credit" yaml:"credit"`
	TeacherID   string        `json:"teacher_id" yaml:"teacher_id"`
	TeacherName string        `json:"teacher" yaml:"teacher"`
	RoomID      string        `json:"room_id" yaml:"room_id"`
	RoomName    string        `json:"room" yaml:"room"`
	TimeslotID  int           `json:"timeslot_id" yaml:"timeslot_id"`
	Day         string        `json:"day" yaml:"day"`
	Time        string        `json:"time" yaml:"time"`
	Period      int           `json:"period" yaml:"period"`
}

// PlacementStatus is the final state of a task after all passes.
type PlacementStatus string

const (
	PlacementPlaced   PlacementStatus = "placed"
	PlacementUnplaced PlacementStatus = "unplaced"
)

// UnplacedReason explains why a task could not be placed.
type UnplacedReason string

const (
	ReasonNoTeacher      UnplacedReason = "no_teacher"
	ReasonNoFeasibleSlot UnplacedReason = "no_feasible_slot"
)

// TaskOutcome records what happened to one task.
// Pass is the 1-based index of the pass that placed the task, or of the last pass that tried it.
type TaskOutcome struct {
	Task     Task            `json:"task"`
	Status   PlacementStatus `json:"status"`
	Reason   UnplacedReason  `json:"reason,omitempty"`
	Pass     int             `json:"pass"`
	Sessions int             `json:"sessions"`
}
