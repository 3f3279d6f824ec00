package scheduler

import (
	"sort"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

// planner holds the lookups a run needs. It never mutates the dataset.
type planner struct {
	timeslots []models.Timeslot
	rooms     []models.Room
	teaches   []models.TeachAssignment
	teachers  map[string]models.Teacher
	groups    map[string]models.StudentGroup
}

func newPlanner(ds *models.Dataset) *planner {
	p := &planner{
		teachers: make(map[string]models.Teacher),
		groups:   make(map[string]models.StudentGroup),
	}
	if ds == nil {
		return p
	}
	p.timeslots = append([]models.Timeslot(nil), ds.Timeslots...)
	sort.SliceStable(p.timeslots, func(i, j int) bool {
		return p.timeslots[i].ID < p.timeslots[j].ID
	})
	p.rooms = ds.Rooms
	p.teaches = ds.Teaches
	for _, t := range ds.Teachers {
		if _, exists := p.teachers[t.ID]; !exists {
			p.teachers[t.ID] = t
		}
	}
	for _, g := range ds.Groups {
		if _, exists := p.groups[g.ID]; !exists {
			p.groups[g.ID] = g
		}
	}
	return p
}

// teacherFor returns the first qualified teacher in assignment order.
func (p *planner) teacherFor(subjectID string) (models.Teacher, bool) {
	for _, assignment := range p.teaches {
		if assignment.SubjectID != subjectID {
			continue
		}
		if teacher, ok := p.teachers[assignment.TeacherID]; ok {
			return teacher, true
		}
	}
	return models.Teacher{}, false
}

// roomsFor filters rooms by component. An empty filter result falls back to every room,
// which can put a practice block into a lecture room.
func (p *planner) roomsFor(component models.ComponentType) []models.Room {
	matches := make([]models.Room, 0, len(p.rooms))
	for _, room := range p.rooms {
		if component == models.ComponentTheory && room.AcceptsTheory() {
			matches = append(matches, room)
		}
		if component == models.ComponentPractice && room.AcceptsPractice() {
			matches = append(matches, room)
		}
	}
	if len(matches) == 0 {
		return p.rooms
	}
	return matches
}

// window returns the timeslots whose period is allowed, in identifier order.
func (p *planner) window(allowed Window) []models.Timeslot {
	slots := make([]models.Timeslot, 0, len(p.timeslots))
	for _, slot := range p.timeslots {
		if allowed.Contains(slot.Period) {
			slots = append(slots, slot)
		}
	}
	return slots
}

// place searches rooms then start positions for the first contiguous, conflict-free block.
func (p *planner) place(task models.Task, window []models.Timeslot, committed, tentative []models.ScheduledSession) ([]models.ScheduledSession, models.UnplacedReason) {
	teacher, ok := p.teacherFor(task.SubjectID)
	if !ok {
		return nil, models.ReasonNoTeacher
	}
	if task.Hours <= 0 {
		return nil, models.ReasonNoFeasibleSlot
	}

	for _, room := range p.roomsFor(task.Type) {
		for i := 0; i+task.Hours <= len(window); i++ {
			block := window[i : i+task.Hours]
			if p.bookable(block, teacher.ID, room.ID, task.GroupID, committed, tentative) {
				return p.sessions(task, teacher, room, block), ""
			}
		}
	}
	return nil, models.ReasonNoFeasibleSlot
}

func (p *planner) bookable(block []models.Timeslot, teacherID, roomID, groupID string, committed, tentative []models.ScheduledSession) bool {
	for h, slot := range block {
		if h > 0 && !slot.Follows(block[h-1]) {
			return false
		}
		if !IsAvailable(committed, slot.ID, teacherID, roomID, groupID) {
			return false
		}
		if !IsAvailable(tentative, slot.ID, teacherID, roomID, groupID) {
			return false
		}
	}
	return true
}

func (p *planner) sessions(task models.Task, teacher models.Teacher, room models.Room, block []models.Timeslot) []models.ScheduledSession {
	groupName, advisor := task.GroupID, "-"
	if group, ok := p.groups[task.GroupID]; ok {
		if group.Name != "" {
			groupName = group.Name
		}
		if group.Advisor != "" {
			advisor = group.Advisor
		}
	}

	out := make([]models.ScheduledSession, 0, len(block))
	for _, slot := range block {
		out = append(out, models.ScheduledSession{
			GroupID:     task.GroupID,
			GroupName:   groupName,
			Advisor:     advisor,
			SubjectID:   task.SubjectID,
			SubjectName: task.Subject.Name,
			SubjectType: task.Type,
			Theory:      task.Subject.Theory,
			Practice:    task.Subject.Practice,
			Credit:      task.Subject.Credit,
			TeacherID:   teacher.ID,
			TeacherName: teacher.Name,
			RoomID:      room.ID,
			RoomName:    room.Name,
			TimeslotID:  slot.ID,
			Day:         slot.Day,
			Time:        slot.TimeRange(),
			Period:      slot.Period,
		})
	}
	return out
}
