package scheduler

import "github.com/noah-isme/class-scheduler-api/internal/models"

// IsAvailable reports whether no session in schedule occupies timeslotID with the same
// teacher, room or group.
func IsAvailable(schedule []models.ScheduledSession, timeslotID int, teacherID, roomID, groupID string) bool {
	for _, s := range schedule {
		if s.TimeslotID != timeslotID {
			continue
		}
		if s.TeacherID == teacherID || s.RoomID == roomID || s.GroupID == groupID {
			return false
		}
	}
	return true
}
