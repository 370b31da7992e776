package aggregation

import (
	"sort"
	"time"

	"classjournal_go/models"
)

// LessonSlot is one calendar occurrence of a lesson with the assignments
// attached to it. Assignments are attached regardless of their own subgroup
// scoping; the caller decides which ones are relevant for its view.
type LessonSlot struct {
	ScheduleID  uint                `json:"schedule_id"`
	Date        time.Time           `json:"date"`
	StartTime   string              `json:"start_time"`
	EndTime     string              `json:"end_time"`
	Status      string              `json:"status"`
	Assignments []models.Assignment `json:"assignments"`
}

// ResolveLessonSlots builds the ordered lesson sequence for a class+subject,
// optionally narrowed to one subgroup's journal. Schedules without a date
// are dropped rather than erroring. Ordering is ascending by date, then by
// start time compared as "HH:MM" strings; a missing start time on either
// side compares equal so the incoming order is preserved.
func ResolveLessonSlots(classID, subjectID uint, subgroupID *uint, schedules []models.Schedule, assignments []models.Assignment) []LessonSlot {
	bySchedule := make(map[uint][]models.Assignment)
	for _, a := range assignments {
		bySchedule[a.ScheduleID] = append(bySchedule[a.ScheduleID], a)
	}

	slots := make([]LessonSlot, 0, len(schedules))
	for _, s := range schedules {
		if s.SubjectID != subjectID || s.ClassID != classID {
			continue
		}
		if s.ScheduleDate == nil || s.ScheduleDate.IsZero() {
			continue
		}
		// Subgroup journals show whole-class lessons plus their own; a
		// lesson held for a different subgroup never appears.
		if subgroupID != nil && s.SubgroupID != nil && *s.SubgroupID != *subgroupID {
			continue
		}
		slots = append(slots, LessonSlot{
			ScheduleID:  s.ID,
			Date:        *s.ScheduleDate,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			Status:      s.Status,
			Assignments: bySchedule[s.ID],
		})
	}

	sort.SliceStable(slots, func(i, j int) bool {
		di, dj := slots[i].Date, slots[j].Date
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		if slots[i].StartTime == "" || slots[j].StartTime == "" {
			return false
		}
		return slots[i].StartTime < slots[j].StartTime
	})

	return slots
}
