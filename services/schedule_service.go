package services

import (
	"fmt"
	"strings"
	"time"

	"classjournal_go/database"
	"classjournal_go/models"

	"github.com/sirupsen/logrus"
)

// ScheduleService owns the lesson lifecycle. The only state machine here is
// not_conducted -> conducted, gated by wall-clock time; the reverse
// transition is allowed administratively with no gating.
type ScheduleService struct {
	now func() time.Time
}

func NewScheduleService() *ScheduleService {
	return &ScheduleService{now: time.Now}
}

// ErrLessonNotOver rejects conducting a lesson before it has ended.
var ErrLessonNotOver = fmt.Errorf("lesson cannot be marked conducted before its end time")

// SetStatus transitions a schedule between not_conducted and conducted.
func (ss *ScheduleService) SetStatus(scheduleID uint, status string) (*models.Schedule, error) {
	if status != models.ScheduleConducted && status != models.ScheduleNotConducted {
		return nil, fmt.Errorf("unknown schedule status %q", status)
	}

	var schedule models.Schedule
	if err := database.DB.First(&schedule, scheduleID).Error; err != nil {
		return nil, err
	}

	if status == models.ScheduleConducted && schedule.Status == models.ScheduleNotConducted {
		if err := ss.checkConductable(&schedule); err != nil {
			return nil, err
		}
	}

	if err := database.DB.Model(&schedule).Update("status", status).Error; err != nil {
		return nil, err
	}
	schedule.Status = status
	return &schedule, nil
}

// checkConductable rejects the transition while the lesson's end time is
// still in the future. Past dates are always eligible; a lesson with no
// usable end time is gated on its date alone.
func (ss *ScheduleService) checkConductable(schedule *models.Schedule) error {
	if schedule.ScheduleDate == nil {
		return nil
	}
	now := ss.now()
	date := *schedule.ScheduleDate

	hour, minute, err := parseHourMinute(schedule.EndTime)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"schedule_id": schedule.ID,
			"end_time":    schedule.EndTime,
		}).Warn("Unparseable lesson end time, gating on date only")
		if date.Year() > now.Year() ||
			(date.Year() == now.Year() && date.YearDay() > now.YearDay()) {
			return ErrLessonNotOver
		}
		return nil
	}

	end := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, now.Location())
	if now.Before(end) {
		return ErrLessonNotOver
	}
	return nil
}

// parseHourMinute extracts the hour and minute from the time formats that
// show up in schedule rows: "08:30", "08:30:00", ISO datetimes and MySQL
// datetimes.
func parseHourMinute(value string) (int, int, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, 0, fmt.Errorf("empty time value")
	}

	// Datetime forms: keep only the time-of-day part
	if idx := strings.IndexAny(s, "T "); idx >= 0 {
		s = s[idx+1:]
	}
	// Trailing zone markers ("Z", "+07:00")
	if idx := strings.IndexAny(s, "Z+"); idx >= 0 {
		s = s[:idx]
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("invalid time value %q", value)
	}

	var hour, minute int
	if _, err := fmt.Sscanf(parts[0], "%d", &hour); err != nil {
		return 0, 0, fmt.Errorf("invalid hour in %q", value)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &minute); err != nil {
		return 0, 0, fmt.Errorf("invalid minute in %q", value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time out of range in %q", value)
	}
	return hour, minute, nil
}
