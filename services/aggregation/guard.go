package aggregation

import (
	"fmt"

	"classjournal_go/models"
)

// DuplicateGradeError signals that a grade already exists for the same
// (student, assignment) pair on a conducted lesson. It carries the existing
// grade's id so callers can surface it instead of a generic failure.
type DuplicateGradeError struct {
	ExistingGradeID uint
}

func (e *DuplicateGradeError) Error() string {
	return fmt.Sprintf("grade already recorded for this assignment (existing grade %d)", e.ExistingGradeID)
}

// CheckDuplicate decides whether a new grade write must be rejected. The
// check only applies when the grade targets both a lesson and an assignment
// and the lesson has been conducted; before that, re-entry is a normal
// correction flow. The caller is responsible for running this inside the
// same transaction as the insert so two concurrent submissions cannot both
// pass.
func CheckDuplicate(newGrade models.Grade, existing []models.Grade, schedules map[uint]models.Schedule) error {
	if newGrade.ScheduleID == nil || newGrade.AssignmentID == nil {
		return nil
	}
	s, ok := schedules[*newGrade.ScheduleID]
	if !ok || s.Status != models.ScheduleConducted {
		return nil
	}
	for _, g := range existing {
		if g.StudentID != newGrade.StudentID {
			continue
		}
		if g.AssignmentID != nil && *g.AssignmentID == *newGrade.AssignmentID {
			return &DuplicateGradeError{ExistingGradeID: g.ID}
		}
	}
	return nil
}
