package aggregation

import (
	"errors"
	"testing"

	"classjournal_go/models"
)

func TestCheckDuplicate(t *testing.T) {
	schedules := map[uint]models.Schedule{
		1: {BaseModel: models.BaseModel{ID: 1}, Status: models.ScheduleConducted},
		2: {BaseModel: models.BaseModel{ID: 2}, Status: models.ScheduleNotConducted},
	}
	existing := []models.Grade{
		{BaseModel: models.BaseModel{ID: 55}, StudentID: 100, AssignmentID: uintPtr(10), ScheduleID: uintPtr(1)},
	}

	tests := []struct {
		name       string
		grade      models.Grade
		wantDup    bool
		existingID uint
	}{
		{
			name:       "same student and assignment on a conducted lesson",
			grade:      models.Grade{StudentID: 100, ScheduleID: uintPtr(1), AssignmentID: uintPtr(10)},
			wantDup:    true,
			existingID: 55,
		},
		{
			name:  "different student passes",
			grade: models.Grade{StudentID: 200, ScheduleID: uintPtr(1), AssignmentID: uintPtr(10)},
		},
		{
			name:  "different assignment passes",
			grade: models.Grade{StudentID: 100, ScheduleID: uintPtr(1), AssignmentID: uintPtr(11)},
		},
		{
			name:  "lesson not conducted yet passes",
			grade: models.Grade{StudentID: 100, ScheduleID: uintPtr(2), AssignmentID: uintPtr(10)},
		},
		{
			name:  "no assignment link passes",
			grade: models.Grade{StudentID: 100, ScheduleID: uintPtr(1)},
		},
		{
			name:  "no schedule link passes",
			grade: models.Grade{StudentID: 100, AssignmentID: uintPtr(10)},
		},
		{
			name:  "unknown schedule passes",
			grade: models.Grade{StudentID: 100, ScheduleID: uintPtr(9), AssignmentID: uintPtr(10)},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := CheckDuplicate(tc.grade, existing, schedules)
			if !tc.wantDup {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var dup *DuplicateGradeError
			if !errors.As(err, &dup) {
				t.Fatalf("expected DuplicateGradeError, got %v", err)
			}
			if dup.ExistingGradeID != tc.existingID {
				t.Fatalf("expected existing grade %d, got %d", tc.existingID, dup.ExistingGradeID)
			}
		})
	}
}
