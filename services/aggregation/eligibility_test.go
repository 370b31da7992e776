package aggregation

import (
	"testing"

	"classjournal_go/models"
)

func TestEligibility(t *testing.T) {
	schedules := []models.Schedule{
		{BaseModel: models.BaseModel{ID: 1}, Status: models.ScheduleConducted},
		{BaseModel: models.BaseModel{ID: 2}, Status: models.ScheduleNotConducted},
	}
	assignments := []models.Assignment{
		{BaseModel: models.BaseModel{ID: 10}, ScheduleID: 1, MaxScore: 10, PlannedFor: true},
		{BaseModel: models.BaseModel{ID: 20}, ScheduleID: 2, MaxScore: 10, PlannedFor: true},
		{BaseModel: models.BaseModel{ID: 30}, ScheduleID: 2, MaxScore: 10, PlannedFor: false},
	}

	tests := []struct {
		name     string
		grade    models.Grade
		eligible bool
	}{
		{
			name:     "no linked assignment always counts",
			grade:    models.Grade{Value: 4},
			eligible: true,
		},
		{
			name:     "unplanned assignment counts even before the lesson",
			grade:    models.Grade{Value: 4, AssignmentID: uintPtr(30)},
			eligible: true,
		},
		{
			name:     "planned assignment on a conducted lesson counts",
			grade:    models.Grade{Value: 4, AssignmentID: uintPtr(10)},
			eligible: true,
		},
		{
			name:     "planned assignment on a pending lesson is excluded",
			grade:    models.Grade{Value: 4, AssignmentID: uintPtr(20)},
			eligible: false,
		},
		{
			name:     "unresolvable assignment degrades to ineligible",
			grade:    models.Grade{Value: 4, AssignmentID: uintPtr(99)},
			eligible: false,
		},
	}

	idx := buildIndex(&Snapshot{Schedules: schedules, Assignments: assignments})
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := idx.Eligible(tc.grade); got != tc.eligible {
				t.Fatalf("expected eligible=%v, got %v", tc.eligible, got)
			}
		})
	}
}

func TestFilterEligible(t *testing.T) {
	schedules := []models.Schedule{
		{BaseModel: models.BaseModel{ID: 2}, Status: models.ScheduleNotConducted},
	}
	assignments := []models.Assignment{
		{BaseModel: models.BaseModel{ID: 20}, ScheduleID: 2, MaxScore: 10, PlannedFor: true},
	}
	grades := []models.Grade{
		{BaseModel: models.BaseModel{ID: 1}, Value: 4},
		{BaseModel: models.BaseModel{ID: 2}, Value: 5, AssignmentID: uintPtr(20)},
	}

	out := FilterEligible(grades, schedules, assignments)
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("expected only the unlinked grade to survive, got %+v", out)
	}
}
