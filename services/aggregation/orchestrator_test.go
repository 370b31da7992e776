package aggregation

import (
	"testing"

	"classjournal_go/models"
)

func TestAggregateFivePoint(t *testing.T) {
	snap := Snapshot{
		GradingSystem: models.GradingFivePoint,
		StudentIDs:    []uint{100, 200},
		SubjectIDs:    []uint{7},
		Grades: []models.Grade{
			{BaseModel: models.BaseModel{ID: 1}, StudentID: 100, SubjectID: 7, Value: 5, GradeType: "test"},
			{BaseModel: models.BaseModel{ID: 2}, StudentID: 100, SubjectID: 7, Value: 3, GradeType: "homework"},
		},
	}

	report, err := Aggregate(snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report[100]["7"].Average != "4.3" {
		t.Fatalf("expected 4.3, got %s", report[100]["7"].Average)
	}
	if report[100][OverallKey].Average != "4.3" {
		t.Fatalf("overall should cover all subjects, got %s", report[100][OverallKey].Average)
	}
	// Student with no grades still gets a row of placeholders
	if report[200]["7"].Average != "-" || report[200][OverallKey].Average != "-" {
		t.Fatalf("expected placeholders for ungraded student, got %+v", report[200])
	}
}

func TestAggregateCumulative(t *testing.T) {
	snap := Snapshot{
		GradingSystem: models.GradingCumulative,
		StudentIDs:    []uint{100},
		SubjectIDs:    []uint{7, 8},
		Schedules: []models.Schedule{
			{BaseModel: models.BaseModel{ID: 1}, ClassID: 1, SubjectID: 7, Status: models.ScheduleConducted, ScheduleDate: datePtr(2026, 2, 2)},
		},
		Assignments: []models.Assignment{
			{BaseModel: models.BaseModel{ID: 10}, ScheduleID: 1, SubjectID: 7, ClassID: 1, MaxScore: 10},
		},
		Grades: []models.Grade{
			{BaseModel: models.BaseModel{ID: 1}, StudentID: 100, SubjectID: 7, Value: 8, ScheduleID: uintPtr(1), AssignmentID: uintPtr(10)},
		},
	}

	report, err := Aggregate(snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := report[100]["7"]
	if res.Average != "8.0" || res.Percentage != "80.0%" {
		t.Fatalf("expected 8.0 / 80.0%%, got %+v", res)
	}
	// Untouched subject shows the cumulative zero result
	if report[100]["8"].Percentage != "0%" {
		t.Fatalf("expected 0%% for untouched subject, got %+v", report[100]["8"])
	}
	// Overall uses the same algorithm over the full eligible set
	if report[100][OverallKey].Percentage != "80.0%" {
		t.Fatalf("expected 80.0%% overall, got %+v", report[100][OverallKey])
	}
}

func TestAggregateExcludesPlannedPendingGrades(t *testing.T) {
	snap := Snapshot{
		GradingSystem: models.GradingCumulative,
		StudentIDs:    []uint{100},
		SubjectIDs:    []uint{7},
		Schedules: []models.Schedule{
			{BaseModel: models.BaseModel{ID: 1}, ClassID: 1, SubjectID: 7, Status: models.ScheduleNotConducted, ScheduleDate: datePtr(2026, 2, 9)},
		},
		Assignments: []models.Assignment{
			{BaseModel: models.BaseModel{ID: 10}, ScheduleID: 1, SubjectID: 7, ClassID: 1, MaxScore: 10, PlannedFor: true},
		},
		Grades: []models.Grade{
			{BaseModel: models.BaseModel{ID: 1}, StudentID: 100, SubjectID: 7, Value: 9, ScheduleID: uintPtr(1), AssignmentID: uintPtr(10)},
		},
	}

	report, err := Aggregate(snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report[100]["7"].Percentage != "0%" {
		t.Fatalf("pre-staged grade must not move aggregates, got %+v", report[100]["7"])
	}
}

func TestAggregateSubgroupView(t *testing.T) {
	snap := Snapshot{
		GradingSystem: models.GradingFivePoint,
		StudentIDs:    []uint{100},
		SubjectIDs:    []uint{7},
		Schedules: []models.Schedule{
			{BaseModel: models.BaseModel{ID: 1}, ClassID: 1, SubjectID: 7, SubgroupID: uintPtr(1), ScheduleDate: datePtr(2026, 2, 2)},
			{BaseModel: models.BaseModel{ID: 2}, ClassID: 1, SubjectID: 7, SubgroupID: uintPtr(2), ScheduleDate: datePtr(2026, 2, 2)},
		},
		Memberships: []models.SubgroupMember{
			{SubgroupID: 1, StudentID: 100},
		},
		Grades: []models.Grade{
			{BaseModel: models.BaseModel{ID: 1}, StudentID: 100, SubjectID: 7, Value: 5, GradeType: "test", ScheduleID: uintPtr(1)},
			// Grade earned on the other subgroup's lesson must not leak in
			{BaseModel: models.BaseModel{ID: 2}, StudentID: 100, SubjectID: 7, Value: 2, GradeType: "test", ScheduleID: uintPtr(2)},
		},
		View: View{Kind: ViewSubgroup, SubgroupID: 1},
	}

	report, err := Aggregate(snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report[100]["7"].Average != "5.0" {
		t.Fatalf("expected only subgroup 1 grades to count, got %+v", report[100]["7"])
	}
}

func TestAggregateUnknownGradingSystem(t *testing.T) {
	if _, err := Aggregate(Snapshot{GradingSystem: "letters"}); err == nil {
		t.Fatalf("expected error for unknown grading system")
	}
}
