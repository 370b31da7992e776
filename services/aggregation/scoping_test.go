package aggregation

import (
	"testing"
	"time"

	"classjournal_go/models"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// A subject split into two subgroups: schedules 1 and 2 belong to subgroups
// A(1) and B(2), schedule 3 is a whole-class lesson.
func scopingFixture() ([]models.Schedule, []models.SubgroupMember) {
	schedules := []models.Schedule{
		{BaseModel: models.BaseModel{ID: 1}, ClassID: 1, SubjectID: 7, SubgroupID: uintPtr(1), ScheduleDate: datePtr(2026, 2, 2)},
		{BaseModel: models.BaseModel{ID: 2}, ClassID: 1, SubjectID: 7, SubgroupID: uintPtr(2), ScheduleDate: datePtr(2026, 2, 2)},
		{BaseModel: models.BaseModel{ID: 3}, ClassID: 1, SubjectID: 7, ScheduleDate: datePtr(2026, 2, 3)},
	}
	memberships := []models.SubgroupMember{
		{SubgroupID: 1, StudentID: 100},
		{SubgroupID: 2, StudentID: 200},
	}
	return schedules, memberships
}

func TestSubgroupViewScheduleLinkageWins(t *testing.T) {
	schedules, memberships := scopingFixture()
	// Student from subgroup A graded on a subgroup B lesson
	grades := []models.Grade{
		{BaseModel: models.BaseModel{ID: 1}, StudentID: 100, SubjectID: 7, ScheduleID: uintPtr(2)},
	}

	viewA := GradesForSubgroupView(1, grades, schedules, memberships)
	if len(viewA) != 0 {
		t.Fatalf("grade on a B lesson must not appear in A's view, got %d grades", len(viewA))
	}
	viewB := GradesForSubgroupView(2, grades, schedules, memberships)
	if len(viewB) != 1 {
		t.Fatalf("grade on a B lesson must appear in B's view, got %d grades", len(viewB))
	}
	main := GradesForMainView(grades, schedules, memberships)
	if len(main) != 0 {
		t.Fatalf("grade on a subgroup lesson must not appear in the main view, got %d grades", len(main))
	}
}

func TestSubgroupViewFallbackSignals(t *testing.T) {
	schedules, memberships := scopingFixture()

	tests := []struct {
		name   string
		grade  models.Grade
		inA    bool
		inMain bool
	}{
		{
			name:  "tagged grade for a member",
			grade: models.Grade{BaseModel: models.BaseModel{ID: 1}, StudentID: 100, SubjectID: 7, SubgroupID: uintPtr(1)},
			inA:   true,
		},
		{
			name:  "unlinked untagged grade for a member defaults into the subgroup",
			grade: models.Grade{BaseModel: models.BaseModel{ID: 2}, StudentID: 100, SubjectID: 7},
			inA:   true,
		},
		{
			name:   "unlinked grade for a non-member stays in the main view",
			grade:  models.Grade{BaseModel: models.BaseModel{ID: 3}, StudentID: 300, SubjectID: 7},
			inMain: true,
		},
		{
			name:   "whole-class lesson grade for a member stays in the main view",
			grade:  models.Grade{BaseModel: models.BaseModel{ID: 4}, StudentID: 100, SubjectID: 7, ScheduleID: uintPtr(3)},
			inMain: true,
		},
		{
			name:  "tagged grade for a non-member is not pulled into the subgroup",
			grade: models.Grade{BaseModel: models.BaseModel{ID: 5}, StudentID: 300, SubjectID: 7, SubgroupID: uintPtr(1)},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			grades := []models.Grade{tc.grade}
			inA := len(GradesForSubgroupView(1, grades, schedules, memberships)) == 1
			inMain := len(GradesForMainView(grades, schedules, memberships)) == 1
			if inA != tc.inA {
				t.Fatalf("subgroup view: expected %v, got %v", tc.inA, inA)
			}
			if inMain != tc.inMain {
				t.Fatalf("main view: expected %v, got %v", tc.inMain, inMain)
			}
		})
	}
}

// Every grade for a split subject must land in exactly one journal.
func TestScopingPartitionLaw(t *testing.T) {
	schedules := []models.Schedule{
		{BaseModel: models.BaseModel{ID: 1}, ClassID: 1, SubjectID: 7, SubgroupID: uintPtr(1), ScheduleDate: datePtr(2026, 2, 2)},
		{BaseModel: models.BaseModel{ID: 3}, ClassID: 1, SubjectID: 7, ScheduleDate: datePtr(2026, 2, 3)},
	}
	memberships := []models.SubgroupMember{
		{SubgroupID: 1, StudentID: 100},
	}
	grades := []models.Grade{
		{BaseModel: models.BaseModel{ID: 1}, StudentID: 100, SubjectID: 7, ScheduleID: uintPtr(1)},
		{BaseModel: models.BaseModel{ID: 2}, StudentID: 100, SubjectID: 7, ScheduleID: uintPtr(3)},
		{BaseModel: models.BaseModel{ID: 3}, StudentID: 100, SubjectID: 7},
		{BaseModel: models.BaseModel{ID: 4}, StudentID: 100, SubjectID: 7, SubgroupID: uintPtr(1)},
		{BaseModel: models.BaseModel{ID: 5}, StudentID: 300, SubjectID: 7},
		{BaseModel: models.BaseModel{ID: 6}, StudentID: 300, SubjectID: 7, ScheduleID: uintPtr(3)},
	}

	sub := GradesForSubgroupView(1, grades, schedules, memberships)
	main := GradesForMainView(grades, schedules, memberships)

	seen := make(map[uint]int)
	for _, g := range sub {
		seen[g.ID]++
	}
	for _, g := range main {
		seen[g.ID]++
	}
	for _, g := range grades {
		if seen[g.ID] != 1 {
			t.Fatalf("grade %d appears in %d views, want exactly 1", g.ID, seen[g.ID])
		}
	}
}
