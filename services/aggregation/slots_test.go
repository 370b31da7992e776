package aggregation

import (
	"testing"

	"classjournal_go/models"
)

func TestResolveLessonSlotsOrdering(t *testing.T) {
	schedules := []models.Schedule{
		{BaseModel: models.BaseModel{ID: 1}, ClassID: 1, SubjectID: 7, ScheduleDate: datePtr(2026, 2, 3), StartTime: "08:30"},
		{BaseModel: models.BaseModel{ID: 2}, ClassID: 1, SubjectID: 7, ScheduleDate: datePtr(2026, 2, 2), StartTime: "13:00"},
		{BaseModel: models.BaseModel{ID: 3}, ClassID: 1, SubjectID: 7, ScheduleDate: datePtr(2026, 2, 2), StartTime: "09:00"},
		{BaseModel: models.BaseModel{ID: 4}, ClassID: 1, SubjectID: 7, ScheduleDate: datePtr(2026, 2, 2), StartTime: "10:15"},
	}

	slots := ResolveLessonSlots(1, 7, nil, schedules, nil)
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}
	expected := []uint{3, 4, 2, 1}
	for i, id := range expected {
		if slots[i].ScheduleID != id {
			t.Fatalf("slot %d: expected schedule %d, got %d", i, id, slots[i].ScheduleID)
		}
	}
}

func TestResolveLessonSlotsFiltering(t *testing.T) {
	schedules := []models.Schedule{
		{BaseModel: models.BaseModel{ID: 1}, ClassID: 1, SubjectID: 7, ScheduleDate: datePtr(2026, 2, 2)},
		{BaseModel: models.BaseModel{ID: 2}, ClassID: 1, SubjectID: 8, ScheduleDate: datePtr(2026, 2, 2)}, // other subject
		{BaseModel: models.BaseModel{ID: 3}, ClassID: 2, SubjectID: 7, ScheduleDate: datePtr(2026, 2, 2)}, // other class
		{BaseModel: models.BaseModel{ID: 4}, ClassID: 1, SubjectID: 7},                                    // no date
	}

	slots := ResolveLessonSlots(1, 7, nil, schedules, nil)
	if len(slots) != 1 || slots[0].ScheduleID != 1 {
		t.Fatalf("expected only schedule 1, got %+v", slots)
	}
}

func TestResolveLessonSlotsSubgroupNarrowing(t *testing.T) {
	schedules := []models.Schedule{
		{BaseModel: models.BaseModel{ID: 1}, ClassID: 1, SubjectID: 7, ScheduleDate: datePtr(2026, 2, 2)},
		{BaseModel: models.BaseModel{ID: 2}, ClassID: 1, SubjectID: 7, SubgroupID: uintPtr(1), ScheduleDate: datePtr(2026, 2, 3)},
		{BaseModel: models.BaseModel{ID: 3}, ClassID: 1, SubjectID: 7, SubgroupID: uintPtr(2), ScheduleDate: datePtr(2026, 2, 4)},
	}

	slots := ResolveLessonSlots(1, 7, uintPtr(1), schedules, nil)
	if len(slots) != 2 {
		t.Fatalf("expected whole-class lesson plus subgroup 1 lesson, got %d slots", len(slots))
	}
	if slots[0].ScheduleID != 1 || slots[1].ScheduleID != 2 {
		t.Fatalf("unexpected slots %+v", slots)
	}
}

func TestResolveLessonSlotsMissingStartTimeKeepsOrder(t *testing.T) {
	schedules := []models.Schedule{
		{BaseModel: models.BaseModel{ID: 1}, ClassID: 1, SubjectID: 7, ScheduleDate: datePtr(2026, 2, 2), StartTime: "11:00"},
		{BaseModel: models.BaseModel{ID: 2}, ClassID: 1, SubjectID: 7, ScheduleDate: datePtr(2026, 2, 2)},
		{BaseModel: models.BaseModel{ID: 3}, ClassID: 1, SubjectID: 7, ScheduleDate: datePtr(2026, 2, 2), StartTime: "08:00"},
	}

	slots := ResolveLessonSlots(1, 7, nil, schedules, nil)
	// Missing start time compares equal on both sides, so the incoming
	// order among those pairs survives the stable sort.
	expected := []uint{1, 2, 3}
	for i, id := range expected {
		if slots[i].ScheduleID != id {
			t.Fatalf("slot %d: expected schedule %d, got %d", i, id, slots[i].ScheduleID)
		}
	}
}

func TestResolveLessonSlotsAttachesAllAssignments(t *testing.T) {
	schedules := []models.Schedule{
		{BaseModel: models.BaseModel{ID: 1}, ClassID: 1, SubjectID: 7, ScheduleDate: datePtr(2026, 2, 2)},
	}
	assignments := []models.Assignment{
		{BaseModel: models.BaseModel{ID: 10}, ScheduleID: 1, MaxScore: 10},
		{BaseModel: models.BaseModel{ID: 11}, ScheduleID: 1, SubgroupID: uintPtr(2), MaxScore: 5},
		{BaseModel: models.BaseModel{ID: 12}, ScheduleID: 9, MaxScore: 5},
	}

	slots := ResolveLessonSlots(1, 7, nil, schedules, assignments)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	// Assignment subgroup scoping is the caller's concern: both attach.
	if len(slots[0].Assignments) != 2 {
		t.Fatalf("expected 2 attached assignments, got %d", len(slots[0].Assignments))
	}
}
