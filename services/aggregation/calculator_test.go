package aggregation

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"classjournal_go/models"
)

func uintPtr(v uint) *uint { return &v }

func TestFivePointWeightedAverage(t *testing.T) {
	tests := []struct {
		name   string
		grades []models.Grade
		expAvg string
	}{
		{
			name: "test outweighs homework",
			grades: []models.Grade{
				{Value: 5, GradeType: "test"},
				{Value: 3, GradeType: "homework"},
			},
			expAvg: "4.3",
		},
		{
			name: "exam has highest weight",
			grades: []models.Grade{
				{Value: 2, GradeType: "exam"},
				{Value: 5, GradeType: "homework"},
			},
			expAvg: "2.8",
		},
		{
			name: "localized aliases share weights",
			grades: []models.Grade{
				{Value: 5, GradeType: "Контрольная"},
				{Value: 3, GradeType: "Домашняя"},
			},
			expAvg: "4.3",
		},
		{
			name: "unknown type defaults to weight one",
			grades: []models.Grade{
				{Value: 4, GradeType: "mystery"},
				{Value: 2, GradeType: "another"},
			},
			expAvg: "3.0",
		},
		{
			name: "half weight practical",
			grades: []models.Grade{
				{Value: 5, GradeType: "Экзамен"},
				{Value: 2, GradeType: "Практическая"},
			},
			expAvg: "4.0",
		},
	}

	calc := fivePointCalculator{}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			res := calc.Calculate(tc.grades, nil)
			if res.Average != tc.expAvg {
				t.Fatalf("expected average %s, got %s", tc.expAvg, res.Average)
			}
			if res.Percentage != "-" {
				t.Fatalf("five-point percentage must be \"-\", got %s", res.Percentage)
			}
		})
	}
}

func TestFivePointEmptySet(t *testing.T) {
	res := fivePointCalculator{}.Calculate(nil, nil)
	if res.Average != "-" || res.Percentage != "-" {
		t.Fatalf("expected placeholders, got %+v", res)
	}
}

func TestFivePointBounds(t *testing.T) {
	grades := []models.Grade{
		{Value: 1, GradeType: "exam"},
		{Value: 5, GradeType: "test"},
		{Value: 3, GradeType: "homework"},
	}
	res := fivePointCalculator{}.Calculate(grades, nil)
	avg, err := strconv.ParseFloat(res.Average, 64)
	if err != nil {
		t.Fatalf("average is not numeric: %v", err)
	}
	if avg < 1 || avg > 5 {
		t.Fatalf("average %v out of [1,5]", avg)
	}
}

func TestCumulativeSingleAssignment(t *testing.T) {
	idx := buildIndex(&Snapshot{
		Schedules:   []models.Schedule{{BaseModel: models.BaseModel{ID: 1}, Status: models.ScheduleConducted}},
		Assignments: []models.Assignment{{BaseModel: models.BaseModel{ID: 10}, ScheduleID: 1, MaxScore: 10}},
	})
	grades := []models.Grade{
		{Value: 8, ScheduleID: uintPtr(1), AssignmentID: uintPtr(10)},
	}
	res := cumulativeCalculator{}.Calculate(grades, idx)
	if res.Average != "8.0" {
		t.Fatalf("expected average 8.0, got %s", res.Average)
	}
	if res.Percentage != "80.0%" {
		t.Fatalf("expected percentage 80.0%%, got %s", res.Percentage)
	}
}

func TestCumulativeCorrectionBand(t *testing.T) {
	tests := []struct {
		name   string
		earned float64
		expPct string
	}{
		{name: "nine of ten", earned: 9, expPct: "90.0%"},
		{name: "nine and a half", earned: 9.5, expPct: "95.0%"},
		{name: "ten of ten", earned: 10, expPct: "100.0%"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			idx := buildIndex(&Snapshot{
				Assignments: []models.Assignment{{BaseModel: models.BaseModel{ID: 10}, ScheduleID: 1, MaxScore: 10}},
			})
			grades := []models.Grade{
				{Value: tc.earned, ScheduleID: uintPtr(1), AssignmentID: uintPtr(10)},
			}
			res := cumulativeCalculator{}.Calculate(grades, idx)
			if res.Percentage != tc.expPct {
				t.Fatalf("expected %s, got %s", tc.expPct, res.Percentage)
			}
		})
	}
}

func TestCumulativeVirtualCeiling(t *testing.T) {
	idx := buildIndex(&Snapshot{})

	// No schedule link at all
	res := cumulativeCalculator{}.Calculate([]models.Grade{{Value: 7}}, idx)
	if res.Percentage != "70.0%" {
		t.Fatalf("unlinked grade should score against ceiling of 10, got %s", res.Percentage)
	}

	// Schedule link that resolves to no assignments
	res = cumulativeCalculator{}.Calculate([]models.Grade{{Value: 5, ScheduleID: uintPtr(99)}}, idx)
	if res.Percentage != "50.0%" {
		t.Fatalf("dangling schedule link should score against ceiling of 10, got %s", res.Percentage)
	}
}

func TestCumulativePercentageBound(t *testing.T) {
	idx := buildIndex(&Snapshot{
		Assignments: []models.Assignment{{BaseModel: models.BaseModel{ID: 1}, ScheduleID: 1, MaxScore: 5}},
	})
	// Earned above max must still cap at 100
	grades := []models.Grade{{Value: 12, ScheduleID: uintPtr(1), AssignmentID: uintPtr(1)}}
	res := cumulativeCalculator{}.Calculate(grades, idx)
	pct, err := strconv.ParseFloat(strings.TrimSuffix(res.Percentage, "%"), 64)
	if err != nil {
		t.Fatalf("percentage is not numeric: %v", err)
	}
	if pct < 0 || pct > 100 {
		t.Fatalf("percentage %v out of [0,100]", pct)
	}
}

func TestCumulativeEmptySet(t *testing.T) {
	res := cumulativeCalculator{}.Calculate(nil, buildIndex(&Snapshot{}))
	if res.Average != "0" || res.Percentage != "0%" {
		t.Fatalf("expected zero result, got %+v", res)
	}
}

func TestCumulativePicksMatchingAssignment(t *testing.T) {
	idx := buildIndex(&Snapshot{
		Assignments: []models.Assignment{
			{BaseModel: models.BaseModel{ID: 1}, ScheduleID: 1, MaxScore: 20},
			{BaseModel: models.BaseModel{ID: 2}, ScheduleID: 1, MaxScore: 40},
		},
	})
	grades := []models.Grade{{Value: 20, ScheduleID: uintPtr(1), AssignmentID: uintPtr(2)}}
	res := cumulativeCalculator{}.Calculate(grades, idx)
	if res.Percentage != "50.0%" {
		t.Fatalf("expected 50.0%% against the linked assignment's max, got %s", res.Percentage)
	}

	// Without an assignment id the first assignment on the schedule wins
	grades = []models.Grade{{Value: 20, ScheduleID: uintPtr(1)}}
	res = cumulativeCalculator{}.Calculate(grades, idx)
	if res.Percentage != "100.0%" {
		t.Fatalf("expected 100.0%% against the first assignment's max, got %s", res.Percentage)
	}
}

func TestMalformedValuesSkipped(t *testing.T) {
	grades := []models.Grade{
		{Value: math.NaN(), GradeType: "test"},
		{Value: 4, GradeType: "homework"},
	}
	res := fivePointCalculator{}.Calculate(grades, nil)
	if res.Average != "4.0" {
		t.Fatalf("NaN grade should be skipped, got %s", res.Average)
	}
}

func TestCalculatorIdempotence(t *testing.T) {
	idx := buildIndex(&Snapshot{
		Assignments: []models.Assignment{{BaseModel: models.BaseModel{ID: 1}, ScheduleID: 1, MaxScore: 10}},
	})
	grades := []models.Grade{
		{Value: 6, ScheduleID: uintPtr(1), AssignmentID: uintPtr(1)},
		{Value: 3},
	}
	first := cumulativeCalculator{}.Calculate(grades, idx)
	second := cumulativeCalculator{}.Calculate(grades, idx)
	if first != second {
		t.Fatalf("calculator not idempotent: %+v vs %+v", first, second)
	}
}

func TestNewCalculatorUnknownSystem(t *testing.T) {
	if _, err := NewCalculator("letters"); err == nil {
		t.Fatalf("expected error for unknown grading system")
	}
}
