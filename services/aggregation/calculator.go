package aggregation

import (
	"fmt"
	"math"

	"classjournal_go/models"
	"github.com/sirupsen/logrus"
)

// Result is one aggregate cell: the average and percentage strings shown in
// journals and reports. Five-point results never carry a percentage and
// cumulative results use the average slot for total earned points.
type Result struct {
	Average    string `json:"average"`
	Percentage string `json:"percentage"`
}

// EmptyResult is the placeholder every student gets when nothing counts yet.
func EmptyResult(gradingSystem string) Result {
	if gradingSystem == models.GradingCumulative {
		return Result{Average: "0", Percentage: "0%"}
	}
	return Result{Average: "-", Percentage: "-"}
}

// Calculator turns an eligible grade set into a Result. The two strategies
// are selected by the class's grading system and are deliberately pure:
// same snapshot in, same strings out.
type Calculator interface {
	Calculate(grades []models.Grade, idx *index) Result
}

// NewCalculator selects the strategy for a grading system.
func NewCalculator(gradingSystem string) (Calculator, error) {
	switch gradingSystem {
	case models.GradingFivePoint:
		return fivePointCalculator{}, nil
	case models.GradingCumulative:
		return cumulativeCalculator{}, nil
	default:
		return nil, fmt.Errorf("unknown grading system %q", gradingSystem)
	}
}

// gradeTypeWeights is the fixed weight lookup for the five-point strategy.
// Keys are case-sensitive; the localized names are aliases carried over from
// older journals and map to the same numeric weights.
var gradeTypeWeights = map[string]float64{
	"test":      2,
	"exam":      3,
	"homework":  1,
	"project":   2,
	"classwork": 1,

	"Текущая":      1,
	"Контрольная":  2,
	"Экзамен":      3,
	"Практическая": 1.5,
	"Домашняя":     1,
}

// weightFor returns the weight for a grade type, defaulting to 1 for
// anything unrecognized.
func weightFor(gradeType string) float64 {
	if w, ok := gradeTypeWeights[gradeType]; ok {
		return w
	}
	return 1
}

// fivePointCalculator computes a type-weighted arithmetic mean over the
// 1..5 scale. Percentage is not defined for this system.
type fivePointCalculator struct{}

func (fivePointCalculator) Calculate(grades []models.Grade, _ *index) Result {
	var weightedSum, totalWeight float64
	for _, g := range grades {
		if !validValue(g) {
			continue
		}
		w := weightFor(g.GradeType)
		weightedSum += g.Value * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return Result{Average: "-", Percentage: "-"}
	}
	return Result{
		Average:    fmt.Sprintf("%.1f", weightedSum/totalWeight),
		Percentage: "-",
	}
}

// virtualMaxScore is the assumed ceiling for cumulative grades that cannot
// be traced back to an assignment's real maximum.
const virtualMaxScore = 10.0

// cumulativeCalculator sums earned points against possible points and
// renders the ratio as a capped percentage.
type cumulativeCalculator struct{}

func (cumulativeCalculator) Calculate(grades []models.Grade, idx *index) Result {
	var earned, max float64
	for _, g := range grades {
		if !validValue(g) {
			continue
		}
		e, m := resolvePoints(g, idx)
		earned += e
		max += m
	}
	if max == 0 {
		return Result{Average: "0", Percentage: "0%"}
	}

	percentage := earned / max * 100
	// Legacy display correction: journals with a single 10-point column
	// historically showed 9/10 as 90% and 10/10 as 100% regardless of the
	// raw ratio. Kept for compatibility with previously published numbers.
	if earned >= 9 && max <= virtualMaxScore {
		percentage = 90 + (earned-9)*10
	}
	percentage = math.Min(100, percentage)

	return Result{
		Average:    fmt.Sprintf("%.1f", earned),
		Percentage: fmt.Sprintf("%.1f%%", percentage),
	}
}

// resolvePoints maps one cumulative grade to an (earned, max) pair.
func resolvePoints(g models.Grade, idx *index) (earned, max float64) {
	l := ClassifyLinkage(g)
	if l.ScheduleID == 0 {
		return g.Value, virtualMaxScore
	}
	candidates := idx.assignmentsBySchedule[l.ScheduleID]
	if len(candidates) == 0 {
		return g.Value, virtualMaxScore
	}
	chosen := candidates[0]
	if l.AssignmentID != 0 {
		for _, a := range candidates {
			if a.ID == l.AssignmentID {
				chosen = a
				break
			}
		}
	}
	return g.Value, chosen.MaxScore
}

// validValue guards against malformed numeric data: the offending grade is
// skipped with a warning instead of poisoning the whole aggregate.
func validValue(g models.Grade) bool {
	if math.IsNaN(g.Value) || math.IsInf(g.Value, 0) {
		logrus.WithFields(logrus.Fields{
			"grade_id":   g.ID,
			"student_id": g.StudentID,
			"value":      g.Value,
		}).Warn("Skipping grade with malformed value")
		return false
	}
	return true
}
