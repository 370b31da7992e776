package aggregation

import (
	"classjournal_go/models"
)

// Eligibility gates which grades may move averages and percentages. Teachers
// pre-stage assignments for future lessons (PlannedFor); scores entered
// against them must not count until the lesson is actually conducted.
// Display paths show every grade - this filter applies to aggregates only.

// Eligible reports whether a grade may contribute to an aggregate. A grade
// whose linked assignment or schedule cannot be resolved is treated as
// ineligible rather than failing the whole run.
func (idx *index) Eligible(g models.Grade) bool {
	l := ClassifyLinkage(g)
	if l.Kind != LinkAssignment {
		return true
	}
	a, ok := idx.assignmentByID[l.AssignmentID]
	if !ok {
		return false
	}
	if !a.PlannedFor {
		return true
	}
	s, ok := idx.scheduleByID[a.ScheduleID]
	if !ok {
		return false
	}
	return s.Status == models.ScheduleConducted
}

// FilterEligible returns the subset of grades allowed into aggregates.
func FilterEligible(grades []models.Grade, schedules []models.Schedule, assignments []models.Assignment) []models.Grade {
	idx := buildIndex(&Snapshot{Schedules: schedules, Assignments: assignments})
	out := make([]models.Grade, 0, len(grades))
	for _, g := range grades {
		if idx.Eligible(g) {
			out = append(out, g)
		}
	}
	return out
}
