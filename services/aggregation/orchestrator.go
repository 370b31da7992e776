package aggregation

import (
	"strconv"

	"classjournal_go/models"
	"github.com/sirupsen/logrus"
)

// OverallKey is the report key for the cross-subject aggregate.
const OverallKey = "overall"

// StudentReport maps subject ids (as strings) and "overall" to results.
type StudentReport map[string]Result

// Report is the engine's output: one row per requested student.
type Report map[uint]StudentReport

// Aggregate runs the whole pipeline over a snapshot: scope the grades to the
// requested view, drop ineligible ones, then compute per-subject and overall
// results for every student. Every student in the snapshot gets a row even
// when nothing counts yet. The computation is pure and synchronous; running
// it twice on the same snapshot yields identical output.
func Aggregate(snap Snapshot) (Report, error) {
	calc, err := NewCalculator(snap.GradingSystem)
	if err != nil {
		return nil, err
	}

	idx := buildIndex(&snap)
	scoped := scopeGrades(&snap)

	type key struct{ student, subject uint }
	bySubject := make(map[key][]models.Grade)
	byStudent := make(map[uint][]models.Grade)
	for _, g := range scoped {
		if g.StudentID == 0 || g.SubjectID == 0 {
			logrus.WithField("grade_id", g.ID).Warn("Skipping grade with missing identifiers")
			continue
		}
		if !idx.Eligible(g) {
			continue
		}
		k := key{g.StudentID, g.SubjectID}
		bySubject[k] = append(bySubject[k], g)
		byStudent[g.StudentID] = append(byStudent[g.StudentID], g)
	}

	students := snap.StudentIDs
	if len(students) == 0 {
		seen := make(map[uint]bool)
		for _, g := range scoped {
			if g.StudentID != 0 && !seen[g.StudentID] {
				seen[g.StudentID] = true
				students = append(students, g.StudentID)
			}
		}
	}
	subjects := snap.SubjectIDs
	if len(subjects) == 0 {
		seen := make(map[uint]bool)
		for _, g := range scoped {
			if g.SubjectID != 0 && !seen[g.SubjectID] {
				seen[g.SubjectID] = true
				subjects = append(subjects, g.SubjectID)
			}
		}
	}

	report := make(Report, len(students))
	for _, studentID := range students {
		row := make(StudentReport, len(subjects)+1)
		for _, subjectID := range subjects {
			grades := bySubject[key{studentID, subjectID}]
			if len(grades) == 0 {
				row[strconv.FormatUint(uint64(subjectID), 10)] = EmptyResult(snap.GradingSystem)
				continue
			}
			row[strconv.FormatUint(uint64(subjectID), 10)] = calc.Calculate(grades, idx)
		}
		if grades := byStudent[studentID]; len(grades) > 0 {
			row[OverallKey] = calc.Calculate(grades, idx)
		} else {
			row[OverallKey] = EmptyResult(snap.GradingSystem)
		}
		report[studentID] = row
	}
	return report, nil
}
