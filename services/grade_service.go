package services

import (
	"fmt"

	"classjournal_go/database"
	"classjournal_go/models"
	"classjournal_go/services/aggregation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GradeService owns the grade write path. The duplicate guard runs inside
// the same transaction as the insert, with the existing rows locked, so two
// concurrent submissions for the same (student, assignment) cannot both pass
// the check.
type GradeService struct{}

func NewGradeService() *GradeService {
	return &GradeService{}
}

// ErrValueOutOfRange is returned when a grade value violates the bounds of
// the class's grading system.
type ErrValueOutOfRange struct {
	Value float64
	Min   float64
	Max   float64
}

func (e *ErrValueOutOfRange) Error() string {
	return fmt.Sprintf("grade value %.2f outside allowed range [%.0f, %.0f]", e.Value, e.Min, e.Max)
}

// CreateGrade validates bounds and inserts the grade, rejecting duplicates
// for conducted lessons with the existing grade's id.
func (gs *GradeService) CreateGrade(grade *models.Grade) error {
	var class models.SchoolClass
	if err := database.DB.First(&class, grade.ClassID).Error; err != nil {
		return fmt.Errorf("class %d not found: %w", grade.ClassID, err)
	}
	if err := gs.validateBounds(grade, class.GradingSystem); err != nil {
		return err
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if grade.ScheduleID != nil && grade.AssignmentID != nil {
			var schedule models.Schedule
			if err := tx.First(&schedule, *grade.ScheduleID).Error; err != nil {
				return fmt.Errorf("schedule %d not found: %w", *grade.ScheduleID, err)
			}

			var existing []models.Grade
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("student_id = ? AND assignment_id = ?", grade.StudentID, *grade.AssignmentID).
				Find(&existing).Error; err != nil {
				return err
			}

			schedules := map[uint]models.Schedule{schedule.ID: schedule}
			if err := aggregation.CheckDuplicate(*grade, existing, schedules); err != nil {
				return err
			}
		}
		return tx.Create(grade).Error
	})
}

// UpdateGrade lets the creating teacher adjust value, comment and grade type.
// Anyone else gets ErrNotGradeOwner.
func (gs *GradeService) UpdateGrade(gradeID, teacherID uint, value *float64, comment, gradeType *string) (*models.Grade, error) {
	var grade models.Grade
	if err := database.DB.First(&grade, gradeID).Error; err != nil {
		return nil, err
	}
	if grade.TeacherID != teacherID {
		return nil, ErrNotGradeOwner
	}

	updates := map[string]interface{}{}
	if value != nil {
		var class models.SchoolClass
		if err := database.DB.First(&class, grade.ClassID).Error; err != nil {
			return nil, err
		}
		probe := grade
		probe.Value = *value
		if err := gs.validateBounds(&probe, class.GradingSystem); err != nil {
			return nil, err
		}
		updates["value"] = *value
	}
	if comment != nil {
		updates["comment"] = *comment
	}
	if gradeType != nil {
		updates["grade_type"] = *gradeType
	}
	if len(updates) == 0 {
		return &grade, nil
	}

	if err := database.DB.Model(&grade).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &grade, nil
}

// DeleteGrade removes a grade; only the creating teacher may delete it.
func (gs *GradeService) DeleteGrade(gradeID, teacherID uint) error {
	var grade models.Grade
	if err := database.DB.First(&grade, gradeID).Error; err != nil {
		return err
	}
	if grade.TeacherID != teacherID {
		return ErrNotGradeOwner
	}
	return database.DB.Delete(&grade).Error
}

// ErrNotGradeOwner rejects mutation of a grade by anyone but its author.
var ErrNotGradeOwner = fmt.Errorf("only the teacher who recorded a grade may change it")

// validateBounds enforces [1,5] for five-point classes and
// [0, assignment max] (or the virtual ceiling) for cumulative ones.
func (gs *GradeService) validateBounds(grade *models.Grade, gradingSystem string) error {
	switch gradingSystem {
	case models.GradingCumulative:
		max := 10.0
		if grade.AssignmentID != nil {
			var assignment models.Assignment
			if err := database.DB.First(&assignment, *grade.AssignmentID).Error; err == nil {
				max = assignment.MaxScore
			}
		}
		if grade.Value < 0 || grade.Value > max {
			return &ErrValueOutOfRange{Value: grade.Value, Min: 0, Max: max}
		}
	default:
		if grade.Value < 1 || grade.Value > 5 {
			return &ErrValueOutOfRange{Value: grade.Value, Min: 1, Max: 5}
		}
	}
	return nil
}
