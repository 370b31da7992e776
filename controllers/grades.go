package controllers

import (
	"errors"
	"strconv"

	"classjournal_go/database"
	"classjournal_go/middleware"
	"classjournal_go/models"
	"classjournal_go/services"
	"classjournal_go/services/aggregation"
	"classjournal_go/utils"

	"github.com/gofiber/fiber/v2"
)

type GradeController struct {
	grades      *services.GradeService
	performance *services.PerformanceService
}

func NewGradeController(grades *services.GradeService, performance *services.PerformanceService) *GradeController {
	return &GradeController{grades: grades, performance: performance}
}

// GetGrades returns grades filtered by student, class, subject or schedule
func (gc *GradeController) GetGrades(c *fiber.Ctx) error {
	query := database.DB.Preload("Student")
	if studentID := c.Query("student_id"); studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}
	if classID := c.Query("class_id"); classID != "" {
		query = query.Where("class_id = ?", classID)
	}
	if subjectID := c.Query("subject_id"); subjectID != "" {
		query = query.Where("subject_id = ?", subjectID)
	}
	if scheduleID := c.Query("schedule_id"); scheduleID != "" {
		query = query.Where("schedule_id = ?", scheduleID)
	}

	var grades []models.Grade
	if err := query.Order("created_at").Find(&grades).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch grades",
		})
	}

	var teachers []models.Teacher
	database.DB.Find(&teachers)

	return c.JSON(fiber.Map{
		"grades": utils.ToGradeDTOs(grades, teachers),
		"total":  len(grades),
	})
}

// CreateGrade records a grade. A second grade for the same student and
// assignment on a conducted lesson is rejected with the existing grade's id.
func (gc *GradeController) CreateGrade(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only teachers can record grades",
		})
	}

	var grade models.Grade
	if err := c.BodyParser(&grade); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if grade.StudentID == 0 || grade.SubjectID == 0 || grade.ClassID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Student ID, subject ID and class ID are required",
		})
	}
	grade.TeacherID = teacher.ID

	if err := gc.grades.CreateGrade(&grade); err != nil {
		var dup *aggregation.DuplicateGradeError
		if errors.As(err, &dup) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":             "Student already has a grade for this assignment",
				"existing_grade_id": dup.ExistingGradeID,
			})
		}
		var bounds *services.ErrValueOutOfRange
		if errors.As(err, &bounds) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": bounds.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create grade",
		})
	}

	gc.performance.InvalidateClass(c.Context(), grade.ClassID)
	middleware.LogActivity(c, "CREATE", "grades", grade.ID, grade)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Grade recorded successfully",
		"grade":   grade,
	})
}

type UpdateGradeRequest struct {
	Value     *float64 `json:"value"`
	Comment   *string  `json:"comment"`
	GradeType *string  `json:"grade_type"`
}

// UpdateGrade adjusts a grade's value, comment or type. Only the teacher who
// recorded the grade may change it.
func (gc *GradeController) UpdateGrade(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid grade ID",
		})
	}

	teacher, err := currentTeacher(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only teachers can update grades",
		})
	}

	var req UpdateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	grade, err := gc.grades.UpdateGrade(uint(id), teacher.ID, req.Value, req.Comment, req.GradeType)
	if err != nil {
		if errors.Is(err, services.ErrNotGradeOwner) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Only the teacher who recorded this grade can change it",
			})
		}
		var bounds *services.ErrValueOutOfRange
		if errors.As(err, &bounds) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": bounds.Error(),
			})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Grade not found",
		})
	}

	gc.performance.InvalidateClass(c.Context(), grade.ClassID)
	middleware.LogActivity(c, "UPDATE", "grades", grade.ID, req)

	return c.JSON(fiber.Map{
		"message": "Grade updated successfully",
		"grade":   grade,
	})
}

// DeleteGrade removes a grade. Only the teacher who recorded it may delete it.
func (gc *GradeController) DeleteGrade(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid grade ID",
		})
	}

	teacher, err := currentTeacher(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only teachers can delete grades",
		})
	}

	var grade models.Grade
	if err := database.DB.First(&grade, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Grade not found",
		})
	}

	if err := gc.grades.DeleteGrade(uint(id), teacher.ID); err != nil {
		if errors.Is(err, services.ErrNotGradeOwner) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Only the teacher who recorded this grade can delete it",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete grade",
		})
	}

	gc.performance.InvalidateClass(c.Context(), grade.ClassID)
	middleware.LogActivity(c, "DELETE", "grades", grade.ID, grade)

	return c.JSON(fiber.Map{
		"message": "Grade deleted successfully",
	})
}

// currentTeacher resolves the authenticated user's teacher profile
func currentTeacher(c *fiber.Ctx) (*models.Teacher, error) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return nil, err
	}
	var teacher models.Teacher
	if err := database.DB.Where("user_id = ?", user.ID).First(&teacher).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}
