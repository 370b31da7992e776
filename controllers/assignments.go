package controllers

import (
	"strconv"

	"classjournal_go/database"
	"classjournal_go/middleware"
	"classjournal_go/models"
	"classjournal_go/services"

	"github.com/gofiber/fiber/v2"
)

type AssignmentController struct {
	performance *services.PerformanceService
}

func NewAssignmentController(performance *services.PerformanceService) *AssignmentController {
	return &AssignmentController{performance: performance}
}

// GetAssignments returns assignments filtered by class, subject or schedule
func (ac *AssignmentController) GetAssignments(c *fiber.Ctx) error {
	var assignments []models.Assignment

	query := database.DB.Preload("Subject")
	if classID := c.Query("class_id"); classID != "" {
		query = query.Where("class_id = ?", classID)
	}
	if subjectID := c.Query("subject_id"); subjectID != "" {
		query = query.Where("subject_id = ?", subjectID)
	}
	if scheduleID := c.Query("schedule_id"); scheduleID != "" {
		query = query.Where("schedule_id = ?", scheduleID)
	}

	if err := query.Find(&assignments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch assignments",
		})
	}

	return c.JSON(fiber.Map{
		"assignments": assignments,
		"total":       len(assignments),
	})
}

// GetAssignment returns a specific assignment by ID
func (ac *AssignmentController) GetAssignment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid assignment ID",
		})
	}

	var assignment models.Assignment
	if err := database.DB.Preload("Schedule").Preload("Subject").
		First(&assignment, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Assignment not found",
		})
	}

	return c.JSON(fiber.Map{
		"assignment": assignment,
	})
}

// CreateAssignment creates an assignment under a lesson. Assignments only
// exist in cumulative-grading classes.
func (ac *AssignmentController) CreateAssignment(c *fiber.Ctx) error {
	var assignment models.Assignment
	if err := c.BodyParser(&assignment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if assignment.ScheduleID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Schedule ID is required",
		})
	}
	if assignment.MaxScore <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Max score must be positive",
		})
	}

	var schedule models.Schedule
	if err := database.DB.First(&schedule, assignment.ScheduleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Schedule not found",
		})
	}

	var class models.SchoolClass
	if err := database.DB.First(&class, schedule.ClassID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Class not found",
		})
	}
	if class.GradingSystem != models.GradingCumulative {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Assignments are only supported for cumulative-grading classes",
		})
	}

	// Inherit placement from the lesson
	assignment.ClassID = schedule.ClassID
	assignment.SubjectID = schedule.SubjectID
	assignment.SubgroupID = schedule.SubgroupID
	// An assignment created before the lesson is conducted is planned: grades
	// against it stay out of aggregates until the lesson happens.
	assignment.PlannedFor = schedule.Status == models.ScheduleNotConducted

	if err := database.DB.Create(&assignment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create assignment",
		})
	}

	ac.performance.InvalidateClass(c.Context(), assignment.ClassID)
	middleware.LogActivity(c, "CREATE", "assignments", assignment.ID, assignment)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Assignment created successfully",
		"assignment": assignment,
	})
}

// UpdateAssignment updates title, type and max score
func (ac *AssignmentController) UpdateAssignment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid assignment ID",
		})
	}

	var assignment models.Assignment
	if err := database.DB.First(&assignment, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Assignment not found",
		})
	}

	var req struct {
		Title    *string  `json:"title"`
		Type     *string  `json:"type"`
		MaxScore *float64 `json:"max_score"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.MaxScore != nil {
		if *req.MaxScore <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Max score must be positive",
			})
		}
		updates["max_score"] = *req.MaxScore
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&assignment).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update assignment",
			})
		}
		ac.performance.InvalidateClass(c.Context(), assignment.ClassID)
	}

	middleware.LogActivity(c, "UPDATE", "assignments", assignment.ID, updates)

	return c.JSON(fiber.Map{
		"message":    "Assignment updated successfully",
		"assignment": assignment,
	})
}

// DeleteAssignment removes an assignment
func (ac *AssignmentController) DeleteAssignment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid assignment ID",
		})
	}

	var assignment models.Assignment
	if err := database.DB.First(&assignment, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Assignment not found",
		})
	}

	var gradeCount int64
	database.DB.Model(&models.Grade{}).Where("assignment_id = ?", assignment.ID).Count(&gradeCount)
	if gradeCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Cannot delete an assignment that has grades",
		})
	}

	if err := database.DB.Delete(&assignment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete assignment",
		})
	}

	ac.performance.InvalidateClass(c.Context(), assignment.ClassID)
	middleware.LogActivity(c, "DELETE", "assignments", assignment.ID, assignment)

	return c.JSON(fiber.Map{
		"message": "Assignment deleted successfully",
	})
}
