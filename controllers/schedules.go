package controllers

import (
	"errors"
	"strconv"

	"classjournal_go/database"
	"classjournal_go/middleware"
	"classjournal_go/models"
	"classjournal_go/services"
	"classjournal_go/utils"

	"github.com/gofiber/fiber/v2"
)

type ScheduleController struct {
	schedules   *services.ScheduleService
	performance *services.PerformanceService
}

func NewScheduleController(schedules *services.ScheduleService, performance *services.PerformanceService) *ScheduleController {
	return &ScheduleController{schedules: schedules, performance: performance}
}

// GetSchedules returns lessons filtered by class, subject, subgroup or date range
func (sc *ScheduleController) GetSchedules(c *fiber.Ctx) error {
	var schedules []models.Schedule

	query := database.DB.Preload("Subject").Preload("Teacher").Preload("Subgroup")
	if classID := c.Query("class_id"); classID != "" {
		query = query.Where("class_id = ?", classID)
	}
	if subjectID := c.Query("subject_id"); subjectID != "" {
		query = query.Where("subject_id = ?", subjectID)
	}
	if subgroupID := c.Query("subgroup_id"); subgroupID != "" {
		query = query.Where("subgroup_id = ?", subgroupID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("schedule_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("schedule_date <= ?", to)
	}

	if err := query.Order("schedule_date, start_time").Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch schedules",
		})
	}

	return c.JSON(fiber.Map{
		"schedules": schedules,
		"total":     len(schedules),
	})
}

// GetSchedule returns a specific lesson by ID
func (sc *ScheduleController) GetSchedule(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid schedule ID",
		})
	}

	var schedule models.Schedule
	if err := database.DB.Preload("Subject").Preload("Teacher").Preload("Subgroup").
		First(&schedule, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Schedule not found",
		})
	}

	return c.JSON(fiber.Map{
		"schedule": schedule,
	})
}

// CreateSchedule creates a new lesson
func (sc *ScheduleController) CreateSchedule(c *fiber.Ctx) error {
	var schedule models.Schedule
	if err := c.BodyParser(&schedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if schedule.ClassID == 0 || schedule.SubjectID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Class ID and subject ID are required",
		})
	}
	if schedule.Status == "" {
		schedule.Status = models.ScheduleNotConducted
	}
	if !utils.IsValidScheduleStatus(schedule.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid schedule status",
		})
	}

	if schedule.SubgroupID != nil {
		var subgroup models.Subgroup
		if err := database.DB.First(&subgroup, *schedule.SubgroupID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Subgroup not found",
			})
		}
		if subgroup.ClassID != schedule.ClassID {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Subgroup belongs to a different class",
			})
		}
	}

	if err := database.DB.Create(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create schedule",
		})
	}

	sc.performance.InvalidateClass(c.Context(), schedule.ClassID)
	middleware.LogActivity(c, "CREATE", "schedules", schedule.ID, schedule)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Schedule created successfully",
		"schedule": schedule,
	})
}

// UpdateSchedule updates lesson details (not its status; see UpdateStatus)
func (sc *ScheduleController) UpdateSchedule(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid schedule ID",
		})
	}

	var schedule models.Schedule
	if err := database.DB.First(&schedule, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Schedule not found",
		})
	}

	var updateData models.Schedule
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	// Status changes go through the dedicated transition endpoint
	updateData.Status = ""

	if err := database.DB.Model(&schedule).Updates(updateData).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update schedule",
		})
	}

	sc.performance.InvalidateClass(c.Context(), schedule.ClassID)
	middleware.LogActivity(c, "UPDATE", "schedules", schedule.ID, updateData)

	return c.JSON(fiber.Map{
		"message":  "Schedule updated successfully",
		"schedule": schedule,
	})
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus transitions a lesson between not_conducted and conducted.
// Conducting is rejected until the lesson's end time has passed.
func (sc *ScheduleController) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid schedule ID",
		})
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	schedule, err := sc.schedules.SetStatus(uint(id), req.Status)
	if err != nil {
		if errors.Is(err, services.ErrLessonNotOver) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "Lesson cannot be marked conducted before its end time",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	sc.performance.InvalidateClass(c.Context(), schedule.ClassID)
	middleware.LogActivity(c, "UPDATE", "schedules", schedule.ID, fiber.Map{"status": req.Status})

	return c.JSON(fiber.Map{
		"message":  "Schedule status updated",
		"schedule": schedule,
	})
}

// DeleteSchedule removes a lesson
func (sc *ScheduleController) DeleteSchedule(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid schedule ID",
		})
	}

	var schedule models.Schedule
	if err := database.DB.First(&schedule, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Schedule not found",
		})
	}

	if err := database.DB.Delete(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete schedule",
		})
	}

	sc.performance.InvalidateClass(c.Context(), schedule.ClassID)
	middleware.LogActivity(c, "DELETE", "schedules", schedule.ID, schedule)

	return c.JSON(fiber.Map{
		"message": "Schedule deleted successfully",
	})
}
