package controllers

import (
	"fmt"
	"strconv"

	"classjournal_go/database"
	"classjournal_go/middleware"
	"classjournal_go/models"
	"classjournal_go/services"
	"classjournal_go/services/aggregation"
	"classjournal_go/utils"

	"github.com/gofiber/fiber/v2"
)

type PerformanceController struct {
	performance *services.PerformanceService
	exports     *services.ReportExportService
}

func NewPerformanceController(performance *services.PerformanceService, exports *services.ReportExportService) *PerformanceController {
	return &PerformanceController{performance: performance, exports: exports}
}

// GetClassPerformance returns the aggregated performance report for a class.
// Optional query params: subject_id narrows to one subject, subgroup_id
// switches to that subgroup's journal view, view=main shows the main class
// view of a split subject.
func (pc *PerformanceController) GetClassPerformance(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid class ID",
		})
	}

	var subjectID *uint
	if raw := c.Query("subject_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid subject ID",
			})
		}
		v := uint(parsed)
		subjectID = &v
	}

	view := aggregation.View{Kind: aggregation.ViewAll}
	if raw := c.Query("subgroup_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid subgroup ID",
			})
		}
		view = aggregation.View{Kind: aggregation.ViewSubgroup, SubgroupID: uint(parsed)}
	} else if c.Query("view") == "main" {
		view = aggregation.View{Kind: aggregation.ViewMain}
	}

	report, err := pc.performance.ClassReport(c.Context(), uint(id), subjectID, view)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Class not found",
		})
	}

	return c.JSON(fiber.Map{
		"class_id": uint(id),
		"report":   report,
	})
}

// GetStudentPerformance returns one student's per-subject and overall results
func (pc *PerformanceController) GetStudentPerformance(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	report, err := pc.performance.StudentReport(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	return c.JSON(fiber.Map{
		"student_id": uint(id),
		"report":     report,
	})
}

// ExportClassPerformance renders the class report as an Excel workbook and
// streams it to the caller
func (pc *PerformanceController) ExportClassPerformance(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid class ID",
		})
	}

	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return err
	}

	export, data, err := pc.exports.ExportClassReport(c.Context(), uint(id), claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export report",
		})
	}

	middleware.LogActivity(c, "EXPORT", "report_exports", export.ID, fiber.Map{"class_id": uint(id)})

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	return c.Send(data)
}

// GetJournal returns the journal page for a class+subject: the ordered lesson
// slots with their assignments, and the grades scoped to the requested view.
// Without subgroup_id the main class view is served; grades that belong to a
// subgroup's journal are excluded from it.
func (pc *PerformanceController) GetJournal(c *fiber.Ctx) error {
	classID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid class ID",
		})
	}
	subjectID, err := strconv.ParseUint(c.Params("subject_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid subject ID",
		})
	}

	var subgroupID *uint
	if raw := c.Query("subgroup_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid subgroup ID",
			})
		}
		v := uint(parsed)
		subgroupID = &v
	}

	var class models.SchoolClass
	if err := database.DB.First(&class, uint(classID)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Class not found",
		})
	}

	var schedules []models.Schedule
	if err := database.DB.Where("class_id = ? AND subject_id = ?", uint(classID), uint(subjectID)).
		Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch schedules",
		})
	}
	var assignments []models.Assignment
	database.DB.Where("class_id = ? AND subject_id = ?", uint(classID), uint(subjectID)).Find(&assignments)

	var grades []models.Grade
	if err := database.DB.Preload("Student").
		Where("class_id = ? AND subject_id = ?", uint(classID), uint(subjectID)).
		Find(&grades).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch grades",
		})
	}

	var memberships []models.SubgroupMember
	var subgroups []models.Subgroup
	if err := database.DB.Where("class_id = ?", uint(classID)).Find(&subgroups).Error; err == nil && len(subgroups) > 0 {
		ids := make([]uint, 0, len(subgroups))
		for _, sg := range subgroups {
			ids = append(ids, sg.ID)
		}
		database.DB.Where("subgroup_id IN ?", ids).Find(&memberships)
	}

	slots := aggregation.ResolveLessonSlots(uint(classID), uint(subjectID), subgroupID, schedules, assignments)

	var scoped []models.Grade
	view := aggregation.View{Kind: aggregation.ViewMain}
	if subgroupID != nil {
		scoped = aggregation.GradesForSubgroupView(*subgroupID, grades, schedules, memberships)
		view = aggregation.View{Kind: aggregation.ViewSubgroup, SubgroupID: *subgroupID}
	} else {
		scoped = aggregation.GradesForMainView(grades, schedules, memberships)
	}

	// Per-student aggregates for the journal's summary column, computed over
	// the same scoped grade set the page displays.
	snap := aggregation.Snapshot{
		GradingSystem: class.GradingSystem,
		SubjectIDs:    []uint{uint(subjectID)},
		Grades:        grades,
		Schedules:     schedules,
		Assignments:   assignments,
		Subgroups:     subgroups,
		Memberships:   memberships,
		View:          view,
	}
	report, err := aggregation.Aggregate(snap)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to aggregate journal",
		})
	}

	var teachers []models.Teacher
	database.DB.Find(&teachers)

	return c.JSON(fiber.Map{
		"class_id":   uint(classID),
		"subject_id": uint(subjectID),
		"lessons":    slots,
		"grades":     utils.ToGradeDTOs(scoped, teachers),
		"summary":    report,
	})
}
