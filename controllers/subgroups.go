package controllers

import (
	"classjournal_go/database"
	"classjournal_go/middleware"
	"classjournal_go/models"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type SubgroupController struct{}

// GetSubgroups returns subgroups, optionally filtered by class
func (sgc *SubgroupController) GetSubgroups(c *fiber.Ctx) error {
	var subgroups []models.Subgroup

	query := database.DB.Preload("Members.Student")
	if classID := c.Query("class_id"); classID != "" {
		query = query.Where("class_id = ?", classID)
	}

	if err := query.Find(&subgroups).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch subgroups",
		})
	}

	return c.JSON(fiber.Map{
		"subgroups": subgroups,
		"total":     len(subgroups),
	})
}

// GetSubgroup returns a specific subgroup with its members
func (sgc *SubgroupController) GetSubgroup(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid subgroup ID",
		})
	}

	var subgroup models.Subgroup
	if err := database.DB.Preload("Members.Student").Preload("Class").
		First(&subgroup, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subgroup not found",
		})
	}

	return c.JSON(fiber.Map{
		"subgroup": subgroup,
	})
}

// CreateSubgroup creates a new subgroup within a class
func (sgc *SubgroupController) CreateSubgroup(c *fiber.Ctx) error {
	var subgroup models.Subgroup
	if err := c.BodyParser(&subgroup); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if subgroup.ClassID == 0 || subgroup.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Class ID and name are required",
		})
	}

	var class models.SchoolClass
	if err := database.DB.First(&class, subgroup.ClassID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Class not found",
		})
	}

	if err := database.DB.Create(&subgroup).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create subgroup",
		})
	}

	middleware.LogActivity(c, "CREATE", "subgroups", subgroup.ID, subgroup)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Subgroup created successfully",
		"subgroup": subgroup,
	})
}

// UpdateSubgroup renames a subgroup
func (sgc *SubgroupController) UpdateSubgroup(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid subgroup ID",
		})
	}

	var subgroup models.Subgroup
	if err := database.DB.First(&subgroup, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subgroup not found",
		})
	}

	var updateData struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if updateData.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	if err := database.DB.Model(&subgroup).Update("name", updateData.Name).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update subgroup",
		})
	}

	middleware.LogActivity(c, "UPDATE", "subgroups", subgroup.ID, updateData)

	return c.JSON(fiber.Map{
		"message":  "Subgroup updated successfully",
		"subgroup": subgroup,
	})
}

// DeleteSubgroup removes a subgroup and its memberships
func (sgc *SubgroupController) DeleteSubgroup(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid subgroup ID",
		})
	}

	var subgroup models.Subgroup
	if err := database.DB.First(&subgroup, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subgroup not found",
		})
	}

	if err := database.DB.Where("subgroup_id = ?", subgroup.ID).
		Delete(&models.SubgroupMember{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove subgroup members",
		})
	}
	if err := database.DB.Delete(&subgroup).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete subgroup",
		})
	}

	middleware.LogActivity(c, "DELETE", "subgroups", subgroup.ID, subgroup)

	return c.JSON(fiber.Map{
		"message": "Subgroup deleted successfully",
	})
}

type AddMemberRequest struct {
	StudentID uint `json:"student_id"`
}

// AddMember adds a student from the subgroup's class to the subgroup
func (sgc *SubgroupController) AddMember(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid subgroup ID",
		})
	}

	var subgroup models.Subgroup
	if err := database.DB.First(&subgroup, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subgroup not found",
		})
	}

	var req AddMemberRequest
	if err := c.BodyParser(&req); err != nil || req.StudentID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Student ID is required",
		})
	}

	var student models.Student
	if err := database.DB.First(&student, req.StudentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}
	if student.ClassID != subgroup.ClassID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Student does not belong to the subgroup's class",
		})
	}

	var existing models.SubgroupMember
	if err := database.DB.Where("subgroup_id = ? AND student_id = ?", subgroup.ID, req.StudentID).
		First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Student is already a member of this subgroup",
		})
	}

	member := models.SubgroupMember{SubgroupID: subgroup.ID, StudentID: req.StudentID}
	if err := database.DB.Create(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add member",
		})
	}

	middleware.LogActivity(c, "CREATE", "subgroup_members", member.ID, member)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Member added successfully",
		"member":  member,
	})
}

// RemoveMember removes a student from a subgroup
func (sgc *SubgroupController) RemoveMember(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid subgroup ID",
		})
	}
	studentID, err := strconv.ParseUint(c.Params("student_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	var member models.SubgroupMember
	if err := database.DB.Where("subgroup_id = ? AND student_id = ?", uint(id), uint(studentID)).
		First(&member).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Membership not found",
		})
	}

	if err := database.DB.Delete(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove member",
		})
	}

	middleware.LogActivity(c, "DELETE", "subgroup_members", member.ID, member)

	return c.JSON(fiber.Map{
		"message": "Member removed successfully",
	})
}
