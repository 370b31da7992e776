package controllers

import (
	"classjournal_go/database"
	"classjournal_go/middleware"
	"classjournal_go/models"
	"classjournal_go/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type ClassController struct{}

// GetClasses returns all classes with pagination
func (cc *ClassController) GetClasses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset := (page - 1) * limit

	var classes []models.SchoolClass
	var total int64

	query := database.DB.Model(&models.SchoolClass{})

	if gradeLevel := c.Query("grade_level"); gradeLevel != "" {
		query = query.Where("grade_level = ?", gradeLevel)
	}
	if system := c.Query("grading_system"); system != "" {
		query = query.Where("grading_system = ?", system)
	}

	query.Count(&total)

	if err := query.Preload("Homeroom").
		Offset(offset).Limit(limit).Find(&classes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch classes",
		})
	}

	return c.JSON(fiber.Map{
		"classes": classes,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetClass returns a specific class by ID
func (cc *ClassController) GetClass(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid class ID",
		})
	}

	var class models.SchoolClass
	if err := database.DB.Preload("Homeroom").Preload("Students").Preload("Subgroups").
		First(&class, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Class not found",
		})
	}

	return c.JSON(fiber.Map{
		"class": class,
	})
}

// CreateClass creates a new class
func (cc *ClassController) CreateClass(c *fiber.Ctx) error {
	var class models.SchoolClass
	if err := c.BodyParser(&class); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if class.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Class name is required",
		})
	}
	if class.GradingSystem == "" {
		class.GradingSystem = models.GradingFivePoint
	}
	if !utils.IsValidGradingSystem(class.GradingSystem) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid grading system",
		})
	}

	if err := database.DB.Create(&class).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create class",
		})
	}

	middleware.LogActivity(c, "CREATE", "classes", class.ID, class)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Class created successfully",
		"class":   class,
	})
}

// UpdateClass updates an existing class
func (cc *ClassController) UpdateClass(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid class ID",
		})
	}

	var class models.SchoolClass
	if err := database.DB.First(&class, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Class not found",
		})
	}

	var updateData models.SchoolClass
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if updateData.GradingSystem != "" && !utils.IsValidGradingSystem(updateData.GradingSystem) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid grading system",
		})
	}

	if err := database.DB.Model(&class).Updates(updateData).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update class",
		})
	}

	middleware.LogActivity(c, "UPDATE", "classes", class.ID, updateData)

	return c.JSON(fiber.Map{
		"message": "Class updated successfully",
		"class":   class,
	})
}

// DeleteClass deletes a class
func (cc *ClassController) DeleteClass(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid class ID",
		})
	}

	var class models.SchoolClass
	if err := database.DB.First(&class, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Class not found",
		})
	}

	if err := database.DB.Delete(&class).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete class",
		})
	}

	middleware.LogActivity(c, "DELETE", "classes", class.ID, class)

	return c.JSON(fiber.Map{
		"message": "Class deleted successfully",
	})
}

// GetClassSubjects returns the subjects taught to a class
func (cc *ClassController) GetClassSubjects(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid class ID",
		})
	}

	var classSubjects []models.ClassSubject
	if err := database.DB.Preload("Subject").Preload("Teacher").
		Where("class_id = ?", uint(id)).Find(&classSubjects).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch class subjects",
		})
	}

	return c.JSON(fiber.Map{
		"class_subjects": classSubjects,
		"total":          len(classSubjects),
	})
}

// AssignSubject links a subject and teacher to a class
func (cc *ClassController) AssignSubject(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid class ID",
		})
	}

	var link models.ClassSubject
	if err := c.BodyParser(&link); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	link.ClassID = uint(id)

	if link.SubjectID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Subject ID is required",
		})
	}

	var existing models.ClassSubject
	if err := database.DB.Where("class_id = ? AND subject_id = ?", link.ClassID, link.SubjectID).
		First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Subject already assigned to this class",
		})
	}

	if err := database.DB.Create(&link).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to assign subject",
		})
	}

	middleware.LogActivity(c, "CREATE", "class_subjects", link.ID, link)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       "Subject assigned successfully",
		"class_subject": link,
	})
}
