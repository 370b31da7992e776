package controllers

import (
	"classjournal_go/database"

	"github.com/gofiber/fiber/v2"
)

type HealthController struct{}

// GetHealth reports service, database and cache status
func (hc *HealthController) GetHealth(c *fiber.Ctx) error {
	dbStatus := "ok"
	if sqlDB, err := database.DB.DB(); err != nil {
		dbStatus = "error"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error"
	}

	redisStatus := "disabled"
	if redisClient := database.GetRedisClient(); redisClient != nil {
		redisStatus = "ok"
		if err := redisClient.Ping(c.Context()).Err(); err != nil {
			redisStatus = "error"
		}
	}

	status := fiber.StatusOK
	if dbStatus != "ok" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":   dbStatus,
		"database": dbStatus,
		"redis":    redisStatus,
	})
}
