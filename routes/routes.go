package routes

import (
	"classjournal_go/controllers"
	"classjournal_go/middleware"
	"classjournal_go/services"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App, performance *services.PerformanceService) {
	// Initialize controllers
	authController := &controllers.AuthController{}
	healthController := &controllers.HealthController{}
	userController := &controllers.UserController{}
	classController := &controllers.ClassController{}
	subjectController := &controllers.SubjectController{}
	subgroupController := &controllers.SubgroupController{}
	scheduleController := controllers.NewScheduleController(services.NewScheduleService(), performance)
	assignmentController := controllers.NewAssignmentController(performance)
	gradeController := controllers.NewGradeController(services.NewGradeService(), performance)
	performanceController := controllers.NewPerformanceController(performance, services.NewReportExportService(performance))

	// API group
	api := app.Group("/api")

	api.Get("/health", healthController.GetHealth)

	// Authentication routes (no middleware)
	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)
	auth.Get("/profile", middleware.JWTMiddleware(), authController.GetProfile)

	// Protected routes (require authentication)
	protected := api.Group("/", middleware.JWTMiddleware())

	protected.Get("/profile", authController.GetProfile)
	protected.Put("/profile/password", authController.ChangePassword)

	// User management routes
	users := protected.Group("/users")
	users.Get("/", middleware.RequireTeacherOrAbove(), userController.GetUsers)
	users.Get("/:id", middleware.RequireTeacherOrAbove(), userController.GetUser)
	users.Post("/", middleware.RequireOwnerOrAdmin(), authController.Register)
	users.Put("/:id", middleware.RequireOwnerOrAdmin(), userController.UpdateUser)
	users.Delete("/:id", middleware.RequireOwnerOrAdmin(), userController.DeleteUser)

	protected.Get("/students", middleware.RequireTeacherOrAbove(), userController.GetStudents)
	protected.Get("/teachers", middleware.RequireTeacherOrAbove(), userController.GetTeachers)

	// Class management routes
	classes := protected.Group("/classes")
	classes.Get("/", classController.GetClasses)
	classes.Get("/:id", classController.GetClass)
	classes.Post("/", middleware.RequireOwnerOrAdmin(), classController.CreateClass)
	classes.Put("/:id", middleware.RequireOwnerOrAdmin(), classController.UpdateClass)
	classes.Delete("/:id", middleware.RequireOwnerOrAdmin(), classController.DeleteClass)
	classes.Get("/:id/subjects", classController.GetClassSubjects)
	classes.Post("/:id/subjects", middleware.RequireOwnerOrAdmin(), classController.AssignSubject)

	// Subject management routes
	subjects := protected.Group("/subjects")
	subjects.Get("/", subjectController.GetSubjects)
	subjects.Get("/:id", subjectController.GetSubject)
	subjects.Post("/", middleware.RequireOwnerOrAdmin(), subjectController.CreateSubject)
	subjects.Put("/:id", middleware.RequireOwnerOrAdmin(), subjectController.UpdateSubject)
	subjects.Delete("/:id", middleware.RequireOwnerOrAdmin(), subjectController.DeleteSubject)

	// Subgroup management routes
	subgroups := protected.Group("/subgroups")
	subgroups.Get("/", subgroupController.GetSubgroups)
	subgroups.Get("/:id", subgroupController.GetSubgroup)
	subgroups.Post("/", middleware.RequireTeacherOrAbove(), subgroupController.CreateSubgroup)
	subgroups.Put("/:id", middleware.RequireTeacherOrAbove(), subgroupController.UpdateSubgroup)
	subgroups.Delete("/:id", middleware.RequireOwnerOrAdmin(), subgroupController.DeleteSubgroup)
	subgroups.Post("/:id/members", middleware.RequireTeacherOrAbove(), subgroupController.AddMember)
	subgroups.Delete("/:id/members/:student_id", middleware.RequireTeacherOrAbove(), subgroupController.RemoveMember)

	// Schedule (lesson) routes
	schedules := protected.Group("/schedules")
	schedules.Get("/", scheduleController.GetSchedules)
	schedules.Get("/:id", scheduleController.GetSchedule)
	schedules.Post("/", middleware.RequireTeacherOrAbove(), scheduleController.CreateSchedule)
	schedules.Put("/:id", middleware.RequireTeacherOrAbove(), scheduleController.UpdateSchedule)
	schedules.Patch("/:id/status", middleware.RequireTeacherOrAbove(), scheduleController.UpdateStatus)
	schedules.Delete("/:id", middleware.RequireOwnerOrAdmin(), scheduleController.DeleteSchedule)

	// Assignment routes
	assignments := protected.Group("/assignments")
	assignments.Get("/", assignmentController.GetAssignments)
	assignments.Get("/:id", assignmentController.GetAssignment)
	assignments.Post("/", middleware.RequireTeacherOrAbove(), assignmentController.CreateAssignment)
	assignments.Put("/:id", middleware.RequireTeacherOrAbove(), assignmentController.UpdateAssignment)
	assignments.Delete("/:id", middleware.RequireTeacherOrAbove(), assignmentController.DeleteAssignment)

	// Grade routes
	grades := protected.Group("/grades")
	grades.Get("/", gradeController.GetGrades)
	grades.Post("/", middleware.RequireTeacherOrAbove(), gradeController.CreateGrade)
	grades.Put("/:id", middleware.RequireTeacherOrAbove(), gradeController.UpdateGrade)
	grades.Delete("/:id", middleware.RequireTeacherOrAbove(), gradeController.DeleteGrade)

	// Performance and journal routes
	performanceRoutes := protected.Group("/performance")
	performanceRoutes.Get("/class/:id", performanceController.GetClassPerformance)
	performanceRoutes.Get("/class/:id/export", middleware.RequireTeacherOrAbove(), performanceController.ExportClassPerformance)
	performanceRoutes.Get("/student/:id", performanceController.GetStudentPerformance)

	journal := protected.Group("/journal")
	journal.Get("/class/:id/subject/:subject_id", performanceController.GetJournal)
}
