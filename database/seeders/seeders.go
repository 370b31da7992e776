package seeders

import (
	"log"
	"time"

	"classjournal_go/database"
	"classjournal_go/models"
	"classjournal_go/utils"
)

// SeedAll runs all seeders
func SeedAll() {
	log.Println("Starting database seeding...")

	SeedUsers()
	SeedClasses()
	SeedSubjects()
	SeedSchedules()
	SeedGrades()

	log.Println("Database seeding completed successfully!")
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func uintPtr(v uint) *uint {
	return &v
}

// SeedUsers seeds accounts and profiles: an admin, two teachers and the
// students of both demo classes.
func SeedUsers() {
	var count int64
	database.DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Println("Users already seeded, skipping...")
		return
	}

	hashed, err := utils.HashPassword("password123")
	if err != nil {
		log.Printf("Error hashing seed password: %v", err)
		return
	}

	users := []models.User{
		{BaseModel: models.BaseModel{ID: 1}, Username: "admin", Password: hashed, Email: "admin@classjournal.example", Role: "admin", Status: "active"},
		{BaseModel: models.BaseModel{ID: 2}, Username: "ivanova", Password: hashed, Email: "ivanova@classjournal.example", Role: "teacher", Status: "active"},
		{BaseModel: models.BaseModel{ID: 3}, Username: "petrov", Password: hashed, Email: "petrov@classjournal.example", Role: "teacher", Status: "active"},
	}
	studentNames := []struct {
		first, last string
	}{
		{"Anna", "Smirnova"},
		{"Boris", "Kuznetsov"},
		{"Vera", "Orlova"},
		{"Grigory", "Sokolov"},
		{"Daria", "Volkova"},
		{"Egor", "Lebedev"},
	}
	for i, n := range studentNames {
		users = append(users, models.User{
			BaseModel: models.BaseModel{ID: uint(10 + i)},
			Username:  n.first + "." + n.last,
			Password:  hashed,
			Role:      "student",
			Status:    "active",
		})
	}

	for _, user := range users {
		if err := database.DB.Create(&user).Error; err != nil {
			log.Printf("Error seeding user %s: %v", user.Username, err)
		}
	}

	teachers := []models.Teacher{
		{BaseModel: models.BaseModel{ID: 1}, UserID: 2, FirstName: "Elena", LastName: "Ivanova", Specialization: "Mathematics", Active: true},
		{BaseModel: models.BaseModel{ID: 2}, UserID: 3, FirstName: "Sergey", LastName: "Petrov", Specialization: "English", Active: true},
	}
	for _, teacher := range teachers {
		if err := database.DB.Create(&teacher).Error; err != nil {
			log.Printf("Error seeding teacher %s: %v", teacher.LastName, err)
		}
	}

	// First three students in class 1 (five-point), the rest in class 2
	for i, n := range studentNames {
		classID := uint(1)
		if i >= 3 {
			classID = 2
		}
		student := models.Student{
			BaseModel: models.BaseModel{ID: uint(i + 1)},
			UserID:    uint(10 + i),
			FirstName: n.first,
			LastName:  n.last,
			ClassID:   classID,
		}
		if err := database.DB.Create(&student).Error; err != nil {
			log.Printf("Error seeding student %s: %v", student.LastName, err)
		}
	}

	log.Println("Users seeded successfully")
}

// SeedClasses seeds one class per grading system plus the subgroup split of
// the cumulative class.
func SeedClasses() {
	var count int64
	database.DB.Model(&models.SchoolClass{}).Count(&count)
	if count > 0 {
		log.Println("Classes already seeded, skipping...")
		return
	}

	classes := []models.SchoolClass{
		{BaseModel: models.BaseModel{ID: 1}, Name: "5A", GradeLevel: 5, HomeroomID: 1, GradingSystem: models.GradingFivePoint},
		{BaseModel: models.BaseModel{ID: 2}, Name: "7B", GradeLevel: 7, HomeroomID: 2, GradingSystem: models.GradingCumulative},
	}
	for _, class := range classes {
		if err := database.DB.Create(&class).Error; err != nil {
			log.Printf("Error seeding class %s: %v", class.Name, err)
		}
	}

	subgroups := []models.Subgroup{
		{BaseModel: models.BaseModel{ID: 1}, ClassID: 2, Name: "English Group 1"},
		{BaseModel: models.BaseModel{ID: 2}, ClassID: 2, Name: "English Group 2"},
	}
	for _, sg := range subgroups {
		if err := database.DB.Create(&sg).Error; err != nil {
			log.Printf("Error seeding subgroup %s: %v", sg.Name, err)
		}
	}

	// Students 4 and 5 in group 1, student 6 in group 2
	members := []models.SubgroupMember{
		{SubgroupID: 1, StudentID: 4},
		{SubgroupID: 1, StudentID: 5},
		{SubgroupID: 2, StudentID: 6},
	}
	for _, m := range members {
		if err := database.DB.Create(&m).Error; err != nil {
			log.Printf("Error seeding subgroup member %d: %v", m.StudentID, err)
		}
	}

	log.Println("Classes seeded successfully")
}

// SeedSubjects seeds subjects and their class assignments
func SeedSubjects() {
	var count int64
	database.DB.Model(&models.Subject{}).Count(&count)
	if count > 0 {
		log.Println("Subjects already seeded, skipping...")
		return
	}

	subjects := []models.Subject{
		{BaseModel: models.BaseModel{ID: 1}, Name: "Mathematics", Code: "MATH", Active: true},
		{BaseModel: models.BaseModel{ID: 2}, Name: "English", Code: "ENG", Active: true},
	}
	for _, subject := range subjects {
		if err := database.DB.Create(&subject).Error; err != nil {
			log.Printf("Error seeding subject %s: %v", subject.Code, err)
		}
	}

	links := []models.ClassSubject{
		{ClassID: 1, SubjectID: 1, TeacherID: 1},
		{ClassID: 1, SubjectID: 2, TeacherID: 2},
		{ClassID: 2, SubjectID: 1, TeacherID: 1},
		{ClassID: 2, SubjectID: 2, TeacherID: 2},
	}
	for _, link := range links {
		if err := database.DB.Create(&link).Error; err != nil {
			log.Printf("Error seeding class subject %d/%d: %v", link.ClassID, link.SubjectID, err)
		}
	}

	log.Println("Subjects seeded successfully")
}

// SeedSchedules seeds past conducted lessons, an upcoming one, and the
// assignments of the cumulative class (one of them planned ahead).
func SeedSchedules() {
	var count int64
	database.DB.Model(&models.Schedule{}).Count(&count)
	if count > 0 {
		log.Println("Schedules already seeded, skipping...")
		return
	}

	schedules := []models.Schedule{
		// Five-point class, Mathematics
		{BaseModel: models.BaseModel{ID: 1}, ClassID: 1, SubjectID: 1, TeacherID: 1, ScheduleDate: datePtr(2026, 2, 2), StartTime: "08:30", EndTime: "09:15", Status: models.ScheduleConducted, Topic: "Fractions"},
		{BaseModel: models.BaseModel{ID: 2}, ClassID: 1, SubjectID: 1, TeacherID: 1, ScheduleDate: datePtr(2026, 2, 9), StartTime: "08:30", EndTime: "09:15", Status: models.ScheduleConducted, Topic: "Decimals"},
		// Cumulative class, Mathematics (whole class)
		{BaseModel: models.BaseModel{ID: 3}, ClassID: 2, SubjectID: 1, TeacherID: 1, ScheduleDate: datePtr(2026, 2, 3), StartTime: "10:00", EndTime: "10:45", Status: models.ScheduleConducted, Topic: "Equations"},
		// Cumulative class, English, split into subgroups
		{BaseModel: models.BaseModel{ID: 4}, ClassID: 2, SubjectID: 2, SubgroupID: uintPtr(1), TeacherID: 2, ScheduleDate: datePtr(2026, 2, 4), StartTime: "11:00", EndTime: "11:45", Status: models.ScheduleConducted, Topic: "Reading"},
		{BaseModel: models.BaseModel{ID: 5}, ClassID: 2, SubjectID: 2, SubgroupID: uintPtr(2), TeacherID: 2, ScheduleDate: datePtr(2026, 2, 4), StartTime: "12:00", EndTime: "12:45", Status: models.ScheduleConducted, Topic: "Reading"},
		// Upcoming lesson, not conducted yet
		{BaseModel: models.BaseModel{ID: 6}, ClassID: 2, SubjectID: 1, TeacherID: 1, ScheduleDate: datePtr(2027, 6, 1), StartTime: "10:00", EndTime: "10:45", Status: models.ScheduleNotConducted, Topic: "Review"},
	}
	for _, s := range schedules {
		if err := database.DB.Create(&s).Error; err != nil {
			log.Printf("Error seeding schedule %d: %v", s.ID, err)
		}
	}

	assignments := []models.Assignment{
		{BaseModel: models.BaseModel{ID: 1}, ScheduleID: 3, SubjectID: 1, ClassID: 2, Title: "Equations test", Type: "test", MaxScore: 20},
		{BaseModel: models.BaseModel{ID: 2}, ScheduleID: 4, SubjectID: 2, ClassID: 2, SubgroupID: uintPtr(1), Title: "Reading quiz", Type: "quiz", MaxScore: 10},
		// Planned ahead of the not-yet-conducted lesson: its grades stay out
		// of aggregates until the lesson happens.
		{BaseModel: models.BaseModel{ID: 3}, ScheduleID: 6, SubjectID: 1, ClassID: 2, Title: "Review test", Type: "test", MaxScore: 30, PlannedFor: true},
	}
	for _, a := range assignments {
		if err := database.DB.Create(&a).Error; err != nil {
			log.Printf("Error seeding assignment %d: %v", a.ID, err)
		}
	}

	log.Println("Schedules seeded successfully")
}

// SeedGrades seeds grades in both grading systems, including a subgroup
// lesson grade and a grade against the planned assignment.
func SeedGrades() {
	var count int64
	database.DB.Model(&models.Grade{}).Count(&count)
	if count > 0 {
		log.Println("Grades already seeded, skipping...")
		return
	}

	grades := []models.Grade{
		// Five-point class
		{StudentID: 1, SubjectID: 1, ClassID: 1, TeacherID: 1, Value: 5, GradeType: "test", ScheduleID: uintPtr(1)},
		{StudentID: 1, SubjectID: 1, ClassID: 1, TeacherID: 1, Value: 4, GradeType: "homework", ScheduleID: uintPtr(2)},
		{StudentID: 2, SubjectID: 1, ClassID: 1, TeacherID: 1, Value: 3, GradeType: "exam", ScheduleID: uintPtr(1)},
		// Cumulative class, whole-class assignment
		{StudentID: 4, SubjectID: 1, ClassID: 2, TeacherID: 1, Value: 16, ScheduleID: uintPtr(3), AssignmentID: uintPtr(1)},
		{StudentID: 5, SubjectID: 1, ClassID: 2, TeacherID: 1, Value: 12, ScheduleID: uintPtr(3), AssignmentID: uintPtr(1)},
		// Subgroup lesson grade
		{StudentID: 4, SubjectID: 2, ClassID: 2, TeacherID: 2, Value: 9, ScheduleID: uintPtr(4), AssignmentID: uintPtr(2), SubgroupID: uintPtr(1)},
		// Against the planned assignment of the upcoming lesson
		{StudentID: 6, SubjectID: 1, ClassID: 2, TeacherID: 1, Value: 25, ScheduleID: uintPtr(6), AssignmentID: uintPtr(3)},
	}
	for _, g := range grades {
		if err := database.DB.Create(&g).Error; err != nil {
			log.Printf("Error seeding grade for student %d: %v", g.StudentID, err)
		}
	}

	log.Println("Grades seeded successfully")
}
