package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	s, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], s...)
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// Grading systems supported at class level. The grading system decides both
// the allowed grade bounds and the calculator strategy used for aggregates.
const (
	GradingFivePoint  = "five_point"
	GradingCumulative = "cumulative"
)

// Schedule (lesson) statuses
const (
	ScheduleNotConducted = "not_conducted"
	ScheduleConducted    = "conducted"
)

// User model
type User struct {
	BaseModel
	Username             string     `json:"username" gorm:"size:100;not null;uniqueIndex"`
	Password             string     `json:"-" gorm:"size:255;not null"`
	Email                string     `json:"email" gorm:"size:255;uniqueIndex"`
	Phone                string     `json:"phone" gorm:"size:20"`
	Role                 string     `json:"role" gorm:"size:50;not null;default:'student';type:enum('owner','admin','teacher','student')"` // owner, admin, teacher, student
	Status               string     `json:"status" gorm:"size:50;not null;default:'active';type:enum('active','inactive','suspended')"`    // active, inactive, suspended
	Avatar               string     `json:"avatar" gorm:"size:500"`
	PasswordResetToken   string     `json:"-" gorm:"size:255"`
	PasswordResetExpires *time.Time `json:"-"`

	// Relationships
	Student *Student `json:"student,omitempty" gorm:"foreignKey:UserID"`
	Teacher *Teacher `json:"teacher,omitempty" gorm:"foreignKey:UserID"`
}

// Student model (profile of a user with role student)
type Student struct {
	BaseModel
	UserID      uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	FirstName   string     `json:"first_name" gorm:"size:100"`
	LastName    string     `json:"last_name" gorm:"size:100"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      string     `json:"gender" gorm:"size:20"`
	ClassID     uint       `json:"class_id" gorm:"index"`
	ParentName  string     `json:"parent_name" gorm:"size:200"`
	ParentPhone string     `json:"parent_phone" gorm:"size:20"`

	// Relationships
	User  User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Class SchoolClass `json:"class,omitempty" gorm:"foreignKey:ClassID"`
}

// Teacher model
type Teacher struct {
	BaseModel
	UserID         uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	FirstName      string `json:"first_name" gorm:"size:100"`
	LastName       string `json:"last_name" gorm:"size:100"`
	Specialization string `json:"specialization" gorm:"size:200"`
	Active         bool   `json:"active" gorm:"default:true"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// SchoolClass model. GradingSystem picks the aggregation strategy and grade
// bounds for every subject taught to this class.
type SchoolClass struct {
	BaseModel
	Name          string `json:"name" gorm:"size:100;not null"`
	GradeLevel    int    `json:"grade_level"`
	HomeroomID    uint   `json:"homeroom_teacher_id"`
	GradingSystem string `json:"grading_system" gorm:"size:50;not null;default:'five_point';type:enum('five_point','cumulative')"` // five_point, cumulative

	// Relationships
	Homeroom  Teacher    `json:"homeroom_teacher,omitempty" gorm:"foreignKey:HomeroomID"`
	Students  []Student  `json:"students,omitempty" gorm:"foreignKey:ClassID"`
	Subgroups []Subgroup `json:"subgroups,omitempty" gorm:"foreignKey:ClassID"`
}

// Subject model
type Subject struct {
	BaseModel
	Name        string `json:"name" gorm:"size:255;not null"`
	Code        string `json:"code" gorm:"size:100;uniqueIndex"`
	Description string `json:"description" gorm:"type:text"`
	Active      bool   `json:"active" gorm:"default:true"`
}

// ClassSubject links a subject (and its teacher) to a class
type ClassSubject struct {
	BaseModel
	ClassID   uint `json:"class_id" gorm:"not null;index"`
	SubjectID uint `json:"subject_id" gorm:"not null;index"`
	TeacherID uint `json:"teacher_id"`

	// Relationships
	Class   SchoolClass `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Subject Subject     `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Teacher Teacher     `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
}

// Subgroup is a named subset of a class's students. A subgroup is scoped to
// a subject only through the schedules that reference it.
type Subgroup struct {
	BaseModel
	ClassID uint   `json:"class_id" gorm:"not null;index"`
	Name    string `json:"name" gorm:"size:100;not null"`

	// Relationships
	Class   SchoolClass      `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Members []SubgroupMember `json:"members,omitempty" gorm:"foreignKey:SubgroupID"`
}

// SubgroupMember assigns a student to a subgroup
type SubgroupMember struct {
	BaseModel
	SubgroupID uint `json:"subgroup_id" gorm:"not null;index"`
	StudentID  uint `json:"student_id" gorm:"not null;index"`

	// Relationships
	Subgroup Subgroup `json:"subgroup,omitempty" gorm:"foreignKey:SubgroupID"`
	Student  Student  `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

// Schedule is one calendar occurrence of a lesson. SubgroupID set means the
// lesson is held for that subgroup only; nil means whole-class lesson.
// StartTime and EndTime are "HH:MM" strings.
type Schedule struct {
	BaseModel
	ClassID      uint       `json:"class_id" gorm:"not null;index"`
	SubjectID    uint       `json:"subject_id" gorm:"not null;index"`
	SubgroupID   *uint      `json:"subgroup_id" gorm:"default:null;index"`
	TeacherID    uint       `json:"teacher_id"`
	ScheduleDate *time.Time `json:"schedule_date" gorm:"index"`
	StartTime    string     `json:"start_time" gorm:"size:5"`
	EndTime      string     `json:"end_time" gorm:"size:5"`
	RoomName     string     `json:"room_name" gorm:"size:100"`
	Status       string     `json:"status" gorm:"size:50;not null;default:'not_conducted';type:enum('not_conducted','conducted')"` // not_conducted, conducted
	Topic        string     `json:"topic" gorm:"size:500"`
	Homework     string     `json:"homework" gorm:"type:text"`

	// Relationships
	Class    SchoolClass `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Subject  Subject     `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Subgroup *Subgroup   `json:"subgroup,omitempty" gorm:"foreignKey:SubgroupID"`
	Teacher  Teacher     `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
}

// Assignment exists only for cumulative-grading classes. PlannedFor marks an
// assignment created ahead of the lesson being conducted; grades against it
// stay out of aggregates until the lesson happens.
type Assignment struct {
	BaseModel
	ScheduleID uint    `json:"schedule_id" gorm:"not null;index"`
	SubjectID  uint    `json:"subject_id" gorm:"not null;index"`
	ClassID    uint    `json:"class_id" gorm:"not null;index"`
	SubgroupID *uint   `json:"subgroup_id" gorm:"default:null"`
	Title      string  `json:"title" gorm:"size:255"`
	Type       string  `json:"type" gorm:"size:100"`
	MaxScore   float64 `json:"max_score" gorm:"not null"`
	PlannedFor bool    `json:"planned_for" gorm:"default:false"`

	// Relationships
	Schedule Schedule `json:"schedule,omitempty" gorm:"foreignKey:ScheduleID"`
	Subject  Subject  `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
}

// Grade model. ScheduleID, AssignmentID and SubgroupID are each optional and
// independently nullable; none implies another.
type Grade struct {
	BaseModel
	StudentID    uint    `json:"student_id" gorm:"not null;index"`
	SubjectID    uint    `json:"subject_id" gorm:"not null;index"`
	ClassID      uint    `json:"class_id" gorm:"not null;index"`
	TeacherID    uint    `json:"teacher_id" gorm:"not null"`
	Value        float64 `json:"value" gorm:"not null"`
	GradeType    string  `json:"grade_type" gorm:"size:100"`
	Comment      string  `json:"comment" gorm:"size:500"`
	ScheduleID   *uint   `json:"schedule_id" gorm:"default:null;index"`
	AssignmentID *uint   `json:"assignment_id" gorm:"default:null;index"`
	SubgroupID   *uint   `json:"subgroup_id" gorm:"default:null"`

	// Relationships
	Student    Student     `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Subject    Subject     `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Schedule   *Schedule   `json:"schedule,omitempty" gorm:"foreignKey:ScheduleID"`
	Assignment *Assignment `json:"assignment,omitempty" gorm:"foreignKey:AssignmentID"`
}

// Log model for activity tracking
type ActivityLog struct {
	BaseModel
	UserID     uint   `json:"user_id"`
	Action     string `json:"action" gorm:"size:100;not null"`
	Resource   string `json:"resource" gorm:"size:100;not null"`
	ResourceID uint   `json:"resource_id"`
	Details    JSON   `json:"details" gorm:"type:json"`
	IPAddress  string `json:"ip_address" gorm:"size:45"`
	UserAgent  string `json:"user_agent" gorm:"size:500"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// LogArchive model for tracking archived audit logs
type LogArchive struct {
	BaseModel
	FileName    string    `json:"file_name" gorm:"size:255;not null"`
	S3Key       string    `json:"s3_key" gorm:"size:500;not null"`
	StartDate   time.Time `json:"start_date" gorm:"not null"`
	EndDate     time.Time `json:"end_date" gorm:"not null"`
	RecordCount int       `json:"record_count" gorm:"not null"`
	FileSize    int64     `json:"file_size" gorm:"not null"`
	Status      string    `json:"status" gorm:"size:50;not null;default:'pending';type:enum('pending','completed','failed')"` // pending, completed, failed
	Error       string    `json:"error" gorm:"type:text"`
}

// ReportExport tracks generated performance report files
type ReportExport struct {
	BaseModel
	ClassID     uint   `json:"class_id" gorm:"not null;index"`
	RequestedBy uint   `json:"requested_by"`
	FileName    string `json:"file_name" gorm:"size:255;not null"`
	S3Key       string `json:"s3_key" gorm:"size:500"`
	URL         string `json:"url" gorm:"size:500"`
	Status      string `json:"status" gorm:"size:50;not null;default:'completed';type:enum('pending','completed','failed')"` // pending, completed, failed
}
