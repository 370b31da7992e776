package utils

import (
	"time"

	"classjournal_go/models"
)

// Compact representations used across APIs
type StudentShort struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type TeacherShort struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type GradeDTO struct {
	ID           uint         `json:"id"`
	CreatedAt    time.Time    `json:"created_at"`
	StudentID    uint         `json:"student_id"`
	SubjectID    uint         `json:"subject_id"`
	ClassID      uint         `json:"class_id"`
	Value        float64      `json:"value"`
	GradeType    string       `json:"grade_type,omitempty"`
	Comment      string       `json:"comment,omitempty"`
	ScheduleID   *uint        `json:"schedule_id,omitempty"`
	AssignmentID *uint        `json:"assignment_id,omitempty"`
	SubgroupID   *uint        `json:"subgroup_id,omitempty"`
	Student      StudentShort `json:"student"`
	Teacher      TeacherShort `json:"teacher"`
}

// ToGradeDTO maps a models.Grade to the compact DTO.
// Assumptions: caller has preloaded Student when possible.
func ToGradeDTO(g models.Grade, teachers map[uint]models.Teacher) GradeDTO {
	dto := GradeDTO{
		ID:           g.ID,
		CreatedAt:    g.CreatedAt,
		StudentID:    g.StudentID,
		SubjectID:    g.SubjectID,
		ClassID:      g.ClassID,
		Value:        g.Value,
		GradeType:    g.GradeType,
		Comment:      g.Comment,
		ScheduleID:   g.ScheduleID,
		AssignmentID: g.AssignmentID,
		SubgroupID:   g.SubgroupID,
		Student: StudentShort{
			ID:        g.StudentID,
			FirstName: g.Student.FirstName,
			LastName:  g.Student.LastName,
		},
	}
	if t, ok := teachers[g.TeacherID]; ok {
		dto.Teacher = TeacherShort{ID: t.ID, FirstName: t.FirstName, LastName: t.LastName}
	} else {
		dto.Teacher = TeacherShort{ID: g.TeacherID}
	}
	return dto
}

// ToGradeDTOs maps a grade list, resolving teacher names in one pass.
func ToGradeDTOs(grades []models.Grade, teachers []models.Teacher) []GradeDTO {
	byID := make(map[uint]models.Teacher, len(teachers))
	for _, t := range teachers {
		byID[t.ID] = t
	}
	out := make([]GradeDTO, 0, len(grades))
	for _, g := range grades {
		out = append(out, ToGradeDTO(g, byID))
	}
	return out
}
