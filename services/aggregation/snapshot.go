package aggregation

import (
	"classjournal_go/models"
)

// View selects which journal perspective an aggregation run covers.
// ViewAll ignores subgroup scoping and aggregates every grade a student has
// (the class performance report). ViewMain and ViewSubgroup apply the
// partition rules so journal pages only count the grades they display.
type View struct {
	Kind       ViewKind
	SubgroupID uint
}

type ViewKind int

const (
	ViewAll ViewKind = iota
	ViewMain
	ViewSubgroup
)

// Snapshot is the immutable input to one aggregation run. The engine never
// touches the database; callers fetch these collections up front.
type Snapshot struct {
	GradingSystem string
	StudentIDs    []uint
	SubjectIDs    []uint
	Grades        []models.Grade
	Schedules     []models.Schedule
	Assignments   []models.Assignment
	Subgroups     []models.Subgroup
	Memberships   []models.SubgroupMember
	View          View
}

// LinkageKind classifies how a grade is attached to the rest of the journal.
// The three foreign keys on Grade are independently nullable, so the scoping
// and eligibility rules work off this classification instead of re-checking
// raw pointers everywhere.
type LinkageKind int

const (
	// LinkNone - free-standing grade, not tied to a lesson or assignment
	LinkNone LinkageKind = iota
	// LinkSchedule - tied to a lesson occurrence only
	LinkSchedule
	// LinkAssignment - tied to an assignment (usually through its lesson too)
	LinkAssignment
)

// Linkage is the resolved attachment context of a single grade.
type Linkage struct {
	Kind         LinkageKind
	ScheduleID   uint
	AssignmentID uint
	SubgroupTag  uint // denormalized subgroup id on the grade, 0 when untagged
}

// ClassifyLinkage resolves a grade's attachment context.
func ClassifyLinkage(g models.Grade) Linkage {
	l := Linkage{Kind: LinkNone}
	if g.ScheduleID != nil {
		l.ScheduleID = *g.ScheduleID
		l.Kind = LinkSchedule
	}
	if g.AssignmentID != nil {
		l.AssignmentID = *g.AssignmentID
		l.Kind = LinkAssignment
	}
	if g.SubgroupID != nil {
		l.SubgroupTag = *g.SubgroupID
	}
	return l
}

// index holds the lookup tables one aggregation run needs. Built once per
// snapshot so the filters and calculators stay O(n).
type index struct {
	scheduleByID          map[uint]models.Schedule
	assignmentByID        map[uint]models.Assignment
	assignmentsBySchedule map[uint][]models.Assignment
	memberSubgroups       map[uint]map[uint]bool // studentID -> set of subgroup ids
}

func buildIndex(snap *Snapshot) *index {
	idx := &index{
		scheduleByID:          make(map[uint]models.Schedule, len(snap.Schedules)),
		assignmentByID:        make(map[uint]models.Assignment, len(snap.Assignments)),
		assignmentsBySchedule: make(map[uint][]models.Assignment),
		memberSubgroups:       make(map[uint]map[uint]bool),
	}
	for _, s := range snap.Schedules {
		idx.scheduleByID[s.ID] = s
	}
	for _, a := range snap.Assignments {
		idx.assignmentByID[a.ID] = a
		idx.assignmentsBySchedule[a.ScheduleID] = append(idx.assignmentsBySchedule[a.ScheduleID], a)
	}
	for _, m := range snap.Memberships {
		set, ok := idx.memberSubgroups[m.StudentID]
		if !ok {
			set = make(map[uint]bool)
			idx.memberSubgroups[m.StudentID] = set
		}
		set[m.SubgroupID] = true
	}
	return idx
}

// isMember reports whether the student belongs to the given subgroup.
func (idx *index) isMember(studentID, subgroupID uint) bool {
	return idx.memberSubgroups[studentID][subgroupID]
}
