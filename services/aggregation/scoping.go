package aggregation

import (
	"classjournal_go/models"
)

// Subgroup scoping: when a subject is partially split into subgroups, every
// grade for that subject must land in exactly one journal - either a specific
// subgroup's page or the main class page, never both and never neither.
//
// The schedule link is the authoritative signal: a grade tied to a
// subgroup-only lesson can only belong to that subgroup's journal. The
// denormalized subgroup tag on the grade and the student's membership are
// fallback signals for legacy grades that were entered without a lesson link.

// scheduleSubgroups maps schedule id -> owning subgroup id for the subject's
// subgroup-specific lessons, and collects the set of subgroup ids the subject
// is split into (a subgroup is scoped to a subject via its schedules).
func scheduleSubgroups(schedules []models.Schedule) (map[uint]uint, map[uint]bool) {
	owner := make(map[uint]uint)
	known := make(map[uint]bool)
	for _, s := range schedules {
		if s.SubgroupID != nil {
			owner[s.ID] = *s.SubgroupID
			known[*s.SubgroupID] = true
		}
	}
	return owner, known
}

// GradesForSubgroupView filters subject grades down to the ones a subgroup's
// journal page shows. A grade is included iff:
//  1. its lesson belongs to this subgroup (schedule linkage wins outright), or
//  2. its student is a member of this subgroup, and the grade is either
//     tagged with this subgroup id, or entirely unlinked and untagged (an
//     unscoped grade for a member defaults into the member's subgroup view).
func GradesForSubgroupView(subgroupID uint, grades []models.Grade, schedules []models.Schedule, memberships []models.SubgroupMember) []models.Grade {
	owner, _ := scheduleSubgroups(schedules)
	members := make(map[uint]bool)
	for _, m := range memberships {
		if m.SubgroupID == subgroupID {
			members[m.StudentID] = true
		}
	}

	out := make([]models.Grade, 0, len(grades))
	for _, g := range grades {
		l := ClassifyLinkage(g)
		if l.ScheduleID != 0 && owner[l.ScheduleID] == subgroupID {
			out = append(out, g)
			continue
		}
		if !members[g.StudentID] {
			continue
		}
		if l.SubgroupTag == subgroupID {
			out = append(out, g)
			continue
		}
		if l.ScheduleID == 0 && l.SubgroupTag == 0 {
			out = append(out, g)
		}
	}
	return out
}

// GradesForMainView filters subject grades down to the ones the main class
// journal shows: everything that does not belong to some subgroup's view.
// A grade is excluded iff any of:
//  1. its lesson belongs to a subgroup of this subject,
//  2. it is tagged with one of this subject's known subgroup ids,
//  3. its student is a member of one of this subject's subgroups and the
//     grade has no lesson link (ambiguous ownership resolves toward the
//     subgroup journal, mirroring the default in GradesForSubgroupView).
func GradesForMainView(grades []models.Grade, schedules []models.Schedule, memberships []models.SubgroupMember) []models.Grade {
	owner, known := scheduleSubgroups(schedules)

	memberOfKnown := make(map[uint]bool)
	for _, m := range memberships {
		if known[m.SubgroupID] {
			memberOfKnown[m.StudentID] = true
		}
	}

	out := make([]models.Grade, 0, len(grades))
	for _, g := range grades {
		l := ClassifyLinkage(g)
		if l.ScheduleID != 0 {
			if _, claimed := owner[l.ScheduleID]; claimed {
				continue
			}
		}
		if l.SubgroupTag != 0 && known[l.SubgroupTag] {
			continue
		}
		if l.ScheduleID == 0 && memberOfKnown[g.StudentID] {
			continue
		}
		out = append(out, g)
	}
	return out
}

// scopeGrades applies the snapshot's view to the full grade list.
func scopeGrades(snap *Snapshot) []models.Grade {
	switch snap.View.Kind {
	case ViewSubgroup:
		return GradesForSubgroupView(snap.View.SubgroupID, snap.Grades, snap.Schedules, snap.Memberships)
	case ViewMain:
		return GradesForMainView(snap.Grades, snap.Schedules, snap.Memberships)
	default:
		return snap.Grades
	}
}
