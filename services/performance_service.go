package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"classjournal_go/database"
	"classjournal_go/models"
	"classjournal_go/services/aggregation"

	"github.com/sirupsen/logrus"
)

// PerformanceService assembles snapshots for the aggregation engine and is
// the single source of truth for performance numbers: the API handlers, the
// Excel export and the cache refresher all go through it.
type PerformanceService struct {
	cache *PerformanceCache
}

func NewPerformanceService() *PerformanceService {
	return &PerformanceService{cache: NewPerformanceCache()}
}

// ClassSnapshot loads everything one aggregation run needs for a class.
// subjectID narrows the snapshot to one subject; view selects the journal
// perspective. Lookups that fail partially degrade to empty collections so
// every student still gets a report row.
func (ps *PerformanceService) ClassSnapshot(classID uint, subjectID *uint, view aggregation.View) (aggregation.Snapshot, error) {
	var class models.SchoolClass
	if err := database.DB.First(&class, classID).Error; err != nil {
		return aggregation.Snapshot{}, fmt.Errorf("class %d not found: %w", classID, err)
	}

	snap := aggregation.Snapshot{
		GradingSystem: class.GradingSystem,
		View:          view,
	}

	var students []models.Student
	if err := database.DB.Where("class_id = ?", classID).Find(&students).Error; err != nil {
		return aggregation.Snapshot{}, err
	}
	for _, s := range students {
		snap.StudentIDs = append(snap.StudentIDs, s.ID)
	}

	gradeQuery := database.DB.Where("class_id = ?", classID)
	scheduleQuery := database.DB.Where("class_id = ?", classID)
	assignmentQuery := database.DB.Where("class_id = ?", classID)
	if subjectID != nil {
		gradeQuery = gradeQuery.Where("subject_id = ?", *subjectID)
		scheduleQuery = scheduleQuery.Where("subject_id = ?", *subjectID)
		assignmentQuery = assignmentQuery.Where("subject_id = ?", *subjectID)
		snap.SubjectIDs = []uint{*subjectID}
	} else {
		var classSubjects []models.ClassSubject
		if err := database.DB.Where("class_id = ?", classID).Find(&classSubjects).Error; err == nil {
			for _, cs := range classSubjects {
				snap.SubjectIDs = append(snap.SubjectIDs, cs.SubjectID)
			}
		}
	}

	if err := gradeQuery.Find(&snap.Grades).Error; err != nil {
		return aggregation.Snapshot{}, err
	}
	if err := scheduleQuery.Find(&snap.Schedules).Error; err != nil {
		logrus.WithError(err).Warn("Schedule lookup failed, aggregating without lesson links")
		snap.Schedules = nil
	}
	if err := assignmentQuery.Find(&snap.Assignments).Error; err != nil {
		logrus.WithError(err).Warn("Assignment lookup failed, aggregating without assignments")
		snap.Assignments = nil
	}

	if err := database.DB.Where("class_id = ?", classID).Find(&snap.Subgroups).Error; err == nil && len(snap.Subgroups) > 0 {
		subgroupIDs := make([]uint, 0, len(snap.Subgroups))
		for _, sg := range snap.Subgroups {
			subgroupIDs = append(subgroupIDs, sg.ID)
		}
		if err := database.DB.Where("subgroup_id IN ?", subgroupIDs).Find(&snap.Memberships).Error; err != nil {
			logrus.WithError(err).Warn("Membership lookup failed, treating grades as unscoped")
			snap.Memberships = nil
		}
	}

	return snap, nil
}

// ClassReport computes (or serves from cache) the full performance report
// for a class. Only the unfiltered whole-class report is cached; narrowed
// views are cheap enough to compute on demand.
func (ps *PerformanceService) ClassReport(ctx context.Context, classID uint, subjectID *uint, view aggregation.View) (aggregation.Report, error) {
	cacheable := subjectID == nil && view.Kind == aggregation.ViewAll
	if cacheable {
		if report, ok := ps.cache.Get(ctx, classID); ok {
			return report, nil
		}
	}

	snap, err := ps.ClassSnapshot(classID, subjectID, view)
	if err != nil {
		return nil, err
	}
	report, err := aggregation.Aggregate(snap)
	if err != nil {
		return nil, err
	}

	if cacheable {
		ps.cache.Set(ctx, classID, report)
	}
	return report, nil
}

// StudentReport computes one student's row using the class-wide pipeline so
// the numbers can never drift from the class report.
func (ps *PerformanceService) StudentReport(ctx context.Context, studentID uint) (aggregation.StudentReport, error) {
	var student models.Student
	if err := database.DB.First(&student, studentID).Error; err != nil {
		return nil, fmt.Errorf("student %d not found: %w", studentID, err)
	}

	report, err := ps.ClassReport(ctx, student.ClassID, nil, aggregation.View{Kind: aggregation.ViewAll})
	if err != nil {
		return nil, err
	}
	row, ok := report[studentID]
	if !ok {
		return aggregation.StudentReport{}, nil
	}
	return row, nil
}

// InvalidateClass drops the cached report after any grade, schedule or
// assignment write touching the class.
func (ps *PerformanceService) InvalidateClass(ctx context.Context, classID uint) {
	ps.cache.Invalidate(ctx, classID)
}

// RefreshAll recomputes and caches reports for every class; used by the
// nightly scheduler so morning journal pages open warm.
func (ps *PerformanceService) RefreshAll(ctx context.Context) {
	var classes []models.SchoolClass
	if err := database.DB.Find(&classes).Error; err != nil {
		logrus.WithError(err).Error("Failed to list classes for report refresh")
		return
	}
	start := time.Now()
	for _, class := range classes {
		ps.cache.Invalidate(ctx, class.ID)
		if _, err := ps.ClassReport(ctx, class.ID, nil, aggregation.View{Kind: aggregation.ViewAll}); err != nil {
			logrus.WithError(err).WithField("class_id", class.ID).Warn("Report refresh failed for class")
		}
	}
	logrus.WithFields(logrus.Fields{
		"classes":  len(classes),
		"duration": time.Since(start).String(),
	}).Info("Class report cache refreshed")
}

// PerformanceCache stores computed class reports in Redis. A nil Redis
// client degrades to a no-op cache.
type PerformanceCache struct {
	ttl time.Duration
}

func NewPerformanceCache() *PerformanceCache {
	return &PerformanceCache{ttl: 15 * time.Minute}
}

func cacheKey(classID uint) string {
	return fmt.Sprintf("performance:class:%d", classID)
}

func (pc *PerformanceCache) Get(ctx context.Context, classID uint) (aggregation.Report, bool) {
	redisClient := database.GetRedisClient()
	if redisClient == nil {
		return nil, false
	}
	data, err := redisClient.Get(ctx, cacheKey(classID)).Result()
	if err != nil {
		return nil, false
	}
	var report aggregation.Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		logrus.WithError(err).Warn("Corrupt cached report, recomputing")
		return nil, false
	}
	return report, true
}

func (pc *PerformanceCache) Set(ctx context.Context, classID uint, report aggregation.Report) {
	redisClient := database.GetRedisClient()
	if redisClient == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := redisClient.Set(ctx, cacheKey(classID), data, pc.ttl).Err(); err != nil {
		logrus.WithError(err).Warn("Failed to cache class report")
	}
}

func (pc *PerformanceCache) Invalidate(ctx context.Context, classID uint) {
	redisClient := database.GetRedisClient()
	if redisClient == nil {
		return
	}
	if err := redisClient.Del(ctx, cacheKey(classID)).Err(); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate class report cache")
	}
}
