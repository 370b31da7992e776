package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"classjournal_go/database"
	"classjournal_go/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// LogArchiveService moves write-behind audit logs from Redis into MySQL and
// periodically archives old rows to S3. Grade writes are audited, so the
// activity_logs table grows fast during grading season.
type LogArchiveService struct {
	awsConfig aws.Config
}

func NewLogArchiveService() *LogArchiveService {
	cfg, err := awscfg.LoadDefaultConfig(context.Background(), awscfg.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		logrus.WithError(err).Warn("Failed to load AWS config; S3 archiving disabled until configured")
	}
	return &LogArchiveService{awsConfig: cfg}
}

// FlushCachedLogs drains matured entries from the Redis activity-log queue
// into the database.
func (las *LogArchiveService) FlushCachedLogs() error {
	redisClient := database.GetRedisClient()
	if redisClient == nil {
		return fmt.Errorf("redis client not available")
	}

	ctx := context.Background()
	cutoff := time.Now().Add(-time.Hour)

	keys, err := redisClient.ZRangeByScore(ctx, "audit:queue", &redis.ZRangeBy{
		Min: "0",
		Max: fmt.Sprintf("%d", cutoff.Unix()),
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to read audit queue: %v", err)
	}

	var flushed, failed int
	for _, key := range keys {
		data, err := redisClient.Get(ctx, key).Result()
		if err != nil {
			if err != redis.Nil {
				failed++
			}
			continue
		}

		var entry models.ActivityLog
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			logrus.WithError(err).WithField("key", key).Error("Corrupt cached audit entry")
			failed++
			continue
		}
		if err := database.DB.Create(&entry).Error; err != nil {
			failed++
			continue
		}

		pipe := redisClient.Pipeline()
		pipe.Del(ctx, key)
		pipe.ZRem(ctx, "audit:queue", key)
		if _, err := pipe.Exec(ctx); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("Failed to evict flushed audit entry")
		}
		flushed++
	}

	if flushed > 0 || failed > 0 {
		logrus.WithFields(logrus.Fields{"flushed": flushed, "failed": failed}).Info("Audit log flush completed")
	}
	return nil
}

// ArchiveOldLogs zips activity logs older than the retention window, uploads
// the archive to S3 and deletes the archived rows.
func (las *LogArchiveService) ArchiveOldLogs(retention time.Duration) error {
	cutoff := time.Now().Add(-retention)

	var logs []models.ActivityLog
	if err := database.DB.Where("created_at < ?", cutoff).Find(&logs).Error; err != nil {
		return fmt.Errorf("failed to load logs for archiving: %v", err)
	}
	if len(logs) == 0 {
		return nil
	}

	fileName := fmt.Sprintf("audit-logs-%s.zip", time.Now().Format("2006-01-02"))
	archive := models.LogArchive{
		FileName:    fileName,
		StartDate:   logs[0].CreatedAt,
		EndDate:     logs[len(logs)-1].CreatedAt,
		RecordCount: len(logs),
		Status:      "pending",
	}

	data, err := zipLogs(fileName, logs)
	if err != nil {
		archive.Status = "failed"
		archive.Error = err.Error()
		database.DB.Create(&archive)
		return err
	}
	archive.FileSize = int64(len(data))

	key := fmt.Sprintf("audit-archives/%d/%s", time.Now().Year(), fileName)
	bucket := os.Getenv("S3_BUCKET_NAME")
	client := s3.NewFromConfig(las.awsConfig)
	_, err = client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		archive.Status = "failed"
		archive.Error = err.Error()
		database.DB.Create(&archive)
		return fmt.Errorf("failed to upload archive: %v", err)
	}

	archive.S3Key = key
	archive.Status = "completed"
	if err := database.DB.Create(&archive).Error; err != nil {
		return err
	}

	if err := database.DB.Unscoped().Where("created_at < ?", cutoff).Delete(&models.ActivityLog{}).Error; err != nil {
		logrus.WithError(err).Warn("Archived logs could not be pruned from the database")
	}
	logrus.WithFields(logrus.Fields{"records": len(logs), "s3_key": key}).Info("Audit logs archived")
	return nil
}

func zipLogs(fileName string, logs []models.ActivityLog) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create(fileName + ".json")
	if err != nil {
		return nil, err
	}
	enc := json.NewEncoder(w)
	for _, entry := range logs {
		if err := enc.Encode(entry); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
