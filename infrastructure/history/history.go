package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	domainPlatform "github.com/postline/postline/domains/platform"
	domainSchedule "github.com/postline/postline/domains/schedule"
	pkgError "github.com/postline/postline/pkg/error"
)

type uploadRecord struct {
	ID          string    `gorm:"primaryKey;column:id"`
	Platform    string    `gorm:"column:platform;not null;index"`
	PublishDate time.Time `gorm:"column:publish_date;not null"`
	ExternalID  string    `gorm:"column:external_id;not null"`
	UploadedAt  time.Time `gorm:"column:uploaded_at;autoCreateTime"`
}

func (uploadRecord) TableName() string {
	return "upload_history"
}

// SQLiteSink is the append-only audit trail of successful publishes. Rows are
// only ever inserted; the schedule documents remain the system of record.
type SQLiteSink struct {
	db *gorm.DB
}

func NewSQLiteSink(dbPath string) (*SQLiteSink, error) {
	db, err := gorm.Open(sqlite.Open(dbPath+"?_journal_mode=WAL"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&uploadRecord{}); err != nil {
		return nil, err
	}
	return &SQLiteSink{db: db}, nil
}

func (s *SQLiteSink) RecordUpload(ctx context.Context, p domainPlatform.Platform, publishDate time.Time, externalID string) error {
	if s.db == nil {
		return pkgError.InternalServerError("upload history storage is not initialized")
	}

	record := uploadRecord{
		ID:          uuid.NewString(),
		Platform:    p.String(),
		PublishDate: publishDate.UTC(),
		ExternalID:  externalID,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return err
	}
	logrus.Debugf("[HISTORY] Recorded upload %s for %s", externalID, p)
	return nil
}

// ListUploads returns the audit records for one platform, newest first.
func (s *SQLiteSink) ListUploads(ctx context.Context, p domainPlatform.Platform, limit int) ([]domainSchedule.UploadRecord, error) {
	if s.db == nil {
		return nil, pkgError.InternalServerError("upload history storage is not initialized")
	}
	if limit <= 0 {
		limit = 100
	}

	var rows []uploadRecord
	err := s.db.WithContext(ctx).
		Where("platform = ?", p.String()).
		Order("uploaded_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]domainSchedule.UploadRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domainSchedule.UploadRecord{
			Platform:    domainPlatform.Platform(row.Platform),
			PublishDate: row.PublishDate,
			ExternalID:  row.ExternalID,
			UploadedAt:  row.UploadedAt,
		})
	}
	return records, nil
}
