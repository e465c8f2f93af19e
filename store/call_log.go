package store

import (
	"fmt"
	"log"
	"time"

	"callpilot/models"

	"gorm.io/gorm"
)

// CallLog is the append-only history of contact attempts. Records are
// never updated or deleted once written.
type CallLog interface {
	Append(record *models.CallRecord) error
	CountSince(since time.Time) (int64, error)
}

type GormCallLog struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewCallLog(db *gorm.DB, logger *log.Logger) *GormCallLog {
	return &GormCallLog{
		DB:     db,
		Logger: logger,
	}
}

// Append inserts one call record. Failures mean the underlying
// persistence is unavailable, not a business rule violation.
func (cl *GormCallLog) Append(record *models.CallRecord) error {
	if record.CallDate.IsZero() {
		record.CallDate = time.Now()
	}
	if err := cl.DB.Create(record).Error; err != nil {
		return fmt.Errorf("appending call record for %s: %w", record.CustomerPhone, err)
	}
	cl.Logger.Printf("Logged call for %s: %s", record.CustomerPhone, record.Outcome)
	return nil
}

// CountSince returns how many attempts were logged at or after the
// given time.
func (cl *GormCallLog) CountSince(since time.Time) (int64, error) {
	var count int64
	err := cl.DB.Model(&models.CallRecord{}).Where("call_date >= ?", since).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting call records: %w", err)
	}
	return count, nil
}
