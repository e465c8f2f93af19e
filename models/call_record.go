package models

import (
	"time"

	"gorm.io/gorm"
)

// Call outcomes produced by the classifier for a completed attempt.
const (
	OutcomeSampleRequested = "sample_requested"
	OutcomeInterested      = "interested"
	OutcomeNotInterested   = "not_interested"
	OutcomeCallback        = "callback"
	OutcomeError           = "error"
)

// CallRecord is one contact attempt against one customer. Records are
// append-only: written once when the attempt finishes and never updated.
type CallRecord struct {
	gorm.Model

	CustomerPhone   string    `gorm:"not null;index" json:"customer_phone"`
	CallDate        time.Time `gorm:"not null;index" json:"call_date"`
	DurationSeconds int       `gorm:"default:0" json:"duration_seconds"`
	Outcome         string    `gorm:"not null" json:"outcome"`
	Notes           string    `json:"notes"`
	FollowUpNeeded  bool      `gorm:"default:false" json:"follow_up_needed"`
	FollowUpDate    *time.Time `json:"follow_up_date"`
	AgentName       string    `json:"agent_name"`
	CallID          string    `gorm:"index" json:"call_id"`
}
