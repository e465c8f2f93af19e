// Package campaign runs outbound calling campaigns: one cancellable
// background run at a time, dialing a prepared queue of customers
// sequentially and writing the outcomes back to the customer store and
// call history.
package campaign

import (
	"time"

	"github.com/google/uuid"

	"callpilot/models"
)

// Campaign is one in-memory execution of a calling queue. Fields are
// guarded by the executor's mutex; nothing outside this package
// mutates them.
type Campaign struct {
	ID        uuid.UUID
	Running   bool
	Total     int
	Completed int
	StartTime time.Time
	EndTime   *time.Time

	customers []models.Customer
	results   []CallResult
}

// Snapshot is a consistent read of campaign progress for polling.
type Snapshot struct {
	ID        string     `json:"id,omitempty"`
	Running   bool       `json:"running"`
	Total     int        `json:"total"`
	Completed int        `json:"completed"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

// CallResult is one attempt's outcome as reported to operators.
type CallResult struct {
	Customer       string    `json:"customer"`
	Phone          string    `json:"phone"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Status         string    `json:"status"` // completed, failed
	Outcome        string    `json:"outcome"`
	Notes          string    `json:"notes"`
	FollowUpNeeded bool      `json:"follow_up_needed"`
	Response       string    `json:"response,omitempty"`
}
