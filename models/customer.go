package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer statuses describe where a contact sits in the sales lifecycle.
const (
	StatusNew               = "new"
	StatusContacted         = "contacted"
	StatusInterested        = "interested"
	StatusNotInterested     = "not_interested"
	StatusSold              = "sold"
	StatusDoNotCall         = "do_not_call"
	StatusCallbackRequested = "callback_requested"
)

// AllStatuses lists every valid customer status in lifecycle order.
var AllStatuses = []string{
	StatusNew,
	StatusContacted,
	StatusInterested,
	StatusNotInterested,
	StatusSold,
	StatusDoNotCall,
	StatusCallbackRequested,
}

// ValidStatus reports whether s is a known customer status.
func ValidStatus(s string) bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Customer represents a business contact in the calling database.
// The phone number is the natural key; a phone maps to at most one customer.
type Customer struct {
	gorm.Model

	Name         string `gorm:"not null" json:"name"`
	Phone        string `gorm:"uniqueIndex;not null" json:"phone"`
	BusinessName string `gorm:"not null" json:"business_name"`
	BusinessType string `json:"business_type"` // restaurant, retail, convenience, service, other
	Email        string `json:"email"`
	Address      string `json:"address"`

	Status      string     `gorm:"default:'new';index" json:"status"`
	LastContact *time.Time `json:"last_contact"`
	Notes       string     `json:"notes"`

	// Sales qualification data
	EstimatedMonthlyUsage int    `gorm:"default:0" json:"estimated_monthly_usage"` // rolls per month
	CurrentSupplier       string `json:"current_supplier"`
	PainPoints            string `json:"pain_points"`
	BestContactTime       string `json:"best_contact_time"` // morning, afternoon, evening
}
