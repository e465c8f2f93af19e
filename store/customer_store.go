package store

import (
	"errors"
	"fmt"
	"log"
	"time"

	"callpilot/models"

	"gorm.io/gorm"
)

var (
	// ErrPhoneExists is returned when registering a phone number that is
	// already in the database.
	ErrPhoneExists = errors.New("customer with this phone number already exists")

	// ErrCustomerNotFound is returned when a status update targets an
	// unknown phone number.
	ErrCustomerNotFound = errors.New("customer not found")
)

// Stats is an aggregate snapshot of the customer database.
type Stats struct {
	TotalCustomers   int64            `json:"total_customers"`
	StatusBreakdown  map[string]int64 `json:"status_breakdown"`
	RecentCalls7Days int64            `json:"recent_calls_7_days"`
}

// CustomerStore owns customer records and their lifecycle status.
// SetStatus is the only sanctioned way to move a customer between
// statuses; nothing else mutates the status column.
type CustomerStore interface {
	Register(customer *models.Customer) error
	FindByStatus(status string) ([]models.Customer, error)
	All() ([]models.Customer, error)
	SetStatus(phone, status, notes string) error
	GetStats() (*Stats, error)
}

type GormCustomerStore struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewCustomerStore(db *gorm.DB, logger *log.Logger) *GormCustomerStore {
	return &GormCustomerStore{
		DB:     db,
		Logger: logger,
	}
}

// Register stores a new customer. The phone number must be unused; the
// status defaults to "new" when the caller leaves it empty.
func (cs *GormCustomerStore) Register(customer *models.Customer) error {
	if customer.Status == "" {
		customer.Status = models.StatusNew
	}

	var existing models.Customer
	err := cs.DB.Where("phone = ?", customer.Phone).First(&existing).Error
	if err == nil {
		return ErrPhoneExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking for existing customer: %w", err)
	}

	if err := cs.DB.Create(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrPhoneExists
		}
		return fmt.Errorf("creating customer: %w", err)
	}

	cs.Logger.Printf("Registered customer: %s (%s)", customer.Name, customer.Phone)
	return nil
}

// FindByStatus returns every customer currently in the given status,
// in stable insertion order.
func (cs *GormCustomerStore) FindByStatus(status string) ([]models.Customer, error) {
	var customers []models.Customer
	if err := cs.DB.Where("status = ?", status).Order("id ASC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("finding customers by status %q: %w", status, err)
	}
	return customers, nil
}

// All returns every customer in insertion order.
func (cs *GormCustomerStore) All() ([]models.Customer, error) {
	var customers []models.Customer
	if err := cs.DB.Order("id ASC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	return customers, nil
}

// SetStatus updates a customer's status and notes and stamps the
// contact time. Returns ErrCustomerNotFound for unknown phones.
func (cs *GormCustomerStore) SetStatus(phone, status, notes string) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("invalid customer status %q", status)
	}

	now := time.Now()
	result := cs.DB.Model(&models.Customer{}).Where("phone = ?", phone).Updates(map[string]interface{}{
		"status":       status,
		"notes":        notes,
		"last_contact": now,
		"updated_at":   now,
	})
	if result.Error != nil {
		return fmt.Errorf("updating customer %s: %w", phone, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}

	cs.Logger.Printf("Updated customer %s status to %s", phone, status)
	return nil
}

// GetStats aggregates counts inside one transaction so a concurrent
// write can never show up in some counters but not others.
func (cs *GormCustomerStore) GetStats() (*Stats, error) {
	stats := &Stats{StatusBreakdown: make(map[string]int64)}

	err := cs.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Customer{}).Count(&stats.TotalCustomers).Error; err != nil {
			return err
		}

		var rows []struct {
			Status string
			Count  int64
		}
		if err := tx.Model(&models.Customer{}).
			Select("status, COUNT(*) as count").
			Group("status").
			Scan(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			stats.StatusBreakdown[row.Status] = row.Count
		}

		weekAgo := time.Now().AddDate(0, 0, -7)
		return tx.Model(&models.CallRecord{}).
			Where("call_date >= ?", weekAgo).
			Count(&stats.RecentCalls7Days).Error
	})
	if err != nil {
		return nil, fmt.Errorf("collecting stats: %w", err)
	}

	return stats, nil
}
