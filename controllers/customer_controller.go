package controller

import (
	"errors"
	"log"
	"time"

	"github.com/badoux/checkmail"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"callpilot/models"
	"callpilot/store"
	"callpilot/utils"
)

type CustomerController struct {
	Store  store.CustomerStore
	Logger *log.Logger
}

func NewCustomerController(cs store.CustomerStore, logger *log.Logger) *CustomerController {
	return &CustomerController{
		Store:  cs,
		Logger: logger,
	}
}

// customerProjection is the list/detail shape exposed to operators.
type customerProjection struct {
	Name                  string     `json:"name"`
	Phone                 string     `json:"phone"`
	BusinessName          string     `json:"business_name"`
	BusinessType          string     `json:"business_type"`
	Email                 string     `json:"email"`
	Status                string     `json:"status"`
	LastContact           *time.Time `json:"last_contact"`
	Notes                 string     `json:"notes"`
	EstimatedMonthlyUsage int        `json:"estimated_monthly_usage"`
}

func projectCustomer(c *models.Customer) customerProjection {
	return customerProjection{
		Name:                  c.Name,
		Phone:                 c.Phone,
		BusinessName:          c.BusinessName,
		BusinessType:          c.BusinessType,
		Email:                 c.Email,
		Status:                c.Status,
		LastContact:           c.LastContact,
		Notes:                 c.Notes,
		EstimatedMonthlyUsage: c.EstimatedMonthlyUsage,
	}
}

// ListCustomers returns every customer in the database
func (cc *CustomerController) ListCustomers(c *fiber.Ctx) error {
	customers, err := cc.Store.All()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list customers", err)
	}

	projections := make([]customerProjection, 0, len(customers))
	for i := range customers {
		projections = append(projections, projectCustomer(&customers[i]))
	}
	return c.JSON(projections)
}

// CreateCustomer registers a new customer with validation
func (cc *CustomerController) CreateCustomer(c *fiber.Ctx) error {
	var input struct {
		Name                  string `json:"name" validate:"required,max=200"`
		Phone                 string `json:"phone" validate:"required,max=32"`
		BusinessName          string `json:"business_name" validate:"required,max=200"`
		BusinessType          string `json:"business_type" validate:"omitempty,max=100"`
		Email                 string `json:"email"`
		Address               string `json:"address" validate:"omitempty,max=300"`
		EstimatedMonthlyUsage int    `json:"estimated_monthly_usage" validate:"omitempty,min=0"`
		CurrentSupplier       string `json:"current_supplier" validate:"omitempty,max=200"`
		BestContactTime       string `json:"best_contact_time" validate:"omitempty,oneof=morning afternoon evening"`
		Notes                 string `json:"notes"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}
	if input.Email != "" {
		if err := checkmail.ValidateFormat(input.Email); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid email address", err)
		}
	}

	customer := models.Customer{
		Name:                  input.Name,
		Phone:                 input.Phone,
		BusinessName:          input.BusinessName,
		BusinessType:          input.BusinessType,
		Email:                 input.Email,
		Address:               input.Address,
		EstimatedMonthlyUsage: input.EstimatedMonthlyUsage,
		CurrentSupplier:       input.CurrentSupplier,
		BestContactTime:       input.BestContactTime,
		Notes:                 input.Notes,
	}

	if err := cc.Store.Register(&customer); err != nil {
		if errors.Is(err, store.ErrPhoneExists) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest,
				"Customer with this phone number already exists", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to register customer", err)
	}

	logrus.WithFields(logrus.Fields{
		"phone":    customer.Phone,
		"business": customer.BusinessName,
	}).Info("Customer registered")

	return utils.MessageResponse(c, "Customer added successfully")
}

// GetStats returns aggregate database statistics
func (cc *CustomerController) GetStats(c *fiber.Ctx) error {
	stats, err := cc.Store.GetStats()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to collect stats", err)
	}
	return c.JSON(stats)
}
