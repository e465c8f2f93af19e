package controller

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"callpilot/models"
	"callpilot/store"
	"callpilot/utils"
)

var csvHeader = []string{
	"name", "phone", "business_name", "business_type", "email",
	"address", "status", "notes", "estimated_monthly_usage",
	"current_supplier", "best_contact_time",
}

// ImportCustomers bulk-registers customers from an uploaded CSV file.
// Rows with already-registered phone numbers are skipped, not errors.
func (cc *CustomerController) ImportCustomers(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "CSV file is required", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to open uploaded file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read CSV header", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	imported, skipped := 0, 0
	for {
		row, err := reader.Read()
		if err != nil {
			break
		}

		usage, _ := strconv.Atoi(field(row, "estimated_monthly_usage"))
		customer := models.Customer{
			Name:                  field(row, "name"),
			Phone:                 field(row, "phone"),
			BusinessName:          field(row, "business_name"),
			BusinessType:          field(row, "business_type"),
			Email:                 field(row, "email"),
			Address:               field(row, "address"),
			EstimatedMonthlyUsage: usage,
			CurrentSupplier:       field(row, "current_supplier"),
			BestContactTime:       field(row, "best_contact_time"),
			Notes:                 field(row, "notes"),
		}
		if customer.Phone == "" {
			skipped++
			continue
		}

		if err := cc.Store.Register(&customer); err != nil {
			if errors.Is(err, store.ErrPhoneExists) {
				skipped++
				continue
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Import failed", err)
		}
		imported++
	}

	cc.Logger.Printf("Imported %d customers from %s (%d skipped)", imported, fileHeader.Filename, skipped)
	return c.JSON(fiber.Map{
		"imported": imported,
		"skipped":  skipped,
	})
}

// ExportCustomers streams the customer database as a CSV download,
// optionally filtered to one status.
func (cc *CustomerController) ExportCustomers(c *fiber.Ctx) error {
	status := c.Query("status")

	var customers []models.Customer
	var err error
	if status != "" {
		if !models.ValidStatus(status) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown status filter", nil)
		}
		customers, err = cc.Store.FindByStatus(status)
	} else {
		customers, err = cc.Store.All()
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Export failed", err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Export failed", err)
	}
	for i := range customers {
		cust := &customers[i]
		row := []string{
			cust.Name, cust.Phone, cust.BusinessName, cust.BusinessType, cust.Email,
			cust.Address, cust.Status, cust.Notes, strconv.Itoa(cust.EstimatedMonthlyUsage),
			cust.CurrentSupplier, cust.BestContactTime,
		}
		if err := writer.Write(row); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Export failed", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Export failed", err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="customers.csv"`)
	return c.Send(buf.Bytes())
}
