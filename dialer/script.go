package dialer

import (
	"fmt"

	"callpilot/models"
)

// Product is one receipt-roll SKU the agent pitches.
type Product struct {
	Name        string
	Size        string
	Price       float64
	Description string
	Thermal     bool
}

// Catalog returns the receipt-roll product line-up.
func Catalog() []Product {
	return []Product{
		{
			Name:        "Premium Thermal Receipt Rolls",
			Size:        "80mm x 80mm",
			Price:       2.50,
			Description: "High-quality thermal paper, 80 meters long, fits most POS systems",
			Thermal:     true,
		},
		{
			Name:        "Standard Receipt Rolls",
			Size:        "57mm x 40mm",
			Price:       1.75,
			Description: "Standard thermal paper for small POS systems and card readers",
			Thermal:     true,
		},
		{
			Name:        "Large Format Receipt Rolls",
			Size:        "80mm x 120mm",
			Price:       3.25,
			Description: "Extended length for high-volume businesses",
			Thermal:     true,
		},
	}
}

// BuildPitch renders the opening pitch for a customer. The voice
// pipeline uses it to seed the conversation; the simulated dialer logs
// it so dry runs show what would have been said.
func BuildPitch(agentName string, customer *models.Customer) string {
	pitch := fmt.Sprintf(
		"Hello, is this %s? Hi %s, this is %s from Premium Paper Solutions. "+
			"We specialize in providing high-quality receipt rolls for businesses like %s, "+
			"and I wanted to see if you might be interested in reducing your paper costs "+
			"while improving quality.",
		customer.Name, customer.Name, agentName, customer.BusinessName,
	)

	pitch += " Our products:"
	for _, p := range Catalog() {
		pitch += fmt.Sprintf(" %s (%s) at $%.2f - %s.", p.Name, p.Size, p.Price, p.Description)
	}
	return pitch
}
