package models

// SampleCustomers returns a starter set of prospects for empty databases,
// used when seeding is enabled in the config.
func SampleCustomers() []Customer {
	return []Customer{
		{
			Name:                  "John Smith",
			Phone:                 "+1-555-0101",
			BusinessName:          "Smith's Corner Store",
			BusinessType:          "retail",
			Email:                 "john@smithsstore.com",
			Address:               "123 Main St, Anytown, ST 12345",
			EstimatedMonthlyUsage: 25,
			CurrentSupplier:       "Office Depot",
			BestContactTime:       "morning",
			Notes:                 "Owner mentioned they go through rolls quickly",
		},
		{
			Name:                  "Maria Garcia",
			Phone:                 "+1-555-0102",
			BusinessName:          "Garcia Family Restaurant",
			BusinessType:          "restaurant",
			Email:                 "maria@garciasrestaurant.com",
			Address:               "456 Oak Ave, Foodtown, ST 12346",
			EstimatedMonthlyUsage: 50,
			CurrentSupplier:       "Restaurant Supply Co",
			BestContactTime:       "afternoon",
			Notes:                 "High volume restaurant, quality is important",
		},
		{
			Name:                  "David Chen",
			Phone:                 "+1-555-0103",
			BusinessName:          "Chen's Electronics",
			BusinessType:          "retail",
			Email:                 "david@chenselectronics.com",
			Address:               "789 Tech Blvd, Gadgetville, ST 12347",
			EstimatedMonthlyUsage: 15,
			CurrentSupplier:       "Unknown",
			BestContactTime:       "evening",
			Notes:                 "Small electronics store, price-sensitive",
		},
		{
			Name:                  "Sarah Johnson",
			Phone:                 "+1-555-0104",
			BusinessName:          "Quick Mart Gas & Go",
			BusinessType:          "convenience",
			Email:                 "sarah@quickmart.com",
			Address:               "321 Highway 1, Speedtown, ST 12348",
			EstimatedMonthlyUsage: 40,
			CurrentSupplier:       "Regional Paper Supply",
			BestContactTime:       "morning",
			Notes:                 "24/7 operation, needs reliable supply",
		},
		{
			Name:                  "Mike Wilson",
			Phone:                 "+1-555-0105",
			BusinessName:          "Wilson's Auto Repair",
			BusinessType:          "service",
			Email:                 "mike@wilsonrepair.com",
			Address:               "654 Service Dr, Fixittown, ST 12349",
			EstimatedMonthlyUsage: 10,
			CurrentSupplier:       "Auto Parts Plus",
			BestContactTime:       "afternoon",
			Notes:                 "Auto shop, lower volume but steady",
		},
	}
}
