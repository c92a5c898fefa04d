package tool

// Demo datasets. These stand in for real order, product, and knowledge
// systems; nothing here is persisted or mutated.

type Order struct {
	Customer         string  `json:"customer"`
	CustomerEmail    string  `json:"customer_email"`
	Product          string  `json:"product"`
	ProductID        string  `json:"product_id"`
	Price            float64 `json:"price"`
	OrderDate        string  `json:"order_date"`
	DeliveryDate     string  `json:"delivery_date"`
	Status           string  `json:"status"`
	Warranty         string  `json:"warranty"`
	WarrantyExpires  string  `json:"warranty_expires"`
	PurchaseLocation string  `json:"purchase_location"`
}

type Product struct {
	Name           string            `json:"name"`
	Specs          map[string]string `json:"specs"`
	Price          float64           `json:"price"`
	Inventory      int               `json:"inventory"`
	Rating         float64           `json:"rating"`
	Category       string            `json:"category"`
	WarrantyPeriod string            `json:"warranty_period"`
}

type ReturnPolicy struct {
	PeriodDays        int      `json:"period_days"`
	Condition         string   `json:"condition"`
	RestockingFee     float64  `json:"restocking_fee"`
	FreeReturnReasons []string `json:"free_return_reasons"`
	Process           []string `json:"process"`
}

type WarrantyPolicy struct {
	Coverage   map[string][]string `json:"coverage"`
	Exclusions []string            `json:"exclusions"`
	Process    []string            `json:"process"`
}

type ExchangePolicy struct {
	PeriodDays      int      `json:"period_days"`
	EligibleReasons []string `json:"eligible_reasons"`
	Fee             float64  `json:"fee"`
	Restrictions    []string `json:"restrictions"`
}

var demoOrders = map[string]Order{
	"12345": {
		Customer:         "Sarah Miller",
		CustomerEmail:    "sarah.miller@email.com",
		Product:          "TechBook Pro 15",
		ProductID:        "TB-PRO-15",
		Price:            1299.99,
		OrderDate:        "2024-01-28",
		DeliveryDate:     "2024-01-30",
		Status:           "delivered",
		Warranty:         "2 years",
		WarrantyExpires:  "2026-01-30",
		PurchaseLocation: "online",
	},
	"12346": {
		Customer:         "John Davis",
		CustomerEmail:    "john.davis@email.com",
		Product:          "TechBook Air 13",
		ProductID:        "TB-AIR-13",
		Price:            899.99,
		OrderDate:        "2024-02-15",
		DeliveryDate:     "2024-02-18",
		Status:           "delivered",
		Warranty:         "1 year",
		WarrantyExpires:  "2025-02-18",
		PurchaseLocation: "online",
	},
	"12347": {
		Customer:         "Emily Wilson",
		CustomerEmail:    "emily.wilson@email.com",
		Product:          "TechBook Gaming 17",
		ProductID:        "TB-GAME-17",
		Price:            1899.99,
		OrderDate:        "2024-03-01",
		DeliveryDate:     "2024-03-05",
		Status:           "shipped",
		Warranty:         "3 years",
		WarrantyExpires:  "2027-03-05",
		PurchaseLocation: "store",
	},
}

var demoProducts = map[string]Product{
	"TB-PRO-15": {
		Name: "TechBook Pro 15",
		Specs: map[string]string{
			"ram":       "16GB DDR4",
			"storage":   "512GB SSD",
			"processor": "Intel i7-12700H",
			"graphics":  "Intel Iris Xe",
			"display":   "15.6\" 1920x1080 IPS",
			"battery":   "8 hours",
			"weight":    "3.5 lbs",
		},
		Price:          1299.99,
		Inventory:      45,
		Rating:         4.5,
		Category:       "professional",
		WarrantyPeriod: "2 years",
	},
	"TB-AIR-13": {
		Name: "TechBook Air 13",
		Specs: map[string]string{
			"ram":       "8GB DDR4",
			"storage":   "256GB SSD",
			"processor": "Intel i5-1235U",
			"graphics":  "Intel Iris Xe",
			"display":   "13.3\" 1920x1080 IPS",
			"battery":   "12 hours",
			"weight":    "2.8 lbs",
		},
		Price:          899.99,
		Inventory:      122,
		Rating:         4.3,
		Category:       "ultrabook",
		WarrantyPeriod: "1 year",
	},
	"TB-GAME-17": {
		Name: "TechBook Gaming 17",
		Specs: map[string]string{
			"ram":       "32GB DDR4",
			"storage":   "1TB SSD",
			"processor": "Intel i9-12900H",
			"graphics":  "NVIDIA RTX 4060",
			"display":   "17.3\" 2560x1440 165Hz",
			"battery":   "4 hours",
			"weight":    "5.2 lbs",
		},
		Price:          1899.99,
		Inventory:      23,
		Rating:         4.7,
		Category:       "gaming",
		WarrantyPeriod: "3 years",
	},
	"TB-BASIC-14": {
		Name: "TechBook Basic 14",
		Specs: map[string]string{
			"ram":       "8GB DDR4",
			"storage":   "256GB SSD",
			"processor": "Intel i3-1215U",
			"graphics":  "Intel UHD",
			"display":   "14\" 1366x768 TN",
			"battery":   "10 hours",
			"weight":    "3.1 lbs",
		},
		Price:          599.99,
		Inventory:      87,
		Rating:         3.9,
		Category:       "budget",
		WarrantyPeriod: "1 year",
	},
}

var demoKnowledgeBase = map[string][]string{
	"laptop_wont_turn_on": {
		"Check if the power adapter is properly connected to both the laptop and wall outlet",
		"Try holding the power button for 10-15 seconds to perform a hard reset",
		"Remove the battery (if removable) and reinsert it firmly",
		"Check for LED indicators on the power adapter and laptop",
		"Try a different power outlet",
		"If still not working, the power adapter or internal components may need service",
	},
	"laptop_overheating": {
		"Ensure all air vents are clear of dust and debris",
		"Use compressed air to clean vents and fan areas",
		"Check that the laptop is on a hard, flat surface for proper airflow",
		"Close unnecessary programs to reduce CPU load",
		"Consider using a laptop cooling pad",
		"Check Task Manager for high CPU usage applications",
	},
	"slow_performance": {
		"Restart the laptop to clear temporary files and processes",
		"Check available storage space - ensure at least 15% free space",
		"Run disk cleanup to remove temporary files",
		"Check for malware using Windows Defender or antivirus software",
		"Update device drivers and operating system",
		"Consider upgrading RAM if usage consistently exceeds 80%",
	},
	"wifi_issues": {
		"Restart your router and modem",
		"Forget and reconnect to the WiFi network",
		"Update WiFi adapter drivers",
		"Run Windows Network Troubleshooter",
		"Check if other devices can connect to the same network",
		"Reset network settings if other steps don't work",
	},
	"screen_issues": {
		"Check display brightness settings",
		"Try connecting an external monitor to isolate the issue",
		"Update display drivers",
		"Check cable connections if using external monitor",
		"Restart in safe mode to test display functionality",
		"If built-in display has physical damage, professional repair needed",
	},
}

var demoReturnPolicy = ReturnPolicy{
	PeriodDays:        30,
	Condition:         "Items must be in original condition with all accessories",
	RestockingFee:     0.15,
	FreeReturnReasons: []string{"defective", "wrong_item", "damaged_shipping"},
	Process: []string{
		"Contact customer service to initiate return",
		"Receive return authorization number",
		"Package item securely with return label",
		"Drop off at shipping location or schedule pickup",
	},
}

var demoWarrantyPolicy = WarrantyPolicy{
	Coverage: map[string][]string{
		"1_year": {"manufacturing defects", "hardware failures"},
		"2_year": {"manufacturing defects", "hardware failures", "screen defects"},
		"3_year": {"manufacturing defects", "hardware failures", "screen defects", "accidental damage"},
	},
	Exclusions: []string{"water damage", "user-caused physical damage", "software issues"},
	Process: []string{
		"Verify warranty status with order number",
		"Describe the issue in detail",
		"Perform basic troubleshooting steps",
		"If unresolved, arrange for repair or replacement",
	},
}

var demoExchangePolicy = ExchangePolicy{
	PeriodDays:      15,
	EligibleReasons: []string{"size_issue", "performance_needs", "compatibility"},
	Fee:             50.0,
	Restrictions:    []string{"same_category_only", "price_difference_applies"},
}
