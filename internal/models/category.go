package models

// Category is a flat per-user label for payments and debts.
type Category struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string `gorm:"not null" json:"name"`

	// Relationships
	Payments []Payment `gorm:"foreignKey:CategoryID" json:"payments,omitempty"`
	Debts    []Debt    `gorm:"foreignKey:CategoryID" json:"debts,omitempty"`
}

// DefaultCategories are seeded for every new user.
var DefaultCategories = []string{
	"Housing", "Utilities", "Groceries", "Transportation", "Healthcare",
	"Insurance", "Debt Payment", "Savings", "Investments", "Education",
	"Entertainment", "Dining Out", "Shopping", "Personal Care", "Gifts/Donations",
	"Miscellaneous", "Salary", "Freelance Income", "Bonus", "Refund", "Interest Income",
}
