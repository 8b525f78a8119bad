package models

import "time"

// FinanceType represents the direction of a finance record.
type FinanceType string

const (
	FinanceTypeIncome  FinanceType = "income"
	FinanceTypeExpense FinanceType = "expense"
)

// FinanceRecord represents one income or expense transaction of a home.
// Amount holds the encoded at-rest representation (obfuscated or encrypted);
// the services layer decodes it before any computation.
type FinanceRecord struct {
	Base
	HomeID          uint        `gorm:"not null;index" json:"home_id"`
	Type            FinanceType `gorm:"not null" json:"type"`
	Category        string      `gorm:"not null" json:"category"`
	Amount          string      `gorm:"not null" json:"-"`
	Description     string      `json:"description"`
	TransactionDate time.Time   `gorm:"not null" json:"transaction_date"`
	IsRecurring     bool        `gorm:"default:false" json:"is_recurring"`
	DueDate         *time.Time  `json:"due_date,omitempty"`
	PaymentMonths   *int        `json:"payment_months,omitempty"`
	CreatedBy       uint        `gorm:"not null;index" json:"created_by"`

	// Relationships
	Home       Home                `gorm:"foreignKey:HomeID" json:"home"`
	Creator    User                `gorm:"foreignKey:CreatedBy" json:"creator"`
	Visibility []FinanceVisibility `gorm:"foreignKey:FinanceID" json:"visibility,omitempty"`
}

// FinanceVisibility grants one home member sight of a finance record beyond
// its creator. Rows are fully replaced when an update specifies a new set.
type FinanceVisibility struct {
	Base
	FinanceID uint `gorm:"not null;uniqueIndex:idx_finance_user" json:"finance_id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_finance_user" json:"user_id"`
}
