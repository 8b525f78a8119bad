package services

import (
	"time"

	"hearth/internal/ledger"
	"hearth/internal/models"
	"hearth/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
}

// HomeServicer defines the contract for home and membership business logic.
type HomeServicer interface {
	CreateHome(ownerID uint, name, currency string) (*models.Home, error)
	GetUserHomes(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Home], error)
	GetHomeByID(userID, homeID uint) (*models.Home, error)
	InviteMember(ownerID, homeID, userID uint) (*models.HomeMember, error)
	RespondToInvite(userID, homeID uint, status models.MemberStatus) (*models.HomeMember, error)
	AcceptedMemberIDs(homeID uint) ([]uint, error)
}

// FinanceInput carries the writable fields of a finance record. Amount is the
// decoded domain value; the service encodes it before storage.
type FinanceInput struct {
	Type             models.FinanceType
	Category         string
	Amount           float64
	Description      string
	TransactionDate  time.Time
	IsRecurring      bool
	DueDate          *time.Time
	PaymentMonths    *int
	VisibleToUserIDs []uint
}

// FinanceFilter holds optional filter parameters for listing finance records.
// When Month and Year are both set, the list is projected onto that month.
type FinanceFilter struct {
	Type  *models.FinanceType
	Month *int
	Year  *int
}

// FinanceEntry is one row of a finance listing with the amount decoded.
// Multi-month plans appear as one derived entry per queried month with a
// synthetic ID; OriginalFinanceID always names the stored record.
type FinanceEntry struct {
	ID                uint               `json:"id"`
	OriginalFinanceID uint               `json:"original_finance_id"`
	HomeID            uint               `json:"home_id"`
	Type              models.FinanceType `json:"type"`
	Category          string             `json:"category"`
	Amount            float64            `json:"amount"`
	Description       string             `json:"description"`
	Date              time.Time          `json:"date"`
	IsRecurring       bool               `json:"is_recurring"`
	DueDate           *time.Time         `json:"due_date,omitempty"`
	PaymentMonths     *int               `json:"payment_months,omitempty"`
	PlanIndex         int                `json:"plan_index,omitempty"`
	PlanMonths        int                `json:"plan_months,omitempty"`
	DateReprojected   bool               `json:"date_reprojected"`
	VisibleToUserIDs  []uint             `json:"visible_to_user_ids"`
	CreatedBy         uint               `json:"created_by"`
}

// FinanceServicer defines the contract for finance-ledger business logic.
type FinanceServicer interface {
	CreateFinanceRecord(userID, homeID uint, in FinanceInput) (*models.FinanceRecord, error)
	UpdateFinanceRecord(userID, financeID uint, in FinanceInput) (*models.FinanceRecord, error)
	DeleteFinanceRecord(userID, financeID uint) error
	ListFinanceRecords(userID, homeID uint, filter FinanceFilter) ([]FinanceEntry, error)
	GetMonthlyBalance(userID, homeID uint, month, year int) (*ledger.Summary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]any)
}
