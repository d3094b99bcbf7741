package models

import (
	"time"
)

// Expense category constants
const (
	ExpenseCategoryCourtFee = "TASA_JUSTICIA"
	ExpenseCategoryStamp    = "SELLADO"
	ExpenseCategoryNotices  = "CEDULAS"
	ExpenseCategoryExperts  = "PERICIAS"
	ExpenseCategoryCopies   = "COPIAS"
	ExpenseCategoryTravel   = "TRASLADOS"
	ExpenseCategoryOther    = "OTRO"
)

var ExpenseCategories = []string{
	ExpenseCategoryCourtFee,
	ExpenseCategoryStamp,
	ExpenseCategoryNotices,
	ExpenseCategoryExperts,
	ExpenseCategoryCopies,
	ExpenseCategoryTravel,
	ExpenseCategoryOther,
}

// Fee type constants
const (
	FeeTypeFixed      = "MONTO_FIJO"
	FeeTypePercentage = "PORCENTAJE"
	FeeTypeJudicial   = "REGULACION_JUDICIAL"
)

var FeeTypes = []string{
	FeeTypeFixed,
	FeeTypePercentage,
	FeeTypeJudicial,
}

// Fee status constants
const (
	FeeStatusPending = "PENDIENTE"
	FeeStatusPartial = "PARCIAL"
	FeeStatusPaid    = "PAGADO"
)

var FeeStatuses = []string{
	FeeStatusPending,
	FeeStatusPartial,
	FeeStatusPaid,
}

// Payment method constants
const (
	PaymentMethodCash     = "EFECTIVO"
	PaymentMethodTransfer = "TRANSFERENCIA"
	PaymentMethodCheck    = "CHEQUE"
	PaymentMethodCard     = "TARJETA"
	PaymentMethodOther    = "OTRO"
)

var PaymentMethods = []string{
	PaymentMethodCash,
	PaymentMethodTransfer,
	PaymentMethodCheck,
	PaymentMethodCard,
	PaymentMethodOther,
}

// Expense is a cost incurred on a case
type Expense struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CaseID      uint      `gorm:"not null;index" json:"case_id"`
	Date        time.Time `gorm:"not null" json:"date"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Category    string    `gorm:"size:20;not null" json:"category"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Receipt     *string   `gorm:"size:100" json:"receipt,omitempty"`
}

// TableName specifies the table name for Expense model
func (Expense) TableName() string {
	return "expenses"
}

// Fee is an honorario entry for a case
type Fee struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CaseID uint   `gorm:"not null;index" json:"case_id"`
	Type   string `gorm:"size:30;not null" json:"type"`
	// Percentage applies to PORCENTAJE fees, FixedAmount to MONTO_FIJO fees
	Percentage     *float64  `json:"percentage,omitempty"`
	FixedAmount    *float64  `json:"fixed_amount,omitempty"`
	ComputedAmount *float64  `json:"computed_amount,omitempty"`
	Status         string    `gorm:"size:20;not null;default:PENDIENTE;index" json:"status"`
	Date           time.Time `gorm:"not null" json:"date"`
	Description    *string   `gorm:"type:text" json:"description,omitempty"`
}

// TableName specifies the table name for Fee model
func (Fee) TableName() string {
	return "fees"
}

// IsPaid checks if the fee has been fully paid
func (f *Fee) IsPaid() bool {
	return f.Status == FeeStatusPaid
}

// Payment is money received for a case
type Payment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CaseID   uint      `gorm:"not null;index" json:"case_id"`
	ClientID *uint     `gorm:"index" json:"client_id,omitempty"`
	Date     time.Time `gorm:"not null" json:"date"`
	Amount   float64   `gorm:"not null" json:"amount"`
	Method   string    `gorm:"size:20;not null" json:"method"`
	Concept  *string   `gorm:"size:255" json:"concept,omitempty"`
	Receipt  *string   `gorm:"size:100" json:"receipt,omitempty"`
}

// TableName specifies the table name for Payment model
func (Payment) TableName() string {
	return "payments"
}

// IsValidExpenseCategory checks if the category is valid
func IsValidExpenseCategory(c string) bool {
	return contains(ExpenseCategories, c)
}

// IsValidFeeType checks if the fee type is valid
func IsValidFeeType(t string) bool {
	return contains(FeeTypes, t)
}

// IsValidFeeStatus checks if the fee status is valid
func IsValidFeeStatus(s string) bool {
	return contains(FeeStatuses, s)
}

// IsValidPaymentMethod checks if the payment method is valid
func IsValidPaymentMethod(m string) bool {
	return contains(PaymentMethods, m)
}
