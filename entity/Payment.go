package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
	PaymentFailed  = "FAILED"
)

// Payment links an order to the external provider. Reference is our
// idempotency key, ApprovalRef is what the provider handed back when the
// intent was created.
type Payment struct {
	gorm.Model
	Amount      decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
	Reference   string          `gorm:"uniqueIndex" json:"reference"`
	ApprovalRef string          `json:"approvalRef"`
	Status      string          `gorm:"type:varchar(20);not null;default:PENDING" json:"status"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`

	OrderID uint  `gorm:"uniqueIndex" json:"orderId"`
	Order   Order `json:"-"`
}
