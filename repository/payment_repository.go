package repository

import (
	"time"

	"github.com/adithyaaneesh/swiggy-api/entity"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

func (r *PaymentRepository) GetByOrderID(orderID uint) (*entity.Payment, error) {
	var p entity.Payment
	err := r.DB.Where("order_id = ?", orderID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateStatus flips the payment status, optionally stamping PaidAt.
func (r *PaymentRepository) UpdateStatus(tx *gorm.DB, paymentID uint, status string, paidAt *time.Time) error {
	updates := map[string]any{
		"status": status,
	}
	if paidAt != nil {
		updates["paid_at"] = paidAt
	}
	return tx.Model(&entity.Payment{}).Where("id = ?", paymentID).Updates(updates).Error
}
