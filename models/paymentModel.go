package models

import (
	"time"
)

// Payment is a monetary transaction against a case. The case is referenced
// as the invoice being paid.
type Payment struct {
	ID          string    `gorm:"primaryKey;column:id" json:"id"`
	InvoiceID   string    `gorm:"column:invoice_id;not null;index" json:"invoiceId"`
	Amount      float64   `gorm:"column:amount;not null" json:"amount"`
	PaymentDate time.Time `gorm:"column:payment_date;not null" json:"paymentDate"`
	Status      string    `gorm:"column:status" json:"status"`
	Notes       string    `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Payment) TableName() string {
	return "payments"
}
