package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRequest struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	StudentID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	StudentEmail string     `gorm:"size:255" json:"student_email"`
	Amount       float64    `gorm:"type:numeric(10,2);not null" json:"amount"`
	TxnID        string     `gorm:"size:64;not null" json:"txn_id"`
	PayDate      string     `gorm:"size:10" json:"pay_date"`
	PayTime      string     `gorm:"size:8" json:"pay_time"`
	Status       string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ApprovedAt   *time.Time `json:"approved_at"`
	RejectedAt   *time.Time `json:"rejected_at"`

	Student Student `gorm:"foreignkey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (p *PaymentRequest) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
