package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WithdrawalRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TutorID     uuid.UUID `gorm:"type:uuid;not null;index" json:"tutor_id"`
	TutorName   string    `gorm:"size:255" json:"tutor_name"`
	TutorEmail  string    `gorm:"size:255" json:"tutor_email"`
	Amount      float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	Status      string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	RequestedAt time.Time `gorm:"not null" json:"requested_at"`

	// Settlement snapshot, populated when the request is resolved.
	ApprovedAt            *time.Time `json:"approved_at"`
	ApprovedBy            *string    `gorm:"size:255" json:"approved_by"`
	DeductedAmount        *float64   `gorm:"type:numeric(10,2)" json:"deducted_amount"`
	TutorAvailableBalance *float64   `gorm:"type:numeric(10,2)" json:"tutor_available_balance"`
	RejectedAt            *time.Time `json:"rejected_at"`
	RejectedBy            *string    `gorm:"size:255" json:"rejected_by"`
	ReceiptURL            *string    `gorm:"size:255" json:"receipt_url"`

	Tutor Tutor `gorm:"foreignkey:TutorID" json:"tutor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *WithdrawalRequest) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
