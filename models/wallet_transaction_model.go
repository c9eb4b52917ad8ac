package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TxnTypeAdminAdd        = "admin_add"
	TxnTypeThirtyDayPayout = "admin_30d_payout"
	TxnTypeWithdrawalDebit = "withdrawal_debit"
)

// WalletTransaction is an append-only audit record. Rows are never
// updated or deleted; every change to a tutor's balance writes exactly one.
type WalletTransaction struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	TutorID             uuid.UUID  `gorm:"type:uuid;not null;index" json:"tutor_id"`
	Type                string     `gorm:"size:30;not null;index" json:"type"`
	Amount              float64    `gorm:"type:numeric(10,2);not null" json:"amount"`
	Reason              string     `gorm:"size:255" json:"reason"`
	Notes               *string    `gorm:"type:text" json:"notes,omitempty"`
	Reference           string     `gorm:"size:20;unique" json:"reference"`
	AddedBy             string     `gorm:"size:255" json:"added_by"`
	PreviousBalance     float64    `gorm:"type:numeric(10,2)" json:"previous_balance"`
	NewBalance          float64    `gorm:"type:numeric(10,2)" json:"new_balance"`
	WithdrawalRequestID *uuid.UUID `gorm:"type:uuid" json:"withdrawal_request_id,omitempty"`
	StudentID           *uuid.UUID `gorm:"type:uuid" json:"student_id,omitempty"`

	Tutor Tutor `gorm:"foreignkey:TutorID" json:"tutor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (w *WalletTransaction) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
