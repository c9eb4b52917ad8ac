package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BankAccount struct {
	HolderName    string `gorm:"size:255" json:"holder_name"`
	BankName      string `gorm:"size:255" json:"bank_name"`
	AccountNumber string `gorm:"size:34" json:"account_number"`
	IFSC          string `gorm:"size:11" json:"ifsc"`
	Verified      bool   `gorm:"default:false" json:"verified"`
}

type PaymentMethod struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Name  string `json:"name"`
}

type Tutor struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Phone    string    `gorm:"size:20" json:"phone"`
	Password string    `gorm:"not null" json:"-"`

	// Sole withdrawable balance. Mutated only by admin actions
	// (manual credit, 30-day payout approval, withdrawal debit).
	AdminAddedBalance float64 `gorm:"type:numeric(10,2);default:0.00" json:"admin_added_balance"`

	BankAccount    *BankAccount    `gorm:"embedded;embeddedPrefix:bank_" json:"bank_account,omitempty"`
	PaymentMethods []PaymentMethod `gorm:"serializer:json" json:"payment_methods"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tutor) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *Tutor) HasPayoutDestination() bool {
	if t.BankAccount != nil && t.BankAccount.AccountNumber != "" {
		return true
	}
	return len(t.PaymentMethods) > 0
}
