package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PasswordResetRequest holds a bcrypt hash of the requested password,
// never the plaintext. Admin approval copies the hash onto the account.
type PasswordResetRequest struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserType        string     `gorm:"size:10;not null" json:"user_type"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	Email           string     `gorm:"size:255;not null" json:"email"`
	NewPasswordHash string     `gorm:"not null" json:"-"`
	Status          string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	RequestedAt     time.Time  `gorm:"not null" json:"requested_at"`
	ResolvedAt      *time.Time `json:"resolved_at"`
	ResolvedBy      *string    `gorm:"size:255" json:"resolved_by"`
}

func (p *PasswordResetRequest) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
