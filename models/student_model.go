package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Student struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name            string     `gorm:"size:255;not null" json:"name"`
	Email           string     `gorm:"size:255;not null;unique" json:"email"`
	Phone           string     `gorm:"size:20;not null" json:"phone"`
	Password        string     `gorm:"not null" json:"-"`
	IsActive        bool       `gorm:"default:false" json:"is_active"`
	AssignedTutorID *uuid.UUID `gorm:"type:uuid;index" json:"assigned_tutor_id"`
	PlanStart       *time.Time `json:"plan_start"`
	PlanEnd         *time.Time `json:"plan_end"`
	PayoutCleared   bool       `gorm:"default:false" json:"payout_cleared"`
	PayoutClearedAt *time.Time `json:"payout_cleared_at"`

	AssignedTutor *Tutor `gorm:"foreignkey:AssignedTutorID" json:"assigned_tutor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
