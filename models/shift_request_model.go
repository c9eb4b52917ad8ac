package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShiftRequest asks to move a student's class to one of the 24 hourly slots.
type ShiftRequest struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	StudentID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	StudentName string     `gorm:"size:255" json:"student_name"`
	Hour        string     `gorm:"size:2;not null" json:"hour"`
	Status      string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ResolvedAt  *time.Time `json:"resolved_at"`

	Student Student `gorm:"foreignkey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (s *ShiftRequest) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
