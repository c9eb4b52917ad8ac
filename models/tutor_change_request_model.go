package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TutorChangeRequest struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	StudentID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	StudentName    string     `gorm:"size:255" json:"student_name"`
	StudentEmail   string     `gorm:"size:255" json:"student_email"`
	CurrentTutorID *uuid.UUID `gorm:"type:uuid" json:"current_tutor_id"`
	Reason         string     `gorm:"type:text;not null" json:"reason"`
	Status         string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ResolvedAt     *time.Time `json:"resolved_at"`

	Student Student `gorm:"foreignkey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (t *TutorChangeRequest) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
