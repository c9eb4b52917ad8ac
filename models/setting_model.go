package models

import "time"

// Setting is a single-row table, mirroring the app settings document.
type Setting struct {
	ID           uint    `gorm:"primary_key" json:"-"`
	UpiID        string  `gorm:"size:255" json:"upi_id"`
	UpiName      string  `gorm:"size:255" json:"upi_name"`
	StudentPrice float64 `gorm:"type:numeric(10,2);default:999.00" json:"student_price"`
	TutorPayout  float64 `gorm:"type:numeric(10,2);default:800.00" json:"tutor_payout"`

	UpdatedAt time.Time `json:"updated_at"`
}
