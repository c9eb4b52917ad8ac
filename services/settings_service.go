package services

import (
	"github.com/devgupta2601/tuition_hub/models"
	"gorm.io/gorm"
)

// GetSettings returns the app settings row, falling back to defaults when
// the row is missing or unreadable so pricing never zeroes out.
func GetSettings(db *gorm.DB) models.Setting {
	var s models.Setting
	if err := db.First(&s, "id = ?", 1).Error; err != nil {
		return models.Setting{
			ID:           1,
			StudentPrice: DefaultStudentPrice,
			TutorPayout:  DefaultTutorPayout,
		}
	}
	if s.StudentPrice <= 0 {
		s.StudentPrice = DefaultStudentPrice
	}
	if s.TutorPayout <= 0 {
		s.TutorPayout = DefaultTutorPayout
	}
	return s
}
