package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/devgupta2601/tuition_hub/database"
	"github.com/devgupta2601/tuition_hub/models"
	"github.com/devgupta2601/tuition_hub/notifications"
)

// SendPlanExpiryReminders emails students whose plan ends within 3 days.
// Notification only; plan state is never mutated here.
func SendPlanExpiryReminders() {
	log.Println("Running job: SendPlanExpiryReminders...")

	now := time.Now()
	cutoff := now.AddDate(0, 0, 3)

	var students []models.Student
	err := database.DB.
		Where("is_active = ? AND plan_end IS NOT NULL AND plan_end BETWEEN ? AND ?", true, now, cutoff).
		Find(&students).Error
	if err != nil {
		log.Printf("Error querying expiring plans: %v", err)
		return
	}

	if len(students) == 0 {
		log.Println("No plans expiring soon.")
		return
	}

	for _, s := range students {
		daysLeft := int(s.PlanEnd.Sub(now).Hours() / 24)
		go notifications.SendEmail(
			s.Name,
			s.Email,
			"Your Plan is Expiring Soon",
			fmt.Sprintf("<h1>Plan Expiry Reminder</h1><p>Hi %s,</p><p>Your tuition plan ends in %d day(s). Renew to keep your classes going.</p>", s.Name, daysLeft),
		)
	}

	log.Printf("Sent %d plan expiry reminder(s).", len(students))
}
