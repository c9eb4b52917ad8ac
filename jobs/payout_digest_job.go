package jobs

import (
	"fmt"
	"log"
	"strings"
	"time"

	config "github.com/devgupta2601/tuition_hub/configs"
	"github.com/devgupta2601/tuition_hub/database"
	"github.com/devgupta2601/tuition_hub/models"
	"github.com/devgupta2601/tuition_hub/notifications"
	"github.com/devgupta2601/tuition_hub/services"
)

// SendPayoutEligibilityDigest emails the admin the queue of students who
// completed the 30-day cycle and await payout approval.
func SendPayoutEligibilityDigest() {
	log.Println("Running job: SendPayoutEligibilityDigest...")

	cutoff := time.Now().AddDate(0, 0, -services.PayoutCycleDays)

	var students []models.Student
	err := database.DB.Preload("AssignedTutor").
		Where("is_active = ? AND payout_cleared = ? AND created_at <= ?", true, false, cutoff).
		Order("created_at asc").
		Find(&students).Error
	if err != nil {
		log.Printf("Error querying payout-eligible students: %v", err)
		return
	}

	if len(students) == 0 {
		log.Println("No students awaiting payout approval.")
		return
	}

	var rows strings.Builder
	for _, s := range students {
		tutorName := "unassigned"
		if s.AssignedTutor != nil {
			tutorName = s.AssignedTutor.Name
		}
		days := services.DaysActive(s.CreatedAt, time.Now())
		rows.WriteString(fmt.Sprintf("<li>%s (%s): %d days active, tutor: %s</li>", s.Name, s.Email, days, tutorName))
	}

	adminEmail := config.Config("ADMIN_EMAIL")
	go notifications.SendEmail(
		"Admin",
		adminEmail,
		fmt.Sprintf("%d student(s) awaiting 30-day payout approval", len(students)),
		fmt.Sprintf("<h1>Payout Approval Queue</h1><ul>%s</ul>", rows.String()),
	)

	log.Printf("Digest queued for %d payout-eligible student(s).", len(students))
}
