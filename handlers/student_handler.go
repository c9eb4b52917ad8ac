package handlers

import (
	"strconv"
	"time"

	"github.com/devgupta2601/tuition_hub/database"
	"github.com/devgupta2601/tuition_hub/models"
	"github.com/devgupta2601/tuition_hub/services"
	"github.com/gofiber/fiber/v2"
)

type StudentProfileResponse struct {
	Student       models.Student `json:"student"`
	PlanDaysLeft  *int           `json:"plan_days_left"`
	AssignedTutor *TutorPublic   `json:"assigned_tutor"`
}

type TutorPublic struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func GetStudentProfile(c *fiber.Ctx) error {
	var student models.Student
	if err := database.DB.First(&student, "id = ?", currentUserID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	resp := StudentProfileResponse{Student: student}

	if student.IsActive && student.PlanEnd != nil {
		days := int(time.Until(*student.PlanEnd).Hours() / 24)
		if days < 0 {
			days = 0
		}
		resp.PlanDaysLeft = &days
	}

	if student.AssignedTutorID != nil {
		var tutor models.Tutor
		if err := database.DB.First(&tutor, "id = ?", *student.AssignedTutorID).Error; err == nil {
			phone := tutor.Phone
			if phone == "" {
				phone = "N/A"
			}
			resp.AssignedTutor = &TutorPublic{Name: tutor.Name, Phone: phone}
		}
	}

	return c.JSON(resp)
}

// CreateStudentPaymentRequest records an off-platform payment for admin
// verification. The amount is pinned to the configured plan price.
func CreateStudentPaymentRequest(c *fiber.Ctx) error {
	type Request struct {
		TxnID   string `json:"txn_id" validate:"required"`
		PayDate string `json:"pay_date" validate:"required"`
		PayTime string `json:"pay_time" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", currentUserID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	settings := services.GetSettings(database.DB)
	payment := models.PaymentRequest{
		StudentID:    student.ID,
		StudentEmail: student.Email,
		Amount:       settings.StudentPrice,
		TxnID:        req.TxnID,
		PayDate:      req.PayDate,
		PayTime:      req.PayTime,
		Status:       "pending",
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit payment request"})
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}

func CreateShiftRequest(c *fiber.Ctx) error {
	type Request struct {
		Hour string `json:"hour" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hour, err := strconv.Atoi(req.Hour)
	if err != nil || hour < 0 || hour > 23 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Hour must be one of the 24 hourly slots (0-23)"})
	}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", currentUserID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	shift := models.ShiftRequest{
		StudentID:   student.ID,
		StudentName: student.Name,
		Hour:        req.Hour,
		Status:      "pending",
	}
	if err := database.DB.Create(&shift).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit shift request"})
	}

	return c.Status(fiber.StatusCreated).JSON(shift)
}

func CreateTutorChangeRequest(c *fiber.Ctx) error {
	type Request struct {
		Reason string `json:"reason" validate:"required,min=3"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", currentUserID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	change := models.TutorChangeRequest{
		StudentID:      student.ID,
		StudentName:    student.Name,
		StudentEmail:   student.Email,
		CurrentTutorID: student.AssignedTutorID,
		Reason:         req.Reason,
		Status:         "pending",
	}
	if err := database.DB.Create(&change).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit tutor change request"})
	}

	return c.Status(fiber.StatusCreated).JSON(change)
}

func ListStudentRequests(c *fiber.Ctx) error {
	studentID := currentUserID(c)

	var payments []models.PaymentRequest
	var shifts []models.ShiftRequest
	var changes []models.TutorChangeRequest

	database.DB.Where("student_id = ?", studentID).Order("created_at desc").Find(&payments)
	database.DB.Where("student_id = ?", studentID).Order("created_at desc").Find(&shifts)
	database.DB.Where("student_id = ?", studentID).Order("created_at desc").Find(&changes)

	return c.JSON(fiber.Map{
		"payment_requests":      payments,
		"shift_requests":        shifts,
		"tutor_change_requests": changes,
	})
}

func GetPaymentInstructions(c *fiber.Ctx) error {
	settings := services.GetSettings(database.DB)
	return c.JSON(fiber.Map{
		"upi_id":        settings.UpiID,
		"upi_name":      settings.UpiName,
		"student_price": settings.StudentPrice,
	})
}
