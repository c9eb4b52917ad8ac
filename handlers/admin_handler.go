package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/devgupta2601/tuition_hub/database"
	"github.com/devgupta2601/tuition_hub/models"
	"github.com/devgupta2601/tuition_hub/notifications"
	"github.com/devgupta2601/tuition_hub/services"
	"github.com/devgupta2601/tuition_hub/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func AdminListStudents(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := strings.TrimSpace(c.Query("search"))
	offset := (page - 1) * limit

	var students []models.Student
	var total int64

	query := database.DB.Model(&models.Student{})
	countQuery := database.DB.Model(&models.Student{})

	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", searchTerm, searchTerm, searchTerm)
		countQuery = countQuery.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", searchTerm, searchTerm, searchTerm)
	}

	countQuery.Count(&total)
	query.Order("created_at desc").Offset(offset).Limit(limit).Preload("AssignedTutor").Find(&students)

	return c.JSON(fiber.Map{
		"data": students,
		"meta": fiber.Map{
			"total":        total,
			"current_page": page,
			"total_pages":  int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

func AdminGetStudentDetail(c *fiber.Ctx) error {
	studentID := c.Params("studentId")

	var student models.Student
	if err := database.DB.Preload("AssignedTutor").First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	var payments []models.PaymentRequest
	var shifts []models.ShiftRequest
	var changes []models.TutorChangeRequest
	database.DB.Where("student_id = ?", student.ID).Order("created_at desc").Find(&payments)
	database.DB.Where("student_id = ?", student.ID).Order("created_at desc").Find(&shifts)
	database.DB.Where("student_id = ?", student.ID).Order("created_at desc").Find(&changes)

	now := time.Now()
	payout := services.GetSettings(database.DB).TutorPayout

	return c.JSON(fiber.Map{
		"student":               student,
		"days_active":           services.DaysActive(student.CreatedAt, now),
		"daily_accrual":         services.DailyAccrual(student, now, payout),
		"eligible_for_payout":   services.EligibleForPayout(student, now),
		"payment_requests":      payments,
		"shift_requests":        shifts,
		"tutor_change_requests": changes,
	})
}

func AdminAssignTutor(c *fiber.Ctx) error {
	studentID := c.Params("studentId")

	type Request struct {
		TutorID *string `json:"tutor_id"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	if req.TutorID == nil || *req.TutorID == "" {
		if err := database.DB.Model(&student).Update("assigned_tutor_id", nil).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to unassign tutor"})
		}
		return c.JSON(fiber.Map{"message": "Tutor unassigned"})
	}

	tutorID, err := uuid.Parse(*req.TutorID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}
	var tutor models.Tutor
	if err := database.DB.First(&tutor, "id = ?", tutorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor not found"})
	}

	if err := database.DB.Model(&student).Update("assigned_tutor_id", tutorID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign tutor"})
	}

	websocket.NotifyWalletChanged(tutorID)
	return c.JSON(fiber.Map{"message": "Tutor assigned successfully"})
}

func AdminListTutors(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := strings.TrimSpace(c.Query("search"))
	offset := (page - 1) * limit

	var tutors []models.Tutor
	var total int64

	query := database.DB.Model(&models.Tutor{})
	countQuery := database.DB.Model(&models.Tutor{})

	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", searchTerm, searchTerm, searchTerm)
		countQuery = countQuery.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", searchTerm, searchTerm, searchTerm)
	}

	countQuery.Count(&total)
	query.Order("created_at desc").Offset(offset).Limit(limit).Find(&tutors)

	now := time.Now()
	data := make([]fiber.Map, 0, len(tutors))
	for _, t := range tutors {
		summary, err := services.GetWalletSummary(database.DB, t.ID, now)
		if err != nil {
			continue
		}
		data = append(data, fiber.Map{"tutor": t, "wallet": summary})
	}

	return c.JSON(fiber.Map{
		"data": data,
		"meta": fiber.Map{
			"total":        total,
			"current_page": page,
			"total_pages":  int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

func AdminListPaymentRequests(c *fiber.Ctx) error {
	var requests []models.PaymentRequest
	database.DB.Preload("Student").Where("status = ?", "pending").Order("created_at desc").Find(&requests)
	return c.JSON(requests)
}

// AdminProcessPaymentRequest approves or rejects a subscription payment.
// Approval activates the student and starts the 30-day plan window.
func AdminProcessPaymentRequest(c *fiber.Ctx) error {
	requestID := c.Params("requestId")

	type Request struct {
		Decision string `json:"decision" validate:"required,oneof=approve reject"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var payment models.PaymentRequest
	if err := database.DB.Preload("Student").First(&payment, "id = ?", requestID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment request not found"})
	}

	now := time.Now()
	if req.Decision == "approve" {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.PaymentRequest{}).
				Where("id = ? AND status = ?", payment.ID, "pending").
				Updates(map[string]interface{}{"status": "approved", "approved_at": now})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return services.ErrNotPending
			}

			planEnd := now.AddDate(0, 0, 30)
			return tx.Model(&models.Student{}).Where("id = ?", payment.StudentID).
				Updates(map[string]interface{}{
					"is_active":  true,
					"plan_start": now,
					"plan_end":   planEnd,
				}).Error
		})
		if err != nil {
			if errors.Is(err, services.ErrNotPending) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve payment"})
		}

		go notifications.SendEmail(payment.Student.Name, payment.Student.Email,
			"Your Subscription is Active!",
			"<h1>Payment Approved</h1><p>Your payment has been verified and your 30-day plan is now active.</p>")
		return c.JSON(fiber.Map{"message": "Payment approved and student activated"})
	}

	res := database.DB.Model(&models.PaymentRequest{}).
		Where("id = ? AND status = ?", payment.ID, "pending").
		Updates(map[string]interface{}{"status": "rejected", "rejected_at": now})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reject payment"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": services.ErrNotPending.Error()})
	}

	go notifications.SendEmail(payment.Student.Name, payment.Student.Email,
		"Update on Your Payment",
		"<h1>Payment Rejected</h1><p>We could not verify your payment. Please check the transaction details and try again.</p>")
	return c.JSON(fiber.Map{"message": "Payment rejected"})
}

func AdminListShiftRequests(c *fiber.Ctx) error {
	var requests []models.ShiftRequest
	database.DB.Preload("Student").Where("status = ?", "pending").Order("created_at desc").Find(&requests)
	return c.JSON(requests)
}

func AdminProcessShiftRequest(c *fiber.Ctx) error {
	requestID := c.Params("requestId")

	type Request struct {
		Decision string `json:"decision" validate:"required,oneof=approve reject"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	status := "approved"
	if req.Decision == "reject" {
		status = "rejected"
	}

	res := database.DB.Model(&models.ShiftRequest{}).
		Where("id = ? AND status = ?", requestID, "pending").
		Updates(map[string]interface{}{"status": status, "resolved_at": time.Now()})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process shift request"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pending shift request not found"})
	}

	return c.JSON(fiber.Map{"message": "Shift request " + status})
}

func AdminListTutorChangeRequests(c *fiber.Ctx) error {
	var requests []models.TutorChangeRequest
	database.DB.Preload("Student").Where("status = ?", "pending").Order("created_at desc").Find(&requests)
	return c.JSON(requests)
}

// AdminProcessTutorChangeRequest resolves a change request; on approval an
// optional new tutor can be assigned in the same operation.
func AdminProcessTutorChangeRequest(c *fiber.Ctx) error {
	requestID := c.Params("requestId")

	type Request struct {
		Decision   string  `json:"decision" validate:"required,oneof=approve reject"`
		NewTutorID *string `json:"new_tutor_id"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var change models.TutorChangeRequest
	if err := database.DB.First(&change, "id = ?", requestID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor change request not found"})
	}

	status := "approved"
	if req.Decision == "reject" {
		status = "rejected"
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.TutorChangeRequest{}).
			Where("id = ? AND status = ?", change.ID, "pending").
			Updates(map[string]interface{}{"status": status, "resolved_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return services.ErrNotPending
		}

		if status == "approved" && req.NewTutorID != nil && *req.NewTutorID != "" {
			tutorID, err := uuid.Parse(*req.NewTutorID)
			if err != nil {
				return err
			}
			var tutor models.Tutor
			if err := tx.First(&tutor, "id = ?", tutorID).Error; err != nil {
				return err
			}
			return tx.Model(&models.Student{}).Where("id = ?", change.StudentID).
				Update("assigned_tutor_id", tutorID).Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, services.ErrNotPending) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Tutor change request " + status})
}

func AdminListPasswordResetRequests(c *fiber.Ctx) error {
	var requests []models.PasswordResetRequest
	database.DB.Where("status = ?", "pending").Order("requested_at desc").Find(&requests)
	return c.JSON(requests)
}

func AdminProcessPasswordResetRequest(c *fiber.Ctx) error {
	requestID := c.Params("requestId")

	type Request struct {
		Decision string `json:"decision" validate:"required,oneof=approve reject"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var reset models.PasswordResetRequest
	if err := database.DB.First(&reset, "id = ?", requestID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Password reset request not found"})
	}

	adminEmail := currentEmail(c)
	now := time.Now()
	status := "approved"
	if req.Decision == "reject" {
		status = "rejected"
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PasswordResetRequest{}).
			Where("id = ? AND status = ?", reset.ID, "pending").
			Updates(map[string]interface{}{
				"status":      status,
				"resolved_at": now,
				"resolved_by": adminEmail,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return services.ErrNotPending
		}

		if status != "approved" {
			return nil
		}
		if reset.UserType == "student" {
			return tx.Model(&models.Student{}).Where("id = ?", reset.UserID).
				Update("password", reset.NewPasswordHash).Error
		}
		return tx.Model(&models.Tutor{}).Where("id = ?", reset.UserID).
			Update("password", reset.NewPasswordHash).Error
	})
	if err != nil {
		if errors.Is(err, services.ErrNotPending) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process password reset"})
	}

	if status == "approved" {
		go notifications.SendEmail("", reset.Email,
			"Your Password Has Been Reset",
			"<h1>Password Reset Approved</h1><p>Your password has been updated. You can now log in with your new password.</p>")
	} else {
		go notifications.SendEmail("", reset.Email,
			"Update on Your Password Reset Request",
			"<h1>Password Reset Rejected</h1><p>Your password reset request was not approved. Contact support if you believe this is an error.</p>")
	}

	return c.JSON(fiber.Map{"message": "Password reset request " + status})
}

// AdminListEligiblePayouts lists active, uncleared students past the 30-day
// cycle, grouped for the approval queue.
func AdminListEligiblePayouts(c *fiber.Ctx) error {
	cutoff := time.Now().AddDate(0, 0, -services.PayoutCycleDays)

	var students []models.Student
	if err := database.DB.Preload("AssignedTutor").
		Where("is_active = ? AND payout_cleared = ? AND created_at <= ?", true, false, cutoff).
		Order("created_at asc").Find(&students).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(students)
}

func AdminApproveStudentPayout(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id"})
	}

	txn, err := services.ApproveStudentPayout(database.DB, studentID, currentEmail(c), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyCleared):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrNotEligible), errors.Is(err, services.ErrNoTutorAssigned):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve payout"})
		}
	}

	websocket.NotifyWalletChanged(txn.TutorID)

	var tutor models.Tutor
	if err := database.DB.First(&tutor, "id = ?", txn.TutorID).Error; err == nil {
		go notifications.SendEmail(tutor.Name, tutor.Email,
			"30-Day Payout Credited",
			fmt.Sprintf("<h1>Payout Credited</h1><p>₹%.2f has been added to your wallet for a completed 30-day student cycle.</p>", txn.Amount))
	}

	return c.JSON(fiber.Map{"message": "30-day payout approved", "transaction": txn})
}

func AdminListWithdrawals(c *fiber.Ctx) error {
	status := c.Query("status", "pending")
	var requests []models.WithdrawalRequest
	database.DB.Preload("Tutor").Where("status = ?", status).Order("requested_at desc").Find(&requests)
	return c.JSON(requests)
}

func AdminProcessWithdrawal(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	type Request struct {
		Decision string `json:"decision" validate:"required,oneof=approve reject"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	adminEmail := currentEmail(c)
	now := time.Now()

	if req.Decision == "approve" {
		request, err := services.ApproveWithdrawal(database.DB, requestID, adminEmail, now)
		if err != nil {
			var insufficient *services.InsufficientBalanceError
			switch {
			case errors.As(err, &insufficient):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error":     insufficient.Error(),
					"available": insufficient.Available,
				})
			case errors.Is(err, services.ErrNotPending):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, gorm.ErrRecordNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Withdrawal request not found"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve withdrawal"})
			}
		}

		websocket.NotifyWalletChanged(request.TutorID)

		var tutor models.Tutor
		if err := database.DB.First(&tutor, "id = ?", request.TutorID).Error; err == nil {
			go services.GenerateWithdrawalReceipt(database.DB, *request, tutor)
			go notifications.SendEmail(tutor.Name, tutor.Email,
				"Your Withdrawal Has Been Approved",
				fmt.Sprintf("<h1>Withdrawal Approved</h1><p>Your withdrawal of ₹%.2f has been approved and will be transferred shortly.</p>", request.Amount))
		}

		return c.JSON(fiber.Map{"message": "Withdrawal approved", "request": request})
	}

	request, err := services.RejectWithdrawal(database.DB, requestID, adminEmail, now)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotPending):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Withdrawal request not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reject withdrawal"})
		}
	}

	websocket.NotifyWalletChanged(request.TutorID)
	go notifications.SendEmail(request.TutorName, request.TutorEmail,
		"Update on Your Withdrawal Request",
		fmt.Sprintf("<h1>Withdrawal Rejected</h1><p>Your withdrawal request for ₹%.2f was not approved. Your balance is unchanged.</p>", request.Amount))

	return c.JSON(fiber.Map{"message": "Withdrawal rejected", "request": request})
}

// AdminAddPoints is the manual wallet credit ("Add Points").
func AdminAddPoints(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(c.Params("tutorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}

	type Request struct {
		Amount float64 `json:"amount" validate:"required,gte=1"`
		Reason string  `json:"reason" validate:"required"`
		Notes  string  `json:"notes"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	txn, err := services.CreditTutor(database.DB, tutorID, req.Amount, req.Reason, notes, currentEmail(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to credit tutor"})
		}
	}

	websocket.NotifyWalletChanged(tutorID)

	var tutor models.Tutor
	if err := database.DB.First(&tutor, "id = ?", tutorID).Error; err == nil {
		go notifications.SendEmail(tutor.Name, tutor.Email,
			"Points Added to Your Wallet",
			fmt.Sprintf("<h1>Wallet Credited</h1><p>₹%.2f has been added to your wallet. Reason: %s.</p>", txn.Amount, txn.Reason))
	}

	return c.Status(fiber.StatusCreated).JSON(txn)
}

func AdminGetSettings(c *fiber.Ctx) error {
	return c.JSON(services.GetSettings(database.DB))
}

func AdminUpdateSettings(c *fiber.Ctx) error {
	type Request struct {
		UpiID        string  `json:"upi_id"`
		UpiName      string  `json:"upi_name"`
		StudentPrice float64 `json:"student_price" validate:"required,gt=0"`
		TutorPayout  float64 `json:"tutor_payout" validate:"required,gt=0"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	settings := models.Setting{
		ID:           1,
		UpiID:        req.UpiID,
		UpiName:      req.UpiName,
		StudentPrice: req.StudentPrice,
		TutorPayout:  req.TutorPayout,
	}
	if err := database.DB.Save(&settings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update settings"})
	}
	return c.JSON(settings)
}

type AdminDashboardResponse struct {
	TotalStudents         int64   `json:"total_students"`
	ActiveStudents        int64   `json:"active_students"`
	TotalTutors           int64   `json:"total_tutors"`
	PendingPayments       int64   `json:"pending_payments"`
	PendingShifts         int64   `json:"pending_shifts"`
	PendingTutorChanges   int64   `json:"pending_tutor_changes"`
	PendingWithdrawals    int64   `json:"pending_withdrawals"`
	PendingPasswordResets int64   `json:"pending_password_resets"`
	EligiblePayouts       int64   `json:"eligible_payouts"`
	TotalWithdrawalVolume float64 `json:"total_withdrawal_volume"`
	TotalPayoutVolume     float64 `json:"total_payout_volume"`
}

func AdminGetDashboard(c *fiber.Ctx) error {
	var resp AdminDashboardResponse

	database.DB.Model(&models.Student{}).Count(&resp.TotalStudents)
	database.DB.Model(&models.Student{}).Where("is_active = ?", true).Count(&resp.ActiveStudents)
	database.DB.Model(&models.Tutor{}).Count(&resp.TotalTutors)
	database.DB.Model(&models.PaymentRequest{}).Where("status = ?", "pending").Count(&resp.PendingPayments)
	database.DB.Model(&models.ShiftRequest{}).Where("status = ?", "pending").Count(&resp.PendingShifts)
	database.DB.Model(&models.TutorChangeRequest{}).Where("status = ?", "pending").Count(&resp.PendingTutorChanges)
	database.DB.Model(&models.WithdrawalRequest{}).Where("status = ?", "pending").Count(&resp.PendingWithdrawals)
	database.DB.Model(&models.PasswordResetRequest{}).Where("status = ?", "pending").Count(&resp.PendingPasswordResets)

	cutoff := time.Now().AddDate(0, 0, -services.PayoutCycleDays)
	database.DB.Model(&models.Student{}).
		Where("is_active = ? AND payout_cleared = ? AND created_at <= ?", true, false, cutoff).
		Count(&resp.EligiblePayouts)

	database.DB.Model(&models.WalletTransaction{}).Where("type = ?", models.TxnTypeWithdrawalDebit).
		Select("COALESCE(SUM(amount), 0)").Row().Scan(&resp.TotalWithdrawalVolume)
	database.DB.Model(&models.WalletTransaction{}).Where("type = ?", models.TxnTypeThirtyDayPayout).
		Select("COALESCE(SUM(amount), 0)").Row().Scan(&resp.TotalPayoutVolume)

	return c.JSON(resp)
}

// AdminGenerateWalletReport exports the wallet ledger as CSV for a date range.
func AdminGenerateWalletReport(c *fiber.Ctx) error {
	startDateStr := c.Query("start_date", time.Now().AddDate(0, -1, 0).Format("2006-01-02"))
	endDateStr := c.Query("end_date", time.Now().Format("2006-01-02"))

	startDate, err := time.Parse("2006-01-02", startDateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date format. Use YYYY-MM-DD."})
	}
	endDate, err := time.Parse("2006-01-02", endDateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_date format. Use YYYY-MM-DD."})
	}
	endDate = endDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second)

	var transactions []models.WalletTransaction
	database.DB.
		Preload("Tutor").
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Order("created_at desc").
		Find(&transactions)

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	headers := []string{"Reference", "Date", "Tutor", "Type", "Amount", "Previous Balance", "New Balance", "Reason", "Added By"}
	if err := w.Write(headers); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV header"})
	}

	for _, t := range transactions {
		row := []string{
			t.Reference,
			t.CreatedAt.Format("2006-01-02 15:04"),
			t.Tutor.Name,
			t.Type,
			fmt.Sprintf("%.2f", t.Amount),
			fmt.Sprintf("%.2f", t.PreviousBalance),
			fmt.Sprintf("%.2f", t.NewBalance),
			t.Reason,
			t.AddedBy,
		}
		if err := w.Write(row); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV row"})
		}
	}
	w.Flush()

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"wallet_%s_to_%s.csv\"", startDate.Format("2006-01-02"), endDate.Format("2006-01-02")))

	return c.Send(b.Bytes())
}
