package handlers

import (
	"errors"
	"time"

	"github.com/devgupta2601/tuition_hub/database"
	"github.com/devgupta2601/tuition_hub/models"
	"github.com/devgupta2601/tuition_hub/services"
	"github.com/gofiber/fiber/v2"
)

func GetTutorWallet(c *fiber.Ctx) error {
	summary, err := services.GetWalletSummary(database.DB, currentUserID(c), time.Now())
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor not found"})
	}
	return c.JSON(summary)
}

func ListTutorWalletTransactions(c *fiber.Ctx) error {
	var transactions []models.WalletTransaction
	if err := database.DB.Where("tutor_id = ?", currentUserID(c)).
		Order("created_at desc").Find(&transactions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(transactions)
}

type RosterEntry struct {
	Student       models.Student `json:"student"`
	DaysActive    int            `json:"days_active"`
	DailyAccrual  float64        `json:"daily_accrual"`
	PendingPayout float64        `json:"pending_payout"`
	Eligible      bool           `json:"eligible_for_payout"`
}

// ListTutorStudents is the tutor's roster with per-student accrual status.
// It reads the same assigned-students query the wallet summary uses.
func ListTutorStudents(c *fiber.Ctx) error {
	var students []models.Student
	if err := database.DB.Where("assigned_tutor_id = ?", currentUserID(c)).
		Order("created_at asc").Find(&students).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	now := time.Now()
	payout := services.GetSettings(database.DB).TutorPayout

	roster := make([]RosterEntry, 0, len(students))
	for _, s := range students {
		roster = append(roster, RosterEntry{
			Student:       s,
			DaysActive:    services.DaysActive(s.CreatedAt, now),
			DailyAccrual:  services.DailyAccrual(s, now, payout),
			PendingPayout: services.PendingPayout(s, now, payout),
			Eligible:      services.EligibleForPayout(s, now),
		})
	}
	return c.JSON(roster)
}

func SaveBankAccount(c *fiber.Ctx) error {
	type Request struct {
		HolderName    string `json:"holder_name" validate:"required"`
		BankName      string `json:"bank_name" validate:"required"`
		AccountNumber string `json:"account_number" validate:"required,min=6"`
		IFSC          string `json:"ifsc" validate:"required,len=11"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	account := models.BankAccount{
		HolderName:    req.HolderName,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		IFSC:          req.IFSC,
		Verified:      false,
	}
	if err := database.DB.Model(&models.Tutor{}).Where("id = ?", currentUserID(c)).
		Updates(map[string]interface{}{
			"bank_holder_name":    account.HolderName,
			"bank_bank_name":      account.BankName,
			"bank_account_number": account.AccountNumber,
			"bank_ifsc":           account.IFSC,
			"bank_verified":       false,
		}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save bank account"})
	}

	return c.JSON(fiber.Map{"message": "Bank account saved", "bank_account": account})
}

func AddPaymentMethod(c *fiber.Ctx) error {
	type Request struct {
		Type  string `json:"type" validate:"required,oneof=upi phone paypal"`
		Value string `json:"value" validate:"required"`
		Name  string `json:"name" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var tutor models.Tutor
	if err := database.DB.First(&tutor, "id = ?", currentUserID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor not found"})
	}

	tutor.PaymentMethods = append(tutor.PaymentMethods, models.PaymentMethod{
		Type:  req.Type,
		Value: req.Value,
		Name:  req.Name,
	})
	if err := database.DB.Model(&tutor).Update("payment_methods", tutor.PaymentMethods).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save payment method"})
	}

	return c.JSON(tutor.PaymentMethods)
}

func RemovePaymentMethod(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment method index"})
	}

	var tutor models.Tutor
	if err := database.DB.First(&tutor, "id = ?", currentUserID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor not found"})
	}
	if index < 0 || index >= len(tutor.PaymentMethods) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment method not found"})
	}

	tutor.PaymentMethods = append(tutor.PaymentMethods[:index], tutor.PaymentMethods[index+1:]...)
	if err := database.DB.Model(&tutor).Update("payment_methods", tutor.PaymentMethods).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove payment method"})
	}

	return c.JSON(tutor.PaymentMethods)
}

func CreateWithdrawalRequest(c *fiber.Ctx) error {
	type Request struct {
		Amount float64 `json:"amount" validate:"required,gt=0"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	request, err := services.RequestWithdrawal(database.DB, currentUserID(c), req.Amount, time.Now())
	if err != nil {
		var insufficient *services.InsufficientBalanceError
		switch {
		case errors.As(err, &insufficient):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":     insufficient.Error(),
				"available": insufficient.Available,
			})
		case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, services.ErrNoPayoutDest):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit withdrawal request"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

func ListTutorWithdrawals(c *fiber.Ctx) error {
	var requests []models.WithdrawalRequest
	if err := database.DB.Where("tutor_id = ?", currentUserID(c)).
		Order("requested_at desc").Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(requests)
}
