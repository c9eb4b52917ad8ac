package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/devgupta2601/tuition_hub/models"
	"github.com/devgupta2601/tuition_hub/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAlreadyCleared  = errors.New("student payout has already been cleared")
	ErrNotEligible     = errors.New("student has not completed the 30-day cycle")
	ErrNoTutorAssigned = errors.New("student has no assigned tutor")
	ErrNotPending      = errors.New("request is no longer pending")
	ErrNoPayoutDest    = errors.New("add a bank account or payment method first")
	ErrInvalidAmount   = errors.New("amount must be at least 1")
)

// InsufficientBalanceError carries the computed available figure so the
// caller can surface it.
type InsufficientBalanceError struct {
	Available float64
	Requested float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: available ₹%.2f, requested ₹%.2f", e.Available, e.Requested)
}

// pendingWithdrawalsSum totals a tutor's pending withdrawals, optionally
// excluding the request currently being resolved.
func pendingWithdrawalsSum(tx *gorm.DB, tutorID uuid.UUID, exclude *uuid.UUID) (float64, error) {
	var sum float64
	q := tx.Model(&models.WithdrawalRequest{}).
		Where("tutor_id = ? AND status = ?", tutorID, "pending")
	if exclude != nil {
		q = q.Where("id <> ?", *exclude)
	}
	err := q.Select("COALESCE(SUM(amount), 0)").Row().Scan(&sum)
	return sum, err
}

func appendWalletTransaction(tx *gorm.DB, txn *models.WalletTransaction) error {
	ref, err := utils.GenerateTransactionReference(tx)
	if err != nil {
		return err
	}
	txn.Reference = ref
	return tx.Create(txn).Error
}

// ApproveStudentPayout clears a student's one-time 30-day payout and credits
// the assigned tutor. The clearance is guarded by a conditional update on
// payout_cleared so two admins approving concurrently cannot double-credit.
func ApproveStudentPayout(db *gorm.DB, studentID uuid.UUID, adminEmail string, now time.Time) (*models.WalletTransaction, error) {
	var txn *models.WalletTransaction

	err := db.Transaction(func(tx *gorm.DB) error {
		var student models.Student
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&student, "id = ?", studentID).Error; err != nil {
			return err
		}
		if student.PayoutCleared {
			return ErrAlreadyCleared
		}
		if student.AssignedTutorID == nil {
			return ErrNoTutorAssigned
		}
		if !EligibleForPayout(student, now) {
			return ErrNotEligible
		}

		var tutor models.Tutor
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tutor, "id = ?", *student.AssignedTutorID).Error; err != nil {
			return err
		}

		payout := GetSettings(tx).TutorPayout

		res := tx.Model(&models.Student{}).
			Where("id = ? AND payout_cleared = ?", student.ID, false).
			Updates(map[string]interface{}{
				"payout_cleared":    true,
				"payout_cleared_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyCleared
		}

		previous := tutor.AdminAddedBalance
		newBalance := Round2(previous + payout)
		if err := tx.Model(&models.Tutor{}).Where("id = ?", tutor.ID).
			Update("admin_added_balance", newBalance).Error; err != nil {
			return err
		}

		sid := student.ID
		txn = &models.WalletTransaction{
			TutorID:         tutor.ID,
			Type:            models.TxnTypeThirtyDayPayout,
			Amount:          payout,
			Reason:          fmt.Sprintf("30-day payout for student %s", student.Name),
			AddedBy:         adminEmail,
			PreviousBalance: previous,
			NewBalance:      newBalance,
			StudentID:       &sid,
		}
		return appendWalletTransaction(tx, txn)
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// RequestWithdrawal creates a pending withdrawal after validating the amount
// against the tutor's available balance, pending requests included.
func RequestWithdrawal(db *gorm.DB, tutorID uuid.UUID, amount float64, now time.Time) (*models.WithdrawalRequest, error) {
	if amount < 1 {
		return nil, ErrInvalidAmount
	}

	var request *models.WithdrawalRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		var tutor models.Tutor
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tutor, "id = ?", tutorID).Error; err != nil {
			return err
		}
		if !tutor.HasPayoutDestination() {
			return ErrNoPayoutDest
		}

		pendingSum, err := pendingWithdrawalsSum(tx, tutorID, nil)
		if err != nil {
			return err
		}
		available := AvailableBalance(tutor.AdminAddedBalance, pendingSum)
		if amount > available {
			return &InsufficientBalanceError{Available: available, Requested: amount}
		}

		request = &models.WithdrawalRequest{
			TutorID:     tutor.ID,
			TutorName:   tutor.Name,
			TutorEmail:  tutor.Email,
			Amount:      amount,
			Status:      "pending",
			RequestedAt: now,
		}
		return tx.Create(request).Error
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// ApproveWithdrawal settles a pending withdrawal: validate against the
// recomputed available balance, debit the tutor, snapshot settlement fields,
// and append the debit ledger entry in a single transaction.
func ApproveWithdrawal(db *gorm.DB, requestID uuid.UUID, adminEmail string, now time.Time) (*models.WithdrawalRequest, error) {
	var request models.WithdrawalRequest

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, "id = ?", requestID).Error; err != nil {
			return err
		}
		if request.Status != "pending" {
			return ErrNotPending
		}

		var tutor models.Tutor
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tutor, "id = ?", request.TutorID).Error; err != nil {
			return err
		}

		pendingSum, err := pendingWithdrawalsSum(tx, request.TutorID, &request.ID)
		if err != nil {
			return err
		}
		available := AvailableBalance(tutor.AdminAddedBalance, pendingSum)
		if request.Amount > available {
			return &InsufficientBalanceError{Available: available, Requested: request.Amount}
		}

		previous := tutor.AdminAddedBalance
		newBalance := Round2(previous - request.Amount)

		res := tx.Model(&models.WithdrawalRequest{}).
			Where("id = ? AND status = ?", request.ID, "pending").
			Updates(map[string]interface{}{
				"status":                  "approved",
				"approved_at":             now,
				"approved_by":             adminEmail,
				"deducted_amount":         request.Amount,
				"tutor_available_balance": available,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}

		if err := tx.Model(&models.Tutor{}).Where("id = ?", tutor.ID).
			Update("admin_added_balance", newBalance).Error; err != nil {
			return err
		}

		rid := request.ID
		txn := &models.WalletTransaction{
			TutorID:             tutor.ID,
			Type:                models.TxnTypeWithdrawalDebit,
			Amount:              request.Amount,
			Reason:              fmt.Sprintf("Withdrawal approved by %s", adminEmail),
			AddedBy:             adminEmail,
			PreviousBalance:     previous,
			NewBalance:          newBalance,
			WithdrawalRequestID: &rid,
		}
		if err := appendWalletTransaction(tx, txn); err != nil {
			return err
		}

		request.Status = "approved"
		request.ApprovedAt = &now
		request.ApprovedBy = &adminEmail
		request.DeductedAmount = &request.Amount
		request.TutorAvailableBalance = &available
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// RejectWithdrawal flips a pending request to rejected. No balance change.
func RejectWithdrawal(db *gorm.DB, requestID uuid.UUID, adminEmail string, now time.Time) (*models.WithdrawalRequest, error) {
	var request models.WithdrawalRequest
	if err := db.First(&request, "id = ?", requestID).Error; err != nil {
		return nil, err
	}

	res := db.Model(&models.WithdrawalRequest{}).
		Where("id = ? AND status = ?", requestID, "pending").
		Updates(map[string]interface{}{
			"status":      "rejected",
			"rejected_at": now,
			"rejected_by": adminEmail,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotPending
	}

	request.Status = "rejected"
	request.RejectedAt = &now
	request.RejectedBy = &adminEmail
	return &request, nil
}

// CreditTutor is the manual "Add Points" path: an arbitrary admin-entered
// credit, always paired with an admin_add ledger entry.
func CreditTutor(db *gorm.DB, tutorID uuid.UUID, amount float64, reason string, notes *string, adminEmail string) (*models.WalletTransaction, error) {
	if amount < 1 {
		return nil, ErrInvalidAmount
	}

	var txn *models.WalletTransaction
	err := db.Transaction(func(tx *gorm.DB) error {
		var tutor models.Tutor
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tutor, "id = ?", tutorID).Error; err != nil {
			return err
		}

		previous := tutor.AdminAddedBalance
		newBalance := Round2(previous + amount)
		if err := tx.Model(&models.Tutor{}).Where("id = ?", tutor.ID).
			Update("admin_added_balance", newBalance).Error; err != nil {
			return err
		}

		txn = &models.WalletTransaction{
			TutorID:         tutor.ID,
			Type:            models.TxnTypeAdminAdd,
			Amount:          amount,
			Reason:          reason,
			Notes:           notes,
			AddedBy:         adminEmail,
			PreviousBalance: previous,
			NewBalance:      newBalance,
		}
		return appendWalletTransaction(tx, txn)
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// WalletSummary is the tutor-facing wallet view: the withdrawable figure and
// the informational projections, kept as separate fields.
type WalletSummary struct {
	TutorID            uuid.UUID `json:"tutor_id"`
	AdminAddedBalance  float64   `json:"admin_added_balance"`
	PendingWithdrawals float64   `json:"pending_withdrawals"`
	AvailableBalance   float64   `json:"available_balance"`
	AccrualProjection  float64   `json:"accrual_projection"`
	PendingPayouts     float64   `json:"pending_payouts"`
	DisplayTotal       float64   `json:"display_total"`
	ActiveStudents     int       `json:"active_students"`
}

func GetWalletSummary(db *gorm.DB, tutorID uuid.UUID, now time.Time) (*WalletSummary, error) {
	var tutor models.Tutor
	if err := db.First(&tutor, "id = ?", tutorID).Error; err != nil {
		return nil, err
	}

	var students []models.Student
	if err := db.Where("assigned_tutor_id = ?", tutorID).Find(&students).Error; err != nil {
		return nil, err
	}

	pendingSum, err := pendingWithdrawalsSum(db, tutorID, nil)
	if err != nil {
		return nil, err
	}

	payout := GetSettings(db).TutorPayout
	available := AvailableBalance(tutor.AdminAddedBalance, pendingSum)

	active := 0
	for _, s := range students {
		if s.IsActive && !s.PayoutCleared {
			active++
		}
	}

	return &WalletSummary{
		TutorID:            tutor.ID,
		AdminAddedBalance:  Round2(tutor.AdminAddedBalance),
		PendingWithdrawals: Round2(pendingSum),
		AvailableBalance:   available,
		AccrualProjection:  AggregateAccrual(students, now, payout),
		PendingPayouts:     PendingPayoutTotal(students, now, payout),
		DisplayTotal:       DisplayWalletTotal(available, students, now, payout),
		ActiveStudents:     active,
	}, nil
}
