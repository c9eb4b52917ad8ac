package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/devgupta2601/tuition_hub/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:payout_%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.Tutor{},
		&models.Student{},
		&models.WithdrawalRequest{},
		&models.WalletTransaction{},
		&models.Setting{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedTutor(t *testing.T, db *gorm.DB, balance float64) *models.Tutor {
	t.Helper()
	tutor := &models.Tutor{
		Name:              "Asha Verma",
		Email:             fmt.Sprintf("asha_%s@example.com", uuid.NewString()[:8]),
		Password:          "hashed",
		AdminAddedBalance: balance,
		BankAccount: &models.BankAccount{
			HolderName:    "Asha Verma",
			BankName:      "HDFC",
			AccountNumber: "50100123456789",
			IFSC:          "HDFC0001234",
		},
	}
	if err := db.Create(tutor).Error; err != nil {
		t.Fatalf("seed tutor: %v", err)
	}
	return tutor
}

func seedStudent(t *testing.T, db *gorm.DB, tutorID uuid.UUID, daysAgo int, now time.Time) *models.Student {
	t.Helper()
	student := &models.Student{
		Name:            "Rahul Singh",
		Email:           fmt.Sprintf("rahul_%s@example.com", uuid.NewString()[:8]),
		Phone:           "9876543210",
		Password:        "hashed",
		IsActive:        true,
		AssignedTutorID: &tutorID,
	}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	createdAt := now.Add(-time.Duration(daysAgo) * 24 * time.Hour)
	if err := db.Model(student).Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("backdate student: %v", err)
	}
	student.CreatedAt = createdAt
	return student
}

func seedPendingWithdrawal(t *testing.T, db *gorm.DB, tutor *models.Tutor, amount float64, now time.Time) *models.WithdrawalRequest {
	t.Helper()
	request, err := RequestWithdrawal(db, tutor.ID, amount, now)
	if err != nil {
		t.Fatalf("seed withdrawal: %v", err)
	}
	return request
}

func walletTransactions(t *testing.T, db *gorm.DB, tutorID uuid.UUID) []models.WalletTransaction {
	t.Helper()
	var txns []models.WalletTransaction
	if err := db.Where("tutor_id = ?", tutorID).Order("created_at ASC").Find(&txns).Error; err != nil {
		t.Fatalf("load transactions: %v", err)
	}
	return txns
}

func reloadTutor(t *testing.T, db *gorm.DB, id uuid.UUID) *models.Tutor {
	t.Helper()
	var tutor models.Tutor
	if err := db.First(&tutor, "id = ?", id).Error; err != nil {
		t.Fatalf("reload tutor: %v", err)
	}
	return &tutor
}

func TestApproveStudentPayout(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tutor := seedTutor(t, db, 0)
	student := seedStudent(t, db, tutor.ID, 31, now)

	txn, err := ApproveStudentPayout(db, student.ID, "admin@example.com", now)
	if err != nil {
		t.Fatalf("approve payout: %v", err)
	}

	if txn.Type != models.TxnTypeThirtyDayPayout {
		t.Fatalf("txn type = %q, want %q", txn.Type, models.TxnTypeThirtyDayPayout)
	}
	if txn.Amount != DefaultTutorPayout {
		t.Fatalf("txn amount = %v, want %v", txn.Amount, DefaultTutorPayout)
	}
	if txn.PreviousBalance != 0 || txn.NewBalance != 800 {
		t.Fatalf("balance snapshot = %v -> %v, want 0 -> 800", txn.PreviousBalance, txn.NewBalance)
	}
	if txn.Reference == "" {
		t.Fatal("txn reference not set")
	}

	if got := reloadTutor(t, db, tutor.ID).AdminAddedBalance; got != 800 {
		t.Fatalf("tutor balance = %v, want 800", got)
	}

	var reloaded models.Student
	if err := db.First(&reloaded, "id = ?", student.ID).Error; err != nil {
		t.Fatalf("reload student: %v", err)
	}
	if !reloaded.PayoutCleared || reloaded.PayoutClearedAt == nil {
		t.Fatal("student not marked cleared")
	}
}

func TestApproveStudentPayoutIsOneTime(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tutor := seedTutor(t, db, 0)
	student := seedStudent(t, db, tutor.ID, 45, now)

	if _, err := ApproveStudentPayout(db, student.ID, "admin@example.com", now); err != nil {
		t.Fatalf("first approval: %v", err)
	}
	_, err := ApproveStudentPayout(db, student.ID, "admin@example.com", now)
	if !errors.Is(err, ErrAlreadyCleared) {
		t.Fatalf("second approval err = %v, want ErrAlreadyCleared", err)
	}

	if got := reloadTutor(t, db, tutor.ID).AdminAddedBalance; got != 800 {
		t.Fatalf("tutor balance = %v, want 800 after single credit", got)
	}
	if txns := walletTransactions(t, db, tutor.ID); len(txns) != 1 {
		t.Fatalf("transaction count = %d, want 1", len(txns))
	}
}

func TestApproveStudentPayoutRejectsEarly(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tutor := seedTutor(t, db, 0)
	student := seedStudent(t, db, tutor.ID, 29, now)

	_, err := ApproveStudentPayout(db, student.ID, "admin@example.com", now)
	if !errors.Is(err, ErrNotEligible) {
		t.Fatalf("err = %v, want ErrNotEligible", err)
	}
}

func TestApproveStudentPayoutNeedsTutor(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	student := &models.Student{
		Name:     "Unassigned",
		Email:    "unassigned@example.com",
		Phone:    "9876500000",
		Password: "hashed",
		IsActive: true,
	}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}

	_, err := ApproveStudentPayout(db, student.ID, "admin@example.com", now)
	if !errors.Is(err, ErrNoTutorAssigned) {
		t.Fatalf("err = %v, want ErrNoTutorAssigned", err)
	}
}

func TestRequestWithdrawal(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("pending requests reserve balance", func(t *testing.T) {
		tutor := seedTutor(t, db, 1000)
		seedPendingWithdrawal(t, db, tutor, 400, now)

		_, err := RequestWithdrawal(db, tutor.ID, 700, now)
		var insufficient *InsufficientBalanceError
		if !errors.As(err, &insufficient) {
			t.Fatalf("err = %v, want InsufficientBalanceError", err)
		}
		if insufficient.Available != 600 {
			t.Fatalf("available = %v, want 600", insufficient.Available)
		}

		if _, err := RequestWithdrawal(db, tutor.ID, 600, now); err != nil {
			t.Fatalf("request at exact available: %v", err)
		}
	})

	t.Run("accrual never inflates the limit", func(t *testing.T) {
		tutor := seedTutor(t, db, 100)
		seedStudent(t, db, tutor.ID, 20, now)

		_, err := RequestWithdrawal(db, tutor.ID, 200, now)
		var insufficient *InsufficientBalanceError
		if !errors.As(err, &insufficient) {
			t.Fatalf("err = %v, want InsufficientBalanceError", err)
		}
		if insufficient.Available != 100 {
			t.Fatalf("available = %v, want 100", insufficient.Available)
		}
	})

	t.Run("rejects amount below one", func(t *testing.T) {
		tutor := seedTutor(t, db, 1000)
		if _, err := RequestWithdrawal(db, tutor.ID, 0.5, now); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("err = %v, want ErrInvalidAmount", err)
		}
	})

	t.Run("requires a payout destination", func(t *testing.T) {
		tutor := &models.Tutor{
			Name:              "No Dest",
			Email:             "nodest@example.com",
			Password:          "hashed",
			AdminAddedBalance: 1000,
		}
		if err := db.Create(tutor).Error; err != nil {
			t.Fatalf("seed tutor: %v", err)
		}
		if _, err := RequestWithdrawal(db, tutor.ID, 100, now); !errors.Is(err, ErrNoPayoutDest) {
			t.Fatalf("err = %v, want ErrNoPayoutDest", err)
		}
	})
}

func TestApproveWithdrawal(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tutor := seedTutor(t, db, 1000)
	request := seedPendingWithdrawal(t, db, tutor, 600, now)
	seedPendingWithdrawal(t, db, tutor, 400, now)

	settled, err := ApproveWithdrawal(db, request.ID, "admin@example.com", now)
	if err != nil {
		t.Fatalf("approve withdrawal: %v", err)
	}

	if settled.Status != "approved" {
		t.Fatalf("status = %q, want approved", settled.Status)
	}
	if settled.ApprovedBy == nil || *settled.ApprovedBy != "admin@example.com" {
		t.Fatal("approved_by snapshot missing")
	}
	if settled.DeductedAmount == nil || *settled.DeductedAmount != 600 {
		t.Fatal("deducted_amount snapshot missing")
	}
	if settled.TutorAvailableBalance == nil || *settled.TutorAvailableBalance != 600 {
		t.Fatalf("tutor_available_balance snapshot = %v, want 600", settled.TutorAvailableBalance)
	}

	if got := reloadTutor(t, db, tutor.ID).AdminAddedBalance; got != 400 {
		t.Fatalf("tutor balance = %v, want 400", got)
	}

	txns := walletTransactions(t, db, tutor.ID)
	if len(txns) != 1 {
		t.Fatalf("transaction count = %d, want 1", len(txns))
	}
	if txns[0].Type != models.TxnTypeWithdrawalDebit {
		t.Fatalf("txn type = %q, want %q", txns[0].Type, models.TxnTypeWithdrawalDebit)
	}
	if txns[0].PreviousBalance != 1000 || txns[0].NewBalance != 400 {
		t.Fatalf("balance snapshot = %v -> %v, want 1000 -> 400", txns[0].PreviousBalance, txns[0].NewBalance)
	}
}

func TestApproveWithdrawalRevalidates(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tutor := seedTutor(t, db, 1000)
	request := seedPendingWithdrawal(t, db, tutor, 800, now)

	// Balance drained between request and approval.
	if err := db.Model(&models.Tutor{}).Where("id = ?", tutor.ID).
		Update("admin_added_balance", 500).Error; err != nil {
		t.Fatalf("drain balance: %v", err)
	}

	_, err := ApproveWithdrawal(db, request.ID, "admin@example.com", now)
	var insufficient *InsufficientBalanceError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientBalanceError", err)
	}
	if insufficient.Available != 500 {
		t.Fatalf("available = %v, want 500", insufficient.Available)
	}

	if got := reloadTutor(t, db, tutor.ID).AdminAddedBalance; got != 500 {
		t.Fatalf("tutor balance = %v, want 500 untouched", got)
	}
	if txns := walletTransactions(t, db, tutor.ID); len(txns) != 0 {
		t.Fatalf("transaction count = %d, want 0", len(txns))
	}
}

func TestApproveWithdrawalIsNotRepeatable(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tutor := seedTutor(t, db, 1000)
	request := seedPendingWithdrawal(t, db, tutor, 300, now)

	if _, err := ApproveWithdrawal(db, request.ID, "admin@example.com", now); err != nil {
		t.Fatalf("first approval: %v", err)
	}
	if _, err := ApproveWithdrawal(db, request.ID, "admin@example.com", now); !errors.Is(err, ErrNotPending) {
		t.Fatalf("second approval err = %v, want ErrNotPending", err)
	}

	if got := reloadTutor(t, db, tutor.ID).AdminAddedBalance; got != 700 {
		t.Fatalf("tutor balance = %v, want 700 after single debit", got)
	}
}

func TestRejectWithdrawal(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tutor := seedTutor(t, db, 1000)
	request := seedPendingWithdrawal(t, db, tutor, 300, now)

	rejected, err := RejectWithdrawal(db, request.ID, "admin@example.com", now)
	if err != nil {
		t.Fatalf("reject withdrawal: %v", err)
	}
	if rejected.Status != "rejected" {
		t.Fatalf("status = %q, want rejected", rejected.Status)
	}
	if rejected.RejectedBy == nil || *rejected.RejectedBy != "admin@example.com" {
		t.Fatal("rejected_by snapshot missing")
	}

	if got := reloadTutor(t, db, tutor.ID).AdminAddedBalance; got != 1000 {
		t.Fatalf("tutor balance = %v, want 1000 untouched", got)
	}
	if txns := walletTransactions(t, db, tutor.ID); len(txns) != 0 {
		t.Fatalf("transaction count = %d, want 0", len(txns))
	}

	// Rejection frees the reserved amount.
	if _, err := RequestWithdrawal(db, tutor.ID, 1000, now); err != nil {
		t.Fatalf("request after rejection: %v", err)
	}

	if _, err := RejectWithdrawal(db, request.ID, "admin@example.com", now); !errors.Is(err, ErrNotPending) {
		t.Fatalf("second rejection err = %v, want ErrNotPending", err)
	}
}

func TestCreditTutor(t *testing.T) {
	db := openTestDB(t)

	tutor := seedTutor(t, db, 250.5)

	notes := "March incentive"
	txn, err := CreditTutor(db, tutor.ID, 149.5, "Performance bonus", &notes, "admin@example.com")
	if err != nil {
		t.Fatalf("credit tutor: %v", err)
	}

	if txn.Type != models.TxnTypeAdminAdd {
		t.Fatalf("txn type = %q, want %q", txn.Type, models.TxnTypeAdminAdd)
	}
	if txn.PreviousBalance != 250.5 || txn.NewBalance != 400 {
		t.Fatalf("balance snapshot = %v -> %v, want 250.5 -> 400", txn.PreviousBalance, txn.NewBalance)
	}
	if got := reloadTutor(t, db, tutor.ID).AdminAddedBalance; got != 400 {
		t.Fatalf("tutor balance = %v, want 400", got)
	}

	if _, err := CreditTutor(db, tutor.ID, 0, "zero", nil, "admin@example.com"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero credit err = %v, want ErrInvalidAmount", err)
	}
}

func TestGetWalletSummary(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tutor := seedTutor(t, db, 1000)
	seedStudent(t, db, tutor.ID, 10, now)
	seedStudent(t, db, tutor.ID, 35, now)
	seedPendingWithdrawal(t, db, tutor, 400, now)

	summary, err := GetWalletSummary(db, tutor.ID, now)
	if err != nil {
		t.Fatalf("wallet summary: %v", err)
	}

	if summary.AdminAddedBalance != 1000 {
		t.Fatalf("admin_added_balance = %v, want 1000", summary.AdminAddedBalance)
	}
	if summary.PendingWithdrawals != 400 {
		t.Fatalf("pending_withdrawals = %v, want 400", summary.PendingWithdrawals)
	}
	if summary.AvailableBalance != 600 {
		t.Fatalf("available_balance = %v, want 600", summary.AvailableBalance)
	}
	if summary.AccrualProjection != 266.67 {
		t.Fatalf("accrual_projection = %v, want 266.67", summary.AccrualProjection)
	}
	if summary.PendingPayouts != 800 {
		t.Fatalf("pending_payouts = %v, want 800", summary.PendingPayouts)
	}
	if summary.DisplayTotal != 866.67 {
		t.Fatalf("display_total = %v, want 866.67", summary.DisplayTotal)
	}
	if summary.ActiveStudents != 2 {
		t.Fatalf("active_students = %d, want 2", summary.ActiveStudents)
	}
}
