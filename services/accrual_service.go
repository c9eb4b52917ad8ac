package services

import (
	"math"
	"time"

	"github.com/devgupta2601/tuition_hub/models"
)

const (
	// PayoutCycleDays is the subscription length after which a student's
	// accrual converts into the one-time tutor payout.
	PayoutCycleDays = 30

	DefaultTutorPayout  = 800.0
	DefaultStudentPrice = 999.0
)

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DaysActive counts whole days since the student's creation, clamped at 0
// so clock skew can never produce a negative accrual window.
func DaysActive(createdAt, now time.Time) int {
	d := int(math.Floor(now.Sub(createdAt).Hours() / 24))
	if d < 0 {
		return 0
	}
	return d
}

// dailyContribution is the raw, unrounded projection a single student earns
// toward the tutor's wallet. Students at or past the payout cycle contribute
// nothing here; their value surfaces through PendingPayout instead.
func dailyContribution(s models.Student, now time.Time, payout float64) float64 {
	if !s.IsActive || s.PayoutCleared {
		return 0
	}
	days := DaysActive(s.CreatedAt, now)
	if days <= 0 || days >= PayoutCycleDays {
		return 0
	}
	return float64(days) * (payout / PayoutCycleDays)
}

// DailyAccrual returns a single student's accrual projection rounded to
// two decimals, for per-row display.
func DailyAccrual(s models.Student, now time.Time, payout float64) float64 {
	return Round2(dailyContribution(s, now, payout))
}

// AggregateAccrual sums the raw contributions across a roster and rounds
// once, so per-student rounding error does not compound.
func AggregateAccrual(students []models.Student, now time.Time, payout float64) float64 {
	var total float64
	for _, s := range students {
		total += dailyContribution(s, now, payout)
	}
	return Round2(total)
}

// EligibleForPayout reports whether a student has completed the 30-day cycle
// and is awaiting the one-time admin-approved payout.
func EligibleForPayout(s models.Student, now time.Time) bool {
	return s.IsActive && !s.PayoutCleared && DaysActive(s.CreatedAt, now) >= PayoutCycleDays
}

// PendingPayout is the display-only "completed cycle" figure for one student.
// It is informational and must never feed a withdrawable balance; only an
// administrator's approval moves this money into AdminAddedBalance.
func PendingPayout(s models.Student, now time.Time, payout float64) float64 {
	if EligibleForPayout(s, now) {
		return payout
	}
	return 0
}

func PendingPayoutTotal(students []models.Student, now time.Time, payout float64) float64 {
	var total float64
	for _, s := range students {
		total += PendingPayout(s, now, payout)
	}
	return Round2(total)
}

// AvailableBalance is the only number a withdrawal may be validated against:
// the admin-entered ledger balance minus withdrawals still pending.
func AvailableBalance(adminAddedBalance, pendingWithdrawalsSum float64) float64 {
	available := Round2(adminAddedBalance - pendingWithdrawalsSum)
	if available < 0 {
		return 0
	}
	return available
}

// DisplayWalletTotal is the UI-facing projection: withdrawable balance plus
// the roster's in-cycle accrual. It is never used for validation.
func DisplayWalletTotal(availableBalance float64, students []models.Student, now time.Time, payout float64) float64 {
	return Round2(availableBalance + AggregateAccrual(students, now, payout))
}
