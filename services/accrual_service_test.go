package services

import (
	"testing"
	"time"

	"github.com/devgupta2601/tuition_hub/models"
)

func studentAt(daysAgo int, now time.Time) models.Student {
	return models.Student{
		IsActive:  true,
		CreatedAt: now.Add(-time.Duration(daysAgo) * 24 * time.Hour),
	}
}

func TestDaysActive(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		createdAt time.Time
		want      int
	}{
		{"same moment", now, 0},
		{"under a day", now.Add(-23 * time.Hour), 0},
		{"exactly one day", now.Add(-24 * time.Hour), 1},
		{"ten and a half days", now.Add(-252 * time.Hour), 10},
		{"created in the future", now.Add(48 * time.Hour), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysActive(tc.createdAt, now); got != tc.want {
				t.Fatalf("DaysActive = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDailyAccrual(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("ten days in", func(t *testing.T) {
		s := studentAt(10, now)
		got := DailyAccrual(s, now, DefaultTutorPayout)
		if got != 266.67 {
			t.Fatalf("DailyAccrual = %v, want 266.67", got)
		}
	})

	t.Run("inactive student accrues nothing", func(t *testing.T) {
		s := studentAt(10, now)
		s.IsActive = false
		if got := DailyAccrual(s, now, DefaultTutorPayout); got != 0 {
			t.Fatalf("DailyAccrual = %v, want 0", got)
		}
	})

	t.Run("cleared student accrues nothing", func(t *testing.T) {
		s := studentAt(10, now)
		s.PayoutCleared = true
		if got := DailyAccrual(s, now, DefaultTutorPayout); got != 0 {
			t.Fatalf("DailyAccrual = %v, want 0", got)
		}
	})

	t.Run("day zero accrues nothing", func(t *testing.T) {
		s := studentAt(0, now)
		if got := DailyAccrual(s, now, DefaultTutorPayout); got != 0 {
			t.Fatalf("DailyAccrual = %v, want 0", got)
		}
	})

	t.Run("completed cycle stops accruing", func(t *testing.T) {
		for _, days := range []int{30, 31, 90} {
			s := studentAt(days, now)
			if got := DailyAccrual(s, now, DefaultTutorPayout); got != 0 {
				t.Fatalf("DailyAccrual at %d days = %v, want 0", days, got)
			}
		}
	})

	t.Run("monotonic within the cycle", func(t *testing.T) {
		prev := 0.0
		for days := 1; days < PayoutCycleDays; days++ {
			got := DailyAccrual(studentAt(days, now), now, DefaultTutorPayout)
			if got <= prev {
				t.Fatalf("accrual at %d days (%v) not greater than at %d days (%v)", days, got, days-1, prev)
			}
			prev = got
		}
	})
}

func TestAggregateAccrualRoundsOnce(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	students := []models.Student{studentAt(1, now), studentAt(1, now), studentAt(1, now)}

	// 3 x 26.666... aggregates to 80.00, not 3 x 26.67 = 80.01.
	got := AggregateAccrual(students, now, DefaultTutorPayout)
	if got != 80.0 {
		t.Fatalf("AggregateAccrual = %v, want 80", got)
	}
}

func TestEligibleForPayout(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	if EligibleForPayout(studentAt(29, now), now) {
		t.Fatal("student at 29 days should not be eligible")
	}
	if !EligibleForPayout(studentAt(30, now), now) {
		t.Fatal("student at 30 days should be eligible")
	}

	s := studentAt(45, now)
	s.PayoutCleared = true
	if EligibleForPayout(s, now) {
		t.Fatal("cleared student should never be eligible again")
	}

	s = studentAt(45, now)
	s.IsActive = false
	if EligibleForPayout(s, now) {
		t.Fatal("inactive student should not be eligible")
	}
}

func TestPendingPayoutTotal(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	students := []models.Student{
		studentAt(35, now),
		studentAt(40, now),
		studentAt(10, now),
	}

	got := PendingPayoutTotal(students, now, DefaultTutorPayout)
	if got != 1600 {
		t.Fatalf("PendingPayoutTotal = %v, want 1600", got)
	}
}

func TestAvailableBalance(t *testing.T) {
	cases := []struct {
		name    string
		balance float64
		pending float64
		want    float64
	}{
		{"no pending", 1000, 0, 1000},
		{"pending reserved", 1000, 400, 600},
		{"fully reserved", 1000, 1000, 0},
		{"over-reserved clamps to zero", 500, 800, 0},
		{"fractional rounding", 1000, 333.33, 666.67},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AvailableBalance(tc.balance, tc.pending); got != tc.want {
				t.Fatalf("AvailableBalance = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDisplayWalletTotalExcludedFromValidation(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	students := []models.Student{studentAt(10, now)}

	display := DisplayWalletTotal(500, students, now, DefaultTutorPayout)
	if display != 766.67 {
		t.Fatalf("DisplayWalletTotal = %v, want 766.67", display)
	}

	// The projection inflates the display figure but never the
	// withdrawable amount.
	if got := AvailableBalance(500, 0); got != 500 {
		t.Fatalf("AvailableBalance = %v, want 500", got)
	}
}
