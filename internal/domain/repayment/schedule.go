// Package repayment projects repayment schedules. Schedules are derived on
// demand and never stored.
package repayment

import (
	"fmt"
	"time"

	sharedvo "github.com/claimdesk/claimdesk/internal/domain/shared/valueobjects"
)

// MaxTenureMonths bounds a projection.
const MaxTenureMonths = 120

// Entry is one instalment. Index is 1-based.
type Entry struct {
	Index   int
	DueDate time.Time
	Amount  sharedvo.Money
}

// AddMonths adds n calendar months to t, clamping the day to the last day
// of the target month (Jan 31 + 1 month is Feb 29 in a leap year).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

func daysIn(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}

func validate(tenureMonths, moratoriumMonths int, amount sharedvo.Money) error {
	if tenureMonths < 0 || tenureMonths > MaxTenureMonths {
		return fmt.Errorf("tenure must be between 0 and %d months, got %d", MaxTenureMonths, tenureMonths)
	}
	if moratoriumMonths < 0 {
		return fmt.Errorf("moratorium must not be negative, got %d", moratoriumMonths)
	}
	if amount.IsNegative() {
		return fmt.Errorf("amount must not be negative")
	}
	return nil
}

// Project returns tenureMonths entries of the flat monthly amount. The
// first entry falls due on start plus the moratorium, and each later one a
// month apart, always counted from start so clamped days do not drift.
// Tenure 0 yields an empty schedule.
func Project(start time.Time, tenureMonths, moratoriumMonths int, monthly sharedvo.Money) ([]Entry, error) {
	if err := validate(tenureMonths, moratoriumMonths, monthly); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, tenureMonths)
	for i := 0; i < tenureMonths; i++ {
		entries = append(entries, Entry{
			Index:   i + 1,
			DueDate: AddMonths(start, moratoriumMonths+i),
			Amount:  monthly,
		})
	}
	return entries, nil
}

// ProjectFromPrincipal splits principal evenly over the tenure. The cent
// remainder is added to the final instalment so the entries sum to principal.
func ProjectFromPrincipal(start time.Time, tenureMonths, moratoriumMonths int, principal sharedvo.Money) ([]Entry, error) {
	if err := validate(tenureMonths, moratoriumMonths, principal); err != nil {
		return nil, err
	}
	if tenureMonths == 0 {
		return []Entry{}, nil
	}

	part, remainder := principal.Split(tenureMonths)
	entries, err := Project(start, tenureMonths, moratoriumMonths, part)
	if err != nil {
		return nil, err
	}
	last := &entries[len(entries)-1]
	if last.Amount, err = last.Amount.Add(remainder); err != nil {
		return nil, err
	}
	return entries, nil
}

// Total sums the entry amounts. An empty schedule totals zero in currency.
func Total(entries []Entry, currency string) (sharedvo.Money, error) {
	total := sharedvo.ZeroMoney(currency)
	for _, e := range entries {
		var err error
		if total, err = total.Add(e.Amount); err != nil {
			return sharedvo.Money{}, err
		}
	}
	return total, nil
}
