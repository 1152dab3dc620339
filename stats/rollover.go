/*
rollover.go - Iterative annual leave-quota rollover

PURPOSE:
  Computes the opening rollover for a target year by replaying history:
  starting from the earliest year with data, each year's unused quota is
  carried forward, clamped per category between zero and the configured
  rollover cap.

    roll[c] = clamp(0, cap[c], (base[c] + roll[c]) - used[c])

  The loop is strictly sequential per category: year y+1 depends on year
  y's result, and categories never interact. An empty store degenerates to
  zero rollover (the loop body never executes).
*/
package stats

import (
	"github.com/shopspring/decimal"

	"github.com/shiftledger/attendance-engine/ledger"
	"github.com/shiftledger/attendance-engine/quota"
)

// CategoryBalance is a per-category decimal balance.
type CategoryBalance struct {
	Earned decimal.Decimal `json:"earned"`
	Casual decimal.Decimal `json:"casual"`
	Sick   decimal.Decimal `json:"sick"`
}

func (b CategoryBalance) get(c ledger.LeaveType) decimal.Decimal {
	switch c {
	case ledger.LeaveEarned:
		return b.Earned
	case ledger.LeaveCasual:
		return b.Casual
	case ledger.LeaveSick:
		return b.Sick
	}
	return decimal.Zero
}

func (b *CategoryBalance) set(c ledger.LeaveType, v decimal.Decimal) {
	switch c {
	case ledger.LeaveEarned:
		b.Earned = v
	case ledger.LeaveCasual:
		b.Casual = v
	case ledger.LeaveSick:
		b.Sick = v
	}
}

// LeaveSummary is the target year's full quota picture.
type LeaveSummary struct {
	Year      int             `json:"year"`
	Usage     Aggregate       `json:"usage"`
	Rollover  CategoryBalance `json:"rollover"`  // opening balance carried into Year
	Remaining CategoryBalance `json:"remaining"` // (base + rollover) - used this year, floored at 0
}

// Rollover computes the opening rollover per category for targetYear.
func (ag *Aggregator) Rollover(q quota.LeaveQuota, targetYear int) CategoryBalance {
	var roll CategoryBalance

	startYear, ok := ag.Store.EarliestYear()
	if !ok {
		return roll
	}

	for y := startYear; y < targetYear; y++ {
		usage := ag.ForYear(y)
		for _, c := range ledger.QuotaCategories() {
			used := decimal.NewFromInt(int64(usage.Used(c)))
			carried := q.Base(c).Add(roll.get(c)).Sub(used)
			roll.set(c, clamp(decimal.Zero, q.Cap(c), carried))
		}
	}
	return roll
}

// LeaveSummary combines the target year's usage with its opening rollover
// and the resulting remaining balances.
func (ag *Aggregator) LeaveSummary(q quota.LeaveQuota, year int) LeaveSummary {
	usage := ag.ForYear(year)
	roll := ag.Rollover(q, year)

	var remaining CategoryBalance
	for _, c := range ledger.QuotaCategories() {
		used := decimal.NewFromInt(int64(usage.Used(c)))
		left := q.Base(c).Add(roll.get(c)).Sub(used)
		remaining.set(c, decimal.Max(decimal.Zero, left))
	}

	return LeaveSummary{Year: year, Usage: usage, Rollover: roll, Remaining: remaining}
}

// clamp bounds v to [lo, hi].
func clamp(lo, hi, v decimal.Decimal) decimal.Decimal {
	return decimal.Max(lo, decimal.Min(hi, v))
}
