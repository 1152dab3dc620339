/*
restcredit.go - Weekly compensatory-rest accrual

PURPOSE:
  Compensatory rest is earned by working a day that is a Sunday or a
  flagged holiday, and spent by marking a day's leave as rest. The balance
  is scoped to the week (Sunday through Saturday, keyed by the Sunday's
  date): a credit earned in one week can never be spent in another.

ELIGIBILITY:
  A date may be marked rest when its record already carries rest leave
  (idempotent re-confirmation), or when the week's used count is strictly
  below its credit count. Spending is capped at earned credits; a week
  with zero credits simply answers "not eligible", never an error.
*/
package stats

import (
	"time"

	"github.com/shiftledger/attendance-engine/ledger"
)

// WeekBalance is the rest-credit state of one week.
type WeekBalance struct {
	Credits int `json:"credits"`
	Used    int `json:"used"`
}

// WeekBalances derives the credit/used counters for every week that has at
// least one contributing record, keyed by the week's starting Sunday.
func WeekBalances(st *ledger.Store) map[ledger.DateKey]WeekBalance {
	out := make(map[ledger.DateKey]WeekBalance)
	for key, rec := range st.Records() {
		day, err := key.Time()
		if err != nil {
			continue
		}
		week := ledger.WeekKeyOf(day)
		bal := out[week]
		if rec.HasAnyShift() && (day.Weekday() == time.Sunday || rec.IsHoliday) {
			bal.Credits++
		}
		if rec.Leave == ledger.LeaveRest {
			bal.Used++
		}
		out[week] = bal
	}
	return out
}

// RestEligible reports whether date may be marked as compensatory rest.
func RestEligible(st *ledger.Store, date time.Time) bool {
	if st.Get(ledger.KeyOf(date)).Leave == ledger.LeaveRest {
		return true
	}
	bal := WeekBalances(st)[ledger.WeekKeyOf(date)]
	return bal.Used < bal.Credits
}
