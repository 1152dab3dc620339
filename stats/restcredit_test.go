package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftledger/attendance-engine/ledger"
	"github.com/shiftledger/attendance-engine/stats"
)

// Week of Sunday 2024-06-02 through Saturday 2024-06-08 throughout.

func TestWeekBalances_SundayShift_EarnsOneCredit(t *testing.T) {
	// GIVEN: One record on a Sunday with the morning shift worked
	// WHEN: Deriving week balances
	// THEN: That week shows credits=1, used=0

	st := ledger.Open(nil, nil)
	st.Set("2024-06-02", ledger.DayRecord{Morning: true})

	bal := stats.WeekBalances(st)[ledger.DateKey("2024-06-02")]

	assert.Equal(t, stats.WeekBalance{Credits: 1, Used: 0}, bal)
}

func TestWeekBalances_WorkedHoliday_EarnsCredit(t *testing.T) {
	st := ledger.Open(nil, nil)
	// Wednesday flagged as a holiday, and worked.
	st.Set("2024-06-05", ledger.DayRecord{Night: true, IsHoliday: true})

	bal := stats.WeekBalances(st)[ledger.DateKey("2024-06-02")]

	assert.Equal(t, 1, bal.Credits)
}

func TestWeekBalances_UnworkedSundayOrHoliday_EarnsNothing(t *testing.T) {
	st := ledger.Open(nil, nil)
	st.Set("2024-06-02", ledger.DayRecord{Leave: ledger.LeaveSick})  // Sunday, not worked
	st.Set("2024-06-05", ledger.DayRecord{IsHoliday: true})          // holiday, not worked
	st.Set("2024-06-04", ledger.DayRecord{Morning: true})            // plain weekday worked

	bal := stats.WeekBalances(st)[ledger.DateKey("2024-06-02")]

	assert.Zero(t, bal.Credits, "credit needs a worked day that is Sunday or holiday")
}

func TestRestEligible_SpendIsCappedAtEarnedCredits(t *testing.T) {
	// GIVEN: A week with exactly one credit (worked Sunday)
	// WHEN: Spending rest days one after another in that week
	// THEN: The first succeeds, the second date in the same week is rejected

	st := ledger.Open(nil, nil)
	ed := ledger.NewEditor(st)
	st.Set("2024-06-02", ledger.DayRecord{Morning: true})

	monday := ledger.Date(2024, time.June, 3)
	tuesday := ledger.Date(2024, time.June, 4)

	require.True(t, stats.RestEligible(st, monday))
	_, err := ed.SetLeave(ledger.KeyOf(monday), ledger.LeaveRest)
	require.NoError(t, err)

	assert.False(t, stats.RestEligible(st, tuesday), "second spend exceeds the single credit")

	bal := stats.WeekBalances(st)[ledger.DateKey("2024-06-02")]
	assert.Equal(t, stats.WeekBalance{Credits: 1, Used: 1}, bal)
}

func TestRestEligible_IdempotentOnAlreadyRestDay(t *testing.T) {
	st := ledger.Open(nil, nil)
	st.Set("2024-06-02", ledger.DayRecord{Morning: true})
	st.Set("2024-06-03", ledger.DayRecord{Leave: ledger.LeaveRest})

	// Re-confirming the same date stays eligible even with zero headroom.
	assert.True(t, stats.RestEligible(st, ledger.Date(2024, time.June, 3)))
}

func TestRestEligible_ZeroCreditWeek_NotEligibleNotAnError(t *testing.T) {
	st := ledger.Open(nil, nil)

	assert.False(t, stats.RestEligible(st, ledger.Date(2024, time.June, 3)))
}

func TestRestCredits_DoNotCrossWeeks(t *testing.T) {
	// GIVEN: A credit earned in the week of June 2
	// WHEN: Checking a date in the week of June 9
	// THEN: The credit is not spendable there

	st := ledger.Open(nil, nil)
	st.Set("2024-06-02", ledger.DayRecord{Morning: true})

	assert.True(t, stats.RestEligible(st, ledger.Date(2024, time.June, 5)))
	assert.False(t, stats.RestEligible(st, ledger.Date(2024, time.June, 12)),
		"a credit earned in one week cannot be spent in another")
}

func TestWeekBalances_MultipleCreditsInOneWeek(t *testing.T) {
	st := ledger.Open(nil, nil)
	st.Set("2024-06-02", ledger.DayRecord{Morning: true})                  // Sunday
	st.Set("2024-06-05", ledger.DayRecord{Evening: true, IsHoliday: true}) // worked holiday
	st.Set("2024-06-03", ledger.DayRecord{Leave: ledger.LeaveRest})
	st.Set("2024-06-04", ledger.DayRecord{Leave: ledger.LeaveRest})

	bal := stats.WeekBalances(st)[ledger.DateKey("2024-06-02")]

	assert.Equal(t, stats.WeekBalance{Credits: 2, Used: 2}, bal)
	assert.False(t, stats.RestEligible(st, ledger.Date(2024, time.June, 6)))
}
