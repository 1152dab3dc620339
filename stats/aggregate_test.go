package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftledger/attendance-engine/ledger"
	"github.com/shiftledger/attendance-engine/stats"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// newAggregator pins "today" so missing-log detection is deterministic.
func newAggregator(st *ledger.Store, today time.Time) *stats.Aggregator {
	ag := stats.NewAggregator(st)
	ag.Now = func() time.Time { return today }
	return ag
}

// =============================================================================
// PER-RECORD ACCUMULATION
// =============================================================================

func TestAggregate_MultiShiftDay_CountsTotalWorkedTwice(t *testing.T) {
	// GIVEN: One day with morning AND evening worked
	// WHEN: Aggregating that day
	// THEN: totalWorked is 2 (shift-days are not deduplicated per calendar day)

	st := ledger.Open(nil, nil)
	st.Set("2024-06-03", ledger.DayRecord{Morning: true, Evening: true})
	ag := newAggregator(st, ledger.Date(2024, time.July, 1))

	agg := ag.ForMonth(2024, time.June)

	assert.Equal(t, 1, agg.Shifts[ledger.ShiftMorning])
	assert.Equal(t, 1, agg.Shifts[ledger.ShiftEvening])
	assert.Equal(t, 2, agg.TotalWorked)
}

func TestAggregate_LossOfPay_ExcludedFromTotalLeave(t *testing.T) {
	st := ledger.Open(nil, nil)
	st.Set("2024-06-03", ledger.DayRecord{Leave: ledger.LeaveEarned})
	st.Set("2024-06-04", ledger.DayRecord{Leave: ledger.LeaveCasual})
	st.Set("2024-06-05", ledger.DayRecord{Leave: ledger.LeaveSick})
	st.Set("2024-06-06", ledger.DayRecord{Leave: ledger.LeaveLOP})
	ag := newAggregator(st, ledger.Date(2024, time.July, 1))

	agg := ag.ForMonth(2024, time.June)

	assert.Equal(t, 1, agg.Earned)
	assert.Equal(t, 1, agg.Casual)
	assert.Equal(t, 1, agg.Sick)
	assert.Equal(t, 1, agg.LossOfPay)
	assert.Equal(t, 3, agg.TotalLeave, "LOP has its own counter but never joins totalLeave")
}

// =============================================================================
// MISSING-LOG DETECTION
// =============================================================================

func TestAggregate_MissingLogs(t *testing.T) {
	// June 2024: the 2nd, 9th, 16th, 23rd, 30th are Sundays.
	// Today is June 8th, so June 1-7 are in the past.
	st := ledger.Open(nil, nil)
	st.Set("2024-06-03", ledger.DayRecord{Morning: true})        // worked
	st.Set("2024-06-04", ledger.DayRecord{Leave: ledger.LeaveSick}) // on leave
	st.Set("2024-06-05", ledger.DayRecord{IsHoliday: true})      // holiday
	// June 1 (Sat), 6 (Thu), 7 (Fri) have no record at all.
	ag := newAggregator(st, ledger.Date(2024, time.June, 8))

	agg := ag.ForMonth(2024, time.June)

	// June 1, 6, 7 are past, not Sundays, and empty -> 3 missing logs.
	// June 2 is a Sunday, June 8 is today (not strictly before), the rest
	// of the month is the future.
	assert.Equal(t, 3, agg.MissingLogs)
}

func TestAggregate_TodayIsNeverMissing(t *testing.T) {
	st := ledger.Open(nil, nil)
	ag := newAggregator(st, ledger.Date(2024, time.June, 3))

	agg := ag.ForMonth(2024, time.June)

	assert.Equal(t, 1, agg.MissingLogs, "only June 1 (Sat); June 2 is Sunday, June 3 is today")
}

// =============================================================================
// PREFIX MODE
// =============================================================================

func TestAggregate_LeapFebruary_WalksEveryCalendarDay(t *testing.T) {
	// GIVEN: Records on 2024-02-01 (morning) and 2024-02-29 (leap day, sick)
	// WHEN: Aggregating the "2024-02-" prefix
	// THEN: Both are counted, including the leap day

	st := ledger.Open(nil, nil)
	st.Set("2024-02-01", ledger.DayRecord{Morning: true})
	st.Set("2024-02-29", ledger.DayRecord{Leave: ledger.LeaveSick})
	ag := newAggregator(st, ledger.Date(2024, time.March, 15))

	agg, err := ag.ForPrefix("2024-02-")
	require.NoError(t, err)

	assert.Equal(t, 1, agg.Shifts[ledger.ShiftMorning])
	assert.Equal(t, 1, agg.Sick)
	assert.Equal(t, 1, agg.TotalWorked)
	assert.Equal(t, 1, agg.TotalLeave)
}

func TestAggregate_YearPrefix_CoversTwelveMonths(t *testing.T) {
	st := ledger.Open(nil, nil)
	st.Set("2023-01-15", ledger.DayRecord{Night: true})
	st.Set("2023-12-31", ledger.DayRecord{Leave: ledger.LeaveEarned})
	st.Set("2024-01-01", ledger.DayRecord{Morning: true}) // out of range
	ag := newAggregator(st, ledger.Date(2024, time.June, 1))

	agg, err := ag.ForPrefix("2023-")
	require.NoError(t, err)

	assert.Equal(t, 1, agg.Shifts[ledger.ShiftNight])
	assert.Equal(t, 1, agg.Earned)
	assert.Zero(t, agg.Shifts[ledger.ShiftMorning], "next year's records must not leak in")
}

func TestAggregate_MalformedPrefix_Rejected(t *testing.T) {
	ag := newAggregator(ledger.Open(nil, nil), ledger.Date(2024, time.June, 1))

	_, err := ag.ForPrefix("febuary")
	assert.Error(t, err)

	_, err = ag.ForPrefix("2024-13-")
	assert.Error(t, err)
}

// =============================================================================
// EXPLICIT DATE LIST MODE
// =============================================================================

func TestAggregate_ForDates_UsesExactlyThoseDays(t *testing.T) {
	st := ledger.Open(nil, nil)
	st.Set("2024-06-03", ledger.DayRecord{Morning: true})
	st.Set("2024-06-10", ledger.DayRecord{Morning: true}) // outside the list
	ag := newAggregator(st, ledger.Date(2024, time.July, 1))

	week := make([]time.Time, 7)
	for i := range week {
		week[i] = ledger.Date(2024, time.June, 2+i) // Sun Jun 2 .. Sat Jun 8
	}
	agg := ag.ForDates(week)

	assert.Equal(t, 1, agg.TotalWorked)
}

// =============================================================================
// IDEMPOTENCE AND MEMOIZATION
// =============================================================================

func TestAggregate_Idempotent_OverUnmodifiedStore(t *testing.T) {
	st := ledger.Open(nil, nil)
	st.Set("2024-06-03", ledger.DayRecord{Morning: true, Evening: true})
	st.Set("2024-06-04", ledger.DayRecord{Leave: ledger.LeaveLOP})
	ag := newAggregator(st, ledger.Date(2024, time.July, 1))

	first := ag.ForYear(2024)
	second := ag.ForYear(2024)

	assert.Equal(t, first, second)
}

func TestAggregate_MutationInvalidatesMemoizedResult(t *testing.T) {
	// GIVEN: A memoized month aggregate
	// WHEN: The store mutates
	// THEN: The next read reflects the new snapshot (version-keyed memo)

	st := ledger.Open(nil, nil)
	st.Set("2024-06-03", ledger.DayRecord{Morning: true})
	ag := newAggregator(st, ledger.Date(2024, time.July, 1))

	before := ag.ForMonth(2024, time.June)
	require.Equal(t, 1, before.TotalWorked)

	st.Set("2024-06-04", ledger.DayRecord{Morning: true})
	after := ag.ForMonth(2024, time.June)

	assert.Equal(t, 2, after.TotalWorked)
}
