/*
Package stats derives reporting state from the attendance ledger.

PURPOSE:
  Three pure derivations over the store's current snapshot:
  - Aggregate:   per-shift and per-leave counts over a date range
  - WeekBalance: weekly compensatory-rest credits earned vs used
  - Rollover:    multi-year carry-forward of unused leave quota

  Nothing here retains state across store mutations: every result is a
  function of the snapshot (plus the quota configuration for rollover),
  and month/year aggregates are memoized keyed on the store's version
  counter so a stale result can never be served.

AGGREGATION RULES (aggregate.go):
  - Each true shift flag bumps its own counter AND totalWorked; a day with
    two flags counts twice toward totalWorked.
  - Earned/casual/sick leave bump their counter and totalLeave. Loss-of-pay
    bumps only its own counter, never totalLeave.
  - A past day (strictly before today, start-of-day comparison) that is not
    a Sunday, has no shift, no leave, and is not a holiday counts as a
    missing log.

SEE ALSO:
  - restcredit.go: weekly rest-credit balances
  - rollover.go: annual quota rollover
*/
package stats

import (
	"fmt"
	"time"

	"github.com/shiftledger/attendance-engine/ledger"
)

// =============================================================================
// AGGREGATE - Fixed-shape counters for a date range
// =============================================================================

// Aggregate is the output of one aggregation run.
type Aggregate struct {
	Shifts map[ledger.ShiftType]int `json:"shifts"`

	Earned    int `json:"earned"`
	Casual    int `json:"casual"`
	Sick      int `json:"sick"`
	LossOfPay int `json:"lop"`

	TotalWorked int `json:"totalWorked"`
	TotalLeave  int `json:"totalLeave"`
	MissingLogs int `json:"missingLogs"`
}

func newAggregate() Aggregate {
	shifts := make(map[ledger.ShiftType]int, len(ledger.AllShifts()))
	for _, t := range ledger.AllShifts() {
		shifts[t] = 0
	}
	return Aggregate{Shifts: shifts}
}

// Used returns the count for a quota-bearing leave category.
func (a Aggregate) Used(c ledger.LeaveType) int {
	switch c {
	case ledger.LeaveEarned:
		return a.Earned
	case ledger.LeaveCasual:
		return a.Casual
	case ledger.LeaveSick:
		return a.Sick
	}
	return 0
}

// =============================================================================
// AGGREGATOR
// =============================================================================

// Aggregator computes aggregates over the store. Now is injectable so
// missing-log detection is deterministic under test; nil means time.Now.
type Aggregator struct {
	Store *ledger.Store
	Now   func() time.Time

	memo *lruCache[Aggregate]
}

// NewAggregator builds an aggregator with a memo for month/year queries.
func NewAggregator(s *ledger.Store) *Aggregator {
	return &Aggregator{
		Store: s,
		memo:  newLRUCache[Aggregate](64),
	}
}

func (ag *Aggregator) today() time.Time {
	now := time.Now
	if ag.Now != nil {
		now = ag.Now
	}
	t := now()
	return ledger.Date(t.Year(), t.Month(), t.Day())
}

// ForDates accumulates over exactly the given days, in order. Used for
// week-scoped statistics; results are not memoized.
func (ag *Aggregator) ForDates(dates []time.Time) Aggregate {
	agg := newAggregate()
	today := ag.today()
	for _, d := range dates {
		ag.accumulate(&agg, d, ag.Store.Get(ledger.KeyOf(d)), today)
	}
	return agg
}

// ForMonth walks every calendar day of the month, leap days included.
func (ag *Aggregator) ForMonth(year int, month time.Month) Aggregate {
	key := fmt.Sprintf("%04d-%02d", year, month)
	return ag.memoized(key, func() Aggregate {
		start := ledger.Date(year, month, 1)
		end := start.AddDate(0, 1, -1)
		return ag.forSpan(start, end)
	})
}

// ForYear walks every calendar day of the year.
func (ag *Aggregator) ForYear(year int) Aggregate {
	key := fmt.Sprintf("%04d", year)
	return ag.memoized(key, func() Aggregate {
		return ag.forSpan(ledger.Date(year, time.January, 1), ledger.Date(year, time.December, 31))
	})
}

// ForPrefix accepts the wire-level "YYYY-" or "YYYY-MM-" form.
func (ag *Aggregator) ForPrefix(prefix string) (Aggregate, error) {
	var year int
	var month time.Month
	if n, _ := fmt.Sscanf(prefix, "%d-%d-", &year, &month); n == 2 {
		if month < time.January || month > time.December {
			return Aggregate{}, fmt.Errorf("month out of range in prefix %q", prefix)
		}
		return ag.ForMonth(year, month), nil
	}
	if n, _ := fmt.Sscanf(prefix, "%d-", &year); n == 1 {
		return ag.ForYear(year), nil
	}
	return Aggregate{}, fmt.Errorf("malformed range prefix %q", prefix)
}

func (ag *Aggregator) forSpan(start, end time.Time) Aggregate {
	agg := newAggregate()
	today := ag.today()
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		ag.accumulate(&agg, d, ag.Store.Get(ledger.KeyOf(d)), today)
	}
	return agg
}

// memoized serves month/year aggregates from the LRU, keyed on the store
// version and today's date (missing-log counts shift at midnight).
func (ag *Aggregator) memoized(query string, compute func() Aggregate) Aggregate {
	key := fmt.Sprintf("v%d|%s|%s", ag.Store.Version(), ledger.KeyOf(ag.today()), query)
	if cached, ok := ag.memo.get(key); ok {
		return cached
	}
	agg := compute()
	ag.memo.put(key, agg)
	return agg
}

func (ag *Aggregator) accumulate(agg *Aggregate, date time.Time, rec ledger.DayRecord, today time.Time) {
	hasShift := rec.HasAnyShift()
	for _, t := range ledger.AllShifts() {
		if rec.Shift(t) {
			agg.Shifts[t]++
			agg.TotalWorked++
		}
	}

	switch rec.Leave {
	case ledger.LeaveEarned:
		agg.Earned++
		agg.TotalLeave++
	case ledger.LeaveCasual:
		agg.Casual++
		agg.TotalLeave++
	case ledger.LeaveSick:
		agg.Sick++
		agg.TotalLeave++
	case ledger.LeaveLOP:
		agg.LossOfPay++
	}

	if date.Before(today) && date.Weekday() != time.Sunday &&
		!hasShift && rec.Leave == ledger.LeaveNone && !rec.IsHoliday {
		agg.MissingLogs++
	}
}
