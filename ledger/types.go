/*
Package ledger provides the attendance record store and its mutation rules.

PURPOSE:
  This package owns the per-day attendance data model: which shifts were
  worked on a calendar day, which leave (if any) was taken, and whether the
  day is a public holiday. Everything else in the system (statistics,
  rest-credit accrual, rollover) is derived from this store.

KEY CONCEPTS IN THIS FILE (types.go):
  - ShiftType / LeaveType: closed enumerations of shift and leave categories
  - DayRecord: the full attendance record for one calendar day
  - DateKey: the canonical YYYY-MM-DD key a record is stored under
  - WeekKey: the Sunday that starts a record's week (aggregation key only)

DESIGN PRINCIPLES:
  1. Absence is meaningful: a missing key IS the empty record. The store
     never materializes empty records; reads synthesize the default.
  2. Wholesale writes: a record is always replaced in full, never patched.
  3. Conflicts are representable: a record with both a worked shift and a
     leave is valid at the storage level and surfaced by HasConflict, not
     silently repaired.

SEE ALSO:
  - store.go: the date -> record mapping
  - editor.go: the shift/leave exclusivity rules applied on interactive edits
*/
package ledger

import (
	"fmt"
	"time"
)

// =============================================================================
// SHIFT AND LEAVE CATEGORIES
// =============================================================================

// ShiftType identifies one of the configured shift categories.
type ShiftType string

const (
	ShiftMorning ShiftType = "morning"
	ShiftEvening ShiftType = "evening"
	ShiftNight   ShiftType = "night"
	ShiftGeneral ShiftType = "general"
	ShiftPre     ShiftType = "pre"
	ShiftMiddle  ShiftType = "middle"
)

// AllShifts returns every shift category in display order.
func AllShifts() []ShiftType {
	return []ShiftType{ShiftMorning, ShiftEvening, ShiftNight, ShiftGeneral, ShiftPre, ShiftMiddle}
}

// IsValid reports whether t names a known shift category.
func (t ShiftType) IsValid() bool {
	switch t {
	case ShiftMorning, ShiftEvening, ShiftNight, ShiftGeneral, ShiftPre, ShiftMiddle:
		return true
	}
	return false
}

// LeaveType identifies a leave category. The zero value LeaveNone means no
// leave was taken.
type LeaveType string

const (
	LeaveNone   LeaveType = ""
	LeaveEarned LeaveType = "earned"
	LeaveCasual LeaveType = "casual"
	LeaveSick   LeaveType = "sick"
	LeaveLOP    LeaveType = "lop"  // loss of pay, not counted against any quota
	LeaveRest   LeaveType = "rest" // compensatory rest, governed by weekly credits
)

// IsValid reports whether t names a known leave category (LeaveNone included).
func (t LeaveType) IsValid() bool {
	switch t {
	case LeaveNone, LeaveEarned, LeaveCasual, LeaveSick, LeaveLOP, LeaveRest:
		return true
	}
	return false
}

// QuotaCategories are the leave categories with an annual entitlement.
// LOP is unlimited and rest is accrual-governed; neither has a quota.
func QuotaCategories() []LeaveType {
	return []LeaveType{LeaveEarned, LeaveCasual, LeaveSick}
}

// =============================================================================
// DAY RECORD
// =============================================================================

// DayRecord is the attendance record for a single calendar day.
// The JSON shape matches the persisted document and the backup format.
type DayRecord struct {
	Morning bool `json:"morning"`
	Evening bool `json:"evening"`
	Night   bool `json:"night"`
	General bool `json:"general"`
	Pre     bool `json:"pre"`
	Middle  bool `json:"middle"`

	Leave LeaveType `json:"leave,omitempty"`

	IsHoliday   bool   `json:"isHoliday,omitempty"`
	HolidayName string `json:"holidayName,omitempty"`
	Note        string `json:"note,omitempty"`
}

// Shift returns the flag for the given shift category.
func (r DayRecord) Shift(t ShiftType) bool {
	switch t {
	case ShiftMorning:
		return r.Morning
	case ShiftEvening:
		return r.Evening
	case ShiftNight:
		return r.Night
	case ShiftGeneral:
		return r.General
	case ShiftPre:
		return r.Pre
	case ShiftMiddle:
		return r.Middle
	}
	return false
}

// SetShift sets the flag for the given shift category and returns the
// updated record. Unknown categories are ignored.
func (r DayRecord) SetShift(t ShiftType, on bool) DayRecord {
	switch t {
	case ShiftMorning:
		r.Morning = on
	case ShiftEvening:
		r.Evening = on
	case ShiftNight:
		r.Night = on
	case ShiftGeneral:
		r.General = on
	case ShiftPre:
		r.Pre = on
	case ShiftMiddle:
		r.Middle = on
	}
	return r
}

// ClearShifts returns the record with every shift flag false.
func (r DayRecord) ClearShifts() DayRecord {
	r.Morning, r.Evening, r.Night, r.General, r.Pre, r.Middle = false, false, false, false, false, false
	return r
}

// HasAnyShift reports whether any shift flag is set.
func (r DayRecord) HasAnyShift() bool {
	return r.Morning || r.Evening || r.Night || r.General || r.Pre || r.Middle
}

// ActiveShifts returns the shift categories flagged on this record,
// in display order.
func (r DayRecord) ActiveShifts() []ShiftType {
	var out []ShiftType
	for _, t := range AllShifts() {
		if r.Shift(t) {
			out = append(out, t)
		}
	}
	return out
}

// HasConflict reports whether the record carries both a worked shift and a
// leave. The editor never produces this state, but hand-edited or imported
// documents can; consumers display it rather than repair it.
func (r DayRecord) HasConflict() bool {
	return r.HasAnyShift() && r.Leave != LeaveNone
}

// IsEmpty reports whether the record equals the synthesized default.
func (r DayRecord) IsEmpty() bool {
	return r == DayRecord{}
}

// =============================================================================
// DATE AND WEEK KEYS
// =============================================================================

const dateLayout = "2006-01-02"

// DateKey is the canonical YYYY-MM-DD identity of a calendar day.
type DateKey string

// KeyOf returns the DateKey for a time's local calendar date.
func KeyOf(t time.Time) DateKey {
	return DateKey(t.Format(dateLayout))
}

// Date builds a day-granularity time in the local calendar.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// Time parses the key back into a day-granularity time.
func (k DateKey) Time() (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, string(k), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDateKey, string(k))
	}
	return t, nil
}

// Year returns the calendar year of the key, or 0 if malformed.
func (k DateKey) Year() int {
	t, err := k.Time()
	if err != nil {
		return 0
	}
	return t.Year()
}

// WeekKeyOf returns the DateKey of the Sunday starting the week that
// contains t. Weeks run Sunday through Saturday.
func WeekKeyOf(t time.Time) DateKey {
	return KeyOf(t.AddDate(0, 0, -int(t.Weekday())))
}
