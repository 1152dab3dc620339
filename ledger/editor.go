/*
editor.go - Shift/leave exclusivity rules for interactive edits

PURPOSE:
  The Editor is the only path through which interactive single-day edits
  reach the store. It encodes the mutual-exclusion policy between worked
  shifts and leave as explicit state transitions, so the ordering rules are
  testable independently of any UI.

THE TWO ORDERING RULES (must be preserved exactly):
  1. Turning a shift flag ON clears leave. Turning a flag OFF leaves the
     leave untouched (preserves intentional multi-shift days).
  2. Setting a non-null leave clears every shift flag. Setting leave back
     to null leaves shift flags untouched.

  The asymmetry decides which state wins when both are toggled in
  sequence: the most recent "on" action always wins.

  Holiday and note edits are independent of shift/leave state.
*/
package ledger

// =============================================================================
// PURE TRANSITIONS
// =============================================================================

// ToggleShift flips one shift flag. When the flag turns on from false the
// leave is cleared; turning it off does not alter leave.
func ToggleShift(rec DayRecord, t ShiftType) DayRecord {
	turningOn := !rec.Shift(t)
	rec = rec.SetShift(t, turningOn)
	if turningOn {
		rec.Leave = LeaveNone
	}
	return rec
}

// SetLeave sets the leave category. A non-null leave clears every shift
// flag; LeaveNone leaves the flags untouched.
func SetLeave(rec DayRecord, leave LeaveType) DayRecord {
	rec.Leave = leave
	if leave != LeaveNone {
		rec = rec.ClearShifts()
	}
	return rec
}

// ToggleHoliday flips the holiday flag, independent of shift/leave state.
func ToggleHoliday(rec DayRecord) DayRecord {
	rec.IsHoliday = !rec.IsHoliday
	return rec
}

// SetHolidayName sets the free-text holiday label.
func SetHolidayName(rec DayRecord, name string) DayRecord {
	rec.HolidayName = name
	return rec
}

// SetNote sets the free-text annotation.
func SetNote(rec DayRecord, note string) DayRecord {
	rec.Note = note
	return rec
}

// =============================================================================
// EDITOR - Transitions applied against the store
// =============================================================================

// Editor applies the transition rules to the current record of a date and
// writes the result back wholesale.
type Editor struct {
	Store *Store
}

func NewEditor(s *Store) *Editor {
	return &Editor{Store: s}
}

func (e *Editor) apply(key DateKey, fn func(DayRecord) DayRecord) DayRecord {
	next := fn(e.Store.Get(key))
	e.Store.Set(key, next)
	return next
}

// ToggleShift toggles one shift flag on the date's record.
func (e *Editor) ToggleShift(key DateKey, t ShiftType) (DayRecord, error) {
	if !t.IsValid() {
		return DayRecord{}, &UnknownCategoryError{Kind: "shift", Value: string(t)}
	}
	return e.apply(key, func(r DayRecord) DayRecord { return ToggleShift(r, t) }), nil
}

// SetLeave sets or clears the leave on the date's record. Eligibility for
// compensatory rest is the caller's concern: the stats package answers it,
// and callers gate the action on that answer rather than catching a failure
// here.
func (e *Editor) SetLeave(key DateKey, leave LeaveType) (DayRecord, error) {
	if !leave.IsValid() {
		return DayRecord{}, &UnknownCategoryError{Kind: "leave", Value: string(leave)}
	}
	return e.apply(key, func(r DayRecord) DayRecord { return SetLeave(r, leave) }), nil
}

// ToggleHoliday flips the holiday flag on the date's record.
func (e *Editor) ToggleHoliday(key DateKey) DayRecord {
	return e.apply(key, ToggleHoliday)
}

// SetHolidayName sets the holiday label on the date's record.
func (e *Editor) SetHolidayName(key DateKey, name string) DayRecord {
	return e.apply(key, func(r DayRecord) DayRecord { return SetHolidayName(r, name) })
}

// SetNote sets the annotation on the date's record.
func (e *Editor) SetNote(key DateKey, note string) DayRecord {
	return e.apply(key, func(r DayRecord) DayRecord { return SetNote(r, note) })
}
