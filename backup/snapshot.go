/*
Package backup implements full-document export and import.

PURPOSE:
  A Snapshot is the complete persisted document: the attendance map, the
  leave quotas, and every display preference. On export all fields are
  present; on import each top-level field is independently optional, and
  absent fields keep their current in-memory values.

VALIDATION:
  Import is all-or-nothing. The document is decoded into typed fields (a
  wrong-shaped field fails the decode), then shallow semantic checks run
  (non-negative quotas, hex colors, known view mode, known leave values).
  Any failure rejects the whole import; nothing is partially applied.
*/
package backup

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/shiftledger/attendance-engine/ledger"
	"github.com/shiftledger/attendance-engine/prefs"
	"github.com/shiftledger/attendance-engine/quota"
	"github.com/shiftledger/attendance-engine/store"
)

// =============================================================================
// SNAPSHOT - The full persisted document
// =============================================================================

// Snapshot mirrors the persisted document. Pointer and map fields are nil
// when absent from an imported file.
type Snapshot struct {
	Attendance map[ledger.DateKey]ledger.DayRecord `json:"attendance,omitempty"`
	Quotas     *quota.LeaveQuota                   `json:"quotas,omitempty"`

	Colors      map[ledger.ShiftType]string `json:"shiftColors,omitempty" validate:"omitempty,dive,hexcolor"`
	Timings     map[ledger.ShiftType]string `json:"shiftTimings,omitempty"`
	Enabled     map[ledger.ShiftType]bool   `json:"enabledShifts,omitempty"`
	DefaultView prefs.ViewMode              `json:"defaultViewMode,omitempty" validate:"omitempty,oneof=week month year stats"`
	DarkMode    *bool                       `json:"isDarkMode,omitempty"`
}

var validate = validator.New()

// Export captures the current state as a snapshot.
func Export(st *ledger.Store, q quota.LeaveQuota, p prefs.Prefs) Snapshot {
	dark := p.DarkMode
	return Snapshot{
		Attendance:  st.Records(),
		Quotas:      &q,
		Colors:      p.Colors,
		Timings:     p.Timings,
		Enabled:     p.Enabled,
		DefaultView: p.DefaultView,
		DarkMode:    &dark,
	}
}

// Decode parses and validates a snapshot document. A structurally invalid
// document (non-JSON, wrong-shaped field) is rejected outright.
func Decode(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Validate runs the shallow semantic checks on every present field.
func (s *Snapshot) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if s.Quotas != nil {
		if err := s.Quotas.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
	}
	for key, rec := range s.Attendance {
		if _, err := key.Time(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		if !rec.Leave.IsValid() {
			return fmt.Errorf("%w: unknown leave %q on %s", ErrInvalidSnapshot, rec.Leave, key)
		}
	}
	return nil
}

// Apply installs every present field, leaving absent fields untouched, and
// persists the updated fields through the adapter. Callers must have
// validated the snapshot first (Decode does both).
func (s *Snapshot) Apply(st *ledger.Store, q *quota.LeaveQuota, p *prefs.Prefs, adapter store.Adapter) error {
	if s.Attendance != nil {
		st.Replace(s.Attendance) // flushes through the store's own adapter
	}

	save := func(field string, v any) error {
		if adapter == nil {
			return nil
		}
		return adapter.Save(field, v)
	}

	if s.Quotas != nil {
		*q = *s.Quotas
		if err := save(store.FieldQuotas, *q); err != nil {
			return err
		}
	}
	if s.Colors != nil {
		p.Colors = s.Colors
		if err := save(store.FieldColors, p.Colors); err != nil {
			return err
		}
	}
	if s.Timings != nil {
		p.Timings = s.Timings
		if err := save(store.FieldTimings, p.Timings); err != nil {
			return err
		}
	}
	if s.Enabled != nil {
		p.Enabled = s.Enabled
		if err := save(store.FieldEnabled, p.Enabled); err != nil {
			return err
		}
	}
	if s.DefaultView != "" {
		p.DefaultView = s.DefaultView
		if err := save(store.FieldView, p.DefaultView); err != nil {
			return err
		}
	}
	if s.DarkMode != nil {
		p.DarkMode = *s.DarkMode
		if err := save(store.FieldDarkMode, p.DarkMode); err != nil {
			return err
		}
	}
	return nil
}
