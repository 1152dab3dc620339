/*
Package prefs holds display preferences.

PURPOSE:
  Per-shift colors and time-range labels, the category enable map, the
  default view, and the dark-mode flag. None of this influences derived
  state; it rides along in the persisted document and the backup snapshot.
*/
package prefs

import (
	"github.com/go-playground/validator/v10"

	"github.com/shiftledger/attendance-engine/ledger"
)

// ViewMode is the calendar view the app opens in.
type ViewMode string

const (
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
	ViewYear  ViewMode = "year"
	ViewStats ViewMode = "stats"
)

// Prefs bundles every display preference.
type Prefs struct {
	Colors      map[ledger.ShiftType]string `json:"shiftColors" validate:"dive,hexcolor"`
	Timings     map[ledger.ShiftType]string `json:"shiftTimings"`
	Enabled     map[ledger.ShiftType]bool   `json:"enabledShifts"`
	DefaultView ViewMode                    `json:"defaultViewMode" validate:"oneof=week month year stats"`
	DarkMode    bool                        `json:"isDarkMode"`
}

var validate = validator.New()

// Default returns the stock preferences: the three rotating shifts enabled,
// month view, light mode.
func Default() Prefs {
	return Prefs{
		Colors: map[ledger.ShiftType]string{
			ledger.ShiftMorning: "#f59e0b",
			ledger.ShiftEvening: "#0ea5e9",
			ledger.ShiftNight:   "#7c3aed",
			ledger.ShiftGeneral: "#64748b",
			ledger.ShiftPre:     "#06b6d4",
			ledger.ShiftMiddle:  "#f97316",
		},
		Timings: map[ledger.ShiftType]string{
			ledger.ShiftMorning: "06:00 - 14:00",
			ledger.ShiftEvening: "14:00 - 22:00",
			ledger.ShiftNight:   "22:00 - 06:00",
			ledger.ShiftGeneral: "09:00 - 17:00",
			ledger.ShiftPre:     "04:00 - 12:00",
			ledger.ShiftMiddle:  "11:00 - 19:00",
		},
		Enabled: map[ledger.ShiftType]bool{
			ledger.ShiftMorning: true,
			ledger.ShiftEvening: true,
			ledger.ShiftNight:   true,
			ledger.ShiftGeneral: false,
			ledger.ShiftPre:     false,
			ledger.ShiftMiddle:  false,
		},
		DefaultView: ViewMonth,
		DarkMode:    false,
	}
}

// Validate checks color formats and the view mode.
func (p Prefs) Validate() error {
	return validate.Struct(p)
}
