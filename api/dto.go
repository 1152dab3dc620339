/*
dto.go - Request/response shapes and JSON helpers

PURPOSE:
  Wire-level structures for the REST API plus the shared JSON writer and
  error envelope. Handlers never hand domain types to the encoder raw when
  the wire shape differs.
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/shiftledger/attendance-engine/ledger"
	"github.com/shiftledger/attendance-engine/stats"
)

// =============================================================================
// REQUESTS
// =============================================================================

// BulkApplyRequest replaces every listed date with a copy of the template.
type BulkApplyRequest struct {
	Dates    []ledger.DateKey `json:"dates"`
	Template ledger.DayRecord `json:"template"`
}

// SetLeaveRequest sets or clears ("" or absent) the leave for a date.
type SetLeaveRequest struct {
	Leave ledger.LeaveType `json:"leave"`
}

// SetHolidayNameRequest sets the holiday label for a date.
type SetHolidayNameRequest struct {
	Name string `json:"name"`
}

// SetNoteRequest sets the annotation for a date.
type SetNoteRequest struct {
	Note string `json:"note"`
}

// =============================================================================
// RESPONSES
// =============================================================================

// DayResponse is the full read view of one date.
type DayResponse struct {
	Date         ledger.DateKey   `json:"date"`
	Record       ledger.DayRecord `json:"record"`
	Conflict     bool             `json:"conflict"`
	RestEligible bool             `json:"restEligible"`
	WeekKey      ledger.DateKey   `json:"weekKey"`
}

// WeekStatsResponse pairs a week's aggregate with its rest-credit balance.
type WeekStatsResponse struct {
	WeekStart ledger.DateKey    `json:"weekStart"`
	Stats     stats.Aggregate   `json:"stats"`
	Rest      stats.WeekBalance `json:"rest"`
}

// YearStatsResponse is the annual aggregate with an optional monthly split.
type YearStatsResponse struct {
	Year   int               `json:"year"`
	Stats  stats.Aggregate   `json:"stats"`
	Months []stats.Aggregate `json:"months,omitempty"`
}

// RestEligibilityResponse answers the compensatory-rest spend check.
type RestEligibilityResponse struct {
	Date     ledger.DateKey    `json:"date"`
	WeekKey  ledger.DateKey    `json:"weekKey"`
	Eligible bool              `json:"eligible"`
	Balance  stats.WeekBalance `json:"balance"`
}

// InsightsResponse carries the generated commentary (or the fallback text).
type InsightsResponse struct {
	Month string `json:"month"`
	Text  string `json:"text"`
}

// =============================================================================
// JSON HELPERS
// =============================================================================

type errorEnvelope struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorEnvelope{Error: msg})
}
