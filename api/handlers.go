/*
handlers.go - HTTP handlers for the attendance ledger

PURPOSE:
  Exposes the ledger, the statistics aggregator, the rest-credit and
  rollover calculators, preferences, backup/restore, and the insight
  service over REST. Handlers parse and validate input, delegate to the
  domain packages, and serialize the result.

ERROR HANDLING:
  Errors come back as a JSON envelope with the matching status:
  - 400: malformed dates, unknown categories, bad JSON
  - 404: unknown route parameters
  - 409: compensatory-rest spend without credit
  - 422: rejected backup import
  - 500: persistence failures

SEE ALSO:
  - dto.go: wire shapes
  - server.go: router and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shiftledger/attendance-engine/backup"
	"github.com/shiftledger/attendance-engine/insights"
	"github.com/shiftledger/attendance-engine/ledger"
	"github.com/shiftledger/attendance-engine/prefs"
	"github.com/shiftledger/attendance-engine/quota"
	"github.com/shiftledger/attendance-engine/stats"
	"github.com/shiftledger/attendance-engine/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds every dependency the HTTP layer needs.
type Handler struct {
	Store    *ledger.Store
	Editor   *ledger.Editor
	Agg      *stats.Aggregator
	Insights *insights.Service
	Adapter  store.Adapter
	Log      *slog.Logger

	mu     sync.RWMutex // guards quotas and prefs
	quotas quota.LeaveQuota
	prefs  prefs.Prefs
}

// NewHandler wires the handler. quotas/prefs are the already-loaded
// configuration; adapter may be nil for an in-memory deployment.
func NewHandler(st *ledger.Store, q quota.LeaveQuota, p prefs.Prefs, adapter store.Adapter, ins *insights.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	agg := stats.NewAggregator(st)
	return &Handler{
		Store:    st,
		Editor:   ledger.NewEditor(st),
		Agg:      agg,
		Insights: ins,
		Adapter:  adapter,
		Log:      logger.With("component", "api"),
		quotas:   q,
		prefs:    p,
	}
}

// Quotas returns the current quota configuration.
func (h *Handler) Quotas() quota.LeaveQuota {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.quotas
}

// Prefs returns the current display preferences.
func (h *Handler) Prefs() prefs.Prefs {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.prefs
}

func (h *Handler) persist(field string, v any) {
	if h.Adapter == nil {
		return
	}
	if err := h.Adapter.Save(field, v); err != nil {
		h.Log.Error("field flush failed", "field", field, "error", err)
	}
}

// dateParam parses the {date} route parameter.
func dateParam(r *http.Request) (ledger.DateKey, time.Time, error) {
	key := ledger.DateKey(chi.URLParam(r, "date"))
	day, err := key.Time()
	return key, day, err
}

func (h *Handler) dayResponse(key ledger.DateKey, day time.Time) DayResponse {
	rec := h.Store.Get(key)
	return DayResponse{
		Date:         key,
		Record:       rec,
		Conflict:     rec.HasConflict(),
		RestEligible: stats.RestEligible(h.Store, day),
		WeekKey:      ledger.WeekKeyOf(day),
	}
}

// =============================================================================
// DAY RECORDS
// =============================================================================

// GetDay returns the record for a date, default-synthesized when absent.
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	key, day, err := dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.dayResponse(key, day))
}

// PutDay replaces the record for a date wholesale.
func (h *Handler) PutDay(w http.ResponseWriter, r *http.Request) {
	key, day, err := dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var rec ledger.DayRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid record body")
		return
	}
	if !rec.Leave.IsValid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown leave category %q", rec.Leave))
		return
	}
	h.Store.Set(key, rec)
	writeJSON(w, http.StatusOK, h.dayResponse(key, day))
}

// BulkApply replaces every listed date with a copy of the template.
func (h *Handler) BulkApply(w http.ResponseWriter, r *http.Request) {
	var req BulkApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid bulk body")
		return
	}
	if len(req.Dates) == 0 {
		writeError(w, http.StatusBadRequest, "no dates given")
		return
	}
	if !req.Template.Leave.IsValid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown leave category %q", req.Template.Leave))
		return
	}
	for _, k := range req.Dates {
		if _, err := k.Time(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	h.Store.SetMany(req.Dates, req.Template)
	writeJSON(w, http.StatusOK, map[string]int{"applied": len(req.Dates)})
}

// ToggleShift toggles one shift flag through the editor rules.
func (h *Handler) ToggleShift(w http.ResponseWriter, r *http.Request) {
	key, day, err := dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	shift := ledger.ShiftType(chi.URLParam(r, "shift"))
	if _, err := h.Editor.ToggleShift(key, shift); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.dayResponse(key, day))
}

// SetLeave sets or clears the leave. Compensatory rest is gated on the
// weekly credit balance before the write is attempted.
func (h *Handler) SetLeave(w http.ResponseWriter, r *http.Request) {
	key, day, err := dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req SetLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid leave body")
		return
	}
	if req.Leave == ledger.LeaveRest && !stats.RestEligible(h.Store, day) {
		writeError(w, http.StatusConflict, ledger.ErrRestNotEligible.Error())
		return
	}
	if _, err := h.Editor.SetLeave(key, req.Leave); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.dayResponse(key, day))
}

// ToggleHoliday flips the holiday flag.
func (h *Handler) ToggleHoliday(w http.ResponseWriter, r *http.Request) {
	key, day, err := dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.Editor.ToggleHoliday(key)
	writeJSON(w, http.StatusOK, h.dayResponse(key, day))
}

// SetHolidayName sets the holiday label.
func (h *Handler) SetHolidayName(w http.ResponseWriter, r *http.Request) {
	key, day, err := dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req SetHolidayNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid holiday body")
		return
	}
	h.Editor.SetHolidayName(key, req.Name)
	writeJSON(w, http.StatusOK, h.dayResponse(key, day))
}

// SetNote sets the free-text annotation.
func (h *Handler) SetNote(w http.ResponseWriter, r *http.Request) {
	key, day, err := dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req SetNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid note body")
		return
	}
	h.Editor.SetNote(key, req.Note)
	writeJSON(w, http.StatusOK, h.dayResponse(key, day))
}

// =============================================================================
// STATISTICS
// =============================================================================

// WeekStats aggregates the Sunday-to-Saturday week containing ?date=.
func (h *Handler) WeekStats(w http.ResponseWriter, r *http.Request) {
	day, err := queryDate(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	start := day.AddDate(0, 0, -int(day.Weekday()))
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	writeJSON(w, http.StatusOK, WeekStatsResponse{
		WeekStart: ledger.KeyOf(start),
		Stats:     h.Agg.ForDates(days),
		Rest:      stats.WeekBalances(h.Store)[ledger.KeyOf(start)],
	})
}

// MonthStats aggregates one calendar month.
func (h *Handler) MonthStats(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	month, err := queryInt(r, "month")
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be 1-12")
		return
	}
	writeJSON(w, http.StatusOK, h.Agg.ForMonth(year, time.Month(month)))
}

// YearStats aggregates one calendar year, optionally split per month.
func (h *Handler) YearStats(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp := YearStatsResponse{Year: year, Stats: h.Agg.ForYear(year)}
	if r.URL.Query().Get("breakdown") == "true" {
		resp.Months = make([]stats.Aggregate, 12)
		for m := time.January; m <= time.December; m++ {
			resp.Months[m-1] = h.Agg.ForMonth(year, m)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// RestEligibility answers the compensatory-rest spend check for a date.
func (h *Handler) RestEligibility(w http.ResponseWriter, r *http.Request) {
	day, err := queryDate(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	week := ledger.WeekKeyOf(day)
	writeJSON(w, http.StatusOK, RestEligibilityResponse{
		Date:     ledger.KeyOf(day),
		WeekKey:  week,
		Eligible: stats.RestEligible(h.Store, day),
		Balance:  stats.WeekBalances(h.Store)[week],
	})
}

// RestWeeks lists every week with rest-credit activity.
func (h *Handler) RestWeeks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.WeekBalances(h.Store))
}

// LeaveSummary returns the rollover and remaining balances for a year.
func (h *Handler) LeaveSummary(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.Agg.LeaveSummary(h.Quotas(), year))
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// GetQuotas returns the quota configuration.
func (h *Handler) GetQuotas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Quotas())
}

// PutQuotas replaces the quota configuration.
func (h *Handler) PutQuotas(w http.ResponseWriter, r *http.Request) {
	var q quota.LeaveQuota
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid quota body")
		return
	}
	if err := q.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.mu.Lock()
	h.quotas = q
	h.mu.Unlock()
	h.persist(store.FieldQuotas, q)
	writeJSON(w, http.StatusOK, q)
}

// GetPrefs returns the display preferences.
func (h *Handler) GetPrefs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Prefs())
}

// PutPrefs replaces the display preferences.
func (h *Handler) PutPrefs(w http.ResponseWriter, r *http.Request) {
	var p prefs.Prefs
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid preferences body")
		return
	}
	if err := p.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.mu.Lock()
	h.prefs = p
	h.mu.Unlock()
	h.persist(store.FieldColors, p.Colors)
	h.persist(store.FieldTimings, p.Timings)
	h.persist(store.FieldEnabled, p.Enabled)
	h.persist(store.FieldView, p.DefaultView)
	h.persist(store.FieldDarkMode, p.DarkMode)
	writeJSON(w, http.StatusOK, p)
}

// =============================================================================
// BACKUP / RESTORE / RESET
// =============================================================================

// Backup streams the full document as a downloadable snapshot.
func (h *Handler) Backup(w http.ResponseWriter, r *http.Request) {
	snap := backup.Export(h.Store, h.Quotas(), h.Prefs())
	filename := fmt.Sprintf("shift_backup_%s.json", ledger.KeyOf(time.Now()))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writeJSON(w, http.StatusOK, snap)
}

// Restore imports a snapshot. The whole operation fails without touching
// the store when the document is structurally invalid.
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	snap, err := backup.Decode(r.Body)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.mu.Lock()
	err = snap.Apply(h.Store, &h.quotas, &h.prefs, h.Adapter)
	h.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

// Reset clears every attendance record. Configuration is kept.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.Store.Clear()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// INSIGHTS
// =============================================================================

// MonthlyInsights returns generated commentary for a month, or the fixed
// fallback text when the external service is unavailable.
func (h *Handler) MonthlyInsights(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	month, err := queryInt(r, "month")
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be 1-12")
		return
	}

	text := insights.Fallback
	if h.Insights != nil {
		text = h.Insights.Monthly(r.Context(), h.Store, year, time.Month(month))
	}
	writeJSON(w, http.StatusOK, InsightsResponse{
		Month: fmt.Sprintf("%04d-%02d", year, month),
		Text:  text,
	})
}

// =============================================================================
// QUERY HELPERS
// =============================================================================

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing query parameter %q", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %q is not a number", name)
	}
	return v, nil
}

func queryDate(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, fmt.Errorf("missing query parameter %q", name)
	}
	return ledger.DateKey(raw).Time()
}
