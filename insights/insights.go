/*
Package insights generates the optional monthly work-life commentary.

PURPOSE:
  A read-only projection of one month's records (date, worked shifts, leave
  label) is rendered into a prompt and sent to an external text-generation
  service. The call is best-effort: it runs under a deadline, concurrent
  requests for the same month and store version are deduplicated, and any
  failure or timeout collapses to a fixed fallback string. Nothing here can
  block or fail record mutation or aggregation.
*/
package insights

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/shiftledger/attendance-engine/ledger"
)

// Fallback is returned whenever the external service is unavailable.
const Fallback = "The Shift Assistant is currently resting. Please try again later!"

// DefaultTimeout bounds a single generation call.
const DefaultTimeout = 20 * time.Second

// =============================================================================
// PROJECTION
// =============================================================================

// DayDigest is the reduced view of one record sent to the generator.
type DayDigest struct {
	Date   ledger.DateKey
	Shifts []ledger.ShiftType
	Leave  ledger.LeaveType
}

// Project reduces a month's materialized records to digests, sorted by date.
// Empty records are skipped; absent days never reach the generator.
func Project(st *ledger.Store, year int, month time.Month) []DayDigest {
	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	var out []DayDigest
	for key, rec := range st.Records() {
		if !strings.HasPrefix(string(key), prefix) || rec.IsEmpty() {
			continue
		}
		out = append(out, DayDigest{Date: key, Shifts: rec.ActiveShifts(), Leave: rec.Leave})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// =============================================================================
// GENERATOR AND SERVICE
// =============================================================================

// Generator produces commentary text for one month of digests.
type Generator interface {
	MonthlyInsights(ctx context.Context, monthLabel string, days []DayDigest) (string, error)
}

// Service wraps a Generator with deadline, deduplication, and fallback.
type Service struct {
	Gen     Generator
	Timeout time.Duration
	Log     *slog.Logger

	group singleflight.Group
}

func NewService(gen Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Gen: gen, Timeout: DefaultTimeout, Log: logger.With("component", "insights")}
}

// Monthly returns commentary for the month, or Fallback. It never returns
// an error; a disabled service (nil generator) also yields Fallback.
func (s *Service) Monthly(ctx context.Context, st *ledger.Store, year int, month time.Month) string {
	if s.Gen == nil {
		return Fallback
	}

	label := fmt.Sprintf("%s %d", month, year)
	key := fmt.Sprintf("%04d-%02d@v%d", year, month, st.Version())

	text, err, _ := s.group.Do(key, func() (any, error) {
		ctx, cancel := context.WithTimeout(ctx, s.Timeout)
		defer cancel()
		return s.Gen.MonthlyInsights(ctx, label, Project(st, year, month))
	})
	if err != nil {
		s.Log.Warn("insight generation failed", "month", label, "error", err)
		return Fallback
	}
	out, _ := text.(string)
	if out == "" {
		return Fallback
	}
	return out
}

// BuildPrompt renders the digests into the assistant prompt.
func BuildPrompt(monthLabel string, days []DayDigest) string {
	var lines []string
	for _, d := range days {
		parts := make([]string, 0, len(d.Shifts))
		for _, t := range d.Shifts {
			parts = append(parts, string(t))
		}
		line := fmt.Sprintf("%s: %s", d.Date, strings.Join(parts, ", "))
		if d.Leave != ledger.LeaveNone {
			line += fmt.Sprintf(" (Leave: %s)", d.Leave)
		}
		lines = append(lines, line)
	}
	summary := strings.Join(lines, "\n")
	if summary == "" {
		summary = "No data recorded yet for this month."
	}

	return fmt.Sprintf(`You are a specialized Work-Life Balance and Occupational Health Assistant.
I will provide you with a list of shifts worked and leaves taken in %s.

Attendance & Leave Data:
%s

Please provide:
1. A brief encouraging summary of the work pattern.
2. 2-3 specific health or wellness tips based on the shift types or leave patterns (e.g., if many sick leaves, suggest rest; if many night shifts, suggest sleep hygiene).
3. A motivational quote for the user.

Keep it professional, empathetic, and concise (under 200 words). Use bullet points for tips.`, monthLabel, summary)
}
