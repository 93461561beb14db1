package core

import "time"

type (
	// MonthSummary is the worked-versus-expected result for one month.
	MonthSummary struct {
		Year          int     `json:"year"`
		Month         int     `json:"month"` // 1-12
		WorkedHours   float64 `json:"workedHours"`
		ExpectedHours float64 `json:"expectedHours"`
	}

	// AbsenceCount is one line of the monthly absence breakdown.
	AbsenceCount struct {
		Type  AbsenceType `json:"type"`
		Label string      `json:"label"`
		Count int         `json:"count"`
	}
)

// Balance returns worked minus expected hours.
func (s MonthSummary) Balance() float64 {
	return s.WorkedHours - s.ExpectedHours
}

// MonthlySummary aggregates the given entries against the contract
// configuration for one target month.
//
// Expected hours spread the weekly contract evenly across the
// configured working days, scaled by how many of those weekdays fall
// in the month. An empty working-day set yields 0 expected hours
// rather than dividing by zero.
//
// Worked hours sum WorkedDuration over every entry in the month,
// including absence days, whose duration is 0 unless start and end
// times were also recorded.
func MonthlySummary(year int, month time.Month, entries []TimeEntry, settings UserSettings) MonthSummary {
	start := MonthStart(year, month)

	workingDays := 0
	for d := 0; d < DaysInMonth(year, month); d++ {
		day := start.AddDate(0, 0, d)
		if settings.IsWorkingDay(WeekdayNumber(day)) {
			workingDays++
		}
	}

	var expected float64
	if n := len(settings.WorkingDays); n > 0 {
		expected = float64(workingDays) * (settings.ContractHoursPerWeek / float64(n))
	}

	var worked float64
	for _, e := range entries {
		if SameMonth(e.Date, start) {
			worked += e.WorkedHours()
		}
	}

	return MonthSummary{
		Year:          year,
		Month:         int(month),
		WorkedHours:   worked,
		ExpectedHours: expected,
	}
}

// AbsenceBreakdown counts the entries per non-working absence type in
// the target month. Zero-count variants and AbsenceNone are omitted;
// the order of the returned slice follows the enumeration order.
func AbsenceBreakdown(year int, month time.Month, entries []TimeEntry) []AbsenceCount {
	start := MonthStart(year, month)

	counts := make(map[AbsenceType]int)
	for _, e := range entries {
		if e.AbsenceType != AbsenceNone && SameMonth(e.Date, start) {
			counts[e.AbsenceType]++
		}
	}

	var out []AbsenceCount
	for _, t := range AbsenceTypes() {
		if n := counts[t]; n > 0 {
			out = append(out, AbsenceCount{Type: t, Label: t.Label(), Count: n})
		}
	}
	return out
}
