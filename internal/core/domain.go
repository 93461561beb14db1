package core

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	AbsenceNone     AbsenceType = "none"
	AbsenceVacation AbsenceType = "vacation"
	AbsenceSick     AbsenceType = "sick"
	AbsenceTraining AbsenceType = "training"
	AbsenceHoliday  AbsenceType = "holiday"
	AbsenceOther    AbsenceType = "other"
)

type (
	// AbsenceType classifies why no regular work was recorded on a day.
	// AbsenceNone is the sentinel "normal working day" state and is
	// excluded from absence reporting.
	AbsenceType string

	// TimeEntry is one calendar day's time record. Only the date part of
	// Date is meaningful; entries are compared by calendar day.
	TimeEntry struct {
		ID            uuid.UUID   `json:"id"`
		Date          time.Time   `json:"date"`
		StartTime     *time.Time  `json:"startTime,omitempty"`
		EndTime       *time.Time  `json:"endTime,omitempty"`
		BreakDuration int64       `json:"breakDuration"` // seconds
		AbsenceType   AbsenceType `json:"absenceType"`
		Notes         string      `json:"notes"`
	}

	// UserSettings holds the contract configuration for the tracked user.
	// Replacement is always whole-object; RemainingVacationDays is
	// operator-maintained state, never derived.
	UserSettings struct {
		Name                  string    `json:"name"`
		BirthDate             time.Time `json:"birthDate"`
		ContractHoursPerWeek  float64   `json:"contractHoursPerWeek"`
		WorkingDays           []int     `json:"workingDays"` // weekday numbers, 1=Sunday
		VacationDaysPerYear   int       `json:"vacationDaysPerYear"`
		RemainingVacationDays int       `json:"remainingVacationDays"`
	}
)

var (
	ErrInvalidAbsenceType   = errors.New("invalid absence type")
	ErrInvalidWorkingDay    = errors.New("working day must be between 1 (Sunday) and 7 (Saturday)")
	ErrInvalidContractHours = errors.New("contract hours per week must be positive")
	ErrNegativeBreak        = errors.New("break duration cannot be negative")
)

// absenceLabels are the fixed display labels carried by each variant.
var absenceLabels = map[AbsenceType]string{
	AbsenceNone:     "Working",
	AbsenceVacation: "Urlaub",
	AbsenceSick:     "Krank",
	AbsenceTraining: "Fortbildung",
	AbsenceHoliday:  "Feiertag",
	AbsenceOther:    "Sonstige Freistellung",
}

// AbsenceTypes returns the closed set of variants in stable order.
func AbsenceTypes() []AbsenceType {
	return []AbsenceType{
		AbsenceNone, AbsenceVacation, AbsenceSick,
		AbsenceTraining, AbsenceHoliday, AbsenceOther,
	}
}

// Label returns the display label for the absence type.
func (a AbsenceType) Label() string {
	return absenceLabels[a]
}

// IsValid reports whether a is a member of the closed enumeration.
func (a AbsenceType) IsValid() bool {
	_, ok := absenceLabels[a]
	return ok
}

// NewEntry returns a fresh default entry for the given day: a normal
// working day with no times, zero break and empty notes. The ID is
// assigned at creation and never reused.
func NewEntry(date time.Time) TimeEntry {
	return TimeEntry{
		ID:          uuid.New(),
		Date:        date,
		AbsenceType: AbsenceNone,
	}
}

// WorkedDuration returns the net seconds worked: end minus start minus
// break. It is 0 when either timestamp is absent. The value is not
// clamped: an end before start or a break exceeding the span yields a
// negative duration, which flows into summaries unchanged.
func (e TimeEntry) WorkedDuration() int64 {
	if e.StartTime == nil || e.EndTime == nil {
		return 0
	}
	span := int64(e.EndTime.Sub(*e.StartTime) / time.Second)
	return span - e.BreakDuration
}

// WorkedHours returns WorkedDuration expressed in hours.
func (e TimeEntry) WorkedHours() float64 {
	return float64(e.WorkedDuration()) / 3600
}

// IsComplete reports whether the day needs no further input: either an
// absence is recorded or both timestamps are present.
func (e TimeEntry) IsComplete() bool {
	return e.AbsenceType != AbsenceNone || (e.StartTime != nil && e.EndTime != nil)
}

// Validate checks the fields a consumer can get wrong when submitting
// an entry. Start/end ordering is deliberately not checked; the store
// accepts physically impossible entries as-is.
func (e TimeEntry) Validate() error {
	if !e.AbsenceType.IsValid() {
		return ErrInvalidAbsenceType
	}
	if e.BreakDuration < 0 {
		return ErrNegativeBreak
	}
	return nil
}

// DefaultSettings returns the initial contract configuration: 20 hours
// per week spread over Monday to Friday, 30 vacation days.
func DefaultSettings() UserSettings {
	return UserSettings{
		Name:                  "",
		BirthDate:             time.Now(),
		ContractHoursPerWeek:  20,
		WorkingDays:           []int{Monday, Tuesday, Wednesday, Thursday, Friday},
		VacationDaysPerYear:   30,
		RemainingVacationDays: 30,
	}
}

// IsWorkingDay reports whether the weekday number (1=Sunday) is a
// contractually working day.
func (s UserSettings) IsWorkingDay(weekday int) bool {
	for _, d := range s.WorkingDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// Validate checks a settings object before it replaces the current one.
func (s UserSettings) Validate() error {
	if s.ContractHoursPerWeek <= 0 {
		return ErrInvalidContractHours
	}
	for _, d := range s.WorkingDays {
		if d < Sunday || d > Saturday {
			return ErrInvalidWorkingDay
		}
	}
	return nil
}
