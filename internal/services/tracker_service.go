// Package services orchestrates the time store for the presentation
// layer: persistence after every mutation, summary caching and
// outbound change events.
package services

import (
	"context"
	"fmt"
	"time"

	"stunden/internal/core"
	"stunden/internal/log"
	"stunden/internal/store"
)

// EventPublisher announces committed mutations to external consumers.
// Publishing is best-effort; failures never fail the user operation.
type EventPublisher interface {
	PublishEntryChanged(ctx context.Context, entryID string, date time.Time) error
	PublishSettingsChanged(ctx context.Context) error
	Close() error
}

// TrackerService wraps the store with the save-after-mutation contract
// the gateway itself does not enforce.
type TrackerService struct {
	store  *store.TimeStore
	events EventPublisher // nil when change events are disabled
	cache  *summaryCache
	logger *log.Logger
}

func NewTrackerService(st *store.TimeStore, events EventPublisher, cacheSize int, cacheTTL time.Duration, logger *log.Logger) *TrackerService {
	return &TrackerService{
		store:  st,
		events: events,
		cache:  newSummaryCache(cacheSize, cacheTTL),
		logger: logger.WithComponent(log.ComponentTracker),
	}
}

// Load populates the store from the blobs and resets derived state.
func (s *TrackerService) Load(ctx context.Context) error {
	if err := s.store.Load(ctx); err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	s.cache.invalidateAll()

	s.logger.InfoContext(ctx, "State loaded",
		log.FieldOperation, log.OpLoad,
		"entry_count", len(s.store.Entries()))
	return nil
}

// EntryForDay returns the stored entry for the day, or a fresh default.
func (s *TrackerService) EntryForDay(date time.Time) core.TimeEntry {
	return s.store.EntryForDay(date)
}

// Entries returns the full index in ascending date order.
func (s *TrackerService) Entries() []core.TimeEntry {
	return s.store.Entries()
}

// UpsertEntry stores the entry for its calendar day and persists the
// new state. The affected month's cached summary is dropped and a
// change event is published when a publisher is configured.
func (s *TrackerService) UpsertEntry(ctx context.Context, entry core.TimeEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	s.store.Upsert(entry)
	if err := s.store.Save(ctx); err != nil {
		return fmt.Errorf("save entry: %w", err)
	}

	s.cache.invalidate(entry.Date.Year(), entry.Date.Month())

	if s.events != nil {
		if err := s.events.PublishEntryChanged(ctx, entry.ID.String(), entry.Date); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish entry change event",
				log.FieldEntryID, entry.ID.String(),
				log.FieldError, err)
			// State is saved; the event is advisory.
		}
	}

	s.logger.InfoContext(ctx, "Entry upserted",
		log.FieldOperation, log.OpUpsert,
		log.FieldEntryID, entry.ID.String(),
		log.FieldDate, entry.Date.Format("2006-01-02"),
		log.FieldAbsenceType, string(entry.AbsenceType))
	return nil
}

// Settings returns the current contract configuration.
func (s *TrackerService) Settings() core.UserSettings {
	return s.store.Settings()
}

// ReplaceSettings swaps in the new configuration wholesale and
// persists it. Every cached summary depends on the contract, so the
// whole cache is flushed.
func (s *TrackerService) ReplaceSettings(ctx context.Context, settings core.UserSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.store.ReplaceSettings(settings)
	if err := s.store.Save(ctx); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	s.cache.invalidateAll()

	if s.events != nil {
		if err := s.events.PublishSettingsChanged(ctx); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish settings change event",
				log.FieldError, err)
		}
	}

	s.logger.InfoContext(ctx, "Settings replaced",
		log.FieldOperation, log.OpReplace)
	return nil
}

// MonthlySummary returns the worked/expected aggregation for a month,
// served from cache when a fresh value is available.
func (s *TrackerService) MonthlySummary(ctx context.Context, year int, month time.Month) core.MonthSummary {
	if summary, ok := s.cache.get(year, month); ok {
		return summary
	}

	summary := s.store.MonthlySummary(year, month)
	s.cache.set(year, month, summary)

	s.logger.InfoContext(ctx, "Monthly summary computed",
		log.FieldOperation, log.OpSummary,
		log.FieldYear, year,
		log.FieldMonth, int(month),
		log.FieldWorkedHours, summary.WorkedHours)
	return summary
}

// AbsenceBreakdown counts the month's absences per type.
func (s *TrackerService) AbsenceBreakdown(year int, month time.Month) []core.AbsenceCount {
	return s.store.AbsenceBreakdown(year, month)
}

// Close releases the event publisher, if any.
func (s *TrackerService) Close() error {
	if s.events != nil {
		if err := s.events.Close(); err != nil {
			return fmt.Errorf("close event publisher: %w", err)
		}
	}
	return nil
}
