// Package store owns the in-memory day-unique entry collection and the
// user settings, together with their two-blob persistence gateway.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"stunden/internal/blob"
	"stunden/internal/core"
)

const (
	ChangeEntryUpserted    ChangeKind = "entry_upserted"
	ChangeSettingsReplaced ChangeKind = "settings_replaced"
	ChangeReloaded         ChangeKind = "reloaded"
)

type (
	// ChangeKind tags a state-change notification.
	ChangeKind string

	// Change is delivered to subscribers after a mutation entry point
	// has committed its state.
	Change struct {
		Kind ChangeKind
		Date time.Time // calendar day of the touched entry, zero otherwise
	}
)

// TimeStore holds the entry index and the settings behind a mutex
// boundary, so multiple callers may read and mutate without external
// serialization. Mutations do not persist themselves; callers pair
// them with Save.
type TimeStore struct {
	mu       sync.RWMutex
	entries  []core.TimeEntry // ascending by date, at most one per calendar day
	settings core.UserSettings
	blobs    blob.Store

	subMu sync.Mutex
	subs  []chan Change
}

// New returns a store with no entries and default settings, backed by
// the given blob store.
func New(blobs blob.Store) *TimeStore {
	return &TimeStore{
		blobs:    blobs,
		settings: core.DefaultSettings(),
	}
}

// Load reads the entries and settings blobs concurrently and, once
// both are decoded, replaces the in-memory state in a single step. A
// missing blob falls back to its default (empty collection, default
// settings); a present but malformed blob fails the whole load.
func (s *TimeStore) Load(ctx context.Context) error {
	var (
		entries  []core.TimeEntry
		settings core.UserSettings
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := s.blobs.Get(ctx, blob.KeyEntries)
		if isNotFound(err) {
			entries = []core.TimeEntry{}
			return nil
		}
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("decode entries blob: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		data, err := s.blobs.Get(ctx, blob.KeySettings)
		if isNotFound(err) {
			settings = core.DefaultSettings()
			return nil
		}
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &settings); err != nil {
			return fmt.Errorf("decode settings blob: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	sortByDate(entries)

	s.mu.Lock()
	s.entries = entries
	s.settings = settings
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeReloaded})
	return nil
}

// Save serializes the current state and writes both blobs
// concurrently. The two writes are independent: if one fails the other
// may already be durable, and no rollback is attempted.
func (s *TimeStore) Save(ctx context.Context) error {
	s.mu.RLock()
	entries := append([]core.TimeEntry(nil), s.entries...)
	settings := s.settings
	s.mu.RUnlock()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("encode entries blob: %w", err)
		}
		return s.blobs.Put(ctx, blob.KeyEntries, data)
	})
	g.Go(func() error {
		data, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return fmt.Errorf("encode settings blob: %w", err)
		}
		return s.blobs.Put(ctx, blob.KeySettings, data)
	})
	return g.Wait()
}

// EntryForDay returns the stored entry for the calendar day of date,
// or a freshly constructed default entry for that day. The default is
// not inserted; looking up an absent day has no side effect.
func (s *TimeStore) EntryForDay(date time.Time) core.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if core.SameDay(e.Date, date) {
			return e
		}
	}
	return core.NewEntry(date)
}

// Upsert replaces the entry stored for the same calendar day as
// entry.Date, or appends it, then restores ascending date order. The
// collection keeps at most one entry per day. There is no delete;
// clearing a day means upserting a fresh default entry for it.
func (s *TimeStore) Upsert(entry core.TimeEntry) {
	s.mu.Lock()
	replaced := false
	for i, e := range s.entries {
		if core.SameDay(e.Date, entry.Date) {
			s.entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		s.entries = append(s.entries, entry)
	}
	sortByDate(s.entries)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeEntryUpserted, Date: entry.Date})
}

// ReplaceSettings swaps in a whole new settings object. There is no
// partial-field mutation.
func (s *TimeStore) ReplaceSettings(settings core.UserSettings) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeSettingsReplaced})
}

// Entries returns a copy of the index in ascending date order.
func (s *TimeStore) Entries() []core.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.TimeEntry(nil), s.entries...)
}

// Settings returns the current settings value.
func (s *TimeStore) Settings() core.UserSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// MonthlySummary aggregates the current state for one month.
func (s *TimeStore) MonthlySummary(year int, month time.Month) core.MonthSummary {
	s.mu.RLock()
	entries := s.entries
	settings := s.settings
	defer s.mu.RUnlock()
	return core.MonthlySummary(year, month, entries, settings)
}

// AbsenceBreakdown counts absences per type for one month.
func (s *TimeStore) AbsenceBreakdown(year int, month time.Month) []core.AbsenceCount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.AbsenceBreakdown(year, month, s.entries)
}

// Subscribe returns a channel receiving a Change after every committed
// mutation. Delivery is best-effort: a subscriber that stops draining
// misses notifications instead of stalling writers.
func (s *TimeStore) Subscribe() <-chan Change {
	ch := make(chan Change, 16)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}

func (s *TimeStore) notify(c Change) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, blob.ErrNotFound)
}

func sortByDate(entries []core.TimeEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}
