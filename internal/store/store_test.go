package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"stunden/internal/blob"
	"stunden/internal/core"
)

// memBlobs is an in-memory blob.Store for tests that do not need disk.
type memBlobs struct {
	data    map[string][]byte
	putErr  error
	getErrs map[string]error
}

func newMemBlobs() *memBlobs {
	return &memBlobs{data: map[string][]byte{}, getErrs: map[string]error{}}
}

func (m *memBlobs) Get(_ context.Context, key string) ([]byte, error) {
	if err := m.getErrs[key]; err != nil {
		return nil, err
	}
	data, ok := m.data[key]
	if !ok {
		return nil, blob.ErrNotFound
	}
	return data, nil
}

func (m *memBlobs) Put(_ context.Context, key string, data []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *memBlobs) Close() error { return nil }

func day(d int) time.Time {
	return time.Date(2026, 6, d, 0, 0, 0, 0, time.Local)
}

func entryOn(d int) core.TimeEntry {
	e := core.NewEntry(day(d))
	e.Notes = "note"
	return e
}

func TestUpsertThenEntryForDay(t *testing.T) {
	s := New(newMemBlobs())

	start := time.Date(2026, 6, 3, 9, 0, 0, 0, time.Local)
	end := time.Date(2026, 6, 3, 17, 30, 0, 0, time.Local)
	e := core.NewEntry(day(3))
	e.StartTime = &start
	e.EndTime = &end
	e.BreakDuration = 1800
	e.Notes = "onsite"

	s.Upsert(e)

	got := s.EntryForDay(day(3).Add(14 * time.Hour)) // same day, different time
	if got.ID != e.ID {
		t.Fatalf("EntryForDay returned a different entry: %v != %v", got.ID, e.ID)
	}
	if got.Notes != "onsite" || got.BreakDuration != 1800 {
		t.Errorf("fields not preserved: %+v", got)
	}
	if !core.SameDay(got.Date, e.Date) {
		t.Errorf("dates differ: %v vs %v", got.Date, e.Date)
	}
}

func TestUpsertSameDayReplaces(t *testing.T) {
	s := New(newMemBlobs())

	first := core.NewEntry(time.Date(2026, 6, 3, 8, 0, 0, 0, time.Local))
	first.Notes = "first"
	second := core.NewEntry(time.Date(2026, 6, 3, 20, 0, 0, 0, time.Local))
	second.Notes = "second"

	s.Upsert(first)
	s.Upsert(second)

	entries := s.Entries()
	if len(entries) != 1 {
		t.Fatalf("index holds %d entries for one day, want 1", len(entries))
	}
	if entries[0].Notes != "second" {
		t.Errorf("second upsert did not overwrite: %+v", entries[0])
	}
}

func TestUpsertKeepsAscendingDateOrder(t *testing.T) {
	s := New(newMemBlobs())

	for _, d := range []int{17, 2, 9, 30, 1} {
		s.Upsert(entryOn(d))
	}

	entries := s.Entries()
	if len(entries) != 5 {
		t.Fatalf("len = %d, want 5", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Date.Before(entries[i-1].Date) {
			t.Fatalf("entries out of order at %d: %v after %v", i, entries[i].Date, entries[i-1].Date)
		}
	}
}

func TestEntryForDayMissReturnsDefaultWithoutInsert(t *testing.T) {
	s := New(newMemBlobs())
	s.Upsert(entryOn(1))

	got := s.EntryForDay(day(15))

	if got.AbsenceType != core.AbsenceNone {
		t.Errorf("AbsenceType = %q, want none", got.AbsenceType)
	}
	if got.StartTime != nil || got.EndTime != nil {
		t.Error("default entry should have no timestamps")
	}
	if got.BreakDuration != 0 || got.Notes != "" {
		t.Errorf("default entry not empty: %+v", got)
	}
	if !core.SameDay(got.Date, day(15)) {
		t.Errorf("default entry dated %v, want requested day", got.Date)
	}

	if len(s.Entries()) != 1 {
		t.Error("lookup miss must not mutate the index")
	}

	// Two misses construct two distinct defaults.
	if other := s.EntryForDay(day(15)); other.ID == got.ID {
		t.Error("repeated miss should mint a fresh entry")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	blobs := newMemBlobs()
	s := New(blobs)
	ctx := context.Background()

	start := time.Date(2026, 6, 5, 9, 0, 0, 0, time.Local)
	end := time.Date(2026, 6, 5, 17, 0, 0, 0, time.Local)
	worked := core.NewEntry(day(5))
	worked.StartTime = &start
	worked.EndTime = &end
	worked.BreakDuration = 1800
	vacation := core.NewEntry(day(8))
	vacation.AbsenceType = core.AbsenceVacation
	vacation.Notes = "Sommerurlaub"

	s.Upsert(worked)
	s.Upsert(vacation)

	settings := core.DefaultSettings()
	settings.Name = "Mira"
	settings.ContractHoursPerWeek = 32
	s.ReplaceSettings(settings)

	if err := s.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored := New(blobs)
	if err := restored.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	entries := restored.Entries()
	if len(entries) != 2 {
		t.Fatalf("restored %d entries, want 2", len(entries))
	}
	if entries[0].ID != worked.ID || entries[1].ID != vacation.ID {
		t.Errorf("restored order/identity wrong: %v, %v", entries[0].ID, entries[1].ID)
	}
	if entries[0].WorkedDuration() != worked.WorkedDuration() {
		t.Errorf("worked duration changed across round trip: %d != %d",
			entries[0].WorkedDuration(), worked.WorkedDuration())
	}
	if entries[1].AbsenceType != core.AbsenceVacation || entries[1].Notes != "Sommerurlaub" {
		t.Errorf("vacation entry fields lost: %+v", entries[1])
	}

	got := restored.Settings()
	if got.Name != "Mira" || got.ContractHoursPerWeek != 32 {
		t.Errorf("settings not restored: %+v", got)
	}
	if len(got.WorkingDays) != 5 {
		t.Errorf("working days not restored: %v", got.WorkingDays)
	}
}

func TestLoadMissingBlobsUsesDefaults(t *testing.T) {
	s := New(newMemBlobs())

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load with nothing stored should succeed, got %v", err)
	}
	if len(s.Entries()) != 0 {
		t.Error("entries should default to empty")
	}
	if got := s.Settings(); got.ContractHoursPerWeek != 20 {
		t.Errorf("settings should default, got %+v", got)
	}
}

func TestLoadMalformedBlobFails(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"corrupt entries", blob.KeyEntries},
		{"corrupt settings", blob.KeySettings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blobs := newMemBlobs()
			blobs.data[tt.key] = []byte("{not json")

			s := New(blobs)
			if err := s.Load(context.Background()); err == nil {
				t.Fatal("Load should propagate decode failures, got nil")
			}
		})
	}
}

func TestLoadReadErrorPropagates(t *testing.T) {
	blobs := newMemBlobs()
	blobs.getErrs[blob.KeyEntries] = errors.New("disk on fire")

	s := New(blobs)
	err := s.Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("Load = %v, want wrapped read error", err)
	}
}

func TestSaveWriteErrorPropagates(t *testing.T) {
	blobs := newMemBlobs()
	blobs.putErr = errors.New("read-only filesystem")

	s := New(blobs)
	s.Upsert(entryOn(1))

	if err := s.Save(context.Background()); err == nil {
		t.Error("Save should propagate write failures")
	}
}

func TestLoadReplacesStateWholesale(t *testing.T) {
	blobs := newMemBlobs()
	seed := New(blobs)
	seed.Upsert(entryOn(2))
	if err := seed.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s := New(blobs)
	s.Upsert(entryOn(20)) // pre-load state that must vanish
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	entries := s.Entries()
	if len(entries) != 1 || !core.SameDay(entries[0].Date, day(2)) {
		t.Errorf("load should replace state in one step, got %+v", entries)
	}
}

func TestClearDayBySentinelUpsert(t *testing.T) {
	s := New(newMemBlobs())

	e := entryOn(3)
	e.AbsenceType = core.AbsenceSick
	s.Upsert(e)

	// Clearing is an overwrite with a fresh default, not a removal.
	s.Upsert(core.NewEntry(day(3)))

	entries := s.Entries()
	if len(entries) != 1 {
		t.Fatalf("day should still be present, got %d entries", len(entries))
	}
	if entries[0].AbsenceType != core.AbsenceNone || entries[0].WorkedDuration() != 0 {
		t.Errorf("cleared day should be a zero default: %+v", entries[0])
	}
}

func TestStoreSummaryDelegates(t *testing.T) {
	s := New(newMemBlobs())

	start := time.Date(2026, 6, 5, 9, 0, 0, 0, time.Local)
	end := time.Date(2026, 6, 5, 16, 30, 0, 0, time.Local)
	e := core.NewEntry(day(5))
	e.StartTime = &start
	e.EndTime = &end
	s.Upsert(e)

	sick := core.NewEntry(day(9))
	sick.AbsenceType = core.AbsenceSick
	s.Upsert(sick)

	sum := s.MonthlySummary(2026, time.June)
	if sum.WorkedHours != 7.5 {
		t.Errorf("WorkedHours = %v, want 7.5", sum.WorkedHours)
	}
	if sum.ExpectedHours != 88.0 {
		t.Errorf("ExpectedHours = %v, want 88.0", sum.ExpectedHours)
	}

	breakdown := s.AbsenceBreakdown(2026, time.June)
	if len(breakdown) != 1 || breakdown[0].Type != core.AbsenceSick || breakdown[0].Count != 1 {
		t.Errorf("breakdown = %+v, want sick x1", breakdown)
	}
}

func TestSubscribeReceivesChanges(t *testing.T) {
	s := New(newMemBlobs())
	ch := s.Subscribe()

	s.Upsert(entryOn(4))
	s.ReplaceSettings(core.DefaultSettings())

	want := []ChangeKind{ChangeEntryUpserted, ChangeSettingsReplaced}
	for _, kind := range want {
		select {
		case c := <-ch:
			if c.Kind != kind {
				t.Errorf("change = %q, want %q", c.Kind, kind)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %q", kind)
		}
	}
}

func TestNotifyDoesNotBlockOnFullSubscriber(t *testing.T) {
	s := New(newMemBlobs())
	_ = s.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		for i := 1; i <= 40; i++ { // more than the channel buffer
			s.Upsert(entryOn(i%28 + 1))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("writer blocked on a slow subscriber")
	}
}

func TestFileStoreBackedRoundTrip(t *testing.T) {
	files, err := blob.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	s := New(files)
	s.Upsert(entryOn(12))
	if err := s.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored := New(files)
	if err := restored.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(restored.Entries()) != 1 {
		t.Errorf("restored %d entries, want 1", len(restored.Entries()))
	}
}
