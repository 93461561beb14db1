package amqp

import (
	"testing"
	"time"
)

func TestNewEntryChangedMessage(t *testing.T) {
	date := time.Date(2026, 6, 3, 14, 30, 0, 0, time.Local)

	msg := NewEntryChangedMessage("abc-123", date)

	if msg.Kind != KindEntryChanged {
		t.Errorf("Kind = %q, want %q", msg.Kind, KindEntryChanged)
	}
	if msg.EntryID != "abc-123" {
		t.Errorf("EntryID = %q, want abc-123", msg.EntryID)
	}
	if msg.Date != "2026-06-03" {
		t.Errorf("Date = %q, want 2026-06-03 (day precision only)", msg.Date)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestNewSettingsChangedMessage(t *testing.T) {
	msg := NewSettingsChangedMessage()

	if msg.Kind != KindSettingsChanged {
		t.Errorf("Kind = %q, want %q", msg.Kind, KindSettingsChanged)
	}
	if msg.EntryID != "" || msg.Date != "" {
		t.Errorf("settings message should not carry entry fields: %+v", msg)
	}
}

func TestChangeMessageJSONRoundTrip(t *testing.T) {
	timestamp := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	msg := &ChangeMessage{
		Kind:      KindEntryChanged,
		EntryID:   "abc-123",
		Date:      "2026-06-01",
		Timestamp: timestamp,
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	parsed, err := ChangeMessageFromJSON(data)
	if err != nil {
		t.Fatalf("ChangeMessageFromJSON: %v", err)
	}

	if parsed.Kind != msg.Kind || parsed.EntryID != msg.EntryID || parsed.Date != msg.Date {
		t.Errorf("round trip changed fields: %+v", parsed)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestChangeMessageFromJSONInvalid(t *testing.T) {
	if _, err := ChangeMessageFromJSON([]byte(`{"timestamp": 42}`)); err == nil {
		t.Error("ChangeMessageFromJSON should fail on malformed input")
	}
}
