package amqp

import (
	"encoding/json"
	"time"
)

// Message kinds carried on the change-event exchange.
const (
	KindEntryChanged    = "entry_changed"
	KindSettingsChanged = "settings_changed"
)

// ChangeMessage announces that a day entry or the settings object was
// replaced. It carries identifiers only; consumers fetch current state
// through the API if they need it.
type ChangeMessage struct {
	Kind      string    `json:"kind"`
	EntryID   string    `json:"entry_id,omitempty"`
	Date      string    `json:"date,omitempty"` // YYYY-MM-DD
	Timestamp time.Time `json:"timestamp"`
}

// NewEntryChangedMessage builds the announcement for an upserted day.
func NewEntryChangedMessage(entryID string, date time.Time) *ChangeMessage {
	return &ChangeMessage{
		Kind:      KindEntryChanged,
		EntryID:   entryID,
		Date:      date.Format("2006-01-02"),
		Timestamp: time.Now(),
	}
}

// NewSettingsChangedMessage builds the announcement for a settings
// replacement.
func NewSettingsChangedMessage() *ChangeMessage {
	return &ChangeMessage{
		Kind:      KindSettingsChanged,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON decodes a message from JSON bytes.
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
