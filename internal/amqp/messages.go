package amqp

import (
	"encoding/json"
	"time"
)

// Sync actions carried by ledger messages.
const (
	ActionUpsert = "upsert"
	ActionDelete = "delete"
)

// LedgerSyncMessage tells the export worker that a ledger entry changed.
// It carries only the id and the action; the worker fetches the current
// transaction from the store, so a delivered upsert always exports the
// newest version no matter how stale the message is.
type LedgerSyncMessage struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerSyncMessage(id int64, action string) *LedgerSyncMessage {
	return &LedgerSyncMessage{
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

func (m *LedgerSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerSyncMessageFromJSON(data []byte) (*LedgerSyncMessage, error) {
	var msg LedgerSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
