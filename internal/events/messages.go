package events

import (
	"encoding/json"
	"time"
)

// Kinds of ledger mutations announced on the event stream.
const (
	KindTransactionCreated = "transaction_created"
	KindTransactionVoided  = "transaction_voided"
	KindTransferCreated    = "transfer_created"
	KindTransferVoided     = "transfer_voided"
	KindAccountChanged     = "account_changed"
	KindCategoryChanged    = "category_changed"
)

// Message is a compact mutation announcement. It carries only the kind
// and the record id; consumers fetch the full record from the ledger.
type Message struct {
	Kind      string    `json:"kind"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMessage(kind string, id int64) *Message {
	return &Message{Kind: kind, ID: id, Timestamp: time.Now()}
}

func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MessageFromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
