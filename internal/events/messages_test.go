package events

import (
	"testing"
	"time"
)

func TestMessageRoundTrip(t *testing.T) {
	msg := NewMessage(KindTransferCreated, 41)
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp must be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got, err := MessageFromJSON(body)
	if err != nil {
		t.Fatalf("MessageFromJSON: %v", err)
	}
	if got.Kind != KindTransferCreated || got.ID != 41 {
		t.Fatalf("got %+v", got)
	}
	if !got.Timestamp.Truncate(time.Second).Equal(msg.Timestamp.Truncate(time.Second)) {
		t.Fatalf("timestamp drifted: %v != %v", got.Timestamp, msg.Timestamp)
	}
}

func TestMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := MessageFromJSON([]byte(`not json`)); err == nil {
		t.Fatal("expected error")
	}
}
