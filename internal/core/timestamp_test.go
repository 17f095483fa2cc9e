package core

import (
	"testing"
	"time"
)

func TestWireLocalRoundTrip(t *testing.T) {
	lisbon, err := time.LoadLocation("Europe/Lisbon")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	cases := []string{
		"2025-03-15T14:30:00Z",
		"2025-03-15T14:30:00+02:00",
		"2024-12-31T23:59:00-05:00",
	}
	for _, wire := range cases {
		orig, err := ParseWire(wire)
		if err != nil {
			t.Fatalf("ParseWire(%q): %v", wire, err)
		}
		local := ToLocalMinute(orig, lisbon)
		back, err := FromLocalMinute(local, lisbon)
		if err != nil {
			t.Fatalf("FromLocalMinute(%q): %v", local, err)
		}
		if !back.Truncate(time.Minute).Equal(orig.Truncate(time.Minute)) {
			t.Fatalf("%q: round trip drifted, local=%q back=%v orig=%v", wire, local, back, orig)
		}
	}
}

func TestRoundTripZeroesSeconds(t *testing.T) {
	orig, _ := ParseWire("2025-03-15T14:30:45Z")
	local := ToLocalMinute(orig, time.UTC)
	if local != "2025-03-15T14:30" {
		t.Fatalf("local form = %q", local)
	}
	back, err := FromLocalMinute(local, time.UTC)
	if err != nil {
		t.Fatalf("FromLocalMinute: %v", err)
	}
	if FormatWire(back) != "2025-03-15T14:30:00Z" {
		t.Fatalf("wire after round trip = %q", FormatWire(back))
	}
}

func TestFromLocalMinuteRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "15/03/2025", "2025-03-15", "2025-03-15T14:30:00Z"} {
		if _, err := FromLocalMinute(in, time.UTC); err == nil {
			t.Fatalf("FromLocalMinute(%q) expected error", in)
		}
	}
}
