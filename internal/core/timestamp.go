package core

import "time"

// Wire timestamps are RFC 3339 with an explicit offset. The local edit
// form is date plus time to the minute, no seconds, no offset; the
// location is always passed in explicitly so nothing here reads ambient
// timezone state. Converting wire -> local -> wire preserves the instant
// to the minute (seconds and subseconds are zeroed, an accepted loss).

const localMinuteLayout = "2006-01-02T15:04"

// ParseWire parses an RFC 3339 timestamp with any offset.
func ParseWire(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// FormatWire renders an instant for the wire, normalized to UTC.
func FormatWire(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ToLocalMinute renders an instant as the local edit form in loc.
func ToLocalMinute(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(localMinuteLayout)
}

// FromLocalMinute parses the local edit form back into an instant.
func FromLocalMinute(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(localMinuteLayout, s, loc)
}
