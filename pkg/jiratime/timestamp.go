// Package jiratime converts between JIRA's REST timestamp wire format and offset-aware time values.
//
// JIRA renders timestamps as "2006-01-02T15:04:05.000-0700": fractional seconds and an offset
// without a colon, which time.RFC3339 refuses. A Codec accepts that form as well as the
// colon-separated one and renders values back in the compact form.
package jiratime

import (
	"time"
)

// Timestamp is an instant paired with the UTC offset it was observed in.
type Timestamp struct {
	time.Time
}

// At wraps t, keeping its location and therefore its offset.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// Date returns the Timestamp for the given wall clock in a fixed zone with the given offset.
func Date(year int, month time.Month, day, hour, min, sec, nsec int, offset time.Duration) Timestamp {
	loc := time.FixedZone("", int(offset/time.Second))
	return Timestamp{Time: time.Date(year, month, day, hour, min, sec, nsec, loc)}
}

// Offset reports the UTC offset of the timestamp.
func (ts Timestamp) Offset() time.Duration {
	_, secs := ts.Zone()
	return time.Duration(secs) * time.Second
}

// MarshalJSON renders the timestamp in wire form using the default codec.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return Default().EncodeJSON(ts)
}

// UnmarshalJSON parses a wire-form JSON string using the default codec.
// JSON null is not a timestamp and fails with a FormatError like any other
// non-string token; use *Timestamp for optional fields.
func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	v, err := Default().DecodeJSON(b)
	if err != nil {
		return err
	}
	*ts = v
	return nil
}
