package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date form the API uses for issue dates.
const DateLayout = "2006-01-02"

// dateLayouts are tried in order. Fractional seconds are accepted by the
// parser after the seconds field even when a layout does not declare them.
var dateLayouts = []string{
	DateLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Date is a timestamp field that accepts a calendar date or an ISO-8601
// date-time. Values that match no layout decode to the zero Date rather than
// failing the whole record; the decoded text is kept and written back.
type Date struct {
	time.Time
	raw string
}

// NewDate returns a Date that marshals as YYYY-MM-DD.
func NewDate(t time.Time) Date {
	return Date{Time: t, raw: t.Format(DateLayout)}
}

// ParseDate parses s with the supported layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Raw returns the text the date was decoded from.
func (d Date) Raw() string { return d.raw }

func (d *Date) UnmarshalJSON(b []byte) error {
	*d = Date{}
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	d.raw = s
	if t, ok := ParseDate(s); ok {
		d.Time = t
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	switch {
	case d.raw != "":
		return json.Marshal(d.raw)
	case d.Time.IsZero():
		return []byte("null"), nil
	default:
		return json.Marshal(d.Time.Format(time.RFC3339Nano))
	}
}

// IsZero reports whether the date is absent. Unparseable text still counts
// as present.
func (d Date) IsZero() bool {
	return d.Time.IsZero() && d.raw == ""
}

// ID is a resource identifier. The API sends numeric ids; string ids are
// accepted as well.
type ID string

func (id ID) String() string { return string(id) }

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("models: invalid id %s", b)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes canonical decimal ids ("42", "-3") as JSON numbers and
// everything else, including "007" and "+5", as JSON strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}
