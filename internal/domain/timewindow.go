package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// TimeWindow is a [start, end] pair of unix seconds. A nil bound is
// encoded as JSON null and means the bound is unknown.
type TimeWindow [2]*int64

// NullWindow is the window used whenever opening hours are missing or unusable.
var NullWindow = TimeWindow{nil, nil}

func (w TimeWindow) IsNull() bool { return w[0] == nil || w[1] == nil }

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseTimeWindow builds a window from two ISO-8601 literals.
// Any missing or malformed bound, or an end before the start, yields NullWindow.
func ParseTimeWindow(start, end any) TimeWindow {
	s, ok := parseInstant(start)
	if !ok {
		return NullWindow
	}
	e, ok := parseInstant(end)
	if !ok {
		return NullWindow
	}
	if e.Before(s) {
		return NullWindow
	}

	su, eu := s.Unix(), e.Unix()
	return TimeWindow{&su, &eu}
}

func parseInstant(v any) (time.Time, bool) {
	var raw string
	switch t := v.(type) {
	case string:
		raw = t
	case map[string]any:
		return parseInstant(t["@value"])
	case []any:
		if len(t) != 1 {
			return time.Time{}, false
		}
		return parseInstant(t[0])
	case json.Number:
		raw = t.String()
	default:
		return time.Time{}, false
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range timeLayouts {
		// Zone-less layouts are read as UTC.
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
