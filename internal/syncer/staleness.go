package syncer

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ShouldUpdate reports whether the source modification timestamp is newer
// than the one recorded in the destination.
//
// When both values carry a time of day the full timestamps are compared;
// otherwise only calendar dates are. Zone offsets are ignored and the wall
// clock reading is used as-is. An absent or unparseable value on either side
// yields true.
func ShouldUpdate(destModified, srcModified string) bool {
	dest, destTime, ok := parseModified(destModified)
	if !ok {
		return true
	}
	src, srcTime, ok := parseModified(srcModified)
	if !ok {
		return true
	}

	if destTime && srcTime {
		return src.After(dest)
	}
	return dateOnly(src).After(dateOnly(dest))
}

// parseModified parses raw and returns its wall-clock reading in UTC and
// whether raw included a time of day.
func parseModified(raw string) (time.Time, bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, false
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return time.Time{}, false, false
	}
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return wall, strings.Contains(raw, ":"), true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
