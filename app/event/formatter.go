package event

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Timing holds the display strings derived from a row's raw start/end
// timestamps.
type Timing struct {
	DateDisplay string
	TimeDisplay string
	IsMultiDay  bool
}

// ParseTimestamp leniently parses a raw cell timestamp. Unparseable or
// empty input is reported as absent rather than an error; a bad date in
// one row must never abort the pipeline.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	t, err := dateparse.ParseIn(raw, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatTiming converts raw start/end timestamps into display strings.
// Unknown start yields the TBC sentinels. Multi-day spans render as
// "02 Jan - 04 Jan 2026"; times always use the 24-hour clock.
func FormatTiming(startRaw, endRaw string) Timing {
	start, ok := ParseTimestamp(startRaw)
	if !ok {
		return Timing{DateDisplay: TBC, TimeDisplay: TBC, IsMultiDay: false}
	}
	start = start.In(time.Local)

	end, hasEnd := ParseTimestamp(endRaw)
	if !hasEnd {
		return Timing{
			DateDisplay: start.Format("02 Jan 2006"),
			TimeDisplay: start.Format("15:04"),
			IsMultiDay:  false,
		}
	}
	end = end.In(time.Local)

	isMultiDay := start.Format("2006-01-02") != end.Format("2006-01-02")

	dateDisplay := start.Format("02 Jan 2006")
	if isMultiDay {
		dateDisplay = start.Format("02 Jan") + " - " + end.Format("02 Jan 2006")
	}

	return Timing{
		DateDisplay: dateDisplay,
		TimeDisplay: start.Format("15:04") + " - " + end.Format("15:04"),
		IsMultiDay:  isMultiDay,
	}
}
