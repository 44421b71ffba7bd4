package event

import (
	"time"
)

// TBC is the sentinel for unknown date, time, or location.
const TBC = "TBC"

type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Record is the normalized representation of one bookable event, rebuilt
// from the source table on every fetch.
type Record struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	RawDate          string  `json:"rawDate"`
	RawEndDate       string  `json:"rawEndDate"`
	DateDisplay      string  `json:"dateDisplay"`
	TimeDisplay      string  `json:"timeDisplay"`
	IsMultiDay       bool    `json:"isMultiDay"`
	Location         string  `json:"location"`
	Type             string  `json:"type"`
	FlyerURL         *string `json:"flyerUrl"`
	Status           string  `json:"status"`
	DisplayOnWebsite bool    `json:"displayOnWebsite"`
	Coords           *Coords `json:"coords"`

	// Parsed start timestamp, kept off the wire and used only for sorting
	// and the future-date filter.
	start    time.Time
	hasStart bool
}

// Upcoming reports whether the event starts today or later in local time.
// Events without a parseable start date count as upcoming (they are TBC,
// not past).
func (r Record) Upcoming() bool {
	if !r.hasStart {
		return true
	}
	return !r.start.In(time.Local).Before(todayLocal())
}

func todayLocal() time.Time {
	now := time.Now().In(time.Local)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

// Summary is the reduced projection consumed by the registration form's
// event selector.
type Summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

// Summaries reduces records to the selector projection, preserving order.
func Summaries(records []Record) []Summary {
	summaries := make([]Summary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, Summary{ID: r.ID, Name: r.Name, Date: r.RawDate})
	}
	return summaries
}
