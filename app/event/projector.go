package event

import (
	"sort"
	"time"

	"github.com/lysyi3m/event-comb/app/coda"
	"github.com/lysyi3m/event-comb/app/schema"
)

// Options selects which optional filter stages a projection run applies.
// The surfaces consuming the pipeline differ only in these three flags.
type Options struct {
	RequireFutureDate  bool
	RequireDisplayFlag bool
	RequireLocation    bool
}

// Projector transforms raw table rows into the sorted Record list used by
// every surface. A malformed row is filtered out or patched with defaults,
// never fatal.
type Projector struct {
	cols schema.EventColumns
}

func NewProjector(cols schema.EventColumns) *Projector {
	return &Projector{cols: cols}
}

func (p *Projector) Run(rows []coda.Row, allowedOptions []string, opts Options) []Record {
	records := make([]Record, 0, len(rows))

	for _, row := range rows {
		record, keep := p.buildRecord(row, allowedOptions, opts)
		if keep {
			records = append(records, record)
		}
	}

	sortRecords(records)

	return records
}

func (p *Projector) buildRecord(row coda.Row, allowedOptions []string, opts Options) (Record, bool) {
	status := Normalize(row.Cell(p.cols.Status))
	if !IsEligibleStatus(status, allowedOptions) {
		return Record{}, false
	}

	if row.Cell(p.cols.TestBooking).IsTrue() {
		return Record{}, false
	}

	name := Normalize(row.Cell(p.cols.DisplayName))
	if name == "" {
		name = Normalize(row.Cell(p.cols.Name))
	}
	if name == "" {
		return Record{}, false
	}

	if opts.RequireDisplayFlag && !row.Cell(p.cols.DisplayOnWebsite).IsTrue() {
		return Record{}, false
	}

	startRaw := Normalize(row.Cell(p.cols.Start))
	endRaw := Normalize(row.Cell(p.cols.End))
	start, hasStart := ParseTimestamp(startRaw)

	if opts.RequireFutureDate && hasStart && start.In(time.Local).Before(todayLocal()) {
		return Record{}, false
	}

	location := Normalize(row.Cell(p.cols.Location))
	if location == "" {
		location = TBC
	}
	if opts.RequireLocation && location == TBC {
		return Record{}, false
	}

	timing := FormatTiming(startRaw, endRaw)

	return Record{
		ID:               row.ID,
		Name:             name,
		RawDate:          startRaw,
		RawEndDate:       endRaw,
		DateDisplay:      timing.DateDisplay,
		TimeDisplay:      timing.TimeDisplay,
		IsMultiDay:       timing.IsMultiDay,
		Location:         location,
		Type:             Normalize(row.Cell(p.cols.Type)),
		FlyerURL:         extractFlyerURL(row.Cell(p.cols.Flyer)),
		Status:           status,
		DisplayOnWebsite: row.Cell(p.cols.DisplayOnWebsite).IsTrue(),
		start:            start,
		hasStart:         hasStart,
	}, true
}

// extractFlyerURL handles the two shapes the flyer cell arrives in: a
// non-empty list of attachments (take the first) or a single media
// reference. Anything else yields no flyer.
func extractFlyerURL(cell coda.CellValue) *string {
	switch cell.Kind {
	case coda.KindList:
		if len(cell.List) > 0 && cell.List[0].Kind == coda.KindMediaRef && cell.List[0].URL != "" {
			url := cell.List[0].URL
			return &url
		}
	case coda.KindMediaRef:
		if cell.URL != "" {
			url := cell.URL
			return &url
		}
	}
	return nil
}

// sortRecords imposes the total order: dated records first in
// chronological order, then undated records by name. Remaining ties fall
// back to ID so the order never depends on input order.
func sortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]

		if a.hasStart != b.hasStart {
			return a.hasStart
		}
		if a.hasStart && !a.start.Equal(b.start) {
			return a.start.Before(b.start)
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}
