package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lysyi3m/event-comb/app/coda"
	"github.com/lysyi3m/event-comb/app/event"
	"github.com/lysyi3m/event-comb/app/geocode"
	"github.com/lysyi3m/event-comb/app/schema"
)

// Pipeline runs one full projection: fetch raw rows and the status
// column's allowed options concurrently, project, and optionally enrich
// with coordinates. Each call is an isolated run; the only shared state
// is the geocode cache inside the geocoder.
type Pipeline struct {
	client    *coda.Client
	schema    *schema.Schema
	projector *event.Projector
	geocoder  *geocode.Geocoder
}

func New(client *coda.Client, sch *schema.Schema, projector *event.Projector, geocoder *geocode.Geocoder) *Pipeline {
	return &Pipeline{
		client:    client,
		schema:    sch,
		projector: projector,
		geocoder:  geocoder,
	}
}

// FetchEvents produces the sorted Record list. A rows fetch failure is
// fatal and propagated; a status-options fetch failure degrades to the
// static keyword fallback and is only logged.
func (p *Pipeline) FetchEvents(ctx context.Context, opts event.Options, enrich bool) ([]event.Record, error) {
	var (
		rows    []coda.Row
		rowsErr error
		options []string
		wg      sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		rows, rowsErr = p.client.ListRows(ctx, p.schema.EventsTable)
	}()
	go func() {
		defer wg.Done()
		fetched, err := p.client.ColumnOptions(ctx, p.schema.EventsTable, p.schema.Events.Status)
		if err != nil {
			slog.Warn("Status options lookup failed, using keyword fallback", "error", err)
			return
		}
		options = event.FilterStatusOptions(fetched)
	}()
	wg.Wait()

	if rowsErr != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", rowsErr)
	}

	records := p.projector.Run(rows, options, opts)

	if enrich {
		records = p.geocoder.Enrich(ctx, records)
	}

	return records, nil
}

// EventSummaries produces the reduced projection for the registration
// form: future, eligible, named events only.
func (p *Pipeline) EventSummaries(ctx context.Context) ([]event.Summary, error) {
	records, err := p.FetchEvents(ctx, event.Options{RequireFutureDate: true}, false)
	if err != nil {
		return nil, err
	}
	return event.Summaries(records), nil
}
