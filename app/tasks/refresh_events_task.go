package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/event-comb/app/event"
	"github.com/lysyi3m/event-comb/app/metrics"
	"github.com/lysyi3m/event-comb/app/store"
)

// RefreshEventsTask rebuilds the last-good snapshot: fetch, project with
// the public-timeline options, enrich, store. A failed run leaves the
// previous snapshot untouched.
type RefreshEventsTask struct {
	Task
	fetcher  EventFetcher
	snapshot *store.Snapshot
}

func NewRefreshEventsTask(fetcher EventFetcher, snapshot *store.Snapshot) *RefreshEventsTask {
	return &RefreshEventsTask{
		Task:     NewTask(TaskTypeRefreshEvents),
		fetcher:  fetcher,
		snapshot: snapshot,
	}
}

func (t *RefreshEventsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	records, err := t.fetcher.FetchEvents(ctx, event.Options{RequireDisplayFlag: true}, true)
	if err != nil {
		metrics.TaskRuns.WithLabelValues(string(TaskTypeRefreshEvents), "error").Inc()
		return fmt.Errorf("failed to refresh events: %w", err)
	}

	t.snapshot.Set(records)
	metrics.TaskRuns.WithLabelValues(string(TaskTypeRefreshEvents), "success").Inc()

	geocoded := 0
	for _, r := range records {
		if r.Coords != nil {
			geocoded++
		}
	}

	slog.Info("Task completed",
		"type", "RefreshEvents",
		"duration", t.GetDuration(),
		"events", len(records),
		"geocoded", geocoded)

	return nil
}
