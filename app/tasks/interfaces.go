package tasks

import (
	"context"

	"github.com/lysyi3m/event-comb/app/event"
)

// TaskSchedulerInterface is the surface the HTTP layer uses to trigger
// background work (e.g. an admin-requested snapshot refresh).
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// EventFetcher is the slice of the pipeline the refresh task needs.
type EventFetcher interface {
	FetchEvents(ctx context.Context, opts event.Options, enrich bool) ([]event.Record, error)
}
