package api

import (
	"context"

	"github.com/lysyi3m/event-comb/app/coda"
	"github.com/lysyi3m/event-comb/app/event"
	"github.com/lysyi3m/event-comb/app/pipeline"
	"github.com/lysyi3m/event-comb/app/schema"
	"github.com/lysyi3m/event-comb/app/store"
	"github.com/lysyi3m/event-comb/app/tasks"
)

type PipelineInterface interface {
	FetchEvents(ctx context.Context, opts event.Options, enrich bool) ([]event.Record, error)
	EventSummaries(ctx context.Context) ([]event.Summary, error)
}

var _ PipelineInterface = (*pipeline.Pipeline)(nil)

type RegistrarInterface interface {
	ColumnOptions(ctx context.Context, tableID, columnID string) ([]string, error)
	InsertRow(ctx context.Context, tableID string, cells map[string]interface{}) error
}

var _ RegistrarInterface = (*coda.Client)(nil)

type Handler struct {
	pipeline  PipelineInterface
	registrar RegistrarInterface
	snapshot  *store.Snapshot
	schema    *schema.Schema
	scheduler tasks.TaskSchedulerInterface
	version   string
}

type registrationRequest struct {
	FullName       string   `json:"fullName"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	City           string   `json:"city"`
	AreaOfInterest string   `json:"areaOfInterest"`
	Events         []string `json:"events"`
	Event          string   `json:"event"`
	Subscribe      bool     `json:"subscribe"`
	Source         string   `json:"source"`
}

type subscribeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
