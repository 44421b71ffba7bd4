package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/event-comb/app/event"
	"github.com/lysyi3m/event-comb/app/schema"
	"github.com/lysyi3m/event-comb/app/store"
	"github.com/lysyi3m/event-comb/app/tasks"
)

const (
	defaultRegistrationSource = "CM75 Registration"
	subscribeSource           = "Subscribe Form"
)

func NewHandler(pipeline PipelineInterface, registrar RegistrarInterface,
	snapshot *store.Snapshot, sch *schema.Schema,
	scheduler tasks.TaskSchedulerInterface, version string) *Handler {
	return &Handler{
		pipeline:  pipeline,
		registrar: registrar,
		snapshot:  snapshot,
		schema:    sch,
		scheduler: scheduler,
		version:   version,
	}
}

// GetEvents serves the full enriched event list for the timeline and map
// surfaces. On an upstream failure it degrades to the last-good snapshot;
// without one it reports a structured error.
func (h *Handler) GetEvents(c *gin.Context) {
	records, err := h.pipeline.FetchEvents(c.Request.Context(), event.Options{RequireDisplayFlag: true}, true)
	if err != nil {
		slog.Error("Event fetch failed", "operation", "get_events", "error", err)

		if cached, updatedAt, ok := h.snapshot.Get(); ok {
			c.Header("X-Events-Source", "snapshot")
			c.Header("X-Last-Updated", updatedAt.Format(time.RFC3339))
			c.JSON(http.StatusOK, cached)
			return
		}

		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch events from upstream"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetEventSummaries serves the reduced projection for the registration
// form's event selector: future, visible, eligible events only.
func (h *Handler) GetEventSummaries(c *gin.Context) {
	summaries, err := h.pipeline.EventSummaries(c.Request.Context())
	if err != nil {
		slog.Error("Event fetch failed", "operation", "get_event_summaries", "error", err)

		if cached, updatedAt, ok := h.snapshot.Get(); ok {
			upcoming := make([]event.Record, 0, len(cached))
			for _, r := range cached {
				if r.Upcoming() {
					upcoming = append(upcoming, r)
				}
			}
			c.Header("X-Events-Source", "snapshot")
			c.Header("X-Last-Updated", updatedAt.Format(time.RFC3339))
			c.JSON(http.StatusOK, event.Summaries(upcoming))
			return
		}

		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch events from upstream"})
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GetInterests serves the area-of-interest vocabulary from the people
// table's select column.
func (h *Handler) GetInterests(c *gin.Context) {
	h.serveColumnOptions(c, h.schema.People.Interest, "get_interests")
}

// GetLocations serves the location vocabulary from the people table's
// select column.
func (h *Handler) GetLocations(c *gin.Context) {
	h.serveColumnOptions(c, h.schema.People.City, "get_locations")
}

func (h *Handler) serveColumnOptions(c *gin.Context, columnID, operation string) {
	options, err := h.registrar.ColumnOptions(c.Request.Context(), h.schema.PeopleTable, columnID)
	if err != nil {
		slog.Error("Column options fetch failed", "operation", operation, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch options from upstream"})
		return
	}

	c.JSON(http.StatusOK, options)
}

// Register appends one row to the people table. The insert is atomic;
// there are no partial writes.
func (h *Handler) Register(c *gin.Context) {
	var req registrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		fullName = strings.TrimSpace(strings.TrimSpace(req.FirstName) + " " + strings.TrimSpace(req.LastName))
	}

	if fullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	events := req.Events
	if len(events) == 0 && req.Event != "" {
		events = []string{req.Event}
	}

	source := req.Source
	if source == "" {
		source = defaultRegistrationSource
	}

	cols := h.schema.People
	cells := map[string]interface{}{
		cols.FullName:     fullName,
		cols.FirstName:    req.FirstName,
		cols.LastName:     req.LastName,
		cols.Email:        req.Email,
		cols.Phone:        req.Phone,
		cols.City:         req.City,
		cols.Interest:     req.AreaOfInterest,
		cols.Events:       events,
		cols.Subscribe:    req.Subscribe,
		cols.Source:       source,
		cols.RegisteredOn: time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.registrar.InsertRow(c.Request.Context(), h.schema.PeopleTable, cells); err != nil {
		slog.Error("Registration insert failed", "operation", "register", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to submit registration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Subscribe appends a mailing-list row to the people table.
func (h *Handler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	cols := h.schema.People
	cells := map[string]interface{}{
		cols.FullName:     strings.TrimSpace(req.Name),
		cols.Email:        req.Email,
		cols.Subscribe:    true,
		cols.Source:       subscribeSource,
		cols.RegisteredOn: time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.registrar.InsertRow(c.Request.Context(), h.schema.PeopleTable, cells); err != nil {
		slog.Error("Subscription insert failed", "operation", "subscribe", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to submit subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
	}

	if events, updatedAt, ok := h.snapshot.Get(); ok {
		health["snapshot_events"] = len(events)
		health["snapshot_updated_at"] = updatedAt.Format(time.RFC3339)
		health["snapshot_age"] = h.snapshot.Age().String()
	} else {
		health["snapshot_events"] = 0
	}

	c.JSON(http.StatusOK, health)
}

// APIRefreshEvents enqueues an immediate snapshot refresh.
func (h *Handler) APIRefreshEvents(c *gin.Context) {
	fetcher, ok := h.pipeline.(tasks.EventFetcher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Refresh is not available"})
		return
	}

	task := tasks.NewRefreshEventsTask(fetcher, h.snapshot)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Error enqueueing refresh task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue refresh task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"task": gin.H{
			"id":   task.ID,
			"type": task.Type,
		},
	})
}
