package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/event-comb/app/api"
	"github.com/lysyi3m/event-comb/app/cfg"
	"github.com/lysyi3m/event-comb/app/coda"
	"github.com/lysyi3m/event-comb/app/event"
	"github.com/lysyi3m/event-comb/app/geocode"
	"github.com/lysyi3m/event-comb/app/pipeline"
	"github.com/lysyi3m/event-comb/app/schema"
	"github.com/lysyi3m/event-comb/app/store"
	"github.com/lysyi3m/event-comb/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Event Comb server", "version", appCfg.Version)

	sch, err := schema.Load(appCfg.SchemaFile)
	if err != nil {
		slog.Error("Failed to load schema", "error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	codaClient := coda.NewClient(appCfg.CodaBaseURL, appCfg.CodaDocID,
		appCfg.CodaAPIToken, appCfg.UserAgent, httpClient)

	geocodeCache := geocode.NewCache()
	geocoder := geocode.NewGeocoder(appCfg.GoogleMapsAPIKey, geocodeCache,
		httpClient, appCfg.GeocodeConcurrency)
	if appCfg.GoogleMapsAPIKey == "" {
		slog.Info("Geocoding disabled (GOOGLE_MAPS_API_KEY not set)")
	}

	projector := event.NewProjector(sch.Events)
	eventPipeline := pipeline.New(codaClient, sch, projector, geocoder)

	snapshot := store.NewSnapshot()

	slog.Info("Starting background scheduler",
		"workers", appCfg.WorkerCount, "interval_seconds", appCfg.RefreshInterval)
	scheduler := tasks.NewScheduler(eventPipeline, snapshot,
		time.Duration(appCfg.RefreshInterval)*time.Second, appCfg.WorkerCount)
	scheduler.Start()
	defer scheduler.Stop()

	apiHandler := api.NewHandler(eventPipeline, codaClient, snapshot, sch, scheduler, appCfg.Version)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
