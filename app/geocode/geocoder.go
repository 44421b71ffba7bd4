package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/lysyi3m/event-comb/app/event"
	"github.com/lysyi3m/event-comb/app/metrics"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Geocoder resolves venue addresses to coordinates through the Google
// geocoding API. Lookups are best-effort: any failure logs and yields no
// coordinates, never an error to the caller.
type Geocoder struct {
	// BaseURL is overridable for tests.
	BaseURL string

	apiKey      string
	cache       *Cache
	httpClient  *http.Client
	concurrency int
}

func NewGeocoder(apiKey string, cache *Cache, httpClient *http.Client, concurrency int) *Geocoder {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Geocoder{
		BaseURL:     defaultBaseURL,
		apiKey:      apiKey,
		cache:       cache,
		httpClient:  httpClient,
		concurrency: concurrency,
	}
}

// Enrich attaches coordinates to each record in parallel, bounded by the
// configured concurrency. Records with an empty or TBC location are left
// untouched. The input slice is modified in place and returned.
func (g *Geocoder) Enrich(ctx context.Context, records []event.Record) []event.Record {
	var wg sync.WaitGroup
	sem := make(chan struct{}, g.concurrency)

	for i := range records {
		location := records[i].Location
		if location == "" || location == event.TBC {
			metrics.GeocodeLookups.WithLabelValues("skipped").Inc()
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			records[i].Coords = g.lookup(ctx, records[i].Location)
		}(i)
	}

	wg.Wait()
	return records
}

func (g *Geocoder) lookup(ctx context.Context, address string) *event.Coords {
	if coords, ok := g.cache.Get(address); ok {
		metrics.GeocodeLookups.WithLabelValues("hit").Inc()
		return &coords
	}

	if g.apiKey == "" {
		slog.Debug("Geocoding disabled, no API key configured", "address", address)
		metrics.GeocodeLookups.WithLabelValues("skipped").Inc()
		return nil
	}

	coords, err := g.fetch(ctx, address)
	if err != nil {
		slog.Warn("Geocoding lookup failed", "address", address, "error", err)
		metrics.GeocodeLookups.WithLabelValues("error").Inc()
		return nil
	}

	g.cache.Set(address, *coords)
	metrics.GeocodeLookups.WithLabelValues("miss").Inc()
	return coords
}

func (g *Geocoder) fetch(ctx context.Context, address string) (*event.Coords, error) {
	endpoint := fmt.Sprintf("%s?address=%s&key=%s", g.BaseURL, url.QueryEscape(address), url.QueryEscape(g.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var body struct {
		Status  string `json:"status"`
		Results []struct {
			Geometry struct {
				Location event.Coords `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if body.Status != "OK" || len(body.Results) == 0 {
		return nil, fmt.Errorf("geocoding returned status %s", body.Status)
	}

	coords := body.Results[0].Geometry.Location
	return &coords, nil
}
