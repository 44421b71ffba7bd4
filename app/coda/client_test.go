package coda

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListRows_DecodesCellShapes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Expected bearer token header, got '%s'", r.Header.Get("Authorization"))
		}
		if r.URL.Path != "/docs/doc-1/tables/grid-events/rows" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("valueFormat") != "rich" {
			t.Errorf("Expected rich value format, got '%s'", r.URL.Query().Get("valueFormat"))
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"items": [
				{
					"id": "i-row1",
					"values": {
						"c-status": "Confirmed",
						"c-test": true,
						"c-count": 42,
						"c-topics": ["Gita", "Chalisa"],
						"c-flyer": [{"url": "https://cdn.example.com/flyer.pdf", "name": "flyer"}],
						"c-owner": {"name": "Some Person"},
						"c-empty": null
					}
				}
			]
		}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "doc-1", "test-token", "test-agent", server.Client())

	rows, err := client.ListRows(context.Background(), "grid-events")
	if err != nil {
		t.Fatalf("ListRows failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row.ID != "i-row1" {
		t.Errorf("Expected row ID 'i-row1', got '%s'", row.ID)
	}

	if got := row.Cell("c-status"); got.Kind != KindScalar || got.Scalar != "Confirmed" {
		t.Errorf("Expected scalar 'Confirmed', got %+v", got)
	}
	if !row.Cell("c-test").IsTrue() {
		t.Error("Expected c-test to be true")
	}
	if got := row.Cell("c-count"); got.Scalar != "42" {
		t.Errorf("Expected number coerced to '42', got '%s'", got.Scalar)
	}

	topics := row.Cell("c-topics")
	if topics.Kind != KindList || len(topics.List) != 2 {
		t.Fatalf("Expected list of 2 topics, got %+v", topics)
	}
	if topics.List[0].Scalar != "Gita" {
		t.Errorf("Expected first topic 'Gita', got '%s'", topics.List[0].Scalar)
	}

	flyer := row.Cell("c-flyer")
	if flyer.Kind != KindList || len(flyer.List) != 1 {
		t.Fatalf("Expected flyer list of 1, got %+v", flyer)
	}
	if flyer.List[0].Kind != KindMediaRef || flyer.List[0].URL != "https://cdn.example.com/flyer.pdf" {
		t.Errorf("Expected media ref with flyer URL, got %+v", flyer.List[0])
	}

	if got := row.Cell("c-owner"); got.Kind != KindScalar || got.Scalar != "Some Person" {
		t.Errorf("Expected person chip flattened to name, got %+v", got)
	}

	if got := row.Cell("c-empty"); got.Kind != KindScalar || got.Scalar != "" {
		t.Errorf("Expected null cell to decode as empty scalar, got %+v", got)
	}

	// Missing column behaves like an empty scalar too.
	if got := row.Cell("c-missing"); got.Kind != KindScalar || got.Scalar != "" {
		t.Errorf("Expected missing cell to be empty scalar, got %+v", got)
	}
}

func TestListRows_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message": "Table not found"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "doc-1", "test-token", "", server.Client())

	_, err := client.ListRows(context.Background(), "grid-missing")
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Table not found" {
		t.Errorf("Expected upstream message, got '%s'", apiErr.Message)
	}
}

func TestColumnOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/docs/doc-1/tables/grid-people/columns/c-interest" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		io.WriteString(w, `{"format": {"options": [{"name": "Vedanta"}, {"name": "Yoga"}, {"name": ""}]}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "doc-1", "test-token", "", server.Client())

	options, err := client.ColumnOptions(context.Background(), "grid-people", "c-interest")
	if err != nil {
		t.Fatalf("ColumnOptions failed: %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("Expected 2 options (empty names dropped), got %d", len(options))
	}
	if options[0] != "Vedanta" || options[1] != "Yoga" {
		t.Errorf("Unexpected options: %v", options)
	}
}

func TestColumnOptions_NoFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id": "c-plain", "name": "Notes"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "doc-1", "test-token", "", server.Client())

	options, err := client.ColumnOptions(context.Background(), "grid-people", "c-plain")
	if err != nil {
		t.Fatalf("ColumnOptions failed: %v", err)
	}
	if len(options) != 0 {
		t.Errorf("Expected no options for a non-select column, got %v", options)
	}
}

func TestInsertRow(t *testing.T) {
	var captured insertRowsRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected JSON content type, got '%s'", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
		io.WriteString(w, `{"requestId": "req-1"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "doc-1", "test-token", "", server.Client())

	cells := map[string]interface{}{
		"c-email": "person@example.com",
		"c-name":  "A Person",
		"c-sub":   true,
	}
	if err := client.InsertRow(context.Background(), "grid-people", cells); err != nil {
		t.Fatalf("InsertRow failed: %v", err)
	}

	if len(captured.Rows) != 1 {
		t.Fatalf("Expected 1 row in payload, got %d", len(captured.Rows))
	}
	row := captured.Rows[0]
	if len(row.Cells) != 3 {
		t.Fatalf("Expected 3 cells, got %d", len(row.Cells))
	}
	// Cells are sorted by column ID for a deterministic payload.
	if row.Cells[0].Column != "c-email" || row.Cells[1].Column != "c-name" || row.Cells[2].Column != "c-sub" {
		t.Errorf("Unexpected cell order: %+v", row.Cells)
	}
	if row.Cells[0].Value != "person@example.com" {
		t.Errorf("Unexpected email value: %v", row.Cells[0].Value)
	}
}

func TestInsertRow_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message": "Invalid column"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "doc-1", "test-token", "", server.Client())

	err := client.InsertRow(context.Background(), "grid-people", map[string]interface{}{"c-bogus": "x"})
	if err == nil {
		t.Fatal("Expected error for 400 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", apiErr.StatusCode)
	}
}
