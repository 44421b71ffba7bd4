package schema

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	s := Default()

	if s.EventsTable == "" {
		t.Error("Default schema should have an events table")
	}
	if s.PeopleTable == "" {
		t.Error("Default schema should have a people table")
	}
	if s.Events.Status == "" || s.Events.Name == "" || s.Events.Start == "" {
		t.Error("Default schema should map the core event columns")
	}
	if s.People.Email == "" {
		t.Error("Default schema should map the email column")
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load with empty path failed: %v", err)
	}
	if s.EventsTable != Default().EventsTable {
		t.Error("Empty path should return the default schema")
	}
}

func TestLoad_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yml")

	content := `
events_table: grid-custom-events
events:
  status: c-custom-status
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test schema: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.EventsTable != "grid-custom-events" {
		t.Errorf("Expected overridden events table, got '%s'", s.EventsTable)
	}
	if s.Events.Status != "c-custom-status" {
		t.Errorf("Expected overridden status column, got '%s'", s.Events.Status)
	}
	// Fields not present in the file keep their defaults.
	if s.Events.Name != Default().Events.Name {
		t.Errorf("Expected default name column, got '%s'", s.Events.Name)
	}
	if s.PeopleTable != Default().PeopleTable {
		t.Errorf("Expected default people table, got '%s'", s.PeopleTable)
	}
}

func TestLoad_InvalidOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yml")

	content := `
events:
  status: ""
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test schema: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for schema clearing a required column")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/schema.yml"); err == nil {
		t.Error("Expected error for missing schema file")
	}
}
