package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Schema maps the logical fields the pipeline works with to the opaque
// table and column IDs of the Coda document. A YAML file can override any
// subset of the defaults, which mirror the production document.
type Schema struct {
	EventsTable string        `yaml:"events_table"`
	PeopleTable string        `yaml:"people_table"`
	Events      EventColumns  `yaml:"events"`
	People      PeopleColumns `yaml:"people"`
}

type EventColumns struct {
	Status           string `yaml:"status"`
	TestBooking      string `yaml:"test_booking"`
	Name             string `yaml:"name"`
	DisplayName      string `yaml:"display_name"`
	Start            string `yaml:"start"`
	End              string `yaml:"end"`
	Location         string `yaml:"location"`
	Type             string `yaml:"type"`
	Flyer            string `yaml:"flyer"`
	DisplayOnWebsite string `yaml:"display_on_website"`
}

type PeopleColumns struct {
	FullName     string `yaml:"full_name"`
	FirstName    string `yaml:"first_name"`
	LastName     string `yaml:"last_name"`
	Email        string `yaml:"email"`
	Phone        string `yaml:"phone"`
	City         string `yaml:"city"`
	Interest     string `yaml:"interest"`
	Events       string `yaml:"events"`
	Subscribe    string `yaml:"subscribe"`
	Source       string `yaml:"source"`
	RegisteredOn string `yaml:"registered_on"`
}

// Default returns the column mapping of the production document.
func Default() *Schema {
	return &Schema{
		EventsTable: "grid-sync-1054-Table-dynamic-7d732c10a0257d78bcc179ab2941dbee0613320f6422067d6b26b6e62d2d2826",
		PeopleTable: "grid-3fCtsRiA3y",
		Events: EventColumns{
			Status:           "c-GGlBmT6_60",
			TestBooking:      "c-00ofsnuDNv",
			Name:             "c-Nxi1p8B_Co",
			DisplayName:      "c-nt9EyNdKMS",
			Start:            "c-VPvKp33AS8",
			End:              "c-5H6RVLh1bm",
			Location:         "c-kYqV9PswOT",
			Type:             "c-BjwTfSWxn9",
			Flyer:            "c-n4MUP5xEZ6",
			DisplayOnWebsite: "c-uD3PqXzWkM",
		},
		People: PeopleColumns{
			FullName:     "c-rZ9KroAK5e",
			FirstName:    "c-xMcm4BsqD5",
			LastName:     "c-wh0I8bH1Pw",
			Email:        "c-vIgbOysVdU",
			Phone:        "c-Fm0EQERoEQ",
			City:         "c-wuPInc9Fy4",
			Interest:     "c-QKPF4SeChY",
			Events:       "c-JbV0QvPZYz",
			Subscribe:    "c-yW5dQ-WL1h",
			Source:       "c-qHz6jtPLg5",
			RegisteredOn: "c-B6JxOGKeC5",
		},
	}
}

// Load reads a YAML override file on top of the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Schema, error) {
	schema := Default()

	if path == "" {
		return schema, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	if err := yaml.Unmarshal(data, schema); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	if err := schema.validate(); err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", path, err)
	}

	return schema, nil
}

func (s *Schema) validate() error {
	required := map[string]string{
		"events table":     s.EventsTable,
		"people table":     s.PeopleTable,
		"status column":    s.Events.Status,
		"name column":      s.Events.Name,
		"start column":     s.Events.Start,
		"email column":     s.People.Email,
		"full name column": s.People.FullName,
	}

	for fieldName, fieldValue := range required {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	return nil
}
