package event

import (
	"testing"

	"github.com/lysyi3m/event-comb/app/coda"
)

func TestNormalize_Scalar(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "Ganga Yatra", "Ganga Yatra"},
		{"rich text markers", "```Confirmed```", "Confirmed"},
		{"surrounding whitespace", "  London Centre  ", "London Centre"},
		{"markers and whitespace", " ```Live``` ", "Live"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(coda.CellValue{Kind: coda.KindScalar, Scalar: tc.input})
			if got != tc.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestNormalize_ZeroValue(t *testing.T) {
	// A missing cell arrives as the zero CellValue.
	if got := Normalize(coda.CellValue{}); got != "" {
		t.Errorf("Expected empty string for zero value, got %q", got)
	}
}

func TestNormalize_List(t *testing.T) {
	value := coda.CellValue{
		Kind: coda.KindList,
		List: []coda.CellValue{
			{Kind: coda.KindScalar, Scalar: "```Bhagavad Gita```"},
			{Kind: coda.KindScalar, Scalar: " Hanuman Chalisa "},
		},
	}

	got := Normalize(value)
	if got != "Bhagavad Gita, Hanuman Chalisa" {
		t.Errorf("Expected joined list, got %q", got)
	}
}

func TestNormalize_NestedList(t *testing.T) {
	value := coda.CellValue{
		Kind: coda.KindList,
		List: []coda.CellValue{
			{Kind: coda.KindScalar, Scalar: "a"},
			{Kind: coda.KindList, List: []coda.CellValue{
				{Kind: coda.KindScalar, Scalar: "b"},
				{Kind: coda.KindScalar, Scalar: "c"},
			}},
		},
	}

	if got := Normalize(value); got != "a, b, c" {
		t.Errorf("Expected recursive join, got %q", got)
	}
}

func TestNormalize_MediaRef(t *testing.T) {
	value := coda.CellValue{Kind: coda.KindMediaRef, URL: "https://cdn.example.com/flyer.pdf"}
	if got := Normalize(value); got != "https://cdn.example.com/flyer.pdf" {
		t.Errorf("Expected media ref URL, got %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"```Confirmed```", "  text  ", "plain", ""}

	for _, input := range inputs {
		once := Normalize(coda.CellValue{Kind: coda.KindScalar, Scalar: input})
		twice := Normalize(coda.CellValue{Kind: coda.KindScalar, Scalar: once})
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
