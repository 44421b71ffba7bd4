package event

import (
	"strings"

	"github.com/lysyi3m/event-comb/app/coda"
)

// Normalize flattens a cell value into plain display text. Lists are
// normalized element-wise and joined with ", ", media references collapse
// to their URL, and scalar text loses the ``` rich-text markers Coda wraps
// around formatted cells. Always returns a string, idempotent on its own
// output.
func Normalize(value coda.CellValue) string {
	switch value.Kind {
	case coda.KindList:
		parts := make([]string, 0, len(value.List))
		for _, el := range value.List {
			parts = append(parts, Normalize(el))
		}
		return strings.Join(parts, ", ")
	case coda.KindMediaRef:
		return value.URL
	default:
		return strings.TrimSpace(strings.ReplaceAll(value.Scalar, "```", ""))
	}
}
