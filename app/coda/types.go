package coda

import (
	"encoding/json"
	"strconv"
)

// CellKind enumerates the closed set of shapes a Coda cell value can take.
// Values are normalized into this variant on ingress so the rest of the
// application never touches raw JSON.
type CellKind int

const (
	KindScalar CellKind = iota
	KindList
	KindMediaRef
)

// CellValue holds one row/column intersection. Exactly one of the shape
// fields is meaningful, selected by Kind. The zero value is an empty scalar.
type CellValue struct {
	Kind   CellKind
	Scalar string
	List   []CellValue
	URL    string
}

func (v *CellValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = decodeCell(raw)
	return nil
}

// IsTrue reports whether the cell holds a boolean true. Coda checkbox
// columns arrive as JSON booleans.
func (v CellValue) IsTrue() bool {
	return v.Kind == KindScalar && v.Scalar == "true"
}

func decodeCell(raw interface{}) CellValue {
	switch val := raw.(type) {
	case nil:
		return CellValue{}
	case string:
		return CellValue{Kind: KindScalar, Scalar: val}
	case bool:
		return CellValue{Kind: KindScalar, Scalar: strconv.FormatBool(val)}
	case float64:
		return CellValue{Kind: KindScalar, Scalar: strconv.FormatFloat(val, 'f', -1, 64)}
	case []interface{}:
		list := make([]CellValue, 0, len(val))
		for _, el := range val {
			list = append(list, decodeCell(el))
		}
		return CellValue{Kind: KindList, List: list}
	case map[string]interface{}:
		if url, ok := val["url"].(string); ok {
			return CellValue{Kind: KindMediaRef, URL: url}
		}
		// Structured value without a url (e.g. a person chip); fall back to
		// its display name so downstream normalization sees text.
		if name, ok := val["name"].(string); ok {
			return CellValue{Kind: KindScalar, Scalar: name}
		}
		return CellValue{}
	default:
		return CellValue{}
	}
}

// Row is one record of a Coda table, keyed by opaque column IDs.
type Row struct {
	ID     string               `json:"id"`
	Values map[string]CellValue `json:"values"`
}

// Cell returns the value for a column ID, or an empty scalar when the
// column is absent from the row.
func (r Row) Cell(columnID string) CellValue {
	return r.Values[columnID]
}

type rowsResponse struct {
	Items []Row `json:"items"`
}

type columnResponse struct {
	Format struct {
		Options []struct {
			Name string `json:"name"`
		} `json:"options"`
	} `json:"format"`
}

type insertRowsRequest struct {
	Rows []insertRow `json:"rows"`
}

type insertRow struct {
	Cells []insertCell `json:"cells"`
}

type insertCell struct {
	Column string      `json:"column"`
	Value  interface{} `json:"value"`
}
