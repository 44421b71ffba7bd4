package coda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/lysyi3m/event-comb/app/metrics"
)

// APIError is a non-2xx response from the Coda API, carrying the upstream
// status code and message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("coda API error: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("coda API error: %d", e.StatusCode)
}

type Client struct {
	baseURL    string
	docID      string
	token      string
	userAgent  string
	httpClient *http.Client
}

func NewClient(baseURL, docID, token, userAgent string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		docID:      docID,
		token:      token,
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// ListRows fetches all rows of a table with rich cell values keyed by
// column ID.
func (c *Client) ListRows(ctx context.Context, tableID string) ([]Row, error) {
	endpoint := fmt.Sprintf("/docs/%s/tables/%s/rows?useColumnNames=false&valueFormat=rich", c.docID, tableID)

	var resp rowsResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp, "list_rows"); err != nil {
		return nil, fmt.Errorf("failed to list rows for table %s: %w", tableID, err)
	}

	return resp.Items, nil
}

// ColumnOptions fetches the configured select choices of a column,
// returning their display names.
func (c *Client) ColumnOptions(ctx context.Context, tableID, columnID string) ([]string, error) {
	endpoint := fmt.Sprintf("/docs/%s/tables/%s/columns/%s", c.docID, tableID, columnID)

	var resp columnResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp, "column_options"); err != nil {
		return nil, fmt.Errorf("failed to fetch options for column %s: %w", columnID, err)
	}

	options := make([]string, 0, len(resp.Format.Options))
	for _, opt := range resp.Format.Options {
		if opt.Name != "" {
			options = append(options, opt.Name)
		}
	}

	return options, nil
}

// InsertRow appends a single row to a table. Cells maps column IDs to
// values; absent columns are simply left unset. The write is a single
// atomic insert, there are no partial writes.
func (c *Client) InsertRow(ctx context.Context, tableID string, cells map[string]interface{}) error {
	row := insertRow{Cells: make([]insertCell, 0, len(cells))}
	for column, value := range cells {
		row.Cells = append(row.Cells, insertCell{Column: column, Value: value})
	}
	// Map iteration order is random; keep the payload deterministic.
	sort.Slice(row.Cells, func(i, j int) bool {
		return row.Cells[i].Column < row.Cells[j].Column
	})

	body := insertRowsRequest{Rows: []insertRow{row}}
	endpoint := fmt.Sprintf("/docs/%s/tables/%s/rows", c.docID, tableID)

	if err := c.do(ctx, http.MethodPost, endpoint, body, nil, "insert_row"); err != nil {
		return fmt.Errorf("failed to insert row into table %s: %w", tableID, err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body interface{}, out interface{}, operation string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.CodaRequests.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.CodaRequests.WithLabelValues(operation, "error").Inc()
		return &APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	metrics.CodaRequests.WithLabelValues(operation, "success").Inc()

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func readErrorMessage(body io.Reader) string {
	var errBody struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&errBody); err != nil {
		return ""
	}
	return errBody.Message
}
