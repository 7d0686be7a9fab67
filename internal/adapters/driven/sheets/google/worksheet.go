package google

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"google.golang.org/api/sheets/v4"

	"github.com/ng-youn/runsheet/internal/core/ports/driven"
)

// Ensure Worksheet implements the port.
var _ driven.Worksheet = (*Worksheet)(nil)

// Worksheet is a handle to one worksheet (tab) within a spreadsheet.
type Worksheet struct {
	svc           *Service
	spreadsheetID string
	title         string
	rows, cols    int
}

// Title returns the worksheet's title.
func (w *Worksheet) Title() string { return w.title }

// Dimensions returns the worksheet's grid size.
func (w *Worksheet) Dimensions() (rows, cols int) { return w.rows, w.cols }

// Values returns all populated rows.
func (w *Worksheet) Values(ctx context.Context) ([][]string, error) {
	if err := w.svc.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := w.svc.sheets.Spreadsheets.Values.
		Get(w.spreadsheetID, quoteRange(w.title)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapError("read values", err)
	}
	return toStringRows(resp.Values), nil
}

// HeaderRow returns the first row's values.
func (w *Worksheet) HeaderRow(ctx context.Context) ([]string, error) {
	if err := w.svc.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := w.svc.sheets.Spreadsheets.Values.
		Get(w.spreadsheetID, quoteRange(w.title)+"!1:1").
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapError("read header row", err)
	}

	rows := toStringRows(resp.Values)
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// AppendRow appends a single row after the last populated row.
func (w *Worksheet) AppendRow(ctx context.Context, row []string) error {
	return w.append(ctx, [][]string{row}, false)
}

// AppendRows appends a batch of rows in a single call, then pauses for
// the configured delay to respect the API's write quota.
func (w *Worksheet) AppendRows(ctx context.Context, rows [][]string) error {
	return w.append(ctx, rows, true)
}

func (w *Worksheet) append(ctx context.Context, rows [][]string, pause bool) error {
	if err := w.svc.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	values := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	_, err := w.svc.sheets.Spreadsheets.Values.
		Append(w.spreadsheetID, quoteRange(w.title)+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		if IsRateLimited(err) {
			w.svc.limiter.RecordRateLimitError(0)
		}
		return wrapError("append rows", err)
	}

	if pause && w.svc.appendPause > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.svc.appendPause):
		}
	}
	return nil
}

// quoteRange quotes a worksheet title for use in an A1 range.
func quoteRange(title string) string {
	return "'" + title + "'"
}

// toStringRows flattens the API's untyped cell values to strings.
func toStringRows(values [][]any) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = toCellString(cell)
		}
		rows[i] = cells
	}
	return rows
}

func toCellString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
