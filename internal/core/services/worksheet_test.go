package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ng-youn/runsheet/internal/core/domain"
	"github.com/ng-youn/runsheet/internal/core/ports/driven"
)

// --- Fake spreadsheet implementations shared by the service tests ---

type fakeWorksheet struct {
	title       string
	rows, cols  int
	values      [][]string
	appendCalls int
	valuesErr   error
	appendErr   error
}

var _ driven.Worksheet = (*fakeWorksheet)(nil)

func (w *fakeWorksheet) Title() string               { return w.title }
func (w *fakeWorksheet) Dimensions() (rows, cols int) { return w.rows, w.cols }

func (w *fakeWorksheet) Values(_ context.Context) ([][]string, error) {
	if w.valuesErr != nil {
		return nil, w.valuesErr
	}
	return w.values, nil
}

func (w *fakeWorksheet) HeaderRow(_ context.Context) ([]string, error) {
	if len(w.values) == 0 {
		return nil, nil
	}
	return w.values[0], nil
}

func (w *fakeWorksheet) AppendRow(_ context.Context, row []string) error {
	if w.appendErr != nil {
		return w.appendErr
	}
	w.values = append(w.values, row)
	return nil
}

func (w *fakeWorksheet) AppendRows(_ context.Context, rows [][]string) error {
	if w.appendErr != nil {
		return w.appendErr
	}
	w.appendCalls++
	w.values = append(w.values, rows...)
	return nil
}

type fakeSpreadsheet struct {
	sheets  []*fakeWorksheet
	deleted []string
	addErr  error
}

var _ driven.Spreadsheet = (*fakeSpreadsheet)(nil)

func (s *fakeSpreadsheet) WorksheetTitles(_ context.Context) ([]string, error) {
	titles := make([]string, len(s.sheets))
	for i, ws := range s.sheets {
		titles[i] = ws.title
	}
	return titles, nil
}

func (s *fakeSpreadsheet) DefaultWorksheet(_ context.Context) (driven.Worksheet, error) {
	if len(s.sheets) == 0 {
		return nil, domain.ErrSheet
	}
	return s.sheets[0], nil
}

func (s *fakeSpreadsheet) AddWorksheet(_ context.Context, title string, rows, cols int) (driven.Worksheet, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	ws := &fakeWorksheet{title: title, rows: rows, cols: cols}
	s.sheets = append(s.sheets, ws)
	return ws, nil
}

func (s *fakeSpreadsheet) DeleteWorksheet(_ context.Context, title string) error {
	for i, ws := range s.sheets {
		if ws.title == title {
			s.sheets = append(s.sheets[:i], s.sheets[i+1:]...)
			s.deleted = append(s.deleted, title)
			return nil
		}
	}
	return fmt.Errorf("%w: worksheet %q not found", domain.ErrSheet, title)
}

// --- Tests ---

func TestPrepareWorksheet_EmptyDefaultUsedDirectly(t *testing.T) {
	def := &fakeWorksheet{title: "Sheet1", rows: 1000, cols: 26}
	sp := &fakeSpreadsheet{sheets: []*fakeWorksheet{def}}

	ws, err := PrepareWorksheet(context.Background(), sp, time.Now())

	require.NoError(t, err)
	assert.Equal(t, "Sheet1", ws.Title())
	assert.Empty(t, sp.deleted)
	assert.Len(t, sp.sheets, 1)
}

func TestPrepareWorksheet_RotatesWhenDefaultHasContent(t *testing.T) {
	def := &fakeWorksheet{
		title:  "Sheet1",
		rows:   5000,
		cols:   30,
		values: [][]string{{"id", "ts", "user"}, {"run-1", "", "ng-youn"}},
	}
	sp := &fakeSpreadsheet{sheets: []*fakeWorksheet{def}}
	now := time.Date(2024, 3, 9, 14, 30, 5, 0, time.UTC)

	ws, err := PrepareWorksheet(context.Background(), sp, now)

	require.NoError(t, err)
	assert.Equal(t, "runs_20240309_143005", ws.Title())

	// Sized min(1000, default rows) x min(50, default cols).
	rows, cols := ws.Dimensions()
	assert.Equal(t, 1000, rows)
	assert.Equal(t, 30, cols)

	// Header row copied from the default worksheet.
	values, err := ws.Values(context.Background())
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, []string{"id", "ts", "user"}, values[0])
}

func TestPrepareWorksheet_RotationWithoutHeaderRow(t *testing.T) {
	// gridded but headerless content: the rotated sheet starts empty
	def := &fakeWorksheet{title: "Sheet1", rows: 100, cols: 10, values: [][]string{{}}}
	sp := &fakeSpreadsheet{sheets: []*fakeWorksheet{def}}

	ws, err := PrepareWorksheet(context.Background(), sp, time.Now())

	require.NoError(t, err)
	values, err := ws.Values(context.Background())
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestPrepareWorksheet_EvictsAtWorksheetCeiling(t *testing.T) {
	sheets := []*fakeWorksheet{{title: "Sheet1", rows: 10, cols: 10}}
	for i := 0; i < MaxWorksheets-3; i++ {
		sheets = append(sheets, &fakeWorksheet{title: fmt.Sprintf("runs_%03d", i)})
	}
	// Candidates for eviction, out of order on purpose.
	sheets = append(sheets,
		&fakeWorksheet{title: "notes"},
		&fakeWorksheet{title: "archive"},
	)
	require.Len(t, sheets, MaxWorksheets)
	sp := &fakeSpreadsheet{sheets: sheets}

	_, err := PrepareWorksheet(context.Background(), sp, time.Now())

	require.NoError(t, err)
	// Exactly one worksheet deleted: the lexicographically smallest
	// non-runs_ title. "Sheet1" sorts above "archive" (upper case).
	require.Len(t, sp.deleted, 1)
	assert.Equal(t, "Sheet1", sp.deleted[0])
}

func TestPrepareWorksheet_BelowCeilingNoEviction(t *testing.T) {
	sheets := []*fakeWorksheet{{title: "Sheet1"}}
	for i := 0; i < 50; i++ {
		sheets = append(sheets, &fakeWorksheet{title: fmt.Sprintf("runs_%03d", i)})
	}
	sp := &fakeSpreadsheet{sheets: sheets}

	_, err := PrepareWorksheet(context.Background(), sp, time.Now())

	require.NoError(t, err)
	assert.Empty(t, sp.deleted)
}

func TestPrepareWorksheet_NoEvictableWorksheet(t *testing.T) {
	var sheets []*fakeWorksheet
	for i := 0; i < MaxWorksheets; i++ {
		sheets = append(sheets, &fakeWorksheet{title: fmt.Sprintf("runs_%03d", i)})
	}
	sp := &fakeSpreadsheet{sheets: sheets}

	_, err := PrepareWorksheet(context.Background(), sp, time.Now())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSheet))
}

func TestOldestEvictable(t *testing.T) {
	title, ok := oldestEvictable([]string{"runs_20240101_000000", "zebra", "alpha", "runs_x"})
	require.True(t, ok)
	assert.Equal(t, "alpha", title)

	_, ok = oldestEvictable([]string{"runs_a", "runs_b"})
	assert.False(t, ok)
}
