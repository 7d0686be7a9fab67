package driven

import "context"

// Spreadsheet is an open spreadsheet document with one or more
// worksheets (tabs).
type Spreadsheet interface {
	// WorksheetTitles returns the titles of all worksheets, in sheet
	// order (the first entry is the default worksheet).
	WorksheetTitles(ctx context.Context) ([]string, error)

	// DefaultWorksheet returns the first worksheet.
	DefaultWorksheet(ctx context.Context) (Worksheet, error)

	// AddWorksheet creates a new worksheet with the given title and
	// grid dimensions and returns a handle to it.
	AddWorksheet(ctx context.Context, title string, rows, cols int) (Worksheet, error)

	// DeleteWorksheet removes the worksheet with the given title.
	DeleteWorksheet(ctx context.Context, title string) error
}

// Worksheet is a single tab within a spreadsheet. The first column of
// its data rows serves as the synced-run-id deduplication index.
type Worksheet interface {
	// Title returns the worksheet's title.
	Title() string

	// Dimensions returns the worksheet's grid size (rows, columns).
	Dimensions() (rows, cols int)

	// Values returns all populated rows, including the header row if
	// one exists.
	Values(ctx context.Context) ([][]string, error)

	// HeaderRow returns the first row's values, or an empty slice if
	// the worksheet is empty.
	HeaderRow(ctx context.Context) ([]string, error)

	// AppendRow appends a single row after the last populated row.
	AppendRow(ctx context.Context, row []string) error

	// AppendRows appends a batch of rows in a single call. Callers must
	// not pass an empty batch.
	AppendRows(ctx context.Context, rows [][]string) error
}
