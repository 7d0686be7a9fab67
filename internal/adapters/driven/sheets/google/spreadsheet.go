package google

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/ng-youn/runsheet/internal/core/domain"
	"github.com/ng-youn/runsheet/internal/core/ports/driven"
)

// Ensure Spreadsheet implements the port.
var _ driven.Spreadsheet = (*Spreadsheet)(nil)

// Spreadsheet is a handle to one open spreadsheet document.
type Spreadsheet struct {
	svc  *Service
	id   string
	name string
}

// sheetProps fetches the sheet property list, in sheet order.
func (sp *Spreadsheet) sheetProps(ctx context.Context) ([]*sheets.SheetProperties, error) {
	if err := sp.svc.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	doc, err := sp.svc.sheets.Spreadsheets.Get(sp.id).
		Fields("sheets(properties(sheetId,title,index,gridProperties(rowCount,columnCount)))").
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapError("list worksheets", err)
	}

	props := make([]*sheets.SheetProperties, 0, len(doc.Sheets))
	for _, sheet := range doc.Sheets {
		props = append(props, sheet.Properties)
	}
	return props, nil
}

// WorksheetTitles returns all worksheet titles in sheet order.
func (sp *Spreadsheet) WorksheetTitles(ctx context.Context) ([]string, error) {
	props, err := sp.sheetProps(ctx)
	if err != nil {
		return nil, err
	}

	titles := make([]string, len(props))
	for i, p := range props {
		titles[i] = p.Title
	}
	return titles, nil
}

// DefaultWorksheet returns the first worksheet.
func (sp *Spreadsheet) DefaultWorksheet(ctx context.Context) (driven.Worksheet, error) {
	props, err := sp.sheetProps(ctx)
	if err != nil {
		return nil, err
	}
	if len(props) == 0 {
		return nil, fmt.Errorf("%w: spreadsheet %q has no worksheets", domain.ErrSheet, sp.name)
	}
	return sp.worksheetFromProps(props[0]), nil
}

// AddWorksheet creates a new worksheet with the given title and grid
// dimensions.
func (sp *Spreadsheet) AddWorksheet(ctx context.Context, title string, rows, cols int) (driven.Worksheet, error) {
	if err := sp.svc.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: title,
					GridProperties: &sheets.GridProperties{
						RowCount:    int64(rows),
						ColumnCount: int64(cols),
					},
				},
			},
		}},
	}

	resp, err := sp.svc.sheets.Spreadsheets.BatchUpdate(sp.id, req).Context(ctx).Do()
	if err != nil {
		return nil, wrapError("add worksheet", err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil {
		return nil, fmt.Errorf("%w: add worksheet %q: empty reply", domain.ErrSheet, title)
	}

	return sp.worksheetFromProps(resp.Replies[0].AddSheet.Properties), nil
}

// DeleteWorksheet removes the worksheet with the given title.
func (sp *Spreadsheet) DeleteWorksheet(ctx context.Context, title string) error {
	props, err := sp.sheetProps(ctx)
	if err != nil {
		return err
	}

	var sheetID int64 = -1
	for _, p := range props {
		if p.Title == title {
			sheetID = p.SheetId
			break
		}
	}
	if sheetID < 0 {
		return fmt.Errorf("%w: worksheet %q not found", domain.ErrSheet, title)
	}

	if err := sp.svc.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteSheet: &sheets.DeleteSheetRequest{SheetId: sheetID},
		}},
	}
	if _, err := sp.svc.sheets.Spreadsheets.BatchUpdate(sp.id, req).Context(ctx).Do(); err != nil {
		return wrapError("delete worksheet", err)
	}
	return nil
}

func (sp *Spreadsheet) worksheetFromProps(p *sheets.SheetProperties) *Worksheet {
	ws := &Worksheet{svc: sp.svc, spreadsheetID: sp.id, title: p.Title}
	if p.GridProperties != nil {
		ws.rows = int(p.GridProperties.RowCount)
		ws.cols = int(p.GridProperties.ColumnCount)
	}
	return ws
}
