package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ng-youn/runsheet/internal/core/domain"
	"github.com/ng-youn/runsheet/internal/core/ports/driven"
	"github.com/ng-youn/runsheet/internal/logger"
)

const (
	// MaxWorksheets is the platform ceiling on worksheets per
	// spreadsheet; reaching it triggers eviction.
	MaxWorksheets = 100

	// RotatedSheetPrefix marks worksheets created by rotation. Evicted
	// worksheets are always chosen from outside this prefix.
	RotatedSheetPrefix = "runs_"

	// Rotated worksheets are capped at these grid dimensions,
	// bounded further by the default worksheet's current size.
	maxRotatedRows = 1000
	maxRotatedCols = 50
)

// PrepareWorksheet selects the worksheet a sync cycle writes to.
//
// If the spreadsheet is at the worksheet ceiling, the worksheet with
// the lexicographically smallest title not prefixed "runs_" is deleted
// first. Note this tie-break can remove an arbitrary user worksheet;
// it is a safety valve against the platform limit, not a retention
// policy.
//
// If the default worksheet already holds content, a fresh
// "runs_<timestamp>" worksheet is created (header row copied over when
// present) and used as the write target; otherwise the default
// worksheet is used directly.
func PrepareWorksheet(ctx context.Context, sp driven.Spreadsheet, now time.Time) (driven.Worksheet, error) {
	titles, err := sp.WorksheetTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list worksheets: %w", err)
	}

	if len(titles) >= MaxWorksheets {
		victim, ok := oldestEvictable(titles)
		if !ok {
			return nil, fmt.Errorf("%w: worksheet limit reached and no evictable worksheet", domain.ErrSheet)
		}
		if err := sp.DeleteWorksheet(ctx, victim); err != nil {
			return nil, fmt.Errorf("evict worksheet %q: %w", victim, err)
		}
		logger.Warn("Deleted worksheet %q to stay under the %d-sheet limit", victim, MaxWorksheets)
	}

	def, err := sp.DefaultWorksheet(ctx)
	if err != nil {
		return nil, fmt.Errorf("default worksheet: %w", err)
	}

	values, err := def.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("read default worksheet: %w", err)
	}
	if len(values) == 0 {
		return def, nil
	}

	// Default worksheet already holds rows: rotate to a fresh one so
	// prior content is preserved.
	defRows, defCols := def.Dimensions()
	title := RotatedSheetPrefix + now.Format("20060102_150405")
	ws, err := sp.AddWorksheet(ctx, title, min(maxRotatedRows, defRows), min(maxRotatedCols, defCols))
	if err != nil {
		return nil, fmt.Errorf("add worksheet %q: %w", title, err)
	}

	header, err := def.HeaderRow(ctx)
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}
	if len(header) > 0 {
		if err := ws.AppendRow(ctx, header); err != nil {
			return nil, fmt.Errorf("copy header row: %w", err)
		}
	}

	logger.Info("Rotated to new worksheet %q", title)
	return ws, nil
}

// oldestEvictable returns the lexicographically smallest title that is
// not a rotated runs worksheet.
func oldestEvictable(titles []string) (string, bool) {
	var victim string
	found := false
	for _, title := range titles {
		if strings.HasPrefix(title, RotatedSheetPrefix) {
			continue
		}
		if !found || title < victim {
			victim = title
			found = true
		}
	}
	return victim, found
}
