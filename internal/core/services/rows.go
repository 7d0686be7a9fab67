package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ng-youn/runsheet/internal/core/domain"
)

// TimestampLayout is the sheet rendering of a run's last-update time.
// Timestamps are rendered in UTC so rows are deterministic regardless
// of the host timezone.
const TimestampLayout = "2006-01-02 15:04:05"

// SkippedRun records a run dropped during row construction.
type SkippedRun struct {
	RunID string
	Err   error
}

// BuildRows diffs the fetched runs against the already-synced id set
// and builds a worksheet row for each qualifying run: state must be
// running, the id must be unseen, and the run must belong to user.
//
// Row layout is [id, timestamp, user] followed by one column per extra
// header, resolved from the run's config first, then its summary, else
// empty. A run that fails row construction is returned as a SkippedRun
// and does not abort the batch. Output order follows the input order.
func BuildRows(
	runs []domain.Run,
	syncedIDs []string,
	headers []string,
	user string,
) ([][]string, []SkippedRun) {
	synced := make(map[string]struct{}, len(syncedIDs))
	for _, id := range syncedIDs {
		synced[id] = struct{}{}
	}

	var rows [][]string
	var skipped []SkippedRun

	for _, run := range runs {
		if run.State != domain.RunStateRunning {
			continue
		}
		if _, seen := synced[run.ID]; seen {
			continue
		}
		if run.User != user {
			continue
		}

		row, err := buildRow(run, headers)
		if err != nil {
			skipped = append(skipped, SkippedRun{RunID: run.ID, Err: err})
			continue
		}
		rows = append(rows, row)
	}

	return rows, skipped
}

// buildRow maps a single run to a row matching the header schema.
func buildRow(run domain.Run, headers []string) ([]string, error) {
	if run.ID == "" {
		return nil, fmt.Errorf("%w: run has no id", domain.ErrInvalidInput)
	}
	if len(headers) < domain.ReservedHeaderCount {
		return nil, fmt.Errorf("%w: header schema has %d columns, need %d",
			domain.ErrInvalidInput, len(headers), domain.ReservedHeaderCount)
	}

	row := make([]string, 0, len(headers))
	row = append(row, run.ID, runTimestamp(run), run.User)
	for _, key := range headers[domain.ReservedHeaderCount:] {
		row = append(row, runValue(run, key))
	}
	return row, nil
}

// runTimestamp renders the run's summary _timestamp as a UTC wall-clock
// string, or an empty string when the field is absent or non-numeric.
func runTimestamp(run domain.Run) string {
	raw, ok := run.Summary[domain.SummaryTimestampKey]
	if !ok {
		return ""
	}
	epoch, ok := toEpochSeconds(raw)
	if !ok {
		return ""
	}
	return time.Unix(epoch, 0).UTC().Format(TimestampLayout)
}

func toEpochSeconds(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}

// runValue resolves a header key against the run's config, then its
// summary; config takes priority. Missing keys produce an empty string.
func runValue(run domain.Run, key string) string {
	if v, ok := run.Config[key]; ok {
		return formatValue(v)
	}
	if v, ok := run.Summary[key]; ok {
		return formatValue(v)
	}
	return ""
}

// formatValue stringifies a config/summary value. Floats are rendered
// without an exponent and with minimal digits so JSON-decoded integers
// round-trip as plain integers (1700000000, not 1.7e+09).
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		return val.String()
	default:
		// Composite values (maps, slices) keep their JSON shape.
		if data, err := json.Marshal(val); err == nil {
			return string(data)
		}
		return fmt.Sprintf("%v", val)
	}
}
