package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"dirscope/internal/shared/types"
)

// TimeOps handles modification-time windows, ranges and timelines.
type TimeOps struct {
	*EngineOps
}

const dateLayout = "2006-01-02"

// GetTools returns time-window tool definitions
func (t *TimeOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "fs.time.recent",
			Name:        "Recent Files",
			Description: "Files modified within the last N days, newest first",
			Parameters: []types.Parameter{
				{Name: "directory", Type: "string", Description: "Directory path", Required: false},
				{Name: "days", Type: "number", Description: "Window in days (default 7)", Required: false},
				{Name: "extension", Type: "string", Description: "Extension without dot", Required: false},
				{Name: "recursive", Type: "boolean", Description: "Visit subdirectories", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "fs.time.range",
			Name:        "Files by Date Range",
			Description: "Files modified within an inclusive YYYY-MM-DD range",
			Parameters: []types.Parameter{
				{Name: "directory", Type: "string", Description: "Directory path", Required: false},
				{Name: "start_date", Type: "string", Description: "Start date, defaults to the epoch", Required: false},
				{Name: "end_date", Type: "string", Description: "End date, defaults to today", Required: false},
				{Name: "extension", Type: "string", Description: "Extension without dot", Required: false},
				{Name: "recursive", Type: "boolean", Description: "Visit subdirectories", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "fs.time.timeline",
			Name:        "File Timeline",
			Description: "Recent files bucketed by day, week or month",
			Parameters: []types.Parameter{
				{Name: "directory", Type: "string", Description: "Directory path", Required: false},
				{Name: "days", Type: "number", Description: "Window in days (default 30)", Required: false},
				{Name: "group_by", Type: "string", Description: "day, week or month", Required: false},
				{Name: "recursive", Type: "boolean", Description: "Visit subdirectories", Required: false},
			},
			Returns: "object",
		},
	}
}

// fileEntry renders the standard per-file record for time queries.
func fileEntry(rec FileRecord) map[string]interface{} {
	return map[string]interface{}{
		"filename":           rec.Name,
		"full_path":          rec.Path,
		"relative_path":      rec.RelPath,
		"size_bytes":         rec.Size,
		"size_formatted":     FormatSize(rec.Size),
		"modified_time":      rec.ModTime.Format(timeLayout),
		"modified_timestamp": rec.ModTime.Unix(),
		"extension":          rec.Ext,
	}
}

// collectWindow gathers files with modification time inside [from, to],
// sorted newest first. Zero bounds are open.
func (t *TimeOps) collectWindow(ctx context.Context, root, ext string, recursive bool, from, to time.Time) ([]FileRecord, error) {
	records := []FileRecord{}
	err := t.Traverse(ctx, TraverseOptions{Root: root, Extension: ext, Recursive: recursive}, func(rec FileRecord) {
		if !from.IsZero() && rec.ModTime.Before(from) {
			return
		}
		if !to.IsZero() && rec.ModTime.After(to) {
			return
		}
		records = append(records, rec)
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].ModTime.Equal(records[j].ModTime) {
			return records[i].ModTime.After(records[j].ModTime)
		}
		return records[i].Path < records[j].Path
	})
	return records, nil
}

// Recent lists files modified within the last N days
func (t *TimeOps) Recent(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	dir, ext, recursive := scanArgs(params)
	days := 7
	if d, ok := params["days"].(float64); ok && d > 0 {
		days = int(d)
	}

	root := Resolve(dir)
	if !root.Exists || !root.IsDir {
		return Success(map[string]interface{}{"directory": root.Path, "files": []map[string]interface{}{}, "count": 0, "days": days})
	}

	cutoff := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	records, err := t.collectWindow(ctx, root.Path, ext, recursive, cutoff, time.Time{})
	if err != nil {
		return nil, err
	}

	files := make([]map[string]interface{}, 0, len(records))
	for _, rec := range records {
		files = append(files, fileEntry(rec))
	}

	return Success(map[string]interface{}{
		"directory": root.Path,
		"files":     files,
		"count":     len(files),
		"days":      days,
	})
}

// Range lists files modified within an inclusive calendar-day range
func (t *TimeOps) Range(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	dir, ext, recursive := scanArgs(params)

	var from, to time.Time
	startDate, _ := params["start_date"].(string)
	endDate, _ := params["end_date"].(string)

	if startDate != "" {
		day, err := time.ParseInLocation(dateLayout, startDate, time.Local)
		if err != nil {
			return Failf(types.ErrInvalidArgument, "", "invalid start_date %q: expected YYYY-MM-DD", startDate)
		}
		from = day
	}
	if endDate != "" {
		day, err := time.ParseInLocation(dateLayout, endDate, time.Local)
		if err != nil {
			return Failf(types.ErrInvalidArgument, "", "invalid end_date %q: expected YYYY-MM-DD", endDate)
		}
		// Inclusive through the last second of the end day.
		to = day.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	} else {
		to = time.Now()
	}

	root := Resolve(dir)
	if !root.Exists || !root.IsDir {
		return Success(map[string]interface{}{
			"directory":            root.Path,
			"files":                []map[string]interface{}{},
			"total_count":          0,
			"total_size":           int64(0),
			"total_size_formatted": FormatSize(0),
		})
	}

	records, err := t.collectWindow(ctx, root.Path, ext, recursive, from, to)
	if err != nil {
		return nil, err
	}

	var totalSize int64
	files := make([]map[string]interface{}, 0, len(records))
	for _, rec := range records {
		files = append(files, fileEntry(rec))
		totalSize += rec.Size
	}

	if startDate == "" {
		startDate = "epoch"
	}
	if endDate == "" {
		endDate = "today"
	}

	return Success(map[string]interface{}{
		"directory":            root.Path,
		"files":                files,
		"total_count":          len(files),
		"total_size":           totalSize,
		"total_size_formatted": FormatSize(totalSize),
		"start_date":           startDate,
		"end_date":             endDate,
	})
}

// bucketKey maps a modification time to its calendar bucket.
func bucketKey(ts time.Time, groupBy string) string {
	switch groupBy {
	case "week":
		// ISO weeks start on Monday.
		offset := (int(ts.Weekday()) + 6) % 7
		return ts.AddDate(0, 0, -offset).Format(dateLayout)
	case "month":
		return ts.Format("2006-01")
	default:
		return ts.Format(dateLayout)
	}
}

// Timeline buckets the recent-files window by calendar granularity
func (t *TimeOps) Timeline(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	dir, _, recursive := scanArgs(params)
	days := 30
	if d, ok := params["days"].(float64); ok && d > 0 {
		days = int(d)
	}
	groupBy := "day"
	if g, ok := params["group_by"].(string); ok && (g == "day" || g == "week" || g == "month") {
		groupBy = g
	}

	root := Resolve(dir)
	if !root.Exists || !root.IsDir {
		return Success(map[string]interface{}{"directory": root.Path, "timeline": map[string]interface{}{}, "summary": map[string]interface{}{}})
	}

	cutoff := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	records, err := t.collectWindow(ctx, root.Path, "", recursive, cutoff, time.Time{})
	if err != nil {
		return nil, err
	}

	type bucket struct {
		files []map[string]interface{}
		size  int64
	}
	buckets := map[string]*bucket{}
	var totalSize int64
	for _, rec := range records {
		key := bucketKey(rec.ModTime, groupBy)
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.files = append(b.files, fileEntry(rec))
		b.size += rec.Size
		totalSize += rec.Size
	}

	timeline := map[string]interface{}{}
	for key, b := range buckets {
		timeline[key] = map[string]interface{}{
			"files":                b.files,
			"count":                len(b.files),
			"total_size":           b.size,
			"total_size_formatted": FormatSize(b.size),
		}
	}

	return Success(map[string]interface{}{
		"directory": root.Path,
		"timeline":  timeline,
		"summary": map[string]interface{}{
			"total_files":          len(records),
			"total_size":           totalSize,
			"total_size_formatted": FormatSize(totalSize),
			"date_range":           fmt.Sprintf("last %d days", days),
			"group_by":             groupBy,
		},
	})
}
