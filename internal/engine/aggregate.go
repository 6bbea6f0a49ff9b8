package engine

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"dirscope/internal/shared/types"
)

// ScanOps handles counting, listing, and size aggregation.
type ScanOps struct {
	*EngineOps
}

// GetTools returns scan operation tool definitions
func (s *ScanOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "fs.scan.count",
			Name:        "Count Files",
			Description: "Count files in a directory, optionally filtered by extension",
			Parameters: []types.Parameter{
				{Name: "directory", Type: "string", Description: "Directory path (~ shorthand supported)", Required: false},
				{Name: "extension", Type: "string", Description: "Extension without dot (e.g. 'pdf')", Required: false},
				{Name: "recursive", Type: "boolean", Description: "Visit subdirectories", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "fs.scan.list",
			Name:        "List Files",
			Description: "List files sorted by relative path",
			Parameters: []types.Parameter{
				{Name: "directory", Type: "string", Description: "Directory path", Required: false},
				{Name: "extension", Type: "string", Description: "Extension without dot", Required: false},
				{Name: "recursive", Type: "boolean", Description: "Visit subdirectories", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "fs.scan.categorize",
			Name:        "Categorize by Extension",
			Description: "Group files by lower-cased extension",
			Parameters: []types.Parameter{
				{Name: "directory", Type: "string", Description: "Directory path", Required: false},
				{Name: "recursive", Type: "boolean", Description: "Visit subdirectories", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "fs.scan.size",
			Name:        "Directory Size",
			Description: "Total, count and average size with formatted output",
			Parameters: []types.Parameter{
				{Name: "directory", Type: "string", Description: "Directory path", Required: false},
				{Name: "unit", Type: "string", Description: "auto, B, KB, MB, GB or TB", Required: false},
				{Name: "recursive", Type: "boolean", Description: "Visit subdirectories", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "fs.scan.large",
			Name:        "Find Large Files",
			Description: "Files at or above a minimum size, largest first",
			Parameters: []types.Parameter{
				{Name: "directory", Type: "string", Description: "Directory path", Required: false},
				{Name: "min_size_mb", Type: "number", Description: "Minimum size in MB (default 100)", Required: false},
				{Name: "recursive", Type: "boolean", Description: "Visit subdirectories", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "fs.scan.empty",
			Name:        "Find Empty Folders",
			Description: "Directories containing no entries at all",
			Parameters: []types.Parameter{
				{Name: "directory", Type: "string", Description: "Directory path", Required: false},
				{Name: "recursive", Type: "boolean", Description: "Inspect the whole subtree", Required: false},
			},
			Returns: "array",
		},
	}
}

// scanArgs extracts the shared read-query parameters.
func scanArgs(params map[string]interface{}) (dir, ext string, recursive bool) {
	dir = "~/Desktop"
	if d, ok := params["directory"].(string); ok && d != "" {
		dir = d
	}
	ext, _ = params["extension"].(string)
	recursive, _ = params["recursive"].(bool)
	return dir, ext, recursive
}

// Count counts matching files
func (s *ScanOps) Count(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	dir, ext, recursive := scanArgs(params)

	root := Resolve(dir)
	if !root.Exists || !root.IsDir {
		return Success(map[string]interface{}{"directory": root.Path, "count": 0})
	}

	count := 0
	err := s.Traverse(ctx, TraverseOptions{Root: root.Path, Extension: ext, Recursive: recursive}, func(FileRecord) {
		count++
	})
	if err != nil {
		return nil, err
	}

	return Success(map[string]interface{}{"directory": root.Path, "count": count})
}

// List lists matching files sorted by relative path
func (s *ScanOps) List(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	dir, ext, recursive := scanArgs(params)

	root := Resolve(dir)
	if !root.Exists || !root.IsDir {
		return Success(map[string]interface{}{"directory": root.Path, "files": []string{}, "count": 0})
	}

	files := []string{}
	err := s.Traverse(ctx, TraverseOptions{Root: root.Path, Extension: ext, Recursive: recursive}, func(rec FileRecord) {
		files = append(files, rec.RelPath)
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	return Success(map[string]interface{}{"directory": root.Path, "files": files, "count": len(files)})
}

// noExtension buckets files without a suffix in Categorize results.
const noExtension = "no_extension"

// Categorize groups files by lower-cased extension
func (s *ScanOps) Categorize(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	dir, _, recursive := scanArgs(params)

	root := Resolve(dir)
	if !root.Exists || !root.IsDir {
		return Success(map[string]interface{}{"directory": root.Path, "categories": map[string][]string{}, "total_files": 0})
	}

	categories := map[string][]string{}
	total := 0
	err := s.Traverse(ctx, TraverseOptions{Root: root.Path, Recursive: recursive}, func(rec FileRecord) {
		key := rec.Ext
		if key == "" {
			key = noExtension
		}
		categories[key] = append(categories[key], rec.Path)
		total++
	})
	if err != nil {
		return nil, err
	}
	for _, paths := range categories {
		sort.Strings(paths)
	}

	return Success(map[string]interface{}{
		"directory":   root.Path,
		"categories":  categories,
		"total_files": total,
	})
}

// Size aggregates total, count and average size
func (s *ScanOps) Size(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	dir, _, recursive := scanArgs(params)
	unit := "auto"
	if u, ok := params["unit"].(string); ok && u != "" {
		unit = u
	}

	root := Resolve(dir)
	if !root.Exists || !root.IsDir {
		return Success(map[string]interface{}{
			"directory":          root.Path,
			"total_size_bytes":   int64(0),
			"total_files":        0,
			"average_size_bytes": int64(0),
			"formatted_total":    FormatSize(0),
			"formatted_average":  FormatSize(0),
			"unit":               unit,
		})
	}

	var total int64
	count := 0
	err := s.Traverse(ctx, TraverseOptions{Root: root.Path, Recursive: recursive}, func(rec FileRecord) {
		total += rec.Size
		count++
	})
	if err != nil {
		return nil, err
	}

	// Integer division truncates; average is zero when the scan is empty.
	var average int64
	if count > 0 {
		average = total / int64(count)
	}

	formattedTotal, formattedAvg := FormatSize(total), FormatSize(average)
	if unit != "auto" {
		if ft, ok := FormatSizeIn(total, unit); ok {
			formattedTotal = ft
			formattedAvg, _ = FormatSizeIn(average, unit)
		}
	}

	return Success(map[string]interface{}{
		"directory":          root.Path,
		"total_size_bytes":   total,
		"total_files":        count,
		"average_size_bytes": average,
		"formatted_total":    formattedTotal,
		"formatted_average":  formattedAvg,
		"unit":               unit,
	})
}

// Large finds files at or above the minimum size, sorted largest first
func (s *ScanOps) Large(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	dir, _, recursive := scanArgs(params)
	minMB := 100.0
	if m, ok := params["min_size_mb"].(float64); ok {
		minMB = m
	}
	minBytes := int64(minMB * 1024 * 1024)

	root := Resolve(dir)
	if !root.Exists || !root.IsDir {
		return Success(map[string]interface{}{"directory": root.Path, "files": []map[string]interface{}{}, "count": 0})
	}

	matches := []FileRecord{}
	err := s.Traverse(ctx, TraverseOptions{Root: root.Path, Recursive: recursive}, func(rec FileRecord) {
		if rec.Size >= minBytes {
			matches = append(matches, rec)
		}
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Size != matches[j].Size {
			return matches[i].Size > matches[j].Size
		}
		return matches[i].Path < matches[j].Path
	})

	files := make([]map[string]interface{}, 0, len(matches))
	for _, rec := range matches {
		files = append(files, map[string]interface{}{
			"filename":       rec.Name,
			"size_bytes":     rec.Size,
			"size_formatted": FormatSize(rec.Size),
			"full_path":      rec.Path,
			"relative_path":  rec.RelPath,
		})
	}

	return Success(map[string]interface{}{
		"directory":   root.Path,
		"files":       files,
		"count":       len(files),
		"min_size_mb": minMB,
	})
}

// Empty finds directories with no entries at all
func (s *ScanOps) Empty(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	dir, _, recursive := scanArgs(params)

	root := Resolve(dir)
	if !root.Exists || !root.IsDir {
		return Success(map[string]interface{}{"directory": root.Path, "empty_folders": []string{}, "count": 0})
	}

	empty := []string{}
	appendIfEmpty := func(p string) {
		entries, err := os.ReadDir(p)
		if err != nil {
			s.skip(p, err)
			return
		}
		if len(entries) == 0 {
			empty = append(empty, p)
		}
	}

	if recursive {
		if err := s.walkDirs(ctx, root.Path, appendIfEmpty); err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(root.Path)
		if err != nil {
			s.skip(root.Path, err)
		}
		for _, entry := range entries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			if entry.IsDir() {
				appendIfEmpty(filepath.Join(root.Path, entry.Name()))
			}
		}
	}
	sort.Strings(empty)

	return Success(map[string]interface{}{
		"directory":     root.Path,
		"empty_folders": empty,
		"count":         len(empty),
	})
}
