package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"dirscope/internal/shared/types"
)

// FileOps handles mutations: rename, move, info, delete.
type FileOps struct {
	*EngineOps
}

// reservedNameChars may not appear in a rename target.
const reservedNameChars = `/\:*?"<>|`

// defaultProtected are never deletable, force or not. The user home and
// any configured extras are appended at provider construction.
var defaultProtected = []string{
	"/", "/bin", "/boot", "/etc", "/home", "/usr", "/var",
	"/System", "/Library", "/Applications", "/Users",
}

// GetTools returns mutation tool definitions
func (f *FileOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "fs.file.rename",
			Name:        "Rename",
			Description: "Rename a file or directory in place",
			Parameters: []types.Parameter{
				{Name: "old_path", Type: "string", Description: "Current path", Required: true},
				{Name: "new_name", Type: "string", Description: "New name, no separators", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "fs.file.move",
			Name:        "Move",
			Description: "Move a file or directory into a target directory",
			Parameters: []types.Parameter{
				{Name: "source_path", Type: "string", Description: "Source path", Required: true},
				{Name: "target_directory", Type: "string", Description: "Existing target directory", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "fs.file.info",
			Name:        "File Info",
			Description: "Detailed metadata for a file or directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "fs.file.delete",
			Name:        "Delete",
			Description: "Delete a file or directory with safety guards",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Path to delete", Required: true},
				{Name: "force", Type: "boolean", Description: "Delete non-empty directories recursively", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "fs.file.trash",
			Name:        "Safe Delete",
			Description: "Relocate to the platform trash instead of deleting",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Path to trash", Required: true},
				{Name: "backup", Type: "boolean", Description: "Copy to the backup area first", Required: false},
			},
			Returns: "object",
		},
	}
}

func entryType(isDir bool) string {
	if isDir {
		return "directory"
	}
	return "file"
}

// Rename renames an entry within its parent directory
func (f *FileOps) Rename(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	oldPath, ok := params["old_path"].(string)
	if !ok || oldPath == "" {
		return Fail(types.ErrInvalidArgument, "", "old_path parameter required")
	}
	newName, ok := params["new_name"].(string)
	if !ok || newName == "" {
		return Fail(types.ErrInvalidArgument, "", "new_name parameter required")
	}
	if strings.ContainsAny(newName, reservedNameChars) {
		return Failf(types.ErrInvalidArgument, "", "new_name %q contains reserved characters", newName)
	}

	src := Resolve(oldPath)
	if !src.Exists {
		return Fail(types.ErrNotFound, src.Path, "file or directory does not exist")
	}

	newPath := filepath.Join(filepath.Dir(src.Path), newName)
	if _, err := os.Lstat(newPath); err == nil {
		return Fail(types.ErrAlreadyExists, newPath, "an entry with the new name already exists")
	}

	if err := os.Rename(src.Path, newPath); err != nil {
		f.Log.Warn("rename failed", zap.String("path", src.Path), zap.Error(err))
		return failFromOS(src.Path, err)
	}

	return Success(map[string]interface{}{
		"old_path": src.Path,
		"new_path": newPath,
		"type":     entryType(src.IsDir),
	})
}

// Move relocates an entry into an existing target directory
func (f *FileOps) Move(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	sourcePath, ok := params["source_path"].(string)
	if !ok || sourcePath == "" {
		return Fail(types.ErrInvalidArgument, "", "source_path parameter required")
	}
	targetDir, ok := params["target_directory"].(string)
	if !ok || targetDir == "" {
		return Fail(types.ErrInvalidArgument, "", "target_directory parameter required")
	}

	src := Resolve(sourcePath)
	if !src.Exists {
		return Fail(types.ErrNotFound, src.Path, "source does not exist")
	}
	target := Resolve(targetDir)
	if !target.Exists {
		return Fail(types.ErrNotFound, target.Path, "target directory does not exist")
	}
	if !target.IsDir {
		return Fail(types.ErrInvalidArgument, target.Path, "target is not a directory")
	}

	dest := filepath.Join(target.Path, filepath.Base(src.Path))
	if _, err := os.Lstat(dest); err == nil {
		return Fail(types.ErrAlreadyExists, dest, "an entry with the same name exists at the destination")
	}

	if err := moveEntry(src.Path, dest); err != nil {
		f.Log.Warn("move failed", zap.String("source", src.Path), zap.String("dest", dest), zap.Error(err))
		return failFromOS(src.Path, err)
	}

	return Success(map[string]interface{}{
		"source_path": src.Path,
		"target_path": dest,
		"type":        entryType(src.IsDir),
	})
}

// Info reports detailed metadata for one entry
func (f *FileOps) Info(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Fail(types.ErrInvalidArgument, "", "path parameter required")
	}

	resolved := Resolve(path)
	if !resolved.Exists {
		return Fail(types.ErrNotFound, resolved.Path, "file or directory does not exist")
	}

	info, err := os.Stat(resolved.Path)
	if err != nil {
		return failFromOS(resolved.Path, err)
	}

	created, accessed := statTimes(info)
	data := map[string]interface{}{
		"name":             info.Name(),
		"full_path":        resolved.Path,
		"parent_directory": filepath.Dir(resolved.Path),
		"type":             entryType(info.IsDir()),
		"size_bytes":       info.Size(),
		"size_formatted":   FormatSize(info.Size()),
		"created_time":     created.Format(timeLayout),
		"modified_time":    info.ModTime().Format(timeLayout),
		"accessed_time":    accessed.Format(timeLayout),
		"is_hidden":        strings.HasPrefix(info.Name(), "."),
	}

	if info.IsDir() {
		// Zero counts when the directory cannot be read; the call still
		// succeeds with the metadata gathered so far.
		subFiles, subDirs := 0, 0
		if entries, err := os.ReadDir(resolved.Path); err == nil {
			for _, entry := range entries {
				if entry.IsDir() {
					subDirs++
				} else {
					subFiles++
				}
			}
		}
		data["sub_items_count"] = subFiles + subDirs
		data["sub_files_count"] = subFiles
		data["sub_dirs_count"] = subDirs
	} else {
		data["extension"] = extOf(info.Name())
		if mtype, err := mimetype.DetectFile(resolved.Path); err == nil {
			data["mime_type"] = mtype.String()
		}
	}

	return Success(data)
}

// isProtected reports whether the path is on the delete deny list.
func (f *FileOps) isProtected(path string) bool {
	clean := filepath.Clean(path)
	for _, p := range f.Protected {
		if clean == filepath.Clean(p) {
			return true
		}
	}
	// Direct children of the filesystem root stay off limits too.
	return filepath.Dir(clean) == "/" && clean != "/"
}

// measure sums sizes and file counts below a path.
func (f *FileOps) measure(ctx context.Context, path string, isDir bool) (int64, int) {
	if !isDir {
		info, err := os.Stat(path)
		if err != nil {
			return 0, 0
		}
		return info.Size(), 1
	}

	var size int64
	count := 0
	_ = f.Traverse(ctx, TraverseOptions{Root: path, Recursive: true}, func(rec FileRecord) {
		size += rec.Size
		count++
	})
	return size, count
}

// Delete removes an entry after safety checks
func (f *FileOps) Delete(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Fail(types.ErrInvalidArgument, "", "path parameter required")
	}
	force, _ := params["force"].(bool)

	resolved := Resolve(path)
	if !resolved.Exists {
		return Fail(types.ErrNotFound, resolved.Path, "file or directory does not exist")
	}
	if f.isProtected(resolved.Path) {
		return Fail(types.ErrProtected, resolved.Path, "refusing to delete a protected location")
	}

	size, items := f.measure(ctx, resolved.Path, resolved.IsDir)

	if resolved.IsDir && !force {
		entries, err := os.ReadDir(resolved.Path)
		if err != nil {
			return failFromOS(resolved.Path, err)
		}
		if len(entries) > 0 {
			names := make([]string, 0, 10)
			for _, entry := range entries {
				if len(names) == 10 {
					break
				}
				names = append(names, entry.Name())
			}
			res, _ := Fail(types.ErrNotEmpty, resolved.Path, "directory is not empty; pass force to delete recursively")
			res.Data = map[string]interface{}{
				"item_count": len(entries),
				"contents":   names,
			}
			return res, nil
		}
	}

	var err error
	if resolved.IsDir && force {
		err = os.RemoveAll(resolved.Path)
	} else {
		err = os.Remove(resolved.Path)
	}
	if err != nil {
		f.Log.Warn("delete failed", zap.String("path", resolved.Path), zap.Error(err))
		return failFromOS(resolved.Path, err)
	}

	f.Log.Info("deleted",
		zap.String("path", resolved.Path),
		zap.Int64("bytes_freed", size),
		zap.Int("items", items))

	return Success(map[string]interface{}{
		"path":          resolved.Path,
		"type":          entryType(resolved.IsDir),
		"original_size": size,
		"item_count":    items,
		"space_freed":   FormatSize(size),
	})
}
