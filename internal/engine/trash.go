package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"dirscope/internal/shared/types"
)

// TrashProvider locates the platform trash directory.
type TrashProvider interface {
	// Supported reports whether this platform has a usable trash.
	Supported() bool
	// Dir returns the trash directory, creating it if needed.
	Dir() (string, error)
}

// backupStamp names backup copies so repeated trashings never collide.
const backupStamp = "20060102_150405"

// trashDest picks a free name inside the trash, suffixing "_N" on
// collision.
func trashDest(trashDir, name string) string {
	dest := filepath.Join(trashDir, name)
	if _, err := os.Lstat(dest); err != nil {
		return dest
	}

	ext := filepath.Ext(name)
	stem := name[:len(name)-len(ext)]
	for n := 1; ; n++ {
		dest = filepath.Join(trashDir, fmt.Sprintf("%s_%d%s", stem, n, ext))
		if _, err := os.Lstat(dest); err != nil {
			return dest
		}
	}
}

// backup copies the entry into the backup area before trashing.
func (f *FileOps) backup(path string, isDir bool) (string, error) {
	dir := ExpandHome(f.BackupDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := filepath.Base(path) + "_" + time.Now().Format(backupStamp)
	dest := filepath.Join(dir, name)

	var err error
	if isDir {
		err = copyTree(path, dest)
	} else {
		info, statErr := os.Stat(path)
		if statErr != nil {
			return "", statErr
		}
		err = copyFile(path, dest, info.Mode())
	}
	if err != nil {
		return "", err
	}
	return dest, nil
}

// SafeDelete moves an entry to the platform trash, optionally copying
// it into the backup area first
func (f *FileOps) SafeDelete(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Fail(types.ErrInvalidArgument, "", "path parameter required")
	}
	withBackup, _ := params["backup"].(bool)

	resolved := Resolve(path)
	if !resolved.Exists {
		return Fail(types.ErrNotFound, resolved.Path, "file or directory does not exist")
	}
	if f.isProtected(resolved.Path) {
		return Fail(types.ErrProtected, resolved.Path, "refusing to trash a protected location")
	}

	if f.Trash == nil || !f.Trash.Supported() {
		return Fail(types.ErrUnsupported, resolved.Path, "no trash on this platform; use fs.file.delete instead")
	}
	trashDir, err := f.Trash.Dir()
	if err != nil {
		return failFromOS(resolved.Path, err)
	}

	size, items := f.measure(ctx, resolved.Path, resolved.IsDir)

	backupPath := ""
	if withBackup {
		backupPath, err = f.backup(resolved.Path, resolved.IsDir)
		if err != nil {
			f.Log.Warn("backup failed", zap.String("path", resolved.Path), zap.Error(err))
			return failFromOS(resolved.Path, err)
		}
	}

	dest := trashDest(trashDir, filepath.Base(resolved.Path))
	if err := moveEntry(resolved.Path, dest); err != nil {
		f.Log.Warn("trash failed", zap.String("path", resolved.Path), zap.Error(err))
		return failFromOS(resolved.Path, err)
	}

	f.Log.Info("trashed",
		zap.String("path", resolved.Path),
		zap.String("trash_path", dest),
		zap.Bool("backup", withBackup))

	data := map[string]interface{}{
		"path":          resolved.Path,
		"trash_path":    dest,
		"type":          entryType(resolved.IsDir),
		"original_size": size,
		"item_count":    items,
		"space_freed":   FormatSize(size),
	}
	if backupPath != "" {
		data["backup_path"] = backupPath
	}
	return Success(data)
}
