package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"dirscope/internal/logging"
	"dirscope/internal/shared/types"
)

// FileRecord is a stat-time snapshot of one discovered file. Records are
// produced by traversal and treated as read-only downstream.
type FileRecord struct {
	Name     string
	Path     string // absolute
	RelPath  string // relative to the scan root
	Size     int64
	Ext      string // lower-cased, with leading dot; "" when none
	ModTime  time.Time
	Created  time.Time // platform-dependent; ModTime where unavailable
	Accessed time.Time
}

// ResolvedPath is a normalized user path with existence metadata.
type ResolvedPath struct {
	Path   string
	Exists bool
	IsDir  bool
}

// SkipFunc is invoked when a traversal entry fails (permission, race).
// The default implementation logs at debug and continues the scan.
type SkipFunc func(path string, err error)

// EngineOps carries the dependencies shared by all operation modules.
type EngineOps struct {
	Log       *logging.Logger
	Workers   int
	BackupDir string
	Protected []string
	Trash     TrashProvider
	Skip      SkipFunc
}

func (ops *EngineOps) skip(path string, err error) {
	if ops.Skip != nil {
		ops.Skip(path, err)
		return
	}
	if ops.Log != nil {
		ops.Log.Debug("skipping entry", zap.String("path", path), zap.Error(err))
	}
}

// Success helper
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Fail reports an expected failure with a categorized kind.
func Fail(kind types.ErrorKind, path, message string) (*types.Result, error) {
	return &types.Result{Success: false, Error: &types.Failure{
		Kind:    kind,
		Message: message,
		Path:    path,
	}}, nil
}

// Failf is Fail with a format string.
func Failf(kind types.ErrorKind, path, format string, args ...interface{}) (*types.Result, error) {
	return Fail(kind, path, fmt.Sprintf(format, args...))
}

// failFromOS maps an OS error to the closest failure kind.
func failFromOS(path string, err error) (*types.Result, error) {
	switch {
	case os.IsNotExist(err):
		return Failf(types.ErrNotFound, path, "path does not exist: %v", err)
	case os.IsPermission(err):
		return Failf(types.ErrPermissionDenied, path, "permission denied: %v", err)
	case os.IsExist(err):
		return Failf(types.ErrAlreadyExists, path, "target already exists: %v", err)
	default:
		return Failf(types.ErrInternal, path, "operation failed: %v", err)
	}
}

// extOf returns the lower-cased extension of a file name, with dot.
func extOf(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

const timeLayout = "2006-01-02 15:04:05"
