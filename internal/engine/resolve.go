package engine

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading "~" or "~/" against the user home
// directory. Paths without the shorthand are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// Resolve normalizes a user-supplied path to absolute, symlink-resolved
// form and records whether it exists and what it is. Every operation
// resolves its inputs through here before touching the filesystem.
func Resolve(path string) ResolvedPath {
	p := ExpandHome(path)
	abs, err := filepath.Abs(p)
	if err != nil {
		abs = filepath.Clean(p)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	info, err := os.Stat(abs)
	if err != nil {
		return ResolvedPath{Path: abs}
	}
	return ResolvedPath{Path: abs, Exists: true, IsDir: info.IsDir()}
}
