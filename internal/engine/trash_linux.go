//go:build linux

package engine

import (
	"os"
	"path/filepath"
)

type platformTrash struct{}

// NewTrash returns the XDG trash, ~/.local/share/Trash/files with
// ~/.Trash as fallback.
func NewTrash() TrashProvider { return platformTrash{} }

func (platformTrash) Supported() bool { return true }

func (platformTrash) Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	primary := filepath.Join(home, ".local", "share", "Trash", "files")
	if err := os.MkdirAll(primary, 0o700); err == nil {
		return primary, nil
	}
	fallback := filepath.Join(home, ".Trash")
	if err := os.MkdirAll(fallback, 0o700); err != nil {
		return "", err
	}
	return fallback, nil
}
