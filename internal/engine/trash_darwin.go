//go:build darwin

package engine

import (
	"os"
	"path/filepath"
)

type platformTrash struct{}

// NewTrash returns the macOS trash, ~/.Trash with ~/Trash as fallback.
func NewTrash() TrashProvider { return platformTrash{} }

func (platformTrash) Supported() bool { return true }

func (platformTrash) Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	primary := filepath.Join(home, ".Trash")
	if info, err := os.Stat(primary); err == nil && info.IsDir() {
		return primary, nil
	}
	fallback := filepath.Join(home, "Trash")
	if err := os.MkdirAll(fallback, 0o700); err != nil {
		return "", err
	}
	return fallback, nil
}
