//go:build !darwin && !linux

package engine

type platformTrash struct{}

// NewTrash returns an unsupported trash; callers fall back to delete.
func NewTrash() TrashProvider { return platformTrash{} }

func (platformTrash) Supported() bool { return false }

func (platformTrash) Dir() (string, error) { return "", nil }
