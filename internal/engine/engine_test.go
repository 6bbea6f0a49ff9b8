package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"dirscope/internal/logging"
)

// newTestOps returns an EngineOps wired for tests: no-op logging, no
// platform trash unless the test injects one.
func newTestOps(t *testing.T) *EngineOps {
	t.Helper()
	return &EngineOps{
		Log:       logging.NewNop(),
		BackupDir: filepath.Join(t.TempDir(), "backups"),
		Protected: append([]string{}, defaultProtected...),
	}
}

// fakeTrash redirects trash moves into a test directory.
type fakeTrash struct {
	dir string
}

func (f *fakeTrash) Supported() bool      { return true }
func (f *fakeTrash) Dir() (string, error) { return f.dir, nil }

// noTrash simulates a platform without a trash.
type noTrash struct{}

func (noTrash) Supported() bool      { return false }
func (noTrash) Dir() (string, error) { return "", nil }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// scanRoot resolves a temp dir the same way operations do, so path
// expectations survive symlinked temp locations.
func scanRoot(t *testing.T) (string, string) {
	t.Helper()
	tmp := t.TempDir()
	return tmp, Resolve(tmp).Path
}
