package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrashOps(t *testing.T) (*FileOps, string) {
	t.Helper()
	ops := newTestOps(t)
	trashDir := t.TempDir()
	ops.Trash = &fakeTrash{dir: trashDir}
	return &FileOps{ops}, trashDir
}

func TestSafeDeleteMovesToTrash(t *testing.T) {
	files, trashDir := newTrashOps(t)
	tmp, root := scanRoot(t)
	writeFile(t, tmp, "junk.txt", "0123456789")

	res, err := files.SafeDelete(context.Background(), map[string]interface{}{"path": filepath.Join(root, "junk.txt")})
	require.NoError(t, err)
	require.True(t, res.Success)

	assert.Equal(t, filepath.Join(trashDir, "junk.txt"), res.Data["trash_path"])
	assert.Equal(t, int64(10), res.Data["original_size"])
	assert.NoFileExists(t, filepath.Join(root, "junk.txt"))
	assert.FileExists(t, filepath.Join(trashDir, "junk.txt"))
	_, hasBackup := res.Data["backup_path"]
	assert.False(t, hasBackup)
}

func TestSafeDeleteCollisionSuffix(t *testing.T) {
	files, trashDir := newTrashOps(t)
	tmp, root := scanRoot(t)
	writeFile(t, trashDir, "junk.txt", "earlier trashing")
	writeFile(t, tmp, "junk.txt", "new")

	res, err := files.SafeDelete(context.Background(), map[string]interface{}{"path": filepath.Join(root, "junk.txt")})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, filepath.Join(trashDir, "junk_1.txt"), res.Data["trash_path"])

	// A third trashing of the same name picks the next free suffix.
	writeFile(t, tmp, "junk.txt", "newer")
	res, err = files.SafeDelete(context.Background(), map[string]interface{}{"path": filepath.Join(root, "junk.txt")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(trashDir, "junk_2.txt"), res.Data["trash_path"])
}

func TestSafeDeleteWithBackup(t *testing.T) {
	files, _ := newTrashOps(t)
	tmp, root := scanRoot(t)
	writeFile(t, tmp, "precious.txt", "keep me")

	res, err := files.SafeDelete(context.Background(), map[string]interface{}{
		"path":   filepath.Join(root, "precious.txt"),
		"backup": true,
	})
	require.NoError(t, err)
	require.True(t, res.Success)

	backupPath, ok := res.Data["backup_path"].(string)
	require.True(t, ok)
	assert.FileExists(t, backupPath)
	content, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(content))
}

func TestSafeDeleteDirectory(t *testing.T) {
	files, trashDir := newTrashOps(t)
	tmp, root := scanRoot(t)
	writeFile(t, tmp, "box/a.txt", "a")
	writeFile(t, tmp, "box/sub/b.txt", "bb")

	res, err := files.SafeDelete(context.Background(), map[string]interface{}{"path": filepath.Join(root, "box")})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "directory", res.Data["type"])
	assert.Equal(t, 2, res.Data["item_count"])
	assert.NoDirExists(t, filepath.Join(root, "box"))
	assert.FileExists(t, filepath.Join(trashDir, "box/sub/b.txt"))
}

func TestSafeDeleteUnsupportedPlatform(t *testing.T) {
	files := &FileOps{newTestOps(t)}
	files.Trash = noTrash{}
	tmp, root := scanRoot(t)
	writeFile(t, tmp, "junk.txt", "x")

	res, err := files.SafeDelete(context.Background(), map[string]interface{}{"path": filepath.Join(root, "junk.txt")})
	require.NoError(t, err)
	require.False(t, res.Success)
	assert.Equal(t, "unsupported", string(res.Error.Kind))
	// The entry stays put when there is no trash to receive it.
	assert.FileExists(t, filepath.Join(root, "junk.txt"))
}

func TestSafeDeleteProtected(t *testing.T) {
	files, _ := newTrashOps(t)

	res, err := files.SafeDelete(context.Background(), map[string]interface{}{"path": "/etc"})
	require.NoError(t, err)
	require.False(t, res.Success)
	assert.Equal(t, "protected", string(res.Error.Kind))
}

func TestTrashDestSuffixKeepsExtension(t *testing.T) {
	trashDir := t.TempDir()
	writeFile(t, trashDir, "report.pdf", "x")

	dest := trashDest(trashDir, "report.pdf")
	assert.Equal(t, filepath.Join(trashDir, "report_1.pdf"), dest)

	dest = trashDest(trashDir, "fresh.pdf")
	assert.Equal(t, filepath.Join(trashDir, "fresh.pdf"), dest)
}
