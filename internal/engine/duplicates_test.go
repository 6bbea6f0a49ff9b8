package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicatesFind(t *testing.T) {
	dups := &DuplicateOps{newTestOps(t)}
	tmp, root := scanRoot(t)
	writeFile(t, tmp, "a.txt", "same content")
	writeFile(t, tmp, "b.txt", "same content")
	writeFile(t, tmp, "c.txt", "different")
	writeFile(t, tmp, "sub/d.txt", "same content")

	res, err := dups.Find(context.Background(), map[string]interface{}{"directory": root, "recursive": true})
	require.NoError(t, err)
	require.True(t, res.Success)

	groups := res.Data["duplicates"].(map[string][]string)
	assert.Equal(t, 1, res.Data["groups"])
	require.Len(t, groups, 1)
	for _, members := range groups {
		assert.Equal(t, []string{
			filepath.Join(root, "a.txt"),
			filepath.Join(root, "b.txt"),
			filepath.Join(root, "sub/d.txt"),
		}, members)
	}
}

func TestDuplicatesNoneAfterRemoval(t *testing.T) {
	dups := &DuplicateOps{newTestOps(t)}
	tmp, root := scanRoot(t)
	a := writeFile(t, tmp, "a.txt", "same content")
	writeFile(t, tmp, "b.txt", "same content")

	res, err := dups.Find(context.Background(), map[string]interface{}{"directory": root})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Data["groups"])

	require.NoError(t, os.Remove(a))

	res, err = dups.Find(context.Background(), map[string]interface{}{"directory": root})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Data["groups"])
	assert.Empty(t, res.Data["duplicates"])
}

func TestDuplicatesEmptyFilesGroup(t *testing.T) {
	dups := &DuplicateOps{newTestOps(t)}
	tmp, root := scanRoot(t)
	writeFile(t, tmp, "x.bin", "")
	writeFile(t, tmp, "y.bin", "")

	res, err := dups.Find(context.Background(), map[string]interface{}{"directory": root})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Data["groups"])
}

func TestHashFileStable(t *testing.T) {
	tmp := t.TempDir()
	path := writeFile(t, tmp, "a.txt", "payload")

	first, err := hashFile(path)
	require.NoError(t, err)
	second, err := hashFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, digestSize*2)

	other := writeFile(t, tmp, "b.txt", "payload!")
	different, err := hashFile(other)
	require.NoError(t, err)
	assert.NotEqual(t, first, different)
}
