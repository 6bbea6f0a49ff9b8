package engine

import (
	"context"
	"encoding/hex"
	"io"
	"os"
	"sort"

	"golang.org/x/crypto/blake2b"

	"dirscope/internal/shared/types"
)

// hashChunkSize bounds per-file memory during digesting.
const hashChunkSize = 64 * 1024

// digestSize is 16 bytes (128-bit BLAKE2b), enough to treat digest
// equality as content equality for duplicate grouping.
const digestSize = 16

// DuplicateOps handles content-hash duplicate detection.
type DuplicateOps struct {
	*EngineOps
}

// GetTools returns duplicate detection tool definitions
func (d *DuplicateOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "fs.scan.duplicates",
			Name:        "Find Duplicate Files",
			Description: "Group byte-identical files by content digest",
			Parameters: []types.Parameter{
				{Name: "directory", Type: "string", Description: "Directory path", Required: false},
				{Name: "recursive", Type: "boolean", Description: "Visit subdirectories", Required: false},
			},
			Returns: "object",
		},
	}
}

// hashFile streams the file through BLAKE2b-128 in fixed-size chunks.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h, err := blake2b.New(digestSize, nil)
	if err != nil {
		return "", err
	}
	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Find groups files sharing a content digest. Files that cannot be read
// are dropped entirely: a failed hash must never compare equal to
// anything.
func (d *DuplicateOps) Find(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	dir, _, recursive := scanArgs(params)

	root := Resolve(dir)
	if !root.Exists || !root.IsDir {
		return Success(map[string]interface{}{"directory": root.Path, "duplicates": map[string][]string{}, "groups": 0})
	}

	paths := []string{}
	err := d.Traverse(ctx, TraverseOptions{Root: root.Path, Recursive: recursive}, func(rec FileRecord) {
		paths = append(paths, rec.Path)
	})
	if err != nil {
		return nil, err
	}

	byDigest := map[string][]string{}
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		digest, err := hashFile(p)
		if err != nil {
			d.skip(p, err)
			continue
		}
		byDigest[digest] = append(byDigest[digest], p)
	}

	duplicates := map[string][]string{}
	for digest, group := range byDigest {
		if len(group) < 2 {
			continue
		}
		sort.Strings(group)
		duplicates[digest] = group
	}

	return Success(map[string]interface{}{
		"directory":  root.Path,
		"duplicates": duplicates,
		"groups":     len(duplicates),
	})
}
