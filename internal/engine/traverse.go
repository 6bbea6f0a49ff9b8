package engine

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// TraverseOptions configures one directory scan.
type TraverseOptions struct {
	Root      string // absolute, already resolved
	Extension string // literal extension without dot; "" matches all
	Recursive bool
}

// Traverse enumerates files under the root and invokes fn once per
// match, serially. Directories are never yielded. Entries that fail to
// stat or read are passed to the skip hook and the scan continues; the
// only hard error is context cancellation.
func (ops *EngineOps) Traverse(ctx context.Context, opts TraverseOptions, fn func(FileRecord)) error {
	pattern := ""
	if opts.Extension != "" {
		if opts.Recursive {
			pattern = "**/*." + opts.Extension
		} else {
			pattern = "*." + opts.Extension
		}
	}

	if !opts.Recursive {
		return ops.traverseShallow(ctx, opts.Root, pattern, fn)
	}
	return ops.traverseDeep(ctx, opts.Root, pattern, fn)
}

func (ops *EngineOps) traverseShallow(ctx context.Context, root, pattern string, fn func(FileRecord)) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		ops.skip(root, err)
		return nil
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if entry.IsDir() {
			continue
		}
		if pattern != "" {
			if ok, _ := doublestar.Match(pattern, entry.Name()); !ok {
				continue
			}
		}
		info, err := entry.Info()
		if err != nil {
			ops.skip(filepath.Join(root, entry.Name()), err)
			continue
		}
		created, accessed := statTimes(info)
		fn(FileRecord{
			Name:     entry.Name(),
			Path:     filepath.Join(root, entry.Name()),
			RelPath:  entry.Name(),
			Size:     info.Size(),
			Ext:      extOf(entry.Name()),
			ModTime:  info.ModTime(),
			Created:  created,
			Accessed: accessed,
		})
	}
	return nil
}

func (ops *EngineOps) traverseDeep(ctx context.Context, root, pattern string, fn func(FileRecord)) error {
	conf := fastwalk.Config{
		Follow:     false,
		NumWorkers: ops.Workers,
	}

	// fastwalk runs the callback from multiple workers; fn is serialized
	// so collectors stay lock-free and orderings stay caller-controlled.
	var mu sync.Mutex

	return fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			ops.skip(p, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		if pattern != "" {
			if ok, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); !ok {
				return nil
			}
		}
		info, err := d.Info()
		if err != nil {
			ops.skip(p, err)
			return nil
		}
		created, accessed := statTimes(info)

		mu.Lock()
		fn(FileRecord{
			Name:     d.Name(),
			Path:     p,
			RelPath:  rel,
			Size:     info.Size(),
			Ext:      extOf(d.Name()),
			ModTime:  info.ModTime(),
			Created:  created,
			Accessed: accessed,
		})
		mu.Unlock()
		return nil
	})
}

// walkDirs visits every directory under root (root included) and calls
// fn with its absolute path. Used by the empty-folder scan.
func (ops *EngineOps) walkDirs(ctx context.Context, root string, fn func(path string)) error {
	conf := fastwalk.Config{
		Follow:     false,
		NumWorkers: ops.Workers,
	}
	var mu sync.Mutex

	return fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			ops.skip(p, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		mu.Lock()
		fn(p)
		mu.Unlock()
		return nil
	})
}
