//go:build darwin

package engine

import (
	"os"
	"syscall"
	"time"
)

// statTimes extracts creation and access times from the underlying stat
// structure, falling back to the modification time when unavailable.
func statTimes(info os.FileInfo) (created, accessed time.Time) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime(), info.ModTime()
	}
	created = time.Unix(stat.Birthtimespec.Sec, stat.Birthtimespec.Nsec)
	accessed = time.Unix(stat.Atimespec.Sec, stat.Atimespec.Nsec)
	return created, accessed
}
