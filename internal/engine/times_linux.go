//go:build linux

package engine

import (
	"os"
	"syscall"
	"time"
)

// statTimes extracts change and access times from the underlying stat
// structure. Linux exposes no true creation time, so the inode change
// time stands in for it.
func statTimes(info os.FileInfo) (created, accessed time.Time) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime(), info.ModTime()
	}
	created = time.Unix(int64(stat.Ctim.Sec), int64(stat.Ctim.Nsec))
	accessed = time.Unix(int64(stat.Atim.Sec), int64(stat.Atim.Nsec))
	return created, accessed
}
