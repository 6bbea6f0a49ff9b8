package engine

import "fmt"

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

var unitScale = map[string]int64{
	"B":  1,
	"KB": 1 << 10,
	"MB": 1 << 20,
	"GB": 1 << 30,
	"TB": 1 << 40,
}

// FormatSize renders bytes with the largest binary unit that keeps the
// scaled value under 1024, to one decimal place.
func FormatSize(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}

	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", size, sizeUnits[unit])
}

// FormatSizeIn renders bytes in an explicit unit. Unknown units report
// ok=false and the caller falls back to auto scaling.
func FormatSizeIn(bytes int64, unit string) (string, bool) {
	scale, ok := unitScale[unit]
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(scale), unit), true
}
