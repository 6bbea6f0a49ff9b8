package engine

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, when time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, when, when))
}

func TestRecentWindow(t *testing.T) {
	times := &TimeOps{newTestOps(t)}
	tmp, root := scanRoot(t)
	fresh := writeFile(t, tmp, "fresh.txt", "x")
	stale := writeFile(t, tmp, "stale.txt", "y")
	touch(t, fresh, time.Now().Add(-24*time.Hour))
	touch(t, stale, time.Now().Add(-30*24*time.Hour))

	res, err := times.Recent(context.Background(), map[string]interface{}{"directory": root, "days": float64(7)})
	require.NoError(t, err)
	require.True(t, res.Success)

	files := res.Data["files"].([]map[string]interface{})
	require.Len(t, files, 1)
	assert.Equal(t, "fresh.txt", files[0]["filename"])
	assert.Equal(t, 1, res.Data["count"])
	assert.Equal(t, 7, res.Data["days"])
}

func TestRecentSortedNewestFirst(t *testing.T) {
	times := &TimeOps{newTestOps(t)}
	tmp, root := scanRoot(t)
	older := writeFile(t, tmp, "older.txt", "x")
	newer := writeFile(t, tmp, "newer.txt", "y")
	touch(t, older, time.Now().Add(-48*time.Hour))
	touch(t, newer, time.Now().Add(-1*time.Hour))

	res, err := times.Recent(context.Background(), map[string]interface{}{"directory": root})
	require.NoError(t, err)

	files := res.Data["files"].([]map[string]interface{})
	require.Len(t, files, 2)
	assert.Equal(t, "newer.txt", files[0]["filename"])
	assert.Equal(t, "older.txt", files[1]["filename"])
}

func TestRangeInclusive(t *testing.T) {
	times := &TimeOps{newTestOps(t)}
	tmp, root := scanRoot(t)
	inside := writeFile(t, tmp, "inside.txt", "abc")
	outside := writeFile(t, tmp, "outside.txt", "d")

	day := time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)
	touch(t, inside, day)
	touch(t, outside, day.AddDate(0, 0, 5))

	res, err := times.Range(context.Background(), map[string]interface{}{
		"directory":  root,
		"start_date": "2026-03-10",
		"end_date":   "2026-03-10",
	})
	require.NoError(t, err)
	require.True(t, res.Success)

	files := res.Data["files"].([]map[string]interface{})
	require.Len(t, files, 1)
	assert.Equal(t, "inside.txt", files[0]["filename"])
	assert.Equal(t, 1, res.Data["total_count"])
	assert.Equal(t, int64(3), res.Data["total_size"])
	assert.Equal(t, "2026-03-10", res.Data["start_date"])
}

func TestRangeRejectsMalformedDate(t *testing.T) {
	times := &TimeOps{newTestOps(t)}

	res, err := times.Range(context.Background(), map[string]interface{}{"start_date": "10/03/2026"})
	require.NoError(t, err)
	require.False(t, res.Success)
	assert.Equal(t, "invalid_argument", string(res.Error.Kind))
}

func TestRangeOpenBounds(t *testing.T) {
	times := &TimeOps{newTestOps(t)}
	tmp, root := scanRoot(t)
	f := writeFile(t, tmp, "old.txt", "x")
	touch(t, f, time.Now().AddDate(-1, 0, 0))

	res, err := times.Range(context.Background(), map[string]interface{}{"directory": root})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Data["total_count"])
	assert.Equal(t, "epoch", res.Data["start_date"])
	assert.Equal(t, "today", res.Data["end_date"])
}

func TestBucketKey(t *testing.T) {
	// Wednesday 2026-03-11.
	ts := time.Date(2026, 3, 11, 12, 0, 0, 0, time.Local)

	assert.Equal(t, "2026-03-11", bucketKey(ts, "day"))
	// Week buckets key on the preceding Monday.
	assert.Equal(t, "2026-03-09", bucketKey(ts, "week"))
	assert.Equal(t, "2026-03", bucketKey(ts, "month"))

	// A Monday keys on itself.
	monday := time.Date(2026, 3, 9, 8, 0, 0, 0, time.Local)
	assert.Equal(t, "2026-03-09", bucketKey(monday, "week"))
	// A Sunday keys on the Monday six days back.
	sunday := time.Date(2026, 3, 15, 8, 0, 0, 0, time.Local)
	assert.Equal(t, "2026-03-09", bucketKey(sunday, "week"))
}

func TestTimeline(t *testing.T) {
	times := &TimeOps{newTestOps(t)}
	tmp, root := scanRoot(t)
	a := writeFile(t, tmp, "a.txt", "aa")
	b := writeFile(t, tmp, "b.txt", "bbb")
	today := time.Now()
	touch(t, a, today.Add(-2*time.Minute))
	touch(t, b, today.Add(-time.Minute))

	res, err := times.Timeline(context.Background(), map[string]interface{}{"directory": root, "group_by": "day"})
	require.NoError(t, err)
	require.True(t, res.Success)

	timeline := res.Data["timeline"].(map[string]interface{})
	require.Len(t, timeline, 1)
	bucket := timeline[today.Format(dateLayout)].(map[string]interface{})
	assert.Equal(t, 2, bucket["count"])
	assert.Equal(t, int64(5), bucket["total_size"])

	summary := res.Data["summary"].(map[string]interface{})
	assert.Equal(t, 2, summary["total_files"])
	assert.Equal(t, "last 30 days", summary["date_range"])
	assert.Equal(t, "day", summary["group_by"])
}

func TestTimelineInvalidGroupByFallsBackToDay(t *testing.T) {
	times := &TimeOps{newTestOps(t)}
	_, root := scanRoot(t)

	res, err := times.Timeline(context.Background(), map[string]interface{}{"directory": root, "group_by": "fortnight"})
	require.NoError(t, err)
	summary := res.Data["summary"].(map[string]interface{})
	assert.Equal(t, "day", summary["group_by"])
}
