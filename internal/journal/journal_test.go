package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) *SQLiteJournal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func testRecord(id string, at time.Time) RunRecord {
	return RunRecord{
		RunID:         id,
		CreatedAt:     at,
		ParamsFile:    "params.yaml",
		Seed:          12345,
		Trials:        1000,
		Excluded:      2,
		SuccessRate:   0.93,
		DepletionRate: 0.07,
		MedianEnding:  812000.50,
		P10Ending:     120000,
		P90Ending:     2400000,
	}
}

func TestJournalRecordAndGet(t *testing.T) {
	j := openTestJournal(t)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, j.RecordRun(testRecord("run-1", now)))

	got, err := j.GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, int64(12345), got.Seed)
	assert.Equal(t, 1000, got.Trials)
	assert.Equal(t, 2, got.Excluded)
	assert.InDelta(t, 0.93, got.SuccessRate, 1e-9)
	assert.InDelta(t, 812000.50, got.MedianEnding, 1e-6)
	assert.True(t, got.CreatedAt.Equal(now), "created_at %s != %s", got.CreatedAt, now)
}

func TestJournalDuplicateRunID(t *testing.T) {
	j := openTestJournal(t)

	now := time.Now().UTC()
	require.NoError(t, j.RecordRun(testRecord("run-1", now)))
	assert.Error(t, j.RecordRun(testRecord("run-1", now)))
}

func TestJournalListNewestFirst(t *testing.T) {
	j := openTestJournal(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordRun(testRecord("run-a", base)))
	require.NoError(t, j.RecordRun(testRecord("run-b", base.Add(time.Hour))))
	require.NoError(t, j.RecordRun(testRecord("run-c", base.Add(2*time.Hour))))

	records, err := j.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "run-c", records[0].RunID)
	assert.Equal(t, "run-b", records[1].RunID)

	all, err := j.ListRuns(0) // zero falls back to the default limit
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestJournalGetMissing(t *testing.T) {
	j := openTestJournal(t)

	_, err := j.GetRun("nope")
	assert.Error(t, err)
}
