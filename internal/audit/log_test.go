package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redactyl/zerowidth/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateScanRecord(t *testing.T) {
	all := []types.Finding{
		{Path: "a.txt", Line: 1, Column: 4, Match: "\u200c\u200d", Payload: "secret", Detector: types.DetectorPayload, Severity: types.SevHigh},
		{Path: "b.txt", Line: 2, Detector: types.DetectorStrayRun, Severity: types.SevLow, Context: "invalid UTF-8"},
	}
	rec := CreateScanRecord("/repo", "quad", all, all[:1], 5, 2*time.Second, "zerowidth.baseline.json")

	_, err := uuid.Parse(rec.ScanID)
	require.NoError(t, err, "scan id must be a uuid")
	assert.Equal(t, 2, rec.TotalFindings)
	assert.Equal(t, 1, rec.NewFindings)
	assert.Equal(t, 1, rec.BaselinedCount)
	assert.Equal(t, 1, rec.SeverityCounts["high"])
	assert.Equal(t, 0, rec.SeverityCounts["medium"])
	assert.Equal(t, "quad", rec.Alphabet)
	require.Len(t, rec.TopFindings, 1)
	assert.Equal(t, 4, rec.TopFindings[0].Column)

	assert.Equal(t, "[REDACTED]", rec.AllFindings[0].Payload)
	assert.Empty(t, rec.AllFindings[0].Match)
	assert.Equal(t, "secret", all[0].Payload, "input must not be modified")
	assert.Empty(t, rec.AllFindings[1].Payload)
}

func TestAuditLog_LogLoadDelete(t *testing.T) {
	dir := t.TempDir()
	log := NewAuditLog(dir)
	assert.Equal(t, filepath.Join(dir, ".zerowidth_audit.jsonl"), log.Path())

	_, err := log.LoadHistory()
	assert.Error(t, err)

	for _, root := range []string{"first", "second", "third"} {
		require.NoError(t, log.LogScan(ScanRecord{Root: root}))
	}
	recs, err := log.LoadHistory()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "third", recs[0].Root, "newest first")
	assert.NotEmpty(t, recs[0].ScanID)

	info, err := os.Stat(log.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, log.DeleteRecord(1))
	recs, err = log.LoadHistory()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "third", recs[0].Root)
	assert.Equal(t, "first", recs[1].Root)

	assert.Error(t, log.DeleteRecord(5))
}

func TestNewAuditLog_PrefersGitDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	assert.Equal(t, filepath.Join(dir, ".git", "zerowidth_audit.jsonl"), NewAuditLog(dir).Path())
}
