package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_Smoke(t *testing.T) {
	findings, err := Scan(Config{Root: t.TempDir(), NoCache: true})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(findings) != 0 {
		t.Fatalf("empty dir produced findings: %+v", findings)
	}
	if len(DetectorIDs()) == 0 {
		t.Fatal("expected non-empty detector IDs")
	}
}

func TestScanWithStats_FindsEmbedded(t *testing.T) {
	dir := t.TempDir()
	hidden, err := Embed("quad", "some carrier text", "needle")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte(hidden), 0o644))

	res, err := ScanWithStats(Config{Root: dir, NoCache: true})
	require.NoError(t, err)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "needle", res.Findings[0].Payload)
	assert.Equal(t, 1, res.FilesScanned)
}

func TestRoundTripPerAlphabet(t *testing.T) {
	for _, name := range Alphabets() {
		t.Run(name, func(t *testing.T) {
			enc, err := Encode(name, "Hello World!")
			require.NoError(t, err)
			dec, err := Decode(name, enc)
			require.NoError(t, err)
			assert.Equal(t, "Hello World!", dec)

			hidden, err := Embed(name, "foo bar", "Hello World!")
			require.NoError(t, err)
			got, err := Detect(name, hidden)
			require.NoError(t, err)
			assert.Equal(t, []string{"Hello World!"}, got)

			clean, n, err := Strip(name, hidden)
			require.NoError(t, err)
			assert.Equal(t, "foo bar", clean)
			assert.Equal(t, 1, n)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode("quad", "not invisible")
	assert.True(t, errors.Is(err, ErrInvalidSymbol))

	_, err = Encode("morse", "x")
	assert.True(t, errors.Is(err, ErrUnknownAlphabet))
}

func TestStampAndProvenance(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	stamped, err := Stamp("", "quoted text", "https://example.com/a", now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stamped, "quote"))

	recs, err := Provenance("", stamped)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "quoted text", recs[0].Original)
	assert.Equal(t, "https://example.com/a", recs[0].Href)
	assert.Equal(t, "2024-01-02T03:04:05.000Z", recs[0].Date)
}

func TestWriteReadFindings(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteFindings(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())

	dir := t.TempDir()
	hidden, err := Embed("quad", "carrier text", "needle")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte(hidden), 0o644))
	found, err := Scan(Config{Root: dir, NoCache: true})
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, WriteFindings(&buf, found))
	back, err := ReadFindings(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, "needle", back[0].Payload)
	assert.Equal(t, found[0].Match, back[0].Match)

	_, err = ReadFindings(strings.NewReader("{"))
	assert.Error(t, err)
}
