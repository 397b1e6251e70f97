package zerowidth

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/redactyl/zerowidth/internal/alphabet"
	"github.com/redactyl/zerowidth/internal/codec"
	"github.com/redactyl/zerowidth/internal/stego"
	"github.com/redactyl/zerowidth/internal/tui"
	"github.com/redactyl/zerowidth/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI in-process with stdin and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestEncodeDecode(t *testing.T) {
	enc, _, err := execute(t, "", "encode", "Hello", "World!")
	require.NoError(t, err)
	enc = strings.TrimSuffix(enc, "\n")
	assert.Equal(t, 48, utf8.RuneCountInString(enc))

	dec, _, err := execute(t, enc+"\n", "decode")
	require.NoError(t, err)
	assert.Equal(t, "Hello World!\n", dec)
}

func TestEncode_BinaryJSON(t *testing.T) {
	out, _, err := execute(t, "hi", "encode", "--alphabet", "binary", "--json")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "binary", got["alphabet"])
	assert.Equal(t, float64(16), got["symbols"])
}

func TestDecode_InvalidSymbol(t *testing.T) {
	_, _, err := execute(t, "", "decode", "plain text")
	require.Error(t, err)
	assert.True(t, errors.Is(err, codec.ErrInvalidSymbol))
	assert.Contains(t, err.Error(), "try detect")
}

func TestUnknownAlphabet(t *testing.T) {
	_, _, err := execute(t, "", "encode", "--alphabet", "morse", "x")
	assert.True(t, errors.Is(err, alphabet.ErrUnknownAlphabet))
}

func TestEmbedDetect(t *testing.T) {
	out, _, err := execute(t, "foo bar", "embed", "--hidden", "Hello World!")
	require.NoError(t, err)
	hidden := strings.TrimSuffix(out, "\n")
	assert.Equal(t, 55, utf8.RuneCountInString(hidden))

	found, _, err := execute(t, "", "detect", hidden)
	require.NoError(t, err)
	assert.Equal(t, "Hello World!\n", found)
}

func TestEmbed_RequiresHidden(t *testing.T) {
	_, _, err := execute(t, "carrier", "embed")
	assert.EqualError(t, err, "--hidden is required")
}

func TestDetect_StatsJSON(t *testing.T) {
	quad := codec.New(alphabet.Quad)
	text := "a" + quad.Encode("ok") + "b" + quad.EncodeBytes([]byte{0xff}) + "c"
	out, _, err := execute(t, text, "detect", "--stats", "--json")
	require.NoError(t, err)
	var got struct {
		Payloads []string
		Runs     []runJSON
		Skipped  int
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"ok"}, got.Payloads)
	assert.Equal(t, 1, got.Skipped)
	require.Len(t, got.Runs, 2)
	assert.Equal(t, 1, got.Runs[0].Start)
	assert.Contains(t, got.Runs[1].Error, "invalid UTF-8")
}

func TestDetect_Clipboard(t *testing.T) {
	orig := readClipboard
	t.Cleanup(func() { readClipboard = orig })
	readClipboard = func() (string, error) {
		return stego.Embed(codec.New(alphabet.Quad), "pasted", "from clipboard"), nil
	}
	out, _, err := execute(t, "", "detect", "--clipboard")
	require.NoError(t, err)
	assert.Equal(t, "from clipboard\n", out)
}

func TestStampProvenance(t *testing.T) {
	origNow, origWrite := now, writeClipboard
	t.Cleanup(func() { now, writeClipboard = origNow, origWrite })
	now = func() time.Time { return time.Date(2024, 3, 9, 8, 7, 6, 0, time.UTC) }
	var copied string
	writeClipboard = func(s string) error { copied = s; return nil }

	out, _, err := execute(t, "quoted paragraph", "stamp", "--href", "https://example.com/x", "--clipboard")
	require.NoError(t, err)
	stamped := strings.TrimSuffix(out, "\n")
	assert.Equal(t, stamped, copied)

	out, _, err = execute(t, stamped, "provenance", "--json")
	require.NoError(t, err)
	var recs []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "quoted paragraph", recs[0]["original"])
	assert.Equal(t, "https://example.com/x", recs[0]["href"])
	assert.Equal(t, "2024-03-09T08:07:06.000Z", recs[0]["date"])
	assert.Equal(t, "1.0.0", recs[0]["version"])
}

func TestProvenance_None(t *testing.T) {
	out, _, err := execute(t, "", "provenance", "nothing here")
	require.NoError(t, err)
	assert.Contains(t, out, "No provenance records found")
}

func TestStrip(t *testing.T) {
	quad := codec.New(alphabet.Quad)
	out, _, err := execute(t, stego.Embed(quad, "clean me", "x"), "strip")
	require.NoError(t, err)
	assert.Equal(t, "clean me\n", out)

	dir := t.TempDir()
	dirty := filepath.Join(dir, "dirty.txt")
	clean := filepath.Join(dir, "clean.txt")
	require.NoError(t, os.WriteFile(dirty, []byte(stego.Embed(quad, "text", "x")), 0o644))
	require.NoError(t, os.WriteFile(clean, []byte("text"), 0o644))

	out, errOut, err := execute(t, "", "strip", dirty, clean)
	require.NoError(t, err)
	assert.Equal(t, "would strip "+dirty+"\n", out)
	assert.Contains(t, errOut, "--write")

	out, _, err = execute(t, "", "strip", "--write", dirty, clean)
	require.NoError(t, err)
	assert.Equal(t, "stripped "+dirty+"\n", out)
	b, _ := os.ReadFile(dirty)
	assert.Equal(t, "text", string(b))
}

func payloadTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	quad := codec.New(alphabet.Quad)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "note.md"), []byte(stego.Embed(quad, "hello world", "secret")), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain.md"), []byte("nothing"), 0o644))
	return dir
}

func TestScan_JSONAndExitCode(t *testing.T) {
	dir := payloadTree(t)
	out, _, err := execute(t, "", "scan", "--json", "--no-cache", "-p", dir)
	var ee exitError
	require.True(t, errors.As(err, &ee), "expected exit error, got %v", err)
	assert.Equal(t, 1, ee.code)

	var arr []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &arr))
	require.Len(t, arr, 1)
	assert.Equal(t, "secret", arr[0]["payload"])
	assert.Equal(t, "note.md", arr[0]["path"])

	_, _, err = execute(t, "", "scan", "--json", "--no-cache", "--fail-on", "none", "-p", dir)
	assert.NoError(t, err)
}

func TestScan_SARIF(t *testing.T) {
	dir := payloadTree(t)
	out, _, _ := execute(t, "", "scan", "--sarif", "--no-cache", "-p", dir)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "2.1.0", doc["version"])
}

func TestScan_TextDisableAndLast(t *testing.T) {
	dir := payloadTree(t)
	out, errOut, err := execute(t, "", "scan", "--text", "--no-color", "--no-cache", "--disable", "stray_run", "-p", dir)
	require.Error(t, err)
	assert.Contains(t, out, `"secret"`)
	assert.Contains(t, errOut, "detectors active: payload,provenance")

	out, _, err = execute(t, "", "scan", "--last", "--text", "--no-color", "--hide-payloads", "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "note.md:1:6")
	assert.NotContains(t, out, `"secret"`)
}

func TestScan_DryRun(t *testing.T) {
	dir := payloadTree(t)
	out, _, err := execute(t, "", "scan", "--dry-run", "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Would scan 2 files")
}

func TestScan_TUI(t *testing.T) {
	dir := payloadTree(t)
	var (
		got  []types.Finding
		opts tui.Options
	)
	orig := runTUI
	runTUI = func(f []types.Finding, o tui.Options) error { got, opts = f, o; return nil }
	defer func() { runTUI = orig }()

	out, _, err := execute(t, "", "scan", "--tui", "--no-cache", "-p", dir)
	require.NoError(t, err, "the viewer decides nothing about exit codes")
	assert.Empty(t, out)
	require.Len(t, got, 1)
	assert.Equal(t, "secret", got[0].Payload)
	assert.Equal(t, filepath.Join(dir, "zerowidth.baseline.json"), opts.BaselinePath)
	assert.NotNil(t, opts.Detector)
	assert.True(t, opts.CachedAt.IsZero())

	again, err := opts.Rescan()
	require.NoError(t, err)
	assert.Len(t, again, 1)

	_, _, err = execute(t, "", "scan", "--last", "--tui", "-p", dir)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, opts.CachedAt.IsZero())
}

func TestBaselineUpdateThenScan(t *testing.T) {
	dir := payloadTree(t)
	out, _, err := execute(t, "", "baseline", "update", "--no-cache", "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Baseline updated: 1 findings")

	out, _, err = execute(t, "", "scan", "--json", "--no-cache", "-p", dir)
	require.NoError(t, err, "baselined findings must not fail the scan")
	assert.Equal(t, "[]\n", out)
}

func TestHistory(t *testing.T) {
	dir := payloadTree(t)
	_, _, _ = execute(t, "", "scan", "--json", "--no-cache", "-p", dir)
	_, _, _ = execute(t, "", "scan", "--json", "--no-cache", "--alphabet", "binary", "-p", dir)

	out, _, err := execute(t, "", "history", "--json", "-p", dir)
	require.NoError(t, err)
	var recs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 2)
	assert.Equal(t, "binary", recs[0]["alphabet"])

	_, _, err = execute(t, "", "history", "--delete", "0", "-p", dir)
	require.NoError(t, err)
	out, _, err = execute(t, "", "history", "--no-color", "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "quad")
	assert.NotContains(t, out, "binary")
}

func TestScan_NoAudit(t *testing.T) {
	dir := payloadTree(t)
	_, _, _ = execute(t, "", "scan", "--json", "--no-cache", "--no-audit", "-p", dir)
	_, _, err := execute(t, "", "history", "-p", dir)
	assert.Error(t, err)
}

func TestAlphabetCommand(t *testing.T) {
	out, _, err := execute(t, "", "alphabet", "--json")
	require.NoError(t, err)
	var list []alphabetJSON
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 2)

	out, _, err = execute(t, "", "alphabet", "quad")
	require.NoError(t, err)
	assert.Contains(t, out, "quad (default): 2 bits per symbol, 4 symbols per byte")
	assert.Contains(t, out, "11  U+2062")
	assert.Contains(t, out, "ZERO WIDTH NON-JOINER")
}

func TestConfigInitAndShow(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".zerowidth.yml")
	out, _, err := execute(t, "", "config", "init", "--output", p)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+p)

	_, _, err = execute(t, "", "config", "init", "--output", p)
	assert.Error(t, err)

	out, _, err = execute(t, "", "config", "show", "--alphabet", "binary", "--fail-on", "high")
	require.NoError(t, err)
	assert.Contains(t, out, "alphabet: binary")
	assert.Contains(t, out, "fail_on: high")
	assert.Contains(t, out, "default_excludes: true")
}

func TestLocalConfigDrivesScan(t *testing.T) {
	dir := payloadTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".zerowidth.yml"), []byte("fail_on: none\nexclude: \"*.md\"\n"), 0o644))
	out, _, err := execute(t, "", "scan", "--json", "--no-cache", "-p", dir)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestCompletion(t *testing.T) {
	out, _, err := execute(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "zerowidth")

	_, _, err = execute(t, "", "completion", "tcsh")
	assert.Error(t, err)
}

func TestPickHelpers(t *testing.T) {
	local, global := "local", "global"
	assert.Equal(t, "cli", pickString("cli", &local, &global))
	assert.Equal(t, "local", pickString("", &local, &global))
	assert.Equal(t, "global", pickString("", nil, &global))
	assert.Equal(t, "", pickString("", nil, nil))

	lt, gf := true, false
	assert.True(t, pickBool(false, &lt, &gf))
	assert.False(t, pickBool(false, nil, &gf))
	assert.True(t, pickBool(true, nil, &gf))

	three := 3
	assert.Equal(t, 3, pickInt(0, nil, &three))
	assert.Equal(t, 5, pickInt(5, &three, nil))
}
