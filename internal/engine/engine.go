package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/redactyl/zerowidth/internal/alphabet"
	"github.com/redactyl/zerowidth/internal/cache"
	"github.com/redactyl/zerowidth/internal/codec"
	"github.com/redactyl/zerowidth/internal/git"
	"github.com/redactyl/zerowidth/internal/ignore"
	"github.com/redactyl/zerowidth/internal/logging"
	"github.com/redactyl/zerowidth/internal/provenance"
	"github.com/redactyl/zerowidth/internal/stego"
	"github.com/redactyl/zerowidth/internal/types"
	"golang.org/x/sync/errgroup"
)

// IgnoreFile is the per-tree ignore file name.
const IgnoreFile = ".zerowidthignore"

// Config controls scanning behavior including scope, performance, and filters.
type Config struct {
	Root             string
	Alphabet         *alphabet.Alphabet // nil means alphabet.Quad
	IncludeGlobs     string
	ExcludeGlobs     string
	MaxBytes         int64
	ScanStaged       bool
	Threads          int
	EnableDetectors  string
	DisableDetectors string
	DefaultExcludes  bool
	NoCache          bool
	DryRun           bool
	Logger           *slog.Logger
	Progress         func()
}

// Result contains findings and basic scan statistics.
type Result struct {
	Findings     []types.Finding
	FilesScanned int
	FilesCached  int
	RunsSkipped  int // runs too short to report
	Duration     time.Duration
}

// DetectorIDs returns the detector IDs findings can carry.
func DetectorIDs() []string {
	return []string{types.DetectorPayload, types.DetectorProvenance, types.DetectorStrayRun}
}

// Scan runs a scan and returns only findings (without stats).
func Scan(cfg Config) ([]types.Finding, error) {
	res, err := ScanWithStats(cfg)
	if err != nil {
		return nil, err
	}
	return res.Findings, nil
}

// ScanWithStats runs a scan and returns findings along with timing and counts.
func ScanWithStats(cfg Config) (Result, error) {
	return ScanContext(context.Background(), cfg)
}

// ScanContext is ScanWithStats with cancellation. Files are scanned by up to
// cfg.Threads workers; findings are returned sorted by path and position.
func ScanContext(ctx context.Context, cfg Config) (Result, error) {
	var result Result
	cfg = withDefaults(cfg)
	det := stego.NewDetector(codec.New(cfg.Alphabet))
	name := cfg.Alphabet.Name()

	db := cache.DB{Entries: map[string]string{}}
	if !cfg.NoCache && !cfg.DryRun {
		db, _ = cache.Load(cfg.Root)
	}
	updated := map[string]string{}
	ign, _ := ignore.Load(filepath.Join(cfg.Root, IgnoreFile))

	started := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)

	var (
		mu  sync.Mutex
		out []types.Finding
	)
	done := func() {
		if cfg.Progress != nil {
			cfg.Progress()
		}
	}
	handle := func(p string, data []byte) {
		if cfg.DryRun {
			mu.Lock()
			result.FilesScanned++
			done()
			mu.Unlock()
			return
		}
		key := cache.Key(name, p)
		if !cfg.NoCache && db.Clean(key, data) {
			mu.Lock()
			result.FilesCached++
			done()
			mu.Unlock()
			return
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fs, skipped := scanData(det, p, data, cfg.Logger)
			mu.Lock()
			defer mu.Unlock()
			if len(fs) == 0 && !cfg.NoCache {
				updated[key] = cache.Hash(data)
			}
			out = append(out, filterByIDs(fs, cfg.EnableDetectors, cfg.DisableDetectors)...)
			result.FilesScanned++
			result.RunsSkipped += skipped
			done()
			return nil
		})
	}

	var walkErr error
	if cfg.ScanStaged {
		walkErr = scanStaged(gctx, cfg, ign, handle)
	} else {
		walkErr = Walk(gctx, cfg, ign, handle)
	}
	if err := g.Wait(); err != nil && walkErr == nil {
		walkErr = err
	}
	if walkErr != nil {
		if errors.Is(walkErr, context.Canceled) || errors.Is(walkErr, context.DeadlineExceeded) {
			return result, fmt.Errorf("scan interrupted: %w", walkErr)
		}
		return result, walkErr
	}

	sortFindings(out)
	result.Findings = out
	result.Duration = time.Since(started)
	if !cfg.NoCache && !cfg.DryRun && len(updated) > 0 {
		for k, v := range updated {
			db.Entries[k] = v
		}
		if err := cache.Save(cfg.Root, db); err != nil {
			cfg.Logger.Debug("cache not saved", "root", cfg.Root, "error", err)
		}
	}
	return result, nil
}

func withDefaults(cfg Config) Config {
	if cfg.Alphabet == nil {
		cfg.Alphabet = alphabet.Quad
	}
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.GOMAXPROCS(0)
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 1 << 20
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	return cfg
}

func scanStaged(ctx context.Context, cfg Config, ign ignore.Matcher, handle func(string, []byte)) error {
	files, err := git.StagedFiles(ctx, cfg.Root)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !allowedByGlobs(f.Path, cfg) || ign.Match(f.Path) {
			continue
		}
		if int64(len(f.Data)) > cfg.MaxBytes {
			continue
		}
		handle(f.Path, f.Data)
	}
	return nil
}

// scanData turns every alphabet run in data into a finding. Undecodable runs
// shorter than one byte's worth of symbols are only logged; they are usually
// joiners inside emoji or scripts that use them legitimately.
func scanData(det *stego.Detector, path string, data []byte, log *slog.Logger) ([]types.Finding, int) {
	text := string(data)
	res := det.DetectWithStats(text)
	if len(res.Runs) == 0 {
		return nil, 0
	}
	alpha := det.Alphabet()
	pos := cursor{text: text, line: 1, col: 1}
	var (
		out     []types.Finding
		skipped int
	)
	for _, rr := range res.Runs {
		line, col := pos.seek(rr.Byte)
		if !rr.OK() && rr.Len() < alpha.SymbolsPerByte() {
			log.Debug("short run skipped", "path", path, "line", line, "column", col, "symbols", rr.Len())
			skipped++
			continue
		}
		f := types.Finding{
			Path:     path,
			Line:     line,
			Column:   col,
			Match:    rr.Text,
			Symbols:  rr.Len(),
			Alphabet: alpha.Name(),
		}
		switch {
		case !rr.OK():
			f.Detector = types.DetectorStrayRun
			f.Severity = types.SevLow
			f.Context = rr.Err.Error()
			log.Debug("run did not decode", "path", path, "line", line, "column", col, "error", rr.Err)
		default:
			f.Payload = rr.Decoded
			f.Detector = types.DetectorPayload
			f.Severity = types.SevHigh
			recs, _ := provenance.Parse([]string{rr.Decoded})
			if len(recs) == 1 && !recs[0].Compatible() {
				log.Debug("unsupported provenance version", "path", path, "version", recs[0].Version)
			}
			if len(recs) == 1 && recs[0].Compatible() {
				f.Detector = types.DetectorProvenance
				f.Severity = types.SevMed
				f.Metadata = map[string]string{
					"href":    recs[0].Href,
					"date":    recs[0].Date,
					"version": recs[0].Version,
				}
			}
		}
		out = append(out, f)
	}
	return out, skipped
}

// cursor converts increasing byte offsets into 1-based line and rune column.
type cursor struct {
	text      string
	off       int
	line, col int
}

func (c *cursor) seek(off int) (int, int) {
	for c.off < off && c.off < len(c.text) {
		r, size := utf8.DecodeRuneInString(c.text[c.off:])
		if r == '\n' {
			c.line++
			c.col = 1
		} else {
			c.col++
		}
		c.off += size
	}
	return c.line, c.col
}

func sortFindings(fs []types.Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Path != fs[j].Path {
			return fs[i].Path < fs[j].Path
		}
		if fs[i].Line != fs[j].Line {
			return fs[i].Line < fs[j].Line
		}
		return fs[i].Column < fs[j].Column
	})
}

func filterByIDs(fs []types.Finding, enable, disable string) []types.Finding {
	if enable == "" && disable == "" {
		return fs
	}
	allowed := map[string]bool{}
	if enable != "" {
		for _, id := range strings.Split(enable, ",") {
			allowed[strings.TrimSpace(id)] = true
		}
	}
	blocked := map[string]bool{}
	if disable != "" {
		for _, id := range strings.Split(disable, ",") {
			blocked[strings.TrimSpace(id)] = true
		}
	}
	var out []types.Finding
	for _, f := range fs {
		if enable != "" && !allowed[f.Detector] {
			continue
		}
		if disable != "" && blocked[f.Detector] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// allowedByGlobs returns true if the given path is allowed by the include/exclude
// glob configuration. Include globs are comma-separated and, if provided, act as
// a positive filter. Exclude globs are subtracted last.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
