package engine

import (
	"context"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/redactyl/zerowidth/internal/git"
	"github.com/redactyl/zerowidth/internal/ignore"
)

// IgnoreFileDirective skips a whole file when present anywhere in its content.
const IgnoreFileDirective = "zerowidth:ignore-file"

// Walk traverses the working tree and invokes handle for each eligible file.
// It stops early with ctx.Err() once ctx is done.
func Walk(ctx context.Context, cfg Config, ign ignore.Matcher, handle func(path string, data []byte)) error {
	cfg = withDefaults(cfg)
	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != cfg.Root && (d.Name() == ".git" || cfg.DefaultExcludes && isDefaultDirExcluded(d.Name())) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, ok := eligible(cfg, ign, p, d)
		if !ok {
			return nil
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return nil
		}
		if strings.Contains(string(b), IgnoreFileDirective) {
			return nil
		}
		if looksBinary(b) || looksNonTextMIME(rel, b) {
			return nil
		}
		handle(rel, b)
		return nil
	})
}

// eligible applies the path-only filters shared by Walk and CountTargets.
func eligible(cfg Config, ign ignore.Matcher, p string, d fs.DirEntry) (string, bool) {
	rel, err := filepath.Rel(cfg.Root, p)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if !allowedByGlobs(rel, cfg) || ign.Match(rel) {
		return "", false
	}
	if isStateFile(rel) {
		return "", false
	}
	if info, _ := d.Info(); info != nil && info.Size() > cfg.MaxBytes {
		return "", false
	}
	if cfg.DefaultExcludes && isDefaultFileExcluded(strings.ToLower(rel)) {
		return "", false
	}
	return rel, true
}

func looksBinary(b []byte) bool {
	const sniff = 800
	n := sniff
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}

// looksNonTextMIME uses the file extension and a tiny content sniff to skip
// clearly non-text content in addition to NUL-byte detection.
func looksNonTextMIME(path string, b []byte) bool {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		if (strings.HasPrefix(ct, "image/") && !strings.Contains(ct, "svg")) || strings.HasPrefix(ct, "video/") || strings.HasPrefix(ct, "audio/") {
			return true
		}
		if strings.Contains(ct, "zip") || strings.Contains(ct, "tar") || strings.Contains(ct, "gzip") {
			return true
		}
	}
	if len(b) >= 8 && string(b[:8]) == "\x89PNG\r\n\x1a\n" {
		return true
	}
	if len(b) >= 4 && b[0] == 'P' && b[1] == 'K' {
		return true
	}
	return false
}

// CountTargets estimates the number of files a scan with cfg will process.
// It mirrors the selection logic of Walk but skips content checks.
func CountTargets(cfg Config) (int, error) {
	cfg = withDefaults(cfg)
	ign, _ := ignore.Load(filepath.Join(cfg.Root, IgnoreFile))
	if cfg.ScanStaged {
		files, err := git.StagedFiles(context.Background(), cfg.Root)
		if err != nil {
			return 0, err
		}
		n := 0
		for _, f := range files {
			if !allowedByGlobs(f.Path, cfg) || ign.Match(f.Path) {
				continue
			}
			if int64(len(f.Data)) > cfg.MaxBytes {
				continue
			}
			n++
		}
		return n, nil
	}
	count := 0
	err := filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != cfg.Root && (d.Name() == ".git" || cfg.DefaultExcludes && isDefaultDirExcluded(d.Name())) {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := eligible(cfg, ign, p, d); ok {
			count++
		}
		return nil
	})
	return count, err
}
