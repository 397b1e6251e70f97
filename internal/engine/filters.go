package engine

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Directories holding dependencies or build output. Skipped when default
// excludes are on; .git is always skipped.
var defaultExcludeDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"target":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	"coverage":     true,
	"bin":          true,
	"obj":          true,
}

// Media, archives and compiled artifacts. SVG, lockfiles and generated
// sources stay in: they are text and can carry hidden runs like any other.
var defaultExcludeGlobs = []string{
	"**/*.{min.js,min.css,map}",
	"**/*.{png,jpg,jpeg,gif,webp,ico,bmp,tif,tiff,heic}",
	"**/*.{pdf,zip,gz,tgz,tar,xz,bz2,7z,rar}",
	"**/*.{jar,class,exe,dll,so,dylib,a,o,wasm,pyc}",
	"**/*.{woff,woff2,ttf,otf,eot}",
	"**/*.{mp3,mp4,mov,avi,webm,ogg,wav,flac}",
	"**/.ds_store",
}

// Files zerowidth writes at the scan root. They quote raw runs, so scanning
// them would report every earlier finding again.
var stateFiles = map[string]bool{
	IgnoreFile:                  true,
	".zerowidthcache.json":      true,
	".zerowidth_last_scan.json": true,
	".zerowidth_audit.jsonl":    true,
	"zerowidth.baseline.json":   true,
}

func isStateFile(rel string) bool {
	return stateFiles[rel]
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name] || strings.HasPrefix(name, ".git")
}

// isDefaultFileExcluded matches a lower-cased, slash-separated relative path.
func isDefaultFileExcluded(lowerRel string) bool {
	for _, g := range defaultExcludeGlobs {
		if ok, _ := doublestar.Match(g, lowerRel); ok {
			return true
		}
	}
	return false
}
