// Package git reads content from a git working copy by shelling out to the
// git binary.
package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// File is a path and its staged content.
type File struct {
	Path string
	Data []byte
}

// validateRoot cleans root and checks that it is an existing directory.
func validateRoot(root string) (string, error) {
	if strings.ContainsRune(root, 0) {
		return "", fmt.Errorf("invalid path: contains null byte")
	}
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}
	return abs, nil
}

// StagedFiles returns the index version of every added or modified file in
// the repository at root. Deleted paths are left out.
func StagedFiles(ctx context.Context, root string) ([]File, error) {
	validRoot, err := validateRoot(root)
	if err != nil {
		return nil, err
	}
	out, err := exec.CommandContext(ctx, "git", "-C", validRoot, "diff", "--cached", "--name-only", "--diff-filter=ACMR", "-z").Output()
	if err != nil {
		return nil, fmt.Errorf("git diff --cached: %w", err)
	}
	var files []File
	for _, p := range strings.Split(string(out), "\x00") {
		if p == "" {
			continue
		}
		b, err := exec.CommandContext(ctx, "git", "-C", validRoot, "show", ":"+p).Output()
		if err != nil {
			continue
		}
		files = append(files, File{Path: p, Data: b})
	}
	return files, nil
}
