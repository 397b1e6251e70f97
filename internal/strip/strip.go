// Package strip removes hidden alphabet runs from text and files.
package strip

import (
	"fmt"
	"os"
	"strings"

	"github.com/redactyl/zerowidth/internal/stego"
)

// Text removes every run d would report from s: runs that decode, and runs
// holding at least one byte's worth of symbols. Shorter runs that do not
// decode are kept, so joiners inside emoji survive. It returns the cleaned
// text and the number of runs removed.
func Text(d *stego.Detector, s string) (string, int) {
	res := d.DetectWithStats(s)
	if len(res.Runs) == 0 {
		return s, 0
	}
	minRun := d.Alphabet().SymbolsPerByte()
	var (
		sb      strings.Builder
		last    int
		removed int
	)
	sb.Grow(len(s))
	for _, rr := range res.Runs {
		if !rr.OK() && rr.Len() < minRun {
			continue
		}
		sb.WriteString(s[last:rr.Byte])
		last = rr.Byte + len(rr.Text)
		removed++
	}
	if removed == 0 {
		return s, 0
	}
	sb.WriteString(s[last:])
	return sb.String(), removed
}

// Apply strips the file at path in place and reports whether it changed.
// The file mode is preserved.
func Apply(path string, d *stego.Detector) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	out, n := Text(d, string(b))
	if n == 0 {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// WouldChange reports whether Apply would modify the file at path.
func WouldChange(path string, d *stego.Detector) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	_, n := Text(d, string(b))
	return n > 0, nil
}
