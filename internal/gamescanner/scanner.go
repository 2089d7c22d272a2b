package gamescanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LevelEntry represents a discoverable level file
type LevelEntry struct {
	Number int    // Level number parsed from the file name
	Path   string // Path including the levels directory
}

// Scanner finds numbered level files such as level1.toml, level2.toml.
type Scanner struct {
	dir     string
	pattern string // fmt pattern with one %d verb
}

// New returns a scanner for dir. pattern names a level file, e.g. "level%d.toml".
func New(dir, pattern string) *Scanner {
	return &Scanner{dir: dir, pattern: pattern}
}

// Path returns where level n would live.
func (s *Scanner) Path(n int) string {
	return filepath.Join(s.dir, fmt.Sprintf(s.pattern, n))
}

// Exists reports whether level n has a file.
func (s *Scanner) Exists(n int) bool {
	info, err := os.Stat(s.Path(n))
	return err == nil && !info.IsDir()
}

// ScanLevels scans the levels directory for files matching the pattern
// Returns the entries sorted by level number
func ScanLevels(dir, pattern string) ([]LevelEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels directory: %w", err)
	}

	var levels []LevelEntry
	for _, entry := range entries {
		// Skip directories
		if entry.IsDir() {
			continue
		}

		var n int
		name := entry.Name()
		if _, err := fmt.Sscanf(name, pattern, &n); err != nil || n <= 0 {
			continue
		}
		// Sscanf ignores trailing text; insist on an exact match
		if fmt.Sprintf(pattern, n) != name {
			continue
		}
		levels = append(levels, LevelEntry{Number: n, Path: filepath.Join(dir, name)})
	}

	sort.Slice(levels, func(i, j int) bool { return levels[i].Number < levels[j].Number })
	return levels, nil
}

// Scan lists the levels this scanner can see.
func (s *Scanner) Scan() ([]LevelEntry, error) {
	return ScanLevels(s.dir, s.pattern)
}
