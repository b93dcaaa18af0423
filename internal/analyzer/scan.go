package analyzer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"

	"github.com/pthm/csquid/internal/parser"
)

// Scanner finds the source files of a project. Patterns are doublestar
// globs matched against slash-separated paths relative to each root.
type Scanner struct {
	Include []string
	Exclude []string
}

// ValidatePatterns rejects malformed globs before any walk starts
func (s Scanner) ValidatePatterns() error {
	for _, p := range append(append([]string{}, s.Include...), s.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob pattern: %q", p)
		}
	}
	return nil
}

// Scan returns the matching files under roots, sorted and without
// duplicates. A root that is a file is taken as is when it has a C#
// suffix.
func (s Scanner) Scan(roots ...string) ([]string, error) {
	if err := s.ValidatePatterns(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}
		if !info.IsDir() {
			if parser.IsSource(root) {
				add(filepath.Clean(root))
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Skipping unreadable path")
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if path == root {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				// a directory whose contents are all excluded is not entered
				if matchAny(s.Exclude, rel+"/x") && matchAny(s.Exclude, rel+"/x/y") {
					return filepath.SkipDir
				}
				return nil
			}
			if matchAny(s.Include, rel) && !matchAny(s.Exclude, rel) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func matchAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if ok, err := doublestar.Match(p, path); err == nil && ok {
			return true
		}
	}
	return false
}
