// Package filter decides which files take part in a deduplication run.
package filter

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"

	"github.com/poolfs-tools/pool-dedup/pkg/fnmatch"
)

// Filter applies include and exclude patterns to walked files.
//
// Include patterns are shell globs matched against the file name. When no
// include pattern is given, every file is included. Exclude patterns are
// matched against the file name too, unless the pattern contains a "/", in
// which case it is matched against the slash-separated path relative to the
// walk root using doublestar syntax. A pattern ending in "/" excludes the
// matched directory and everything beneath it.
//
// A file takes part in the run when it is included and not excluded.
type Filter struct {
	includes []string
	excludes []string
}

// New creates a filter from include and exclude pattern lists.
func New(includes, excludes []string) *Filter {
	return &Filter{
		includes: includes,
		excludes: excludes,
	}
}

// Validate checks every pattern and reports the first invalid one.
func (f *Filter) Validate() error {
	for _, pattern := range f.includes {
		if _, err := fnmatch.Match(pattern, ""); err != nil {
			return errors.Errorf("invalid include pattern %q: %w", pattern, err)
		}
	}
	for _, pattern := range f.excludes {
		if strings.Contains(pattern, "/") {
			if !doublestar.ValidatePattern(strings.TrimSuffix(pattern, "/")) {
				return errors.Errorf("invalid exclude pattern %q", pattern)
			}
			continue
		}
		if _, err := fnmatch.Match(pattern, ""); err != nil {
			return errors.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// Match reports whether the file at relPath takes part in the run.
// relPath must be slash-separated and relative to the walk root.
func (f *Filter) Match(relPath string) (bool, error) {
	base := path.Base(relPath)

	if len(f.includes) > 0 {
		included, err := fnmatch.Matches(base, f.includes)
		if err != nil {
			return false, err
		}
		if !included {
			return false, nil
		}
	}

	for _, pattern := range f.excludes {
		excluded, err := matchExclude(pattern, relPath, base)
		if err != nil {
			return false, err
		}
		if excluded {
			return false, nil
		}
	}

	return true, nil
}

// matchExclude checks a single exclude pattern against a file.
func matchExclude(pattern, relPath, base string) (bool, error) {
	// Plain file name glob
	if !strings.Contains(pattern, "/") {
		return fnmatch.Match(pattern, base)
	}

	// Directory pattern: the directory itself or any parent must match
	if strings.HasSuffix(pattern, "/") {
		dirPattern := strings.TrimSuffix(pattern, "/")
		parts := strings.Split(relPath, "/")
		for i := 1; i <= len(parts); i++ {
			matched, err := doublestar.Match(dirPattern, strings.Join(parts[:i], "/"))
			if err != nil {
				return false, errors.Errorf("match exclude pattern %q: %w", pattern, err)
			}
			if matched {
				return true, nil
			}
		}
		return false, nil
	}

	// Path pattern
	matched, err := doublestar.Match(pattern, relPath)
	if err != nil {
		return false, errors.Errorf("match exclude pattern %q: %w", pattern, err)
	}
	return matched, nil
}
