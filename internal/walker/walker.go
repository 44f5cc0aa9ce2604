// Package walker streams the regular files under a directory tree.
package walker

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/poolfs-tools/pool-dedup/internal/logging"
	"github.com/poolfs-tools/pool-dedup/pkg/filter"
)

// WalkFunc receives each file that passes the filter. Returning an error
// stops the walk.
type WalkFunc func(path string) error

// Walker walks a directory tree with include and exclude filtering.
type Walker struct {
	root   string
	filter *filter.Filter
	logger zerolog.Logger
}

// New creates a walker rooted at root. A nil filter admits every file.
func New(root string, f *filter.Filter) (*Walker, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Errorf("get absolute path: %w", err)
	}

	// Validate root exists and is a directory
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, errors.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("root is not a directory: %s", absRoot)
	}

	if f == nil {
		f = filter.New(nil, nil)
	}

	return &Walker{
		root:   absRoot,
		filter: f,
		logger: logging.GetLogger("walker"),
	}, nil
}

// Root returns the absolute walk root.
func (w *Walker) Root() string {
	return w.root
}

// Walk streams every regular file under the root that passes the filter.
// Unreadable entries are logged and skipped rather than failing the walk.
// Walk stops early when ctx is canceled or fn returns an error.
func (w *Walker) Walk(ctx context.Context, fn WalkFunc) error {
	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		// Only regular files can have replicas worth reconciling
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(w.root, path)
		if err != nil {
			return errors.Errorf("get relative path: %w", err)
		}

		ok, err := w.filter.Match(filepath.ToSlash(relPath))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		return fn(path)
	})
}
