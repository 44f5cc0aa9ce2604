// Package executor removes the losing replicas of a duplicate set.
package executor

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/poolfs-tools/pool-dedup/internal/logging"
	"github.com/poolfs-tools/pool-dedup/pkg/replica"
)

// Executor unlinks replicas selected for removal. In dry-run mode it only
// reports what it would unlink.
type Executor struct {
	execute bool
	remove  func(path string) error
	logger  zerolog.Logger
}

// New creates an executor. The filesystem is only touched when execute is
// true.
func New(execute bool) *Executor {
	return &Executor{
		execute: execute,
		remove:  os.Remove,
		logger:  logging.GetLogger("executor"),
	}
}

// Result records the outcome of one replica removal.
type Result struct {
	Replica replica.Replica
	Removed bool // false in dry-run and on error
	Error   error
}

// Remove processes the replicas in order, isolating failures so one bad
// removal never blocks the rest. Replicas not yet attempted when ctx is
// canceled are left out of the results.
func (e *Executor) Remove(ctx context.Context, rs []replica.Replica) []Result {
	results := make([]Result, 0, len(rs))
	for _, r := range rs {
		if ctx.Err() != nil {
			break
		}
		results = append(results, e.removeOne(r))
	}
	return results
}

func (e *Executor) removeOne(r replica.Replica) Result {
	if !e.execute {
		e.logger.Info().Str("path", r.Path).Int64("size", r.Size).Msg("would remove replica")
		return Result{Replica: r}
	}

	e.logger.Info().Str("path", r.Path).Int64("size", r.Size).Msg("removing replica")
	if err := e.remove(r.Path); err != nil {
		e.logger.Error().Err(err).Str("path", r.Path).Msg("remove failed")
		return Result{Replica: r, Error: err}
	}
	return Result{Replica: r, Removed: true}
}
