// Package dedup walks a pooled mount and reconciles duplicate replica
// sets, applying a survivor policy to every set it finds.
package dedup

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/poolfs-tools/pool-dedup/internal/logging"
	"github.com/poolfs-tools/pool-dedup/internal/walker"
	"github.com/poolfs-tools/pool-dedup/pkg/executor"
	"github.com/poolfs-tools/pool-dedup/pkg/filter"
	"github.com/poolfs-tools/pool-dedup/pkg/policy"
	"github.com/poolfs-tools/pool-dedup/pkg/pool"
	"github.com/poolfs-tools/pool-dedup/pkg/replica"
)

// Config wires a Deduper from its collaborators.
type Config struct {
	Lister      pool.Lister
	Classifier  *Classifier
	Policy      policy.Policy
	Executor    *executor.Executor
	Filter      *filter.Filter
	Concurrency int
}

// Deduper drives the per-file pipeline: resolve replicas, classify them,
// pick survivors, remove the rest.
type Deduper struct {
	lister      pool.Lister
	classifier  *Classifier
	policy      policy.Policy
	executor    *executor.Executor
	filter      *filter.Filter
	concurrency int
	logger      zerolog.Logger

	// Stats is updated atomically while Run is in flight and may be read
	// directly once Run returns.
	Stats Stats

	mu      sync.Mutex
	results []FileResult
}

// New creates a Deduper.
func New(cfg Config) *Deduper {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Deduper{
		lister:      cfg.Lister,
		classifier:  cfg.Classifier,
		policy:      cfg.Policy,
		executor:    cfg.Executor,
		filter:      cfg.Filter,
		concurrency: concurrency,
		logger:      logging.GetLogger("dedup"),
	}
}

// Run walks root and processes every file that passes the filter. A
// canceled ctx stops the walk between files; the error it returns is then
// ctx's error, with all stats reflecting the work done so far.
func (d *Deduper) Run(ctx context.Context, root string) error {
	w, err := walker.New(root, d.filter)
	if err != nil {
		return err
	}

	if d.concurrency == 1 {
		return w.Walk(ctx, func(path string) error {
			d.ProcessFile(ctx, path)
			return nil
		})
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < d.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				d.ProcessFile(ctx, path)
			}
		}()
	}

	walkErr := w.Walk(ctx, func(path string) error {
		select {
		case jobs <- path:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	close(jobs)
	wg.Wait()
	return walkErr
}

// ProcessFile runs the pipeline for one pooled file. Every failure is
// contained to the file: the run continues regardless of what happens
// here.
func (d *Deduper) ProcessFile(ctx context.Context, path string) {
	atomic.AddInt64(&d.Stats.Files, 1)

	replicaPaths, err := d.lister.Replicas(path)
	if err != nil {
		d.logger.Warn().Err(err).Str("path", path).Msg("replica lookup failed")
		atomic.AddInt64(&d.Stats.Failed, 1)
		d.record(FileResult{Path: path, Errors: []string{err.Error()}})
		return
	}
	if len(replicaPaths) < 2 {
		return
	}

	rs := replica.Probe(replicaPaths)
	if len(rs) < 2 {
		d.logger.Debug().Str("path", path).Msg("fewer than two readable replicas")
		return
	}

	decision, err := d.classifier.Classify(ctx, rs)
	if err != nil {
		return
	}
	if !decision.Equivalent() {
		d.logger.Debug().Str("path", path).Int("replicas", len(rs)).Msg("replicas distinct")
		d.record(FileResult{Path: path, Decision: decision})
		return
	}

	atomic.AddInt64(&d.Stats.Sets, 1)
	d.logger.Info().
		Str("path", path).
		Int("replicas", len(rs)).
		Stringer("decision", decision).
		Msg("duplicate set")
	for _, r := range rs {
		d.logger.Debug().
			Str("replica", r.Path).
			Int64("size", r.Size).
			Uint32("uid", r.UID).
			Uint32("gid", r.GID).
			Stringer("mode", r.Mode).
			Time("mtime", r.ModTime).
			Msg("replica metadata")
	}

	sel, err := d.policy.Select(rs)
	if err != nil {
		d.logger.Error().Err(err).Str("path", path).Msg("survivor selection failed")
		atomic.AddInt64(&d.Stats.Failed, 1)
		d.record(FileResult{Path: path, Decision: decision, Errors: []string{err.Error()}})
		return
	}

	fr := FileResult{Path: path, Decision: decision, Kept: replicaPathList(sel.Keep)}
	if sel.Skipped() {
		atomic.AddInt64(&d.Stats.Skipped, 1)
		d.record(fr)
		return
	}

	for _, res := range d.executor.Remove(ctx, sel.Remove) {
		if res.Error != nil {
			atomic.AddInt64(&d.Stats.Failed, 1)
			fr.Errors = append(fr.Errors, res.Error.Error())
			continue
		}
		atomic.AddInt64(&d.Stats.Removed, 1)
		atomic.AddInt64(&d.Stats.SavedBytes, res.Replica.Size)
		fr.Removed = append(fr.Removed, res.Replica.Path)
		fr.SavedBytes += res.Replica.Size
	}
	d.record(fr)
}

// Results returns the per-file outcomes recorded so far, in completion
// order.
func (d *Deduper) Results() []FileResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]FileResult(nil), d.results...)
}

func (d *Deduper) record(fr FileResult) {
	d.mu.Lock()
	d.results = append(d.results, fr)
	d.mu.Unlock()
}

func replicaPathList(rs []replica.Replica) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Path)
	}
	return out
}
