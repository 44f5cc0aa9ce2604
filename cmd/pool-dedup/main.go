package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/poolfs-tools/pool-dedup/internal/logging"
	"github.com/poolfs-tools/pool-dedup/pkg/dedup"
	"github.com/poolfs-tools/pool-dedup/pkg/executor"
	"github.com/poolfs-tools/pool-dedup/pkg/filter"
	"github.com/poolfs-tools/pool-dedup/pkg/policy"
	"github.com/poolfs-tools/pool-dedup/pkg/pool"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

var (
	verbosity      int
	strictnessFlag int
	policyName     string
	execute        bool
	includes       []string
	excludes       []string
	concurrency    int
	reportJSONFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pool-dedup [flags] <dir>",
		Short: "Reclaim space by removing duplicate file replicas from a mergerfs pool",
		Long: `pool-dedup finds files that exist on more than one branch of a mergerfs
pool, verifies the copies are duplicates, keeps one replica per file and
removes the rest.

Without --execute nothing is removed; the run only reports what it would
remove and how much space that would reclaim.`,
		Version:      fmt.Sprintf("%s (commit: %s, built at: %s by %s)", version, commit, date, builtBy),
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "Report per-duplicate detail, twice for full metadata and debug logs")
	rootCmd.Flags().IntVarP(&strictnessFlag, "strictness", "s", 0, "Duplicate eligibility: 0=none, 1=size, 2=content")
	rootCmd.Flags().StringVarP(&policyName, "policy", "p", "newest", "Survivor policy: manual, newest, oldest, largest, smallest, mostfreespace")
	rootCmd.Flags().BoolVarP(&execute, "execute", "e", false, "Remove replicas instead of only reporting")
	rootCmd.Flags().StringSliceVarP(&includes, "include", "I", nil, "Only consider files matching pattern (multiple allowed)")
	rootCmd.Flags().StringSliceVarP(&excludes, "exclude", "E", nil, "Skip files matching pattern (multiple allowed)")
	rootCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 1, "Number of files processed in parallel")
	rootCmd.Flags().StringVar(&reportJSONFile, "report-json", "", "Path to output the run report as JSON file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type runConfig struct {
	root        string
	strictness  dedup.Strictness
	policy      policy.Policy
	execute     bool
	filter      *filter.Filter
	concurrency int
	reportPath  string
}

func buildConfig(args []string) (*runConfig, error) {
	strictness, err := dedup.ParseStrictness(strictnessFlag)
	if err != nil {
		return nil, err
	}

	pol, err := policy.FromName(policyName)
	if err != nil {
		return nil, err
	}

	f := filter.New(includes, excludes)
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if concurrency < 1 {
		return nil, errors.New("concurrency must be at least 1")
	}
	if policyName == "manual" {
		if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return nil, errors.New("the manual policy needs an interactive terminal on stdin")
		}
		if concurrency != 1 {
			log := logging.GetLogger("main")
			log.Warn().Msg("manual policy answers one set at a time, ignoring --concurrency")
			concurrency = 1
		}
	}

	return &runConfig{
		root:        args[0],
		strictness:  strictness,
		policy:      pol,
		execute:     execute,
		filter:      f,
		concurrency: concurrency,
		reportPath:  reportJSONFile,
	}, nil
}

func run(cmd *cobra.Command, args []string) error {
	logging.Setup(verbosity)

	cfg, err := buildConfig(args)
	if err != nil {
		return err
	}

	if err := pool.Verify(cfg.root); err != nil {
		return err
	}

	log := logging.GetLogger("main")
	log.Debug().
		Str("root", cfg.root).
		Stringer("strictness", cfg.strictness).
		Str("policy", cfg.policy.Name()).
		Bool("execute", cfg.execute).
		Int("concurrency", cfg.concurrency).
		Msg("starting run")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()

	d := dedup.New(dedup.Config{
		Lister:      pool.Xattr{},
		Classifier:  dedup.NewClassifier(cfg.strictness),
		Policy:      cfg.policy,
		Executor:    executor.New(cfg.execute),
		Filter:      cfg.filter,
		Concurrency: cfg.concurrency,
	})

	runErr := d.Run(ctx, cfg.root)
	interrupted := errors.Is(runErr, context.Canceled)
	if runErr != nil && !interrupted {
		return runErr
	}
	if interrupted {
		log.Warn().Msg("interrupted, reporting what was done so far")
	}

	if cfg.reportPath != "" {
		if err := writeReport(cfg.reportPath, cfg, d, start, interrupted); err != nil {
			return errors.Errorf("write report JSON: %w", err)
		}
	}

	logging.PrintSummary(os.Stdout, verbosity,
		d.Stats.Sets, d.Stats.Removed, d.Stats.Failed, d.Stats.SavedBytes,
		!cfg.execute, time.Since(start))

	return nil
}
