package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"gitlab.com/tozd/go/errors"

	"github.com/poolfs-tools/pool-dedup/pkg/dedup"
)

// Report is the machine-readable record of one run.
type Report struct {
	Root        string        `json:"root"`
	Policy      string        `json:"policy"`
	Strictness  string        `json:"strictness"`
	DryRun      bool          `json:"dry_run"`
	Interrupted bool          `json:"interrupted,omitempty"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    string        `json:"duration"`
	Files       []ReportFile  `json:"files"`
	Summary     ReportSummary `json:"summary"`
}

type ReportFile struct {
	Path       string   `json:"path"`
	Decision   string   `json:"decision"`
	Kept       []string `json:"kept,omitempty"`
	Removed    []string `json:"removed,omitempty"` // would-remove targets in dry-run
	SavedBytes int64    `json:"saved_bytes,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

type ReportSummary struct {
	Files      int64 `json:"files"`
	Sets       int64 `json:"sets"`
	Removed    int64 `json:"removed"`
	Skipped    int64 `json:"skipped"`
	Failed     int64 `json:"failed"`
	SavedBytes int64 `json:"saved_bytes"`
}

func writeReport(path string, cfg *runConfig, d *dedup.Deduper, start time.Time, interrupted bool) error {
	report := Report{
		Root:        absolutePath(cfg.root),
		Policy:      cfg.policy.Name(),
		Strictness:  cfg.strictness.String(),
		DryRun:      !cfg.execute,
		Interrupted: interrupted,
		StartedAt:   start.UTC(),
		Duration:    time.Since(start).Round(time.Millisecond).String(),
		Files:       []ReportFile{},
	}

	for _, fr := range d.Results() {
		report.Files = append(report.Files, ReportFile{
			Path:       fr.Path,
			Decision:   fr.Decision.String(),
			Kept:       fr.Kept,
			Removed:    fr.Removed,
			SavedBytes: fr.SavedBytes,
			Errors:     fr.Errors,
		})
	}

	report.Summary = ReportSummary{
		Files:      d.Stats.Files,
		Sets:       d.Stats.Sets,
		Removed:    d.Stats.Removed,
		Skipped:    d.Stats.Skipped,
		Failed:     d.Stats.Failed,
		SavedBytes: d.Stats.SavedBytes,
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Errorf("marshal JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Errorf("write file: %w", err)
	}

	return nil
}

func absolutePath(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path // fallback to original path
	}
	return absPath
}
