// Package pipeline runs the per-file tagging sequence: read tags,
// resolve the song, fetch credits, plan tag actions, apply them, and
// report every outcome as one log line.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"creditget/internal/config"
	"creditget/internal/credit"
	"creditget/internal/logger"
	"creditget/internal/source/utanet"
	"creditget/pkg/utils"
)

// Hooks let the caller observe progress without coupling the pipeline to
// a particular frontend (CLI bar, web job updates).
type Hooks struct {
	OnFilesCollected func(total int)
	OnProgress       func()
}

// Stats summarizes one run.
type Stats struct {
	Total     int  // files found
	Processed int  // files attempted (equals Total unless cancelled)
	Tagged    int  // files with at least one tag written
	Failed    int  // files that could not be resolved or read
	Cancelled bool // run was stopped between files
}

// FileResult is the outcome of processing one file.
type FileResult struct {
	Path     string
	Reason   string // why the file was skipped, empty on success
	Outcomes []credit.Outcome
	Snapshot credit.Snapshot // refreshed tag state after writes
}

// Tagged reports whether at least one role was written to the file.
func (r FileResult) Tagged() bool {
	for _, o := range r.Outcomes {
		if o.Status == credit.StatusWritten || o.Status == credit.StatusHeaderCreated {
			return true
		}
	}
	return false
}

// Runner executes tagging runs against one credit source.
type Runner struct {
	cfg      config.Config
	logger   *logger.Logger
	source   credit.Source
	resolver *credit.Resolver
	policy   credit.Policy
}

// NewRunner builds a Runner from the configuration. A nil source selects
// the uta-net client; tests inject fakes.
func NewRunner(cfg config.Config, log *logger.Logger, src credit.Source) *Runner {
	if src == nil {
		src = utanet.New(cfg.RequestTimeout(), cfg.UserAgent)
	}
	return &Runner{
		cfg:      cfg,
		logger:   log,
		source:   src,
		resolver: credit.NewResolver(src, log),
		policy:   cfg.Policy(),
	}
}

// Run collects audio files under the configured source directory and
// processes them through a worker pool. Cancellation is cooperative and
// checked between files only, so every started file finishes all its
// role writes before the run stops.
func (r *Runner) Run(ctx context.Context, hooks Hooks) (Stats, error) {
	files, err := utils.FindAudioFiles(r.cfg.SourceDir)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to collect audio files: %w", err)
	}

	stats := Stats{Total: len(files)}
	if len(files) == 0 {
		return stats, fmt.Errorf("no audio files found in %s", r.cfg.SourceDir)
	}

	if hooks.OnFilesCollected != nil {
		hooks.OnFilesCollected(len(files))
	}

	r.logger.Info("=== Tagging %d files (%d parallel) ===", len(files), r.cfg.ParallelJobs)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, r.cfg.ParallelJobs)
	var mu sync.Mutex

	for i, path := range files {
		select {
		case <-ctx.Done():
			r.logger.Warn("Run cancelled, waiting for files in flight to finish...")
			wg.Wait()
			stats.Cancelled = true
			r.logger.Info("Stopped after %d of %d files", stats.Processed, stats.Total)
			return stats, nil
		default:
		}

		wg.Add(1)
		go func(idx int, p string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			result := r.ProcessFile(ctx, p)

			mu.Lock()
			stats.Processed++
			if result.Reason != "" {
				stats.Failed++
			} else if result.Tagged() {
				stats.Tagged++
			}
			mu.Unlock()

			if hooks.OnProgress != nil {
				hooks.OnProgress()
			}
		}(i, path)
	}

	wg.Wait()

	r.logger.Info("Tagged %d of %d files (%d failed)", stats.Tagged, stats.Total, stats.Failed)
	return stats, nil
}

// ProcessFile runs the full sequence for one file. All failures are local
// to the file: they are reported in the result and never abort a batch.
func (r *Runner) ProcessFile(ctx context.Context, path string) FileResult {
	base := filepath.Base(path)
	result := FileResult{Path: path}

	format := credit.FormatFromPath(path)
	if format == credit.FormatUnknown {
		result.Reason = fmt.Sprintf("unsupported file format %q", filepath.Ext(path))
		r.logger.Warn("[%s] %s", base, result.Reason)
		return result
	}

	snap, err := credit.ReadSnapshot(path)
	if err != nil {
		result.Reason = err.Error()
		r.logger.Warn("[%s] %s", base, result.Reason)
		return result
	}
	result.Snapshot = snap

	if snap.Title == "" || snap.Artist == "" {
		result.Reason = "missing title or artist tag"
		r.logger.Warn("[%s] %s", base, result.Reason)
		return result
	}

	songID, err := r.resolver.Resolve(ctx, snap.Title, snap.Artist)
	if err != nil {
		result.Reason = err.Error()
		r.logger.Info("[%s] %s", base, result.Reason)
		return result
	}

	rec, err := r.source.Credits(ctx, songID)
	if err != nil {
		result.Reason = err.Error()
		r.logger.Warn("[%s] %s", base, result.Reason)
		return result
	}
	r.logger.Info("[%s] %s", base, rec.Summary())

	actions := credit.PlanActions(rec, format, r.policy)
	if len(actions) == 0 {
		r.logger.Info("[%s] nothing to write", base)
		return result
	}

	for _, action := range actions {
		if r.cfg.DryRun {
			r.logger.Info("[%s] dry-run: would write %s = %q (overwrite=%t)",
				base, action.Role, action.Value, action.Overwrite)
			continue
		}
		outcome := credit.Apply(path, format, action)
		result.Outcomes = append(result.Outcomes, outcome)
		if outcome.Status == credit.StatusError {
			r.logger.Warn("%s", outcome)
		} else {
			r.logger.Info("%s", outcome)
		}
	}

	if !r.cfg.DryRun {
		if refreshed, err := credit.ReadSnapshot(path); err == nil {
			result.Snapshot = refreshed
		}
		r.logger.Debug("[%s] done (size %s)", base, utils.FileSizeLabel(path))
	}

	return result
}
