package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vidgrab/vidgrab/internal/cache"
	"github.com/vidgrab/vidgrab/internal/engine"
	"github.com/vidgrab/vidgrab/internal/extract"
	"github.com/vidgrab/vidgrab/internal/log"
	"github.com/vidgrab/vidgrab/internal/metrics"
	"github.com/vidgrab/vidgrab/internal/model"
	"github.com/vidgrab/vidgrab/internal/normalize"
	"github.com/vidgrab/vidgrab/internal/strategy"
)

var (
	// ErrTaskNotFound is returned when no task exists for a task ID.
	ErrTaskNotFound = errors.New("download: task not found")

	// ErrFormatNotFound means the requested format ID does not exist in
	// the resolved metadata.
	ErrFormatNotFound = errors.New("download: format not found")
)

// Plan describes what to download.
type Plan struct {
	// FormatID requests a specific format; empty or "best" selects the
	// platform-aware default.
	FormatID string

	// AudioOnly requests the best audio-only rendition.
	AudioOnly bool

	// CacheArtifact routes the output into the artifact cache keyed by
	// media identity instead of the downloads directory.
	CacheArtifact bool

	// MediaID is the expected media identity; with CacheArtifact set it
	// allows a cache hit to skip the download entirely.
	MediaID string
}

// task pairs the caller-visible record with its execution bookkeeping. The
// run goroutine is the only writer of the record fields; Cancel only toggles
// the terminal status. mu makes snapshots and the toggle safe.
type task struct {
	mu     sync.Mutex
	record model.DownloadTask
	cancel context.CancelFunc
}

func (t *task) snapshot() model.DownloadTask {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.record
}

// update applies fn unless the task already reached a terminal state, so a
// natural completion can never overwrite CANCELLED. Late progress fields that
// must still record after cancellation go through updateAlways.
func (t *task) update(fn func(*model.DownloadTask)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.record.Status.IsTerminal() {
		return false
	}
	fn(&t.record)
	return true
}

func (t *task) updateAlways(fn func(*model.DownloadTask)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.record)
}

// Manager owns the lifecycle of download tasks: it creates them, runs them
// concurrently against the engine, tracks state and progress, and supports
// advisory cancellation.
type Manager struct {
	mu    sync.RWMutex
	tasks map[string]*task

	engine      engine.Engine
	extractor   *extract.Extractor
	cache       *cache.Manager
	downloadDir string
	logger      zerolog.Logger
}

// NewManager returns a manager writing regular downloads into downloadDir and
// cache artifacts into the cache manager's directory.
func NewManager(eng engine.Engine, extractor *extract.Extractor, artifactCache *cache.Manager, downloadDir string) *Manager {
	return &Manager{
		tasks:       make(map[string]*task),
		engine:      eng,
		extractor:   extractor,
		cache:       artifactCache,
		downloadDir: downloadDir,
		logger:      log.WithComponent("download"),
	}
}

// Start registers a new task and launches its execution without blocking.
// The returned snapshot carries the fresh task ID.
func (m *Manager) Start(url string, plan Plan) model.DownloadTask {
	ctx, cancel := context.WithCancel(context.Background())
	t := &task{
		record: model.DownloadTask{
			ID:        uuid.NewString(),
			URL:       url,
			Status:    model.StatusExtracting,
			CreatedAt: time.Now(),
		},
		cancel: cancel,
	}

	// Cached artifacts short-circuit the whole pipeline.
	if plan.CacheArtifact && plan.MediaID != "" {
		if path, err := m.cache.Lookup(plan.MediaID); err == nil {
			t.record.Status = model.StatusCompleted
			t.record.Progress = 100
			t.record.OutputPath = path
			t.record.FinishedAt = time.Now()
			if fi, err := os.Stat(path); err == nil {
				size := fi.Size()
				t.record.FileSize = &size
			}
			cancel()
		}
	}

	m.mu.Lock()
	m.tasks[t.record.ID] = t
	m.mu.Unlock()

	snap := t.snapshot()
	if !snap.Status.IsTerminal() {
		go m.run(ctx, t, plan)
	}
	return snap
}

// Get returns a snapshot of the task, or ErrTaskNotFound.
func (m *Manager) Get(taskID string) (model.DownloadTask, error) {
	m.mu.RLock()
	t, ok := m.tasks[taskID]
	m.mu.RUnlock()
	if !ok {
		return model.DownloadTask{}, ErrTaskNotFound
	}
	return t.snapshot(), nil
}

// Cancel marks the task cancelled if it has not reached a terminal state.
// Cancellation is advisory: the underlying engine call is signalled through
// its context, but a call that ignores the signal may still run; its result
// never overwrites the CANCELLED status.
func (m *Manager) Cancel(taskID string) bool {
	m.mu.RLock()
	t, ok := m.tasks[taskID]
	m.mu.RUnlock()
	if !ok {
		return false
	}

	cancelled := t.update(func(r *model.DownloadTask) {
		r.Status = model.StatusCancelled
		r.FinishedAt = time.Now()
	})
	if cancelled {
		t.cancel()
		metrics.DownloadsTotal.WithLabelValues(string(model.StatusCancelled)).Inc()
		m.logger.Info().Str("task_id", taskID).Msg("task cancelled")
	}
	return cancelled
}

// Reap removes terminal tasks that finished more than olderThan ago and
// returns how many were dropped. The on-disk artifacts are not touched; the
// cache manager bounds those separately.
func (m *Manager) Reap(olderThan time.Duration) int {
	cutoff := time.Now().Add(-olderThan)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, t := range m.tasks {
		snap := t.snapshot()
		if snap.Status.IsTerminal() && !snap.FinishedAt.IsZero() && snap.FinishedAt.Before(cutoff) {
			delete(m.tasks, id)
			removed++
		}
	}
	return removed
}

// run executes one task to its terminal state.
func (m *Manager) run(ctx context.Context, t *task, plan Plan) {
	snap := t.snapshot()
	logger := m.logger.With().Str("task_id", snap.ID).Str("url", snap.URL).Logger()

	info, err := m.extractor.Extract(ctx, snap.URL)
	if err != nil {
		m.fail(t, logger, err.Error())
		return
	}
	t.updateAlways(func(r *model.DownloadTask) {
		r.Info = info
	})

	selector, err := resolveSelector(snap.URL, plan, info)
	if err != nil {
		m.fail(t, logger, extract.FriendlyMessage(err.Error()))
		return
	}

	outputTemplate := filepath.Join(m.downloadDir, "%(title)s_%(id)s.%(ext)s")
	if plan.CacheArtifact {
		outputTemplate = m.cache.OutputTemplate()
	}

	t.update(func(r *model.DownloadTask) {
		r.Status = model.StatusDownloading
	})

	raw, err := m.downloadWithFallback(ctx, t, snap.URL, selector, outputTemplate)
	if err != nil {
		m.fail(t, logger, extract.FriendlyMessage(err.Error()))
		return
	}

	if raw != nil {
		info = normalize.Info(raw, snap.URL)
	}
	m.finalize(t, logger, info)
}

// downloadWithFallback runs the engine download under each strategy in order
// until one succeeds, mirroring the extraction fallback discipline.
func (m *Manager) downloadWithFallback(ctx context.Context, t *task, url, selector, outputTemplate string) (*engine.RawInfo, error) {
	onProgress := func(p engine.Progress) {
		m.applyProgress(t, p)
	}

	var lastErr error
	for _, s := range strategy.Select(url) {
		raw, err := m.engine.Download(ctx, url, selector, outputTemplate, s.Opts, onProgress)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		metrics.StrategyFailuresTotal.Inc()
		m.logger.Warn().Str("url", url).Str("strategy", s.Name).Err(err).Msg("download strategy failed")

		if ctx.Err() != nil {
			break
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no download strategy available")
	}
	return nil, lastErr
}

// applyProgress records one engine progress event. Progress still records
// into a cancelled task's fields, but never flips its terminal status, and
// the percentage never regresses.
func (m *Manager) applyProgress(t *task, p engine.Progress) {
	switch p.Phase {
	case engine.PhaseFinished:
		t.update(func(r *model.DownloadTask) {
			r.Status = model.StatusProcessing
		})
		t.updateAlways(func(r *model.DownloadTask) {
			r.Progress = 100
			if p.Filename != "" {
				r.OutputPath = p.Filename
			}
		})
	default:
		t.update(func(r *model.DownloadTask) {
			r.Status = model.StatusDownloading
		})
		t.updateAlways(func(r *model.DownloadTask) {
			if p.TotalBytes > 0 {
				percent := float64(p.DownloadedBytes) / float64(p.TotalBytes) * 100
				if percent > 100 {
					percent = 100
				}
				if percent > r.Progress {
					r.Progress = percent
				}
			}
			if p.Speed != "" {
				r.Speed = p.Speed
			}
			if p.ETA != "" {
				r.ETA = p.ETA
			}
			if p.Filename != "" {
				r.OutputPath = p.Filename
			}
		})
	}
}

func (m *Manager) finalize(t *task, logger zerolog.Logger, info *model.VideoInfo) {
	t.updateAlways(func(r *model.DownloadTask) {
		r.Info = info
		if r.OutputPath == "" || !fileExists(r.OutputPath) {
			if found := m.findOutput(t, info); found != "" {
				r.OutputPath = found
			}
		}
		if r.OutputPath != "" {
			if fi, err := os.Stat(r.OutputPath); err == nil {
				size := fi.Size()
				r.FileSize = &size
			}
		}
	})

	completed := t.update(func(r *model.DownloadTask) {
		r.Status = model.StatusCompleted
		r.Progress = 100
		r.FinishedAt = time.Now()
	})
	if completed {
		metrics.DownloadsTotal.WithLabelValues(string(model.StatusCompleted)).Inc()
		logger.Info().Msg("download completed")
	} else {
		logger.Info().Msg("download finished after cancellation, keeping cancelled status")
	}
}

func (m *Manager) fail(t *task, logger zerolog.Logger, message string) {
	failed := t.update(func(r *model.DownloadTask) {
		r.Status = model.StatusFailed
		r.Error = message
		r.FinishedAt = time.Now()
	})
	if failed {
		metrics.DownloadsTotal.WithLabelValues(string(model.StatusFailed)).Inc()
		logger.Warn().Str("error", message).Msg("download failed")
	}
}

// findOutput scans the target directory for a file whose name contains the
// resolved media identifier, covering engines that rename the output during
// post-processing.
func (m *Manager) findOutput(t *task, info *model.VideoInfo) string {
	if info == nil || info.ID == "" {
		return ""
	}

	dirs := []string{m.downloadDir, m.cache.Dir()}
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() && strings.Contains(entry.Name(), info.ID) {
				return filepath.Join(dir, entry.Name())
			}
		}
	}
	return ""
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
