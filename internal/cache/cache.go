package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/vidgrab/vidgrab/internal/log"
	"github.com/vidgrab/vidgrab/internal/metrics"
)

// ErrNotFound is returned when no cached artifact exists for a media ID.
var ErrNotFound = errors.New("cache: artifact not found")

// knownExts is the ordered list of container extensions probed on lookup.
// Any file landing in the cache directory under "<mediaID>.<ext>" becomes
// visible to lookups without an explicit registration step.
var knownExts = []string{"m4a", "mp3", "webm", "opus", "ogg", "mp4"}

// Manager maps a logical media identity to an on-disk artifact and enforces
// age and size bounds by eviction.
type Manager struct {
	dir    string
	logger zerolog.Logger
}

// New returns a manager over dir, creating the directory if needed.
func New(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Manager{
		dir:    dir,
		logger: log.WithComponent("cache"),
	}, nil
}

// Dir returns the cache directory.
func (m *Manager) Dir() string {
	return m.dir
}

// OutputTemplate returns the engine output template that keys artifacts by
// media identity.
func (m *Manager) OutputTemplate() string {
	return filepath.Join(m.dir, "%(id)s.%(ext)s")
}

// Lookup probes the known container extensions for mediaID and returns the
// artifact path on a hit.
func (m *Manager) Lookup(mediaID string) (string, error) {
	for _, ext := range knownExts {
		path := filepath.Join(m.dir, mediaID+"."+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", ErrNotFound
}

// Evict removes cached files oldest-first until both the age and the total
// size bound hold for the remaining set. Individual file failures are logged
// and skipped; a file disappearing between listing and removal counts as
// already evicted.
func (m *Manager) Evict(maxAge time.Duration, maxTotalBytes int64) (int, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return 0, fmt.Errorf("list cache dir: %w", err)
	}

	type cacheFile struct {
		path    string
		modTime time.Time
		size    int64
	}

	var files []cacheFile
	var totalSize int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			// Appeared or vanished mid-scan; skip it this pass.
			continue
		}
		files = append(files, cacheFile{
			path:    filepath.Join(m.dir, entry.Name()),
			modTime: fi.ModTime(),
			size:    fi.Size(),
		})
		totalSize += fi.Size()
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.Before(files[j].modTime)
	})

	removed := 0
	now := time.Now()
	for _, f := range files {
		overAge := now.Sub(f.modTime) > maxAge
		overSize := totalSize > maxTotalBytes
		if !overAge && !overSize {
			break
		}

		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			m.logger.Warn().Str("path", f.path).Err(err).Msg("eviction failed for file")
			continue
		}
		totalSize -= f.size
		removed++
		metrics.CacheEvictionsTotal.Inc()
		m.logger.Info().
			Str("file", filepath.Base(f.path)).
			Int64("size", f.size).
			Msg("evicted cached artifact")
	}

	return removed, nil
}
