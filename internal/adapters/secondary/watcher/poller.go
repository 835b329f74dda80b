package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fredcamaral/webdeck/internal/domain/ports"
	"github.com/fredcamaral/webdeck/internal/logging"
)

// PollingWatcher watches one deck file for edits by polling. Polling is less
// elegant than inotify and friends but behaves identically across platforms
// and network filesystems, which matters for decks living in synced folders.
type PollingWatcher struct {
	interval time.Duration
	debounce time.Duration
	logger   *logging.Logger

	mu      sync.Mutex
	known   fileInfo
	events  chan ports.FileChangeEvent
	stopCh  chan struct{}
	stopped bool
	wg      sync.WaitGroup
}

// fileInfo is the cheap-to-compare identity of a file's content
type fileInfo struct {
	size     int64
	modTime  time.Time
	checksum string
}

// NewPollingWatcher creates a polling watcher with the given timings
func NewPollingWatcher(interval, debounce time.Duration, logger *logging.Logger) *PollingWatcher {
	return &PollingWatcher{
		interval: interval,
		debounce: debounce,
		logger:   logger,
		events:   make(chan ports.FileChangeEvent, 10),
		stopCh:   make(chan struct{}),
	}
}

// Watch starts watching path for content changes
func (w *PollingWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	info, err := w.scan(absPath)
	if err != nil {
		return nil, fmt.Errorf("initial scan: %w", err)
	}
	w.known = info

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.pollLoop(ctx, absPath)
	}()

	return w.events, nil
}

// Stop halts polling and closes the event channel. Idempotent.
func (w *PollingWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopCh)
	w.wg.Wait()
	close(w.events)

	return nil
}

// pollLoop checks for changes until stopped
func (w *PollingWatcher) pollLoop(ctx context.Context, path string) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	lastEvent := time.Time{}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			changed, err := w.check(path)
			if err != nil {
				w.logger.Warn("watch error: %v", err)
				continue
			}
			if !changed || time.Since(lastEvent) < w.debounce {
				continue
			}

			event := ports.FileChangeEvent{Path: path, Timestamp: time.Now()}
			select {
			case w.events <- event:
				lastEvent = time.Now()
			case <-ctx.Done():
				return
			case <-w.stopCh:
				return
			}
		}
	}
}

// check reports whether the file content changed since the last scan. The
// checksum is only computed when size or mtime moved.
func (w *PollingWatcher) check(path string) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// File deleted (or mid-rename during an atomic save); wait for
			// it to reappear.
			return false, nil
		}
		return false, fmt.Errorf("stat file: %w", err)
	}

	if stat.Size() == w.known.size && stat.ModTime().Equal(w.known.modTime) {
		return false, nil
	}

	info, err := w.scan(path)
	if err != nil {
		return false, err
	}

	changed := info.checksum != w.known.checksum
	w.known = info
	return changed, nil
}

// scan captures the file's current identity
func (w *PollingWatcher) scan(path string) (fileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return fileInfo{}, fmt.Errorf("stat file: %w", err)
	}

	file, err := os.Open(path) // #nosec G304 - path is the user's deck file
	if err != nil {
		return fileInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return fileInfo{}, fmt.Errorf("hash file: %w", err)
	}

	return fileInfo{
		size:     stat.Size(),
		modTime:  stat.ModTime(),
		checksum: hex.EncodeToString(hash.Sum(nil)),
	}, nil
}

var _ ports.DeckWatcher = (*PollingWatcher)(nil)
