package api

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/amterp/boardkit/internal/codec"
	"github.com/amterp/boardkit/internal/model"
)

// FileChangeType indicates what type of change occurred.
type FileChangeType string

const (
	FileChangeCreated  FileChangeType = "created"
	FileChangeModified FileChangeType = "modified"
	FileChangeDeleted  FileChangeType = "deleted"
	FileChangeUnknown  FileChangeType = ""
)

// FileChange represents an out-of-process change to the collection file.
type FileChange struct {
	Type FileChangeType `json:"type"`
	Path string         `json:"path"`
}

// FileWatcherSubscriber receives file change notifications.
type FileWatcherSubscriber interface {
	OnFileChange(change FileChange)
}

// FileWatcher watches the collection file for edits made outside this
// process (another CLI invocation, a text editor) and notifies subscribers.
// Writes this process made itself are recognized by content and skipped.
type FileWatcher struct {
	watcher     *fsnotify.Watcher
	path        string
	mu          sync.RWMutex
	subscribers []FileWatcherSubscriber
	lastLocal   [sha256.Size]byte
	hasLocal    bool
	debounce    *time.Timer
	debounceMu  sync.Mutex
	stopCh      chan struct{}
	stopped     bool // Once stopped, cannot restart
	running     bool
}

// NewFileWatcher creates a new watcher for the given collection file.
func NewFileWatcher(path string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		watcher: watcher,
		path:    filepath.Clean(path),
		stopCh:  make(chan struct{}),
	}, nil
}

// Subscribe adds a subscriber to receive file change notifications.
func (fw *FileWatcher) Subscribe(sub FileWatcherSubscriber) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.subscribers = append(fw.subscribers, sub)
}

// OnCollectionChange implements service.ChangeListener. It remembers the
// bytes this process just wrote so the resulting fs event isn't reported.
func (fw *FileWatcher) OnCollectionChange(c model.Collection) {
	data, err := codec.Encode(c)
	if err != nil {
		return
	}
	fw.mu.Lock()
	fw.lastLocal = sha256.Sum256(data)
	fw.hasLocal = true
	fw.mu.Unlock()
}

// Start begins watching. The parent directory is watched rather than the
// file so atomic rename-into-place writes are seen.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return nil
	}
	if fw.stopped {
		fw.mu.Unlock()
		return fmt.Errorf("file watcher cannot be restarted after stop")
	}
	fw.running = true
	fw.mu.Unlock()

	dir := filepath.Dir(fw.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	go fw.run()
	return nil
}

// Stop stops watching for changes.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if !fw.running || fw.stopped {
		fw.mu.Unlock()
		return nil
	}
	fw.running = false
	fw.stopped = true
	fw.mu.Unlock()

	// Cancel a pending debounce so it can't fire after stop
	fw.debounceMu.Lock()
	if fw.debounce != nil {
		fw.debounce.Stop()
		fw.debounce = nil
	}
	fw.debounceMu.Unlock()

	close(fw.stopCh)
	return fw.watcher.Close()
}

func (fw *FileWatcher) run() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("file watcher error")

		case <-fw.stopCh:
			return
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	change := fw.classifyChange(event)
	if change.Type == FileChangeUnknown {
		return
	}

	// Debounce: wait 100ms before emitting to coalesce rapid changes
	fw.debounceMu.Lock()
	if fw.debounce != nil {
		fw.debounce.Stop()
	}
	fw.debounce = time.AfterFunc(100*time.Millisecond, func() {
		fw.emitChange(change)
	})
	fw.debounceMu.Unlock()
}

func (fw *FileWatcher) emitChange(change FileChange) {
	fw.mu.RLock()
	if fw.stopped {
		fw.mu.RUnlock()
		return
	}
	subs := make([]FileWatcherSubscriber, len(fw.subscribers))
	copy(subs, fw.subscribers)
	fw.mu.RUnlock()

	if change.Type != FileChangeDeleted && fw.isLocalWrite() {
		return
	}

	log.Debug().Str("type", string(change.Type)).Str("path", change.Path).Msg("external change detected")
	for _, sub := range subs {
		sub.OnFileChange(change)
	}
}

// isLocalWrite reports whether the file currently holds exactly the bytes
// this process last persisted.
func (fw *FileWatcher) isLocalWrite() bool {
	data, err := os.ReadFile(fw.path)
	if err != nil {
		return false
	}
	sum := sha256.Sum256(data)

	fw.mu.RLock()
	defer fw.mu.RUnlock()
	return fw.hasLocal && sum == fw.lastLocal
}

func (fw *FileWatcher) classifyChange(event fsnotify.Event) FileChange {
	if filepath.Clean(event.Name) != fw.path {
		return FileChange{Type: FileChangeUnknown}
	}

	change := FileChange{Path: fw.path}
	switch {
	case event.Op&fsnotify.Create != 0:
		change.Type = FileChangeCreated
	case event.Op&fsnotify.Write != 0:
		change.Type = FileChangeModified
	case event.Op&fsnotify.Remove != 0:
		change.Type = FileChangeDeleted
	case event.Op&fsnotify.Rename != 0:
		change.Type = FileChangeDeleted // Rename source is effectively deleted
	default:
		change.Type = FileChangeUnknown
	}
	return change
}
