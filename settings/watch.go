package settings

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watcher re-reads the settings file when something else edits it, so
// the UI can be told about documents it did not write itself.
type watcher struct {
	fsw    *fsnotify.Watcher
	stopCh chan struct{}
}

// Watch starts monitoring the settings file for external modification.
// onChange receives the freshly re-read user settings document. Writes
// made through this Store also trigger onChange; callers tolerate that.
func (s *Store) Watch(onChange func(doc map[string]any)) error {
	if s.path == "" {
		return fmt.Errorf("no settings file to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}

	// Watch the directory: editors replace the file, which would drop
	// a watch placed on the file itself.
	if err := fsw.Add(filepath.Dir(s.path)); err != nil {
		fsw.Close()
		return fmt.Errorf("watch settings dir: %w", err)
	}

	w := &watcher{fsw: fsw, stopCh: make(chan struct{})}

	s.mu.Lock()
	if s.watcher != nil {
		s.mu.Unlock()
		fsw.Close()
		return fmt.Errorf("settings watcher already running")
	}
	s.watcher = w
	s.mu.Unlock()

	go w.loop(s, onChange)
	return nil
}

func (w *watcher) stop() error {
	close(w.stopCh)
	return w.fsw.Close()
}

func (w *watcher) loop(s *Store, onChange func(doc map[string]any)) {
	// Debounce bursts of write events from a single save.
	var pending bool
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}

	name := filepath.Base(s.path)

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if !pending {
				pending = true
				timer.Reset(200 * time.Millisecond)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Error("settings watcher", "error", err)

		case <-timer.C:
			pending = false
			if err := s.reload(); err != nil {
				slog.Error("reload settings", "error", err)
				continue
			}
			onChange(s.Document())
		}
	}
}
