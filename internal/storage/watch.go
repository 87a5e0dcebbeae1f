package storage

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 150 * time.Millisecond

// Watcher calls a function whenever the store file at a path is rewritten,
// either by this process or another one sharing the same file.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func()
	logger   *zap.Logger

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher watches the directory containing path. The directory is watched
// instead of the file so atomic rename-into-place writes are observed. Writes
// to the SQLite write-ahead log next to path count as changes too, since a
// WAL database file is untouched until checkpoint.
func NewWatcher(path string, onChange func(), logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     filepath.Clean(path),
		debounce: defaultDebounce,
		onChange: onChange,
		logger:   logger,
		watcher:  fw,
		done:     make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Close stops the watcher and waits for the event loop to exit.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) matches(name string) bool {
	name = filepath.Clean(name)
	return name == w.path || name == w.path+"-wal"
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.matches(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Coalesce bursts (temp file create + rename) into one callback
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("store watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			w.logger.Debug("store file changed", zap.String("path", w.path))
			if w.onChange != nil {
				w.onChange()
			}
		}
	}
}
