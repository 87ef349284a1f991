package sheet

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Use-Tusk/tusk-sheet/internal/log"
)

// reloadDebounce absorbs the burst of events editors emit for one save.
const reloadDebounce = 50 * time.Millisecond

// ReloadFunc receives the reparsed sheet, or the error that kept it from
// loading. A failed reload leaves the caller's current sheet in place.
type ReloadFunc func(*Sheet, error)

// Watcher reloads a sheet file whenever it is written.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onReload ReloadFunc

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// Watch starts watching path. The parent directory is watched because many
// editors replace the file on save instead of writing it in place.
func Watch(path string, onReload ReloadFunc) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		path:     abs,
		onReload: onReload,
		stopCh:   make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Stop ends the watch and waits for the loop to exit. No reload is
// delivered after Stop returns.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		_ = w.watcher.Close()
	})
	w.wg.Wait()
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	debounce := time.NewTimer(0)
	<-debounce.C
	pending := false

	for {
		select {
		case <-w.stopCh:
			debounce.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = true
			debounce.Reset(reloadDebounce)

		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			s, err := Load(w.path)
			if err != nil {
				log.Debug("Sheet reload failed", "path", w.path, "error", err)
			}
			select {
			case <-w.stopCh:
				return
			default:
				w.onReload(s, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("Sheet watcher error", "path", w.path, "error", err)
		}
	}
}
