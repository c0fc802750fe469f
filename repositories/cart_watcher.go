package repositories

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"poshak-shop/utils"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// CartWatcher notices when another process rewrites the cart file and asks
// the owner to reload, the way a browser tab reacts to storage events from
// its siblings. Events are debounced so atomic write-then-rename sequences
// trigger a single reload.
type CartWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	onChange func()
	logger   *zap.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

func NewCartWatcher(store *LocalStore, onChange func(), logger *zap.Logger) (*CartWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &CartWatcher{
		watcher:  watcher,
		path:     store.CartPath(),
		onChange: onChange,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching the state directory. Non-blocking.
func (w *CartWatcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch state dir: %w", err)
	}

	go w.run()
	return nil
}

// Stop halts the watcher and waits for the event loop to drain.
func (w *CartWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("cart watcher close failed", zap.Error(err))
	}
}

func (w *CartWatcher) run() {
	defer close(w.doneCh)

	reload := utils.Debounce(200*time.Millisecond, func() {
		w.logger.Info("cart file changed on disk, reloading")
		w.onChange()
	})

	for {
		select {
		case <-w.stopCh:
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
			reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("cart watcher error", zap.Error(err))
		}
	}
}
