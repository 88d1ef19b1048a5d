package localfs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher watches the content directory for outside edits and reports
// changed files after a quiet period, so a burst of writes from another
// tool collapses into one reload.
type Watcher struct {
	contentDir string
	debounce   time.Duration
	onChange   func(paths []string)
	log        zerolog.Logger
}

// NewWatcher creates a watcher over contentDir. onChange receives paths
// relative to the content directory; it is called from the watcher
// goroutine, so wire it through the update-loop dispatcher.
func NewWatcher(contentDir string, debounce time.Duration, onChange func(paths []string), log zerolog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	return &Watcher{
		contentDir: contentDir,
		debounce:   debounce,
		onChange:   onChange,
		log:        log.With().Str("component", "watcher").Logger(),
	}
}

// Start watches until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := w.addRecursive(fsw, w.contentDir); err != nil {
		return err
	}

	var timer *time.Timer
	var timerC <-chan time.Time
	changed := map[string]struct{}{}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(fsw, event.Name); err != nil {
						w.log.Warn().Err(err).Str("dir", event.Name).Msg("failed to watch new directory")
					}
					continue
				}
			}

			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Remove) {
				continue
			}

			rel, err := filepath.Rel(w.contentDir, event.Name)
			if err != nil || strings.HasPrefix(rel, "..") {
				continue
			}
			changed[filepath.ToSlash(rel)] = struct{}{}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watch error")

		case <-timerC:
			paths := make([]string, 0, len(changed))
			for p := range changed {
				paths = append(paths, p)
			}
			changed = map[string]struct{}{}
			timerC = nil

			w.log.Debug().Strs("paths", paths).Msg("files changed")
			w.onChange(paths)
		}
	}
}

func (w *Watcher) addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
}
