package game

import (
	"context"
	"os"
	"time"

	"github.com/xtding233/volcano-backend/internal/logger"
)

// FileWatcher polls file modification times and sizes and triggers a callback on change.
type FileWatcher struct {
	Paths    []string
	Interval time.Duration
	onChange func(string) // called with path that changed
	last     map[string]fileStamp
}

type fileStamp struct {
	exists bool
	mtime  time.Time
	size   int64
}

// NewFileWatcher creates a watcher for given paths and interval.
func NewFileWatcher(paths []string, interval time.Duration, onChange func(string)) *FileWatcher {
	return &FileWatcher{
		Paths:    paths,
		Interval: interval,
		onChange: onChange,
		last:     make(map[string]fileStamp),
	}
}

// Run records the current state of every path, then polls until ctx is done.
func (w *FileWatcher) Run(ctx context.Context) {
	w.scan(true)
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.scan(false)
		case <-ctx.Done():
			return
		}
	}
}

// scan compares each path with its last stamp. Appearing, disappearing, and modified files all count.
func (w *FileWatcher) scan(prime bool) {
	for _, p := range w.Paths {
		var cur fileStamp
		if fi, err := os.Stat(p); err == nil {
			cur = fileStamp{exists: true, mtime: fi.ModTime(), size: fi.Size()}
		}
		prev, seen := w.last[p]
		w.last[p] = cur
		if prime || !seen || prev.same(cur) {
			continue
		}
		logger.Info("watched file changed", "path", p, "exists", cur.exists)
		if w.onChange != nil {
			w.onChange(p)
		}
	}
}

func (s fileStamp) same(o fileStamp) bool {
	return s.exists == o.exists && s.size == o.size && s.mtime.Equal(o.mtime)
}
