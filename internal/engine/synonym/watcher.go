package synonym

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/voracio/sheetsense/internal/infrastructure/monitoring/logging"
	"github.com/voracio/sheetsense/pkg/errors"
)

// Watcher reloads a synonyms file into a Table whenever it changes on disk.
// A reload that fails to parse keeps the previous mapping; resolution never
// observes a half-applied table.
type Watcher struct {
	path   string
	table  *Table
	logger logging.Logger
	fsw    *fsnotify.Watcher
}

// NewWatcher loads path into table once and prepares a file watcher for it.
// The initial load failing is an error; later reload failures only log.
func NewWatcher(path string, table *Table, logger logging.Logger) (*Watcher, error) {
	entries, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	table.ReplaceAll(entries)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "creating file watcher")
	}
	// Watch the directory, not the file: editors typically replace files by
	// rename, which drops a watch registered on the file itself.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, errors.Wrap(err, errors.CodeInternal, "watching synonyms directory")
	}

	return &Watcher{path: path, table: table, logger: logger, fsw: fsw}, nil
}

// Run blocks, applying file changes until ctx is cancelled or the watcher's
// event stream closes. Call it from a dedicated goroutine.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("synonyms watcher error", logging.Err(err))
		}
	}
}

func (w *Watcher) reload() {
	entries, err := LoadFile(w.path)
	if err != nil {
		w.logger.Warn("synonyms reload failed, keeping previous table",
			logging.String("path", w.path), logging.Err(err))
		return
	}
	w.table.ReplaceAll(entries)
	w.logger.Info("synonyms reloaded",
		logging.String("path", w.path), logging.Int("entries", w.table.Len()))
}
