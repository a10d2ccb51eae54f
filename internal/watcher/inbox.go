// Package watcher imports observation files dropped into an inbox directory.
//
// Every *.json file found in the directory at start, or written to it later,
// is handed to the transfer service. The file is then renamed with an
// ".imported" or ".rejected" suffix so it is never read twice.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-field-survey/internal/logger"
	"github.com/MKhiriev/go-field-survey/internal/service"
	"github.com/MKhiriev/go-field-survey/models"
	"github.com/fsnotify/fsnotify"
)

const (
	// DefaultSettleDelay is how long a file must stay unchanged before it is
	// imported.
	DefaultSettleDelay = 250 * time.Millisecond

	ImportedSuffix = ".imported"
	RejectedSuffix = ".rejected"
)

// Importer consumes one import file.
type Importer interface {
	Import(ctx context.Context, r io.Reader) (models.ImportReport, error)
}

// ImportInbox watches a directory and imports the JSON files written to it.
type ImportInbox struct {
	dir      string
	importer Importer
	settle   time.Duration
	logger   *logger.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewImportInbox returns an inbox over dir. A non-positive settle uses
// DefaultSettleDelay.
func NewImportInbox(dir string, importer Importer, settle time.Duration, logger *logger.Logger) *ImportInbox {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &ImportInbox{dir: dir, importer: importer, settle: settle, logger: logger}
}

// Start creates the directory if needed, imports the files already in it and
// watches it until ctx is cancelled or Stop is called.
func (in *ImportInbox) Start(ctx context.Context) error {
	in.Stop()

	if err := os.MkdirAll(in.dir, 0o755); err != nil {
		return fmt.Errorf("create import dir: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := w.Add(in.dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to watch import dir %s: %w", in.dir, err)
	}

	loopCtx, cancel := context.WithCancel(ctx)

	in.mu.Lock()
	in.watcher = w
	in.cancel = cancel
	in.wg.Add(1)
	in.mu.Unlock()

	in.logger.Info().Str("dir", in.dir).Msg("import inbox started")

	go in.run(loopCtx, w)
	return nil
}

// Stop stops watching and waits for an import in progress to finish.
func (in *ImportInbox) Stop() {
	in.mu.Lock()
	cancel, w := in.cancel, in.watcher
	in.cancel, in.watcher = nil, nil
	in.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	_ = w.Close()
	in.wg.Wait()
}

func (in *ImportInbox) run(ctx context.Context, w *fsnotify.Watcher) {
	defer in.wg.Done()

	// files become ready once no event touched them for the settle delay
	ready := make(chan string, 16)
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	schedule := func(path string) {
		if t, ok := timers[path]; ok {
			t.Reset(in.settle)
			return
		}
		timers[path] = time.AfterFunc(in.settle, func() {
			select {
			case ready <- path:
			case <-ctx.Done():
			}
		})
	}

	for _, path := range in.existingFiles() {
		schedule(path)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				if isImportFile(event.Name) {
					schedule(event.Name)
				}
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			in.logger.Warn().Err(err).Str("func", "ImportInbox.run").Msg("watcher error")

		case path := <-ready:
			delete(timers, path)
			in.importFile(ctx, path)
		}
	}
}

func (in *ImportInbox) existingFiles() []string {
	entries, err := os.ReadDir(in.dir)
	if err != nil {
		in.logger.Warn().Err(err).Str("dir", in.dir).Msg("failed to list import dir")
		return nil
	}

	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() && isImportFile(e.Name()) {
			out = append(out, filepath.Join(in.dir, e.Name()))
		}
	}
	return out
}

// importFile imports path and renames it according to the outcome. A local
// store failure leaves the file in place for the next start.
func (in *ImportInbox) importFile(ctx context.Context, path string) {
	log := in.logger.With().Str("func", "ImportInbox.importFile").Str("file", path).Logger()

	f, err := os.Open(path)
	if err != nil {
		// renamed or removed before it settled
		log.Debug().Err(err).Msg("import file vanished")
		return
	}
	report, err := in.importer.Import(ctx, f)
	_ = f.Close()

	var suffix string
	switch {
	case errors.Is(err, service.ErrMalformedImport):
		log.Warn().Err(err).Msg("import file rejected")
		suffix = RejectedSuffix
	case err != nil:
		log.Error().Err(err).Msg("import failed, file kept for retry")
		return
	case report.Imported == 0 && len(report.Rejected) > 0:
		log.Warn().Int("rejected", len(report.Rejected)).Msg("no record of the file could be imported")
		suffix = RejectedSuffix
	default:
		log.Info().
			Int("imported", report.Imported).
			Int("rejected", len(report.Rejected)).
			Msg("import file processed")
		suffix = ImportedSuffix
	}

	if err := os.Rename(path, path+suffix); err != nil {
		log.Error().Err(err).Msg("failed to rename processed import file")
	}
}

func isImportFile(name string) bool {
	base := filepath.Base(name)
	return !strings.HasPrefix(base, ".") && strings.EqualFold(filepath.Ext(base), ".json")
}
