// Package watch re-parses build logs and Checkstyle reports as the runners
// write them.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/openkraft/javaqc/internal/adapters/outbound/checkstyle"
	"github.com/openkraft/javaqc/internal/adapters/outbound/javac"
	"github.com/openkraft/javaqc/internal/adapters/outbound/tui"
	"github.com/openkraft/javaqc/internal/application"
	"github.com/openkraft/javaqc/internal/logging"
)

const DefaultDebounce = 300 * time.Millisecond

// Options control how parsed logs are printed.
type Options struct {
	JSON     bool
	Debounce time.Duration
}

// Watcher renders every new or rewritten transcript under a repository.
type Watcher struct {
	parser *application.ParseService
	opts   Options

	mu  sync.Mutex
	out io.Writer
}

func New(parser *application.ParseService, out io.Writer, opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{parser: parser, out: out, opts: opts}
}

// Run watches <repo>/build-logs and <repo>/checkstyle-reports until ctx is
// done. Bursts of writes to one file are coalesced into a single parse.
func (w *Watcher) Run(ctx context.Context, repoPath string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	for _, d := range []string{javac.LogDir, checkstyle.ReportDir} {
		dir := filepath.Join(repoPath, d)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	logging.Info("watching for logs", "repo", repoPath)

	pending := make(map[string]*time.Timer)
	ready := make(chan string)
	stopped := make(chan struct{})
	defer func() {
		close(stopped)
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".log") || !(ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write)) {
				continue
			}
			if t, ok := pending[ev.Name]; ok {
				t.Reset(w.opts.Debounce)
				continue
			}
			name := ev.Name
			pending[name] = time.AfterFunc(w.opts.Debounce, func() { deliver(name, ready, stopped) })

		case name := <-ready:
			delete(pending, name)
			if err := w.Handle(name); err != nil {
				logging.Warn("parsing watched log", "path", name, "error", err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logging.Warn("watcher error", "error", err)
		}
	}
}

// deliver hands a settled path to the event loop, or gives up once the loop
// has returned.
func deliver(name string, ready chan<- string, stopped <-chan struct{}) bool {
	select {
	case ready <- name:
		return true
	case <-stopped:
		return false
	}
}

// Handle parses one transcript, choosing the parser by the directory it
// sits in, and prints the result.
func (w *Watcher) Handle(path string) error {
	opts := application.ParseOptions{}

	var (
		rendered string
		value    any
	)
	switch filepath.Base(filepath.Dir(path)) {
	case javac.LogDir:
		r, err := w.parser.ParseBuildLog(path, opts)
		if err != nil {
			return err
		}
		rendered, value = tui.RenderBuildReport(r), r
	case checkstyle.ReportDir:
		r, err := w.parser.ParseStyleLog(path, opts)
		if err != nil {
			return err
		}
		rendered, value = tui.RenderStyleReport(r), r
	default:
		return fmt.Errorf("not a javaqc log directory: %s", path)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.opts.JSON {
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	}
	fmt.Fprintf(w.out, "\n── %s\n", path)
	_, err := io.WriteString(w.out, rendered)
	return err
}
