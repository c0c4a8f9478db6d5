// Package javac compiles a repository file by file and writes the build
// transcript read by the buildlog parser.
package javac

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/openkraft/javaqc/internal/adapters/outbound/proc"
	"github.com/openkraft/javaqc/internal/domain"
	"github.com/openkraft/javaqc/internal/domain/buildlog"
	"github.com/openkraft/javaqc/internal/logging"
)

const (
	LogDir    = "build-logs"
	OutputDir = "bin"

	fileStamp = "20060102-150405"
)

// Runner implements domain.BuildRunner.
type Runner struct {
	scanner domain.SourceScanner
	run     proc.Runner
	now     func() time.Time
}

func New(scanner domain.SourceScanner) *Runner {
	return NewWithExec(scanner, proc.Exec, time.Now)
}

// NewWithExec lets tests replace the process runner and the clock.
func NewWithExec(scanner domain.SourceScanner, run proc.Runner, now func() time.Time) *Runner {
	return &Runner{scanner: scanner, run: run, now: now}
}

// Build compiles every Java source into <repo>/bin, stopping at the first
// failure. The transcript is always written; Success reports whether all
// files compiled.
func (r *Runner) Build(ctx context.Context, repoPath string) (domain.ToolRun, error) {
	started := r.now()
	dir := filepath.Join(repoPath, LogDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return domain.ToolRun{}, fmt.Errorf("creating build log dir: %w", err)
	}

	run := domain.ToolRun{LogPath: filepath.Join(dir, "build-log-"+started.Format(fileStamp)+".log")}
	f, err := os.Create(run.LogPath)
	if err != nil {
		return domain.ToolRun{}, fmt.Errorf("creating build log: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, buildlog.HeaderFormat+"\n", repoPath)
	fmt.Fprintf(f, buildlog.DateFormat+"\n\n", started.Format(buildlog.TimestampLayout))

	ok, err := r.compile(ctx, f, repoPath)
	if err != nil {
		if !errors.Is(err, domain.ErrNoJavaFiles) {
			fmt.Fprintf(f, "ERROR Error during build check: %v\n", err)
		}
		return run, err
	}
	run.Success = ok
	logging.Info("build finished", "repo", repoPath, "success", ok, "log", run.LogPath)
	return run, nil
}

func (r *Runner) compile(ctx context.Context, w io.Writer, repoPath string) (bool, error) {
	files, err := r.scanner.JavaFiles(repoPath)
	if err != nil {
		return false, err
	}
	if len(files) == 0 {
		fmt.Fprintln(w, buildlog.NoFilesLine)
		return false, domain.ErrNoJavaFiles
	}

	fmt.Fprintf(w, buildlog.InventoryFormat+"\n", len(files))
	for _, rel := range files {
		fmt.Fprintf(w, buildlog.InventoryItem+"\n", rel)
	}

	out := filepath.Join(repoPath, OutputDir)
	if err := os.MkdirAll(out, 0755); err != nil {
		return false, fmt.Errorf("creating output dir: %w", err)
	}

	for _, rel := range files {
		src := filepath.Join(repoPath, filepath.FromSlash(rel))
		cmd := proc.Command{
			Name: "javac",
			Args: []string{"-encoding", "UTF-8", "-d", out, src},
			Env:  []string{proc.JavaToolOptions},
		}

		fmt.Fprintf(w, "\n"+buildlog.CompilingFormat+"\n", rel)
		fmt.Fprintf(w, buildlog.RunningFormat+"\n", cmd)
		logging.Debug("compiling", "file", rel)

		res, err := r.run(ctx, cmd)
		if err != nil {
			return false, fmt.Errorf("running javac: %w", err)
		}
		io.WriteString(w, res.Stdout)
		io.WriteString(w, res.Stderr)

		if !res.Success() {
			fmt.Fprintf(w, buildlog.FailedFormat+"\n", domain.BaseName(rel))
			fmt.Fprintf(w, "\n%s\n", buildlog.GiveUpLine)
			logging.Warn("compilation failed", "file", rel, "exit_code", res.ExitCode)
			return false, nil
		}
	}

	fmt.Fprintf(w, "\n%s\n", buildlog.SuccessLine)
	return true, nil
}
