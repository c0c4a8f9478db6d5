// Package checkstyle runs Checkstyle over a repository file by file and
// writes the style transcript read by the stylelog parser.
package checkstyle

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/openkraft/javaqc/internal/adapters/outbound/proc"
	"github.com/openkraft/javaqc/internal/domain"
	"github.com/openkraft/javaqc/internal/domain/stylelog"
	"github.com/openkraft/javaqc/internal/logging"
)

const (
	ReportDir = "checkstyle-reports"

	// BuiltinSunChecks names the Sun configuration bundled in the Checkstyle jar.
	BuiltinSunChecks = "/sun_checks.xml"

	fileStamp = "20060102-150405"
)

// Settings locate the jar and the fallback configuration.
type Settings struct {
	// Home holds checkstyle.jar and sun_checks.xml; usually <cwd>/checkstyle.
	Home    string
	JarPath string
	Version string
}

func (s Settings) jar() string {
	if s.JarPath != "" {
		return s.JarPath
	}
	return filepath.Join(s.Home, "checkstyle.jar")
}

// Runner implements domain.StyleRunner.
type Runner struct {
	settings Settings
	scanner  domain.SourceScanner
	run      proc.Runner
	fetch    Fetcher
	now      func() time.Time
}

func New(settings Settings, scanner domain.SourceScanner) *Runner {
	return NewWithExec(settings, scanner, proc.Exec, Download, time.Now)
}

// NewWithExec lets tests replace the process runner, the jar download and the clock.
func NewWithExec(settings Settings, scanner domain.SourceScanner, run proc.Runner, fetch Fetcher, now func() time.Time) *Runner {
	return &Runner{settings: settings, scanner: scanner, run: run, fetch: fetch, now: now}
}

// Check writes the report transcript. Success is true when no file
// produced a violation line.
func (r *Runner) Check(ctx context.Context, repoPath, customConfig string) (domain.ToolRun, error) {
	files, err := r.scanner.JavaFiles(repoPath)
	if err != nil {
		return domain.ToolRun{}, err
	}
	if len(files) == 0 {
		return domain.ToolRun{}, domain.ErrNoJavaFiles
	}

	jar, err := r.ensureJar(ctx)
	if err != nil {
		return domain.ToolRun{}, err
	}
	config := r.configFor(customConfig)

	started := r.now()
	dir := filepath.Join(repoPath, ReportDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return domain.ToolRun{}, fmt.Errorf("creating report dir: %w", err)
	}
	run := domain.ToolRun{LogPath: filepath.Join(dir, "checkstyle-report-"+started.Format(fileStamp)+".log")}
	f, err := os.Create(run.LogPath)
	if err != nil {
		return domain.ToolRun{}, fmt.Errorf("creating report: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, stylelog.HeaderFormat+"\n", repoPath)
	fmt.Fprintf(f, stylelog.DateFormat+"\n", started.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(f, stylelog.ConfigurationFormat+"\n\n", config)

	violations, affected := 0, 0
	for i, rel := range files {
		fmt.Fprintf(f, "\n"+stylelog.FileFormat+"\n", rel)
		logging.Debug("checking style", "file", rel, "n", i+1, "of", len(files))

		res, err := r.run(ctx, proc.Command{
			Name: "java",
			Args: []string{"-Dfile.encoding=UTF-8", "-jar", jar, "-c", config, filepath.Join(repoPath, filepath.FromSlash(rel))},
			Env:  []string{proc.JavaToolOptions},
		})
		if err != nil {
			return run, fmt.Errorf("running checkstyle: %w", err)
		}
		io.WriteString(f, res.Stdout)
		io.WriteString(f, res.Stderr)

		if strings.Contains(res.Stderr, "CheckstyleException") {
			logging.Warn("checkstyle error, not a style violation", "file", rel, "stderr", strings.TrimSpace(res.Stderr))
			continue
		}
		if n := countViolations(res.Stdout) + countViolations(res.Stderr); n > 0 {
			violations += n
			affected++
		}
	}

	fmt.Fprintf(f, "\n\n%s\n", stylelog.SummaryBanner)
	if violations > 0 {
		fmt.Fprintf(f, stylelog.TotalFormat+"\n", violations, affected)
	} else {
		fmt.Fprintln(f, stylelog.PassedLine)
	}

	run.Success = violations == 0
	logging.Info("checkstyle finished", "repo", repoPath, "violations", violations, "files", affected, "report", run.LogPath)
	return run, nil
}

// configFor prefers an existing custom file, then <home>/sun_checks.xml,
// then the configuration bundled in the jar.
func (r *Runner) configFor(custom string) string {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom
		}
		logging.Warn("custom checkstyle config not found, using default", "path", custom)
	}
	local := filepath.Join(r.settings.Home, "sun_checks.xml")
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return BuiltinSunChecks
}

func (r *Runner) ensureJar(ctx context.Context) (string, error) {
	jar := r.settings.jar()
	if _, err := os.Stat(jar); err == nil {
		return jar, nil
	}
	if err := os.MkdirAll(filepath.Dir(jar), 0755); err != nil {
		return "", fmt.Errorf("creating checkstyle dir: %w", err)
	}

	url := JarURL(r.settings.Version)
	logging.Info("downloading checkstyle", "url", url, "dest", jar)
	if err := r.fetch(ctx, url, jar); err != nil {
		return "", fmt.Errorf("downloading checkstyle jar: %w", err)
	}
	return jar, nil
}

func countViolations(out string) int {
	n := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, stylelog.ErrorMarker) && strings.Contains(line, ":") {
			n++
		}
	}
	return n
}
