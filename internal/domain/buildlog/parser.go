// Package buildlog turns a javac build transcript into a BuildReport.
//
// Every exported function is a pure function of the transcript text.
// Malformed or partial input never produces an error: missing banners leave
// the corresponding fields unset.
package buildlog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/openkraft/javaqc/internal/domain"
	"github.com/openkraft/javaqc/internal/domain/pattern"
)

var (
	reHeader      = regexp.MustCompile(`=== Build Log for (.*?) ===`)
	reDate        = regexp.MustCompile(`^\s*Date: (.*)$`)
	reFound       = regexp.MustCompile(`Found (\d+) Java files to compile:`)
	reItem        = regexp.MustCompile(`^\s*- (.+)$`)
	reCompiling   = regexp.MustCompile(`^Compiling: (.*)$`)
	reRunning     = regexp.MustCompile(`^Running: (.*)$`)
	reFailed      = regexp.MustCompile(`ERROR Compilation failed for (.*)$`)
	reErrorCount  = regexp.MustCompile(`^\s*(\d+) errors?\s*$`)
	reCaret       = regexp.MustCompile(`^[ \t]*\^\s*$`)
	reWarning     = regexp.MustCompile(`^.+:\d+: warning: `)
	reEncoding    = regexp.MustCompile(`-encoding (\S+)`)
	reToolOptions = regexp.MustCompile(`Picked up JAVA_TOOL_OPTIONS: (.*)$`)
	reOutputDir   = regexp.MustCompile(`(?:^|\s)-d (\S+)`)
)

// PatternJavacError is the name of the primary compiler error pattern.
const PatternJavacError = "javac-error"

// errorTable recognizes "<path>:<line>: error: <message>".
var errorTable = pattern.NewTable(
	pattern.New(PatternJavacError, `^(.+?):(\d+): error: (.*)$`, nil),
)

// Parse builds the full report for a transcript. Empty input yields the
// default report with status UNKNOWN.
func Parse(text string) *domain.BuildReport {
	report := domain.NewBuildReport()
	if strings.TrimSpace(text) == "" {
		return report
	}

	lines := pattern.Lines(text)
	sections := splitSections(lines)

	report.Header = parseHeader(lines)
	report.Environment = parseEnvironment(lines)

	total, files := parseFileInventory(lines)
	report.ProjectStructure = domain.ProjectStructure{TotalFiles: total, Files: files}

	results := compilationResults(sections)
	for _, r := range results {
		report.Compilation.Commands = append(report.Compilation.Commands, domain.CompilationCommand{
			File:    r.File,
			Command: r.Command,
		})
	}
	report.Compilation.FileResults = results

	details := errorDetails(lines, sections)
	report.Errors = domain.NewDiagnosticSet(details)

	report.Summary = domain.BuildSummary{
		Summary: domain.Summary{
			Status:            status(text),
			TotalCount:        report.Errors.Count,
			AffectedFileCount: domain.DistinctFiles(details),
		},
		SuccessRate:     successRate(results, total),
		OutputDirectory: outputDirectory(lines),
		FailedFile:      failedFile(lines),
	}
	return report
}

// ParseHeader extracts the repository path and timestamp banners.
func ParseHeader(text string) domain.Header {
	return parseHeader(pattern.Lines(text))
}

// ParseFileInventory returns the declared file count and the listed files,
// deduplicated by path in first-seen order.
func ParseFileInventory(text string) (int, []domain.FileEntry) {
	return parseFileInventory(pattern.Lines(text))
}

// ParseCompilationSections returns one result per "Compiling:" block.
func ParseCompilationSections(text string) []domain.CompilationResult {
	return compilationResults(splitSections(pattern.Lines(text)))
}

// ParseErrorDetails returns the located compiler errors for every
// "ERROR Compilation failed for" banner.
func ParseErrorDetails(text string) []domain.Diagnostic {
	lines := pattern.Lines(text)
	return errorDetails(lines, splitSections(lines))
}

func parseHeader(lines []pattern.Line) domain.Header {
	var h domain.Header
	h.RepositoryPath, _ = pattern.FirstSubmatch(lines, reHeader)
	h.Timestamp, _ = pattern.FirstSubmatch(lines, reDate)
	return h
}

func parseEnvironment(lines []pattern.Line) domain.BuildEnvironment {
	var env domain.BuildEnvironment
	for _, l := range lines {
		if reRunning.MatchString(l.Text) {
			if m := reEncoding.FindStringSubmatch(l.Text); m != nil && env.Encoding == "" {
				env.Encoding = m[1]
			}
		}
	}
	env.JavaToolOptions, _ = pattern.FirstSubmatch(lines, reToolOptions)
	return env
}

func parseFileInventory(lines []pattern.Line) (int, []domain.FileEntry) {
	files := []domain.FileEntry{}
	start := -1
	total := 0
	for i, l := range lines {
		if m := reFound.FindStringSubmatch(l.Text); m != nil {
			total, _ = strconv.Atoi(m[1])
			start = i + 1
			break
		}
	}
	if start < 0 {
		return 0, files
	}

	seen := make(map[string]bool)
	for _, l := range lines[start:] {
		if reCompiling.MatchString(l.Text) {
			break
		}
		m := reItem.FindStringSubmatch(l.Text)
		if m == nil {
			continue
		}
		p := strings.TrimSpace(m[1])
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		files = append(files, domain.NewFileEntry(p))
	}
	return total, files
}

func outputDirectory(lines []pattern.Line) string {
	for _, l := range lines {
		if !reRunning.MatchString(l.Text) {
			continue
		}
		if m := reOutputDir.FindStringSubmatch(l.Text); m != nil {
			return m[1]
		}
	}
	return ""
}

func failedFile(lines []pattern.Line) string {
	v, _ := pattern.FirstSubmatch(lines, reFailed)
	return v
}

func status(text string) domain.Status {
	switch {
	case strings.Contains(text, successMarker):
		return domain.StatusSuccess
	case strings.Contains(text, failedMarker):
		return domain.StatusFailed
	default:
		return domain.StatusUnknown
	}
}

func successRate(results []domain.CompilationResult, total int) float64 {
	if total <= 0 {
		return 0
	}
	ok := 0
	for _, r := range results {
		if r.Success {
			ok++
		}
	}
	rate := float64(ok) / float64(total) * 100
	if rate > 100 {
		return 100
	}
	return rate
}
