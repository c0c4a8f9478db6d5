package domain

import "strings"

// Status is the overall outcome of a parsed log.
type Status string

const (
	StatusSuccess     Status = "SUCCESS"
	StatusFailed      Status = "FAILED"
	StatusPassed      Status = "PASSED"
	StatusIssuesFound Status = "ISSUES_FOUND"
	StatusUnknown     Status = "UNKNOWN"
)

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Header identifies the run a transcript was produced by.
type Header struct {
	RepositoryPath string `json:"repository_path,omitempty"`
	Timestamp      string `json:"timestamp,omitempty"`
}

// FileEntry is one source file declared in a transcript.
type FileEntry struct {
	Path      string `json:"path"`
	Filename  string `json:"filename"`
	Directory string `json:"directory"`
}

// NewFileEntry derives filename and directory from path. Both forward and
// back slashes are treated as separators since logs may come from Windows.
func NewFileEntry(path string) FileEntry {
	i := strings.LastIndexAny(path, `/\`)
	if i < 0 {
		return FileEntry{Path: path, Filename: path}
	}
	return FileEntry{Path: path, Filename: path[i+1:], Directory: path[:i]}
}

// BaseName returns the last path element of p, accepting either separator.
func BaseName(p string) string {
	return NewFileEntry(p).Filename
}

// Diagnostic is a single located compilation error or style violation.
// Line, Column and ErrorCountInBlock are zero when the source did not carry them.
type Diagnostic struct {
	File              string `json:"file"`
	Line              int    `json:"line,omitempty"`
	Column            int    `json:"column,omitempty"`
	Message           string `json:"message"`
	Rule              string `json:"rule,omitempty"`
	Severity          string `json:"severity"`
	CodeContext       string `json:"code_context,omitempty"`
	ErrorCountInBlock int    `json:"error_count_in_block,omitempty"`
	RawText           string `json:"raw_text"`
}

// Summary is the aggregate outcome shared by build and style reports.
type Summary struct {
	Status            Status `json:"status"`
	TotalCount        int    `json:"total_count"`
	AffectedFileCount int    `json:"affected_file_count"`
}

// DiagnosticSet keeps the count next to the details; Count always equals len(Details).
type DiagnosticSet struct {
	Count   int          `json:"count"`
	Details []Diagnostic `json:"details"`
}

// NewDiagnosticSet wraps details so the count invariant holds by construction.
func NewDiagnosticSet(details []Diagnostic) DiagnosticSet {
	if details == nil {
		details = []Diagnostic{}
	}
	return DiagnosticSet{Count: len(details), Details: details}
}

// DistinctFiles counts the distinct File values across diagnostics.
func DistinctFiles(details []Diagnostic) int {
	seen := make(map[string]bool, len(details))
	for _, d := range details {
		seen[d.File] = true
	}
	return len(seen)
}
