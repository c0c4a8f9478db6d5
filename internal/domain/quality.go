package domain

import "errors"

// ErrNoJavaFiles is returned by runners when a repository holds no Java sources.
var ErrNoJavaFiles = errors.New("no Java files found in the repository")

// QualityReport is the JSON document written after a run.
type QualityReport struct {
	Meta    ReportMeta    `json:"meta"`
	Results ReportResults `json:"results"`
	Logs    ReportLogs    `json:"logs"`
}

type ReportMeta struct {
	RunID        string `json:"run_id"`
	Timestamp    string `json:"timestamp"`
	RepoPath     string `json:"repo_path"`
	CommitHash   string `json:"commit_hash,omitempty"`
	ProjectID    string `json:"project_id,omitempty"`
	ProjectHW    string `json:"project_hw,omitempty"`
	Branch       string `json:"branch,omitempty"`
	FailOnIssues bool   `json:"fail_on_issues"`
}

type ReportResults struct {
	BuildSuccess          bool `json:"build_success"`
	CheckstyleSuccess     bool `json:"checkstyle_success"`
	CheckstyleSkipped     bool `json:"checkstyle_skipped,omitempty"`
	OverallQualitySuccess bool `json:"overall_quality_success"`
}

type ReportLogs struct {
	Build      *BuildReport `json:"build,omitempty"`
	Checkstyle *StyleReport `json:"checkstyle,omitempty"`
}

// Evaluate derives the results block from the parsed logs. A skipped style
// check counts as neither passed nor failed.
func (r *QualityReport) Evaluate() {
	r.Results.BuildSuccess = r.Logs.Build.Succeeded()
	r.Results.CheckstyleSkipped = r.Logs.Checkstyle == nil
	r.Results.CheckstyleSuccess = r.Results.CheckstyleSkipped || r.Logs.Checkstyle.Passed()
	r.Results.OverallQualitySuccess = r.Results.BuildSuccess && r.Results.CheckstyleSuccess
}

// ExitCode decides the process status: non-zero only when failOnIssues is
// set and the build or the style check did not pass.
func ExitCode(r *QualityReport, failOnIssues bool) int {
	if !failOnIssues || r == nil {
		return 0
	}
	if !r.Results.OverallQualitySuccess {
		return 1
	}
	return 0
}

// HistoryEntry is one past run, kept for trend display.
type HistoryEntry struct {
	Timestamp      string `json:"timestamp"`
	RunID          string `json:"run_id"`
	CommitHash     string `json:"commit_hash,omitempty"`
	BuildStatus    Status `json:"build_status"`
	StyleStatus    Status `json:"style_status,omitempty"`
	ErrorCount     int    `json:"error_count"`
	ViolationCount int    `json:"violation_count"`
	ReportPath     string `json:"report_path"`
}

// NewHistoryEntry summarizes a saved report.
func NewHistoryEntry(r *QualityReport, reportPath string) HistoryEntry {
	e := HistoryEntry{
		Timestamp:   r.Meta.Timestamp,
		RunID:       r.Meta.RunID,
		CommitHash:  r.Meta.CommitHash,
		BuildStatus: StatusUnknown,
		ReportPath:  reportPath,
	}
	if b := r.Logs.Build; b != nil {
		e.BuildStatus = b.Summary.Status
		e.ErrorCount = b.Errors.Count
	}
	if s := r.Logs.Checkstyle; s != nil {
		e.StyleStatus = s.Summary.Status
		e.ViolationCount = s.Summary.TotalCount
	}
	return e
}
