package domain

import "context"

// ConfigLoader reads run settings from a file.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// CloneRequest describes the repository to fetch.
type CloneRequest struct {
	URL           string
	Path          string
	Branch        string
	Username      string
	Password      string
	Token         string
	AcceptHostKey bool
}

// RepoCloner fetches a repository into a local directory.
type RepoCloner interface {
	Clone(ctx context.Context, req CloneRequest) (string, error)
	CommitHash(repoPath string) (string, error)
}

// SourceScanner lists the Java sources of a repository as paths relative to it.
type SourceScanner interface {
	JavaFiles(repoPath string) ([]string, error)
}

// ToolRun is the outcome of running an external checker over a repository.
type ToolRun struct {
	LogPath string
	Success bool
}

// BuildRunner compiles a repository and writes the build transcript.
type BuildRunner interface {
	Build(ctx context.Context, repoPath string) (ToolRun, error)
}

// StyleRunner runs Checkstyle over a repository and writes the report transcript.
type StyleRunner interface {
	Check(ctx context.Context, repoPath, customConfig string) (ToolRun, error)
}

// LogReader loads a transcript.
type LogReader interface {
	Read(path string) (string, error)
}

// ParseCache memoizes parsed reports by transcript content.
type ParseCache interface {
	GetBuild(text string) (*BuildReport, bool)
	PutBuild(text string, r *BuildReport)
	GetStyle(text string) (*StyleReport, bool)
	PutStyle(text string, r *StyleReport)
}

// ReportStore persists quality reports and their run history.
type ReportStore interface {
	Save(dir string, report *QualityReport) (string, error)
	Latest(dir string) (*QualityReport, error)
	AppendHistory(dir string, entry HistoryEntry) error
	History(dir string) ([]HistoryEntry, error)
}
