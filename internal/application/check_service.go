package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openkraft/javaqc/internal/domain"
	"github.com/openkraft/javaqc/internal/logging"
)

// CheckService orchestrates one quality run:
// clone -> build -> checkstyle -> parse both logs -> save report -> append history.
type CheckService struct {
	cloner  domain.RepoCloner
	builder domain.BuildRunner
	styler  domain.StyleRunner
	parser  *ParseService
	store   domain.ReportStore
	now     func() time.Time
}

func NewCheckService(
	cloner domain.RepoCloner,
	builder domain.BuildRunner,
	styler domain.StyleRunner,
	parser *ParseService,
	store domain.ReportStore,
) *CheckService {
	return &CheckService{
		cloner:  cloner,
		builder: builder,
		styler:  styler,
		parser:  parser,
		store:   store,
		now:     time.Now,
	}
}

// RunOptions adjust a single run.
type RunOptions struct {
	// LocalPath checks an existing checkout instead of cloning.
	LocalPath  string
	IncludeRaw bool
}

// RunResult is a finished run and where its report was written.
type RunResult struct {
	Report     *domain.QualityReport
	ReportPath string
}

// Run executes the whole pipeline. The style check is skipped when the
// build failed and cfg.Quality.FailOnIssues is set, since the run has
// already failed.
func (s *CheckService) Run(ctx context.Context, cfg domain.Config, opts RunOptions) (*RunResult, error) {
	repoPath, err := s.checkout(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}

	log := logging.With("repo", repoPath)
	report := &domain.QualityReport{Meta: domain.ReportMeta{
		RunID:        uuid.NewString(),
		Timestamp:    s.now().Format(time.RFC3339),
		RepoPath:     repoPath,
		ProjectID:    cfg.Project.ID,
		ProjectHW:    cfg.Project.HW,
		Branch:       cfg.Project.Branch,
		FailOnIssues: cfg.Quality.FailOnIssues,
	}}
	if hash, err := s.cloner.CommitHash(repoPath); err == nil {
		report.Meta.CommitHash = hash
	} else {
		log.Debug("no commit hash", "error", err)
	}

	popts := ParseOptions{IncludeRaw: opts.IncludeRaw}

	build, err := s.builder.Build(ctx, repoPath)
	if err != nil && !errors.Is(err, domain.ErrNoJavaFiles) {
		return nil, fmt.Errorf("building: %w", err)
	}
	if build.LogPath != "" {
		if report.Logs.Build, err = s.parser.ParseBuildLog(build.LogPath, popts); err != nil {
			return nil, fmt.Errorf("parsing build log: %w", err)
		}
	} else {
		report.Logs.Build = domain.NewBuildReport()
	}

	if report.Logs.Build.Succeeded() || !cfg.Quality.FailOnIssues {
		style, err := s.styler.Check(ctx, repoPath, cfg.Checkstyle.ConfigPath)
		switch {
		case errors.Is(err, domain.ErrNoJavaFiles):
			log.Warn("checkstyle skipped", "reason", err)
		case err != nil:
			return nil, fmt.Errorf("running checkstyle: %w", err)
		default:
			if report.Logs.Checkstyle, err = s.parser.ParseStyleLog(style.LogPath, popts); err != nil {
				return nil, fmt.Errorf("parsing checkstyle report: %w", err)
			}
		}
	} else {
		log.Info("checkstyle skipped after failed build")
	}

	report.Evaluate()

	path, err := s.store.Save(cfg.Output.ResultsDir, report)
	if err != nil {
		return nil, err
	}
	if err := s.store.AppendHistory(cfg.Output.ResultsDir, domain.NewHistoryEntry(report, path)); err != nil {
		return nil, fmt.Errorf("recording history: %w", err)
	}

	log.Info("quality check finished",
		"run_id", report.Meta.RunID,
		"build_success", report.Results.BuildSuccess,
		"checkstyle_success", report.Results.CheckstyleSuccess,
		"report", path)
	return &RunResult{Report: report, ReportPath: path}, nil
}

func (s *CheckService) checkout(ctx context.Context, cfg domain.Config, opts RunOptions) (string, error) {
	if opts.LocalPath != "" {
		return opts.LocalPath, nil
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	path, err := s.cloner.Clone(ctx, domain.CloneRequest{
		URL:           cfg.CloneURL(),
		Path:          cfg.ClonePath(),
		Branch:        cfg.Project.Branch,
		Username:      cfg.Git.Username,
		Password:      cfg.Git.Password,
		Token:         cfg.GitLab.Token,
		AcceptHostKey: cfg.Git.AcceptHostKey,
	})
	if err != nil {
		return "", fmt.Errorf("cloning repository: %w", err)
	}
	return path, nil
}

// History returns past runs recorded in resultsDir.
func (s *CheckService) History(resultsDir string) ([]domain.HistoryEntry, error) {
	return s.store.History(resultsDir)
}

// Latest returns the most recent report in resultsDir.
func (s *CheckService) Latest(resultsDir string) (*domain.QualityReport, error) {
	return s.store.Latest(resultsDir)
}
