package application_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/openkraft/javaqc/internal/adapters/outbound/logfile"
	"github.com/openkraft/javaqc/internal/adapters/outbound/report"
	"github.com/openkraft/javaqc/internal/application"
	"github.com/openkraft/javaqc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloner struct {
	req  domain.CloneRequest
	err  error
	hash string
}

func (f *fakeCloner) Clone(_ context.Context, req domain.CloneRequest) (string, error) {
	f.req = req
	if f.err != nil {
		return "", f.err
	}
	return req.Path, nil
}

func (f *fakeCloner) CommitHash(string) (string, error) {
	if f.hash == "" {
		return "", errors.New("not a git repository")
	}
	return f.hash, nil
}

// fakeRunner copies a fixture transcript into the repository, the way the
// real runners leave their logs behind.
type fakeRunner struct {
	fixture string
	success bool
	err     error
	calls   int
}

func (f *fakeRunner) run(repo string) (domain.ToolRun, error) {
	f.calls++
	if f.err != nil {
		return domain.ToolRun{}, f.err
	}
	data, err := os.ReadFile(fixture(f.fixture))
	if err != nil {
		return domain.ToolRun{}, err
	}
	p := filepath.Join(repo, f.fixture)
	if err := os.WriteFile(p, data, 0644); err != nil {
		return domain.ToolRun{}, err
	}
	return domain.ToolRun{LogPath: p, Success: f.success}, nil
}

func (f *fakeRunner) Build(_ context.Context, repo string) (domain.ToolRun, error) {
	return f.run(repo)
}

func (f *fakeRunner) Check(_ context.Context, repo, _ string) (domain.ToolRun, error) {
	return f.run(repo)
}

type harness struct {
	svc     *application.CheckService
	cloner  *fakeCloner
	builder *fakeRunner
	styler  *fakeRunner
	cfg     domain.Config
}

func newHarness(t *testing.T, buildFixture, styleFixture string) *harness {
	t.Helper()
	h := &harness{
		cloner:  &fakeCloner{hash: "0123456789abcdef0123456789abcdef01234567"},
		builder: &fakeRunner{fixture: buildFixture},
		styler:  &fakeRunner{fixture: styleFixture},
	}
	h.svc = application.NewCheckService(h.cloner, h.builder, h.styler,
		application.NewParseService(logfile.New(), nil), report.New())

	ws := t.TempDir()
	h.cfg = domain.Config{
		GitLab:  domain.GitLabConfig{URL: "https://gitlab.example.com/api/v4", Token: "tok"},
		Project: domain.ProjectConfig{ID: "D0948363", HW: "HW3"},
		Output:  domain.OutputConfig{ResultsDir: filepath.Join(t.TempDir(), "results")},
	}.WithDefaults(ws)
	require.NoError(t, os.MkdirAll(h.cfg.ClonePath(), 0755))
	return h
}

func TestCheckService_RunPasses(t *testing.T) {
	h := newHarness(t, "build-success.log", "checkstyle-passed.log")

	res, err := h.svc.Run(context.Background(), h.cfg, application.RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, "https://gitlab.example.com/D0948363/HW3.git", h.cloner.req.URL)
	assert.Equal(t, "main", h.cloner.req.Branch)
	assert.Equal(t, "tok", h.cloner.req.Token)

	r := res.Report
	assert.NotEmpty(t, r.Meta.RunID)
	assert.Equal(t, "D0948363", r.Meta.ProjectID)
	assert.Equal(t, h.cloner.hash, r.Meta.CommitHash)
	assert.True(t, r.Results.BuildSuccess)
	assert.True(t, r.Results.CheckstyleSuccess)
	assert.True(t, r.Results.OverallQualitySuccess)
	assert.Equal(t, 0, domain.ExitCode(r, true))
	assert.FileExists(t, res.ReportPath)

	entries, err := h.svc.History(h.cfg.Output.ResultsDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, r.Meta.RunID, entries[0].RunID)
	assert.Equal(t, res.ReportPath, entries[0].ReportPath)

	latest, err := h.svc.Latest(h.cfg.Output.ResultsDir)
	require.NoError(t, err)
	assert.Equal(t, r.Meta.RunID, latest.Meta.RunID)
}

func TestCheckService_StyleIssuesFailWhenEnforced(t *testing.T) {
	h := newHarness(t, "build-success.log", "checkstyle-violations.log")
	h.cfg.Quality.FailOnIssues = true

	res, err := h.svc.Run(context.Background(), h.cfg, application.RunOptions{})
	require.NoError(t, err)
	assert.False(t, res.Report.Results.CheckstyleSuccess)
	assert.Equal(t, 4, res.Report.Logs.Checkstyle.Violations.Count)
	assert.Equal(t, 1, domain.ExitCode(res.Report, h.cfg.Quality.FailOnIssues))
}

func TestCheckService_SkipsStyleAfterFailedBuild(t *testing.T) {
	h := newHarness(t, "build-failure.log", "checkstyle-passed.log")
	h.cfg.Quality.FailOnIssues = true

	res, err := h.svc.Run(context.Background(), h.cfg, application.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, h.styler.calls)
	assert.True(t, res.Report.Results.CheckstyleSkipped)
	assert.Nil(t, res.Report.Logs.Checkstyle)
	assert.False(t, res.Report.Results.OverallQualitySuccess)
	assert.Equal(t, 2, res.Report.Logs.Build.Errors.Count)
}

func TestCheckService_RunsStyleAfterFailedBuildWhenTolerant(t *testing.T) {
	h := newHarness(t, "build-failure.log", "checkstyle-passed.log")

	res, err := h.svc.Run(context.Background(), h.cfg, application.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, h.styler.calls)
	assert.NotNil(t, res.Report.Logs.Checkstyle)
	assert.Equal(t, 0, domain.ExitCode(res.Report, false))
}

func TestCheckService_LocalPathSkipsClone(t *testing.T) {
	h := newHarness(t, "build-success.log", "checkstyle-passed.log")
	local := t.TempDir()
	cfg := domain.Config{Output: h.cfg.Output}

	res, err := h.svc.Run(context.Background(), cfg, application.RunOptions{LocalPath: local, IncludeRaw: true})
	require.NoError(t, err)
	assert.Empty(t, h.cloner.req.URL)
	assert.Equal(t, local, res.Report.Meta.RepoPath)
	assert.NotEmpty(t, res.Report.Logs.Build.RawContent)
}

func TestCheckService_InvalidConfig(t *testing.T) {
	h := newHarness(t, "build-success.log", "checkstyle-passed.log")
	h.cfg.Project.ID = ""

	_, err := h.svc.Run(context.Background(), h.cfg, application.RunOptions{})
	assert.ErrorIs(t, err, domain.ErrMissingConfig)
}

func TestCheckService_CloneFailure(t *testing.T) {
	h := newHarness(t, "build-success.log", "checkstyle-passed.log")
	h.cloner.err = errors.New("auth failed")

	_, err := h.svc.Run(context.Background(), h.cfg, application.RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cloning repository")
}

func TestCheckService_NoJavaFilesStillReports(t *testing.T) {
	h := newHarness(t, "build-success.log", "checkstyle-passed.log")
	h.builder.err = domain.ErrNoJavaFiles
	h.styler.err = domain.ErrNoJavaFiles

	res, err := h.svc.Run(context.Background(), h.cfg, application.RunOptions{})
	require.NoError(t, err)
	assert.False(t, res.Report.Results.BuildSuccess)
	assert.Equal(t, domain.StatusUnknown, res.Report.Logs.Build.Summary.Status)
	assert.True(t, res.Report.Results.CheckstyleSkipped)
}

func TestCheckService_BuildError(t *testing.T) {
	h := newHarness(t, "build-success.log", "checkstyle-passed.log")
	h.builder.err = errors.New("disk full")

	_, err := h.svc.Run(context.Background(), h.cfg, application.RunOptions{})
	assert.ErrorContains(t, err, "disk full")
}
