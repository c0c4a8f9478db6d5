package tui_test

import (
	"strings"
	"testing"

	"github.com/openkraft/javaqc/internal/adapters/outbound/tui"
	"github.com/openkraft/javaqc/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sampleBuild() *domain.BuildReport {
	b := domain.NewBuildReport()
	b.Header = domain.Header{RepositoryPath: "/ws/p/hw", Timestamp: "2026-03-01 09:30:00"}
	b.ProjectStructure.TotalFiles = 3
	b.Compilation.FileResults = []domain.CompilationResult{{File: "src/A.java", Success: true}, {File: "src/Bad.java"}}
	b.Errors = domain.NewDiagnosticSet([]domain.Diagnostic{{
		File: "/ws/p/hw/src/Bad.java", Line: 3, Column: 18, Message: "';' expected",
		Severity: domain.SeverityError, CodeContext: "        int x = 1",
	}})
	b.Summary.Status = domain.StatusFailed
	b.Summary.TotalCount = 1
	b.Summary.AffectedFileCount = 1
	b.Summary.SuccessRate = 33.3
	b.Summary.FailedFile = "Bad.java"
	return b
}

func sampleStyle() *domain.StyleReport {
	s := domain.NewStyleReport()
	s.Configuration = domain.Configuration{Path: "/cs/sun_checks.xml", Ruleset: domain.RulesetSun}
	s.Analysis.TotalFilesChecked = 2
	s.Violations = domain.NewDiagnosticSet([]domain.Diagnostic{
		{File: "src/A.java", Line: 1, Message: "Missing a Javadoc comment.", Rule: "JavadocType", Severity: domain.SeverityError},
		{File: "src/A.java", Line: 4, Message: "Line is longer than 80 characters.", Rule: "LineLength", Severity: domain.SeverityError},
		{File: "src/B.java", Line: 9, Message: "Missing a Javadoc comment.", Rule: "JavadocType", Severity: domain.SeverityError},
	})
	s.Summary.Status = domain.StatusIssuesFound
	s.Summary.TotalCount = 3
	s.Summary.AffectedFileCount = 2
	s.Summary.ComputedCount = 3
	s.Summary.ComputedAffectedFileCount = 2
	return s
}

func TestRenderBuildReport(t *testing.T) {
	out := tui.RenderBuildReport(sampleBuild())
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "1/3 files")
	assert.Contains(t, out, "Bad.java")
	assert.Contains(t, out, "src/Bad.java:3:18")
	assert.Contains(t, out, "';' expected")
	assert.Contains(t, out, "int x = 1")
	assert.Contains(t, out, "1 errors")
	assert.Contains(t, out, "█")
}

func TestRenderStyleReport(t *testing.T) {
	out := tui.RenderStyleReport(sampleStyle())
	assert.Contains(t, out, "ISSUES_FOUND")
	assert.Contains(t, out, "Sun Style")
	assert.Contains(t, out, "3 in 2 files")
	assert.Contains(t, out, "Javadoc Type")
	assert.Contains(t, out, "[LineLength]")
	assert.NotContains(t, out, "disagrees")
}

func TestRenderStyleReport_FlagsInconsistentBanner(t *testing.T) {
	s := sampleStyle()
	s.Summary.TotalCount = 10
	out := tui.RenderStyleReport(s)
	assert.Contains(t, out, "disagrees")
}

func TestRenderStyleReport_Passed(t *testing.T) {
	s := domain.NewStyleReport()
	s.Summary.Status = domain.StatusPassed
	out := tui.RenderStyleReport(s)
	assert.Contains(t, out, "PASSED")
	assert.NotContains(t, out, "By rule")
}

func TestRenderQualityReport(t *testing.T) {
	r := &domain.QualityReport{
		Meta: domain.ReportMeta{RepoPath: "/ws/p/hw", CommitHash: "0123456789abcdef"},
		Logs: domain.ReportLogs{Build: sampleBuild()},
	}
	r.Evaluate()

	out := tui.RenderQualityReport(r)
	assert.Contains(t, out, "QUALITY CHECK FAILED")
	assert.Contains(t, out, "0123456")
	assert.Contains(t, out, "skipped")
}

func TestRuleBreakdown_SortedByCount(t *testing.T) {
	got := tui.RuleBreakdown(append(sampleStyle().Violations.Details, domain.Diagnostic{}))
	assert.Equal(t, []tui.RuleCount{
		{Rule: "JavadocType", Count: 2},
		{Rule: "LineLength", Count: 1},
		{Rule: domain.UnknownRule, Count: 1},
	}, got)
}

func TestHumanRule(t *testing.T) {
	assert.Equal(t, "Javadoc Method", tui.HumanRule("JavadocMethod"))
	assert.Equal(t, "Magic Number", tui.HumanRule("MagicNumberCheck"))
	assert.Equal(t, "Unknown", tui.HumanRule("Unknown"))
}

func TestRenderHistory(t *testing.T) {
	out := tui.RenderHistory([]domain.HistoryEntry{
		{Timestamp: "2026-03-01T09:00:00Z", BuildStatus: domain.StatusSuccess, StyleStatus: domain.StatusIssuesFound, ViolationCount: 7},
		{Timestamp: "2026-03-02T09:00:00Z", CommitHash: "abcdef0123", BuildStatus: domain.StatusSuccess, StyleStatus: domain.StatusIssuesFound, ViolationCount: 4},
	})
	assert.Contains(t, out, "Run History")
	assert.Contains(t, out, "2026-03-02")
	assert.Contains(t, out, "abcdef0")
	assert.Contains(t, out, "↓3")
	assert.Equal(t, 1, strings.Count(out, "·······"))
}

func TestRenderHistory_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderHistory(nil), "No run history found.")
}
