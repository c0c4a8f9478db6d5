package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openkraft/javaqc/internal/domain"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	statusColors = map[domain.Status]lipgloss.Color{
		domain.StatusSuccess:     success,
		domain.StatusPassed:      success,
		domain.StatusFailed:      danger,
		domain.StatusIssuesFound: warning,
		domain.StatusUnknown:     skipColor,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderQualityReport renders a whole run: verdict box, then both logs.
func RenderQualityReport(r *domain.QualityReport) string {
	var b strings.Builder

	verdict := failStyle.Bold(true).Render("QUALITY CHECK FAILED")
	if r.Results.OverallQualitySuccess {
		verdict = passStyle.Bold(true).Render("QUALITY CHECK PASSED")
	}
	title := headerStyle.Render("javaqc")
	subtitle := dimStyle.Render(r.Meta.RepoPath)
	if r.Meta.CommitHash != "" {
		subtitle += "  " + faintStyle.Render(shortHash(r.Meta.CommitHash))
	}
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  %s %s\n", padRight("Build", 12), resultTag(r.Results.BuildSuccess, false))
	fmt.Fprintf(&b, "  %s %s\n", padRight("Checkstyle", 12), resultTag(r.Results.CheckstyleSuccess, r.Results.CheckstyleSkipped))
	b.WriteString("\n  " + separatorLine + "\n")

	if r.Logs.Build != nil {
		b.WriteString(RenderBuildReport(r.Logs.Build))
	}
	if r.Logs.Checkstyle != nil {
		b.WriteString(RenderStyleReport(r.Logs.Checkstyle))
	}
	return b.String()
}

// RenderBuildReport renders the compilation summary and located errors.
func RenderBuildReport(r *domain.BuildReport) string {
	var b strings.Builder
	s := r.Summary

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s  %s\n", titleStyle.Render("Build"), statusText(s.Status))
	if r.Header.RepositoryPath != "" {
		fmt.Fprintf(&b, "  %s\n", dimStyle.Render(r.Header.RepositoryPath+"  "+r.Header.Timestamp))
	}
	rate := int(s.SuccessRate)
	fmt.Fprintf(&b, "  %s %s %s\n",
		padRight("compiled", 12),
		coloredBar(rate, 20),
		dimStyle.Render(fmt.Sprintf("%d/%d files  %.1f%%", compiled(r), r.ProjectStructure.TotalFiles, s.SuccessRate)),
	)
	if s.FailedFile != "" {
		fmt.Fprintf(&b, "  %s %s\n", padRight("failed at", 12), failStyle.Render(s.FailedFile))
	}
	if s.OutputDirectory != "" {
		fmt.Fprintf(&b, "  %s %s\n", padRight("output", 12), dimStyle.Render(s.OutputDirectory))
	}

	if r.Errors.Count > 0 {
		b.WriteString("\n  ")
		b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", r.Errors.Count)))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" in %d files", s.AffectedFileCount)))
		b.WriteString("\n\n")
		for _, d := range r.Errors.Details {
			renderDiagnostic(&b, d)
		}
	}
	return b.String()
}

func compiled(r *domain.BuildReport) int {
	n := 0
	for _, res := range r.Compilation.FileResults {
		if res.Success {
			n++
		}
	}
	return n
}

func renderDiagnostic(b *strings.Builder, d domain.Diagnostic) {
	tag := severityTag(d.Severity)
	loc := shortenPath(d.File)
	if d.Line > 0 {
		loc += fmt.Sprintf(":%d", d.Line)
		if d.Column > 0 {
			loc += fmt.Sprintf(":%d", d.Column)
		}
	}

	if loc != "" {
		fmt.Fprintf(b, "    %s %s\n", tag, fileStyle.Render(loc))
		fmt.Fprintf(b, "         %s", dimStyle.Render(d.Message))
	} else {
		fmt.Fprintf(b, "    %s %s", tag, dimStyle.Render(d.Message))
	}
	if d.Rule != "" && d.Rule != domain.UnknownRule {
		b.WriteString("  " + faintStyle.Render("["+d.Rule+"]"))
	}
	b.WriteString("\n")
	if d.CodeContext != "" {
		fmt.Fprintf(b, "         %s\n", faintStyle.Render(strings.TrimSpace(d.CodeContext)))
	}
}

func severityTag(severity string) string {
	switch severity {
	case domain.SeverityError:
		return errorTagStyle.Render("error")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

func statusText(s domain.Status) string {
	c, ok := statusColors[s]
	if !ok {
		c = fg
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c).Render(string(s))
}

func resultTag(ok, skipped bool) string {
	switch {
	case skipped:
		return skipStyle.Render("○ skipped")
	case ok:
		return passStyle.Render("● passed")
	default:
		return failStyle.Render("● failed")
	}
}

func coloredBar(score, width int) string {
	filled := max(0, min(score*width/100, width))
	empty := width - filled

	color := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 100:
		return success
	case score >= 60:
		return lipgloss.Color("#A3E635") // lime
	case score >= 40:
		return warning
	default:
		return danger
	}
}

func shortenPath(path string) string {
	if idx := strings.Index(filepath.ToSlash(path), "src/"); idx >= 0 {
		return filepath.ToSlash(path)[idx:]
	}
	parts := strings.Split(strings.ReplaceAll(path, `\`, "/"), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats past runs for terminal output, oldest first, with
// the change in violations against the previous run.
func RenderHistory(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 60)) + "\n\n")

	for i, e := range entries {
		hash := shortHash(e.CommitHash)
		if hash == "" {
			hash = "·······"
		}
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		line := fmt.Sprintf("  %s  %s  %s  %s  %s",
			dimStyle.Render(padRight(date, 10)),
			faintStyle.Render(hash),
			statusText(e.BuildStatus),
			statusText(orUnknown(e.StyleStatus)),
			dimStyle.Render(fmt.Sprintf("%d errors, %d violations", e.ErrorCount, e.ViolationCount)),
		)

		if i > 0 {
			diff := e.ViolationCount - entries[i-1].ViolationCount
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func orUnknown(s domain.Status) domain.Status {
	if s == "" {
		return domain.StatusUnknown
	}
	return s
}
