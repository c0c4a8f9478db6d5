package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/openkraft/javaqc/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RuleCount is how often one Checkstyle rule fired.
type RuleCount struct {
	Rule  string
	Count int
}

// RuleBreakdown counts violations per rule, most frequent first and then
// by name.
func RuleBreakdown(details []domain.Diagnostic) []RuleCount {
	counts := make(map[string]int)
	for _, d := range details {
		rule := d.Rule
		if rule == "" {
			rule = domain.UnknownRule
		}
		counts[rule]++
	}

	out := make([]RuleCount, 0, len(counts))
	for r, n := range counts {
		out = append(out, RuleCount{Rule: r, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Rule < out[j].Rule
	})
	return out
}

// HumanRule turns a rule identifier such as "JavadocMethod" into "Javadoc Method".
func HumanRule(rule string) string {
	rule = strings.TrimSuffix(rule, "Check")
	return strings.Join(camelcase.Split(rule), " ")
}

// RenderStyleReport renders the summary, a per-rule breakdown and the violations.
func RenderStyleReport(r *domain.StyleReport) string {
	var b strings.Builder
	s := r.Summary

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s  %s\n", titleStyle.Render("Checkstyle"), statusText(s.Status))
	if r.Configuration.Path != "" {
		fmt.Fprintf(&b, "  %s\n", dimStyle.Render(r.Configuration.Ruleset+"  "+r.Configuration.Path))
	}
	fmt.Fprintf(&b, "  %s %s\n", padRight("checked", 12), dimStyle.Render(fmt.Sprintf("%d files", r.Analysis.TotalFilesChecked)))
	fmt.Fprintf(&b, "  %s %s\n", padRight("violations", 12),
		dimStyle.Render(fmt.Sprintf("%d in %d files", s.TotalCount, s.AffectedFileCount)))
	if !s.Consistent() {
		fmt.Fprintf(&b, "  %s\n", warnStyle.Render(fmt.Sprintf(
			"summary banner disagrees with the report body: %d violations in %d files found",
			s.ComputedCount, s.ComputedAffectedFileCount)))
	}

	if r.Violations.Count == 0 {
		return b.String()
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n", sectionHeaderStyle.Render("By rule"), dimStyle.Render(fmt.Sprintf("(%d)", r.Violations.Count)))
	for _, rc := range RuleBreakdown(r.Violations.Details) {
		fmt.Fprintf(&b, "    %s %s %s\n",
			warnStyle.Render("●"),
			padRight(HumanRule(rc.Rule), 34),
			dimStyle.Render(fmt.Sprintf("%d", rc.Count)))
	}

	b.WriteString("\n")
	for _, d := range r.Violations.Details {
		renderDiagnostic(&b, d)
	}
	b.WriteString("\n  " + hintStyle.Render("Run with --json for the full machine-readable report.") + "\n")
	return b.String()
}
