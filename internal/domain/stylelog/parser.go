// Package stylelog turns a Checkstyle report transcript into a StyleReport.
package stylelog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/openkraft/javaqc/internal/domain"
	"github.com/openkraft/javaqc/internal/domain/pattern"
)

var (
	reHeader = regexp.MustCompile(`=== Checkstyle Report for (.*?) ===`)
	reDate   = regexp.MustCompile(`^\s*Date: (.*)$`)
	reConfig = regexp.MustCompile(`^\s*Configuration: (.*)$`)
	reFile   = regexp.MustCompile(`^\s*--- File: (.*?) ---\s*$`)
	reTotal  = regexp.MustCompile(`Total: (\d+) style violations in (\d+) files`)
)

// FileSection is the captured output for one "--- File: ---" marker.
type FileSection struct {
	Path  string
	Lines []pattern.Line
}

// Parse builds the full report for a transcript. Empty input yields the
// default report with status UNKNOWN.
func Parse(text string) *domain.StyleReport {
	report := domain.NewStyleReport()
	if strings.TrimSpace(text) == "" {
		return report
	}

	lines := pattern.Lines(text)
	report.Header = parseHeader(lines)
	report.Configuration = parseConfiguration(lines)

	sections, summary, hasSummary := segment(lines)

	var details []domain.Diagnostic
	affected := make(map[string]bool)
	for _, s := range sections {
		report.Analysis.FilesChecked = append(report.Analysis.FilesChecked, s.Path)
		found := SectionViolations(s)
		if len(found) > 0 {
			affected[s.Path] = true
		}
		details = append(details, found...)
	}
	report.Analysis.TotalFilesChecked = len(sections)
	report.Violations = domain.NewDiagnosticSet(details)
	report.Summary = resolveSummary(summary, hasSummary, report.Violations.Count, len(affected))
	return report
}

// ParseHeader extracts the repository path and timestamp banners.
func ParseHeader(text string) domain.Header {
	return parseHeader(pattern.Lines(text))
}

// ParseConfiguration extracts the configuration path and its ruleset label.
func ParseConfiguration(text string) domain.Configuration {
	return parseConfiguration(pattern.Lines(text))
}

// SegmentFiles splits a transcript into its per-file sections in order.
func SegmentFiles(text string) []FileSection {
	sections, _, _ := segment(pattern.Lines(text))
	return sections
}

// SectionViolations turns every [ERROR] line of a section into exactly one
// diagnostic.
func SectionViolations(s FileSection) []domain.Diagnostic {
	var out []domain.Diagnostic
	for _, l := range s.Lines {
		i := strings.Index(l.Text, ErrorMarker)
		if i < 0 {
			continue
		}
		detail := strings.TrimSpace(l.Text[i+len(ErrorMarker):])
		d := ClassifyViolation(detail, s.Path)
		d.RawText = l.Text
		out = append(out, d)
	}
	return out
}

func parseHeader(lines []pattern.Line) domain.Header {
	var h domain.Header
	h.RepositoryPath, _ = pattern.FirstSubmatch(lines, reHeader)
	h.Timestamp, _ = pattern.FirstSubmatch(lines, reDate)
	return h
}

func parseConfiguration(lines []pattern.Line) domain.Configuration {
	path, ok := pattern.FirstSubmatch(lines, reConfig)
	if !ok {
		return domain.Configuration{}
	}
	return domain.Configuration{Path: path, Ruleset: domain.RulesetFor(path)}
}

// segment walks the transcript once. A file section is closed by the next
// file marker, the summary banner or the end of the text; everything after
// the summary banner is summary text.
func segment(lines []pattern.Line) (sections []FileSection, summary []string, hasSummary bool) {
	var (
		current   *FileSection
		inSummary bool
	)
	flush := func() {
		if current != nil {
			sections = append(sections, *current)
			current = nil
		}
	}

	for _, l := range lines {
		if m := reFile.FindStringSubmatch(l.Text); m != nil {
			flush()
			inSummary = false
			current = &FileSection{Path: strings.TrimSpace(m[1])}
			continue
		}
		if strings.Contains(l.Text, SummaryBanner) {
			flush()
			inSummary, hasSummary = true, true
			continue
		}
		switch {
		case inSummary:
			summary = append(summary, l.Text)
		case current != nil:
			current.Lines = append(current.Lines, l)
		}
	}
	flush()
	return sections, summary, hasSummary
}

// resolveSummary applies, in order: the pass line, the Total banner (whose
// counts are trusted over the recomputed ones), then the recomputed counts.
func resolveSummary(summary []string, hasSummary bool, count, affected int) domain.StyleSummary {
	s := domain.StyleSummary{
		ComputedCount:             count,
		ComputedAffectedFileCount: affected,
	}
	text := strings.Join(summary, "\n")

	if hasSummary && strings.Contains(text, passedMarker) {
		s.Status = domain.StatusPassed
		s.Source = domain.SummaryFromBanner
		return s
	}

	if hasSummary {
		if m := reTotal.FindStringSubmatch(text); m != nil {
			s.TotalCount, _ = strconv.Atoi(m[1])
			s.AffectedFileCount, _ = strconv.Atoi(m[2])
			s.Status = domain.StatusIssuesFound
			if s.TotalCount == 0 {
				s.Status = domain.StatusPassed
			}
			s.Source = domain.SummaryFromBanner
			return s
		}
	}

	s.TotalCount = count
	s.AffectedFileCount = affected
	s.Status = domain.StatusPassed
	if count > 0 {
		s.Status = domain.StatusIssuesFound
	}
	s.Source = domain.SummaryFromComputed
	return s
}
