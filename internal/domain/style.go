package domain

import (
	"slices"
	"strings"
)

const (
	RulesetSun    = "Sun Style"
	RulesetGoogle = "Google Style"
	RulesetCustom = "Custom"

	// UnknownRule is assigned to violations that carry no [Rule] suffix.
	UnknownRule = "Unknown"
)

// SummarySource records where a style summary's counts came from.
type SummarySource string

const (
	SummaryFromBanner   SummarySource = "banner"
	SummaryFromComputed SummarySource = "computed"
)

// StyleReport is the structured form of one Checkstyle transcript.
type StyleReport struct {
	Header        Header        `json:"header"`
	Configuration Configuration `json:"configuration"`
	Analysis      Analysis      `json:"analysis"`
	Violations    DiagnosticSet `json:"violations"`
	Summary       StyleSummary  `json:"summary"`
	RawContent    string        `json:"raw_content,omitempty"`
}

type Configuration struct {
	Ruleset string `json:"ruleset,omitempty"`
	Path    string `json:"path,omitempty"`
}

type Analysis struct {
	TotalFilesChecked int      `json:"total_files_checked"`
	FilesChecked      []string `json:"files_checked"`
}

// StyleSummary carries the reported counts and, next to them, the counts
// recomputed from the parsed violations. The two differ when a Total banner
// disagrees with the details.
type StyleSummary struct {
	Summary
	Source                    SummarySource `json:"source,omitempty"`
	ComputedCount             int           `json:"computed_count"`
	ComputedAffectedFileCount int           `json:"computed_affected_file_count"`
}

// Consistent reports whether the reported counts match the recomputed ones.
func (s StyleSummary) Consistent() bool {
	return s.TotalCount == s.ComputedCount && s.AffectedFileCount == s.ComputedAffectedFileCount
}

// Passed reports whether the style check found nothing.
func (r *StyleReport) Passed() bool {
	return r != nil && r.Summary.Status == StatusPassed
}

// NewStyleReport returns the default report used for missing input.
func NewStyleReport() *StyleReport {
	return &StyleReport{
		Analysis:   Analysis{FilesChecked: []string{}},
		Violations: NewDiagnosticSet(nil),
		Summary:    StyleSummary{Summary: Summary{Status: StatusUnknown}},
	}
}

// RulesetFor labels a Checkstyle configuration path.
func RulesetFor(configPath string) string {
	lower := strings.ToLower(configPath)
	switch {
	case strings.Contains(lower, "sun_checks"):
		return RulesetSun
	case strings.Contains(lower, "google_checks"):
		return RulesetGoogle
	default:
		return RulesetCustom
	}
}

// Clone returns a copy that shares no slices with r.
func (r *StyleReport) Clone() *StyleReport {
	if r == nil {
		return nil
	}
	out := *r
	out.Analysis.FilesChecked = slices.Clone(r.Analysis.FilesChecked)
	out.Violations.Details = slices.Clone(r.Violations.Details)
	return &out
}
