package buildlog

import (
	"strconv"
	"strings"

	"github.com/openkraft/javaqc/internal/domain"
	"github.com/openkraft/javaqc/internal/domain/pattern"
)

const unlocatedMessage = "Compilation failed"

// errorDetails resolves every failure banner with two strategies tried in
// order: the bounded compilation block of the failed file, then a scan of the
// whole transcript. Lines already turned into diagnostics are claimed so a
// later banner cannot report them twice.
func errorDetails(lines []pattern.Line, sections []section) []domain.Diagnostic {
	var (
		out     []domain.Diagnostic
		claimed = make(map[int]bool)
		used    = make(map[int]bool)
	)

	for _, l := range lines {
		m := reFailed.FindStringSubmatch(l.Text)
		if m == nil {
			continue
		}
		failed := strings.TrimSpace(m[1])

		if idx := locateBlock(sections, failed, l.Index, used); idx >= 0 {
			used[idx] = true
			out = append(out, blockDiagnostics(sections[idx], failed, claimed)...)
			continue
		}
		out = append(out, globalDiagnostics(lines, failed, l, claimed)...)
	}
	return out
}

// locateBlock finds the nearest section before the banner whose file matches
// the failed file name and whose output mentions "error:". It returns -1 when
// no such block exists.
func locateBlock(sections []section, failed string, bannerIdx int, used map[int]bool) int {
	want := domain.BaseName(failed)
	for i := len(sections) - 1; i >= 0; i-- {
		s := sections[i]
		if s.start >= bannerIdx || used[i] {
			continue
		}
		if domain.BaseName(s.file) != want {
			continue
		}
		if strings.Contains(s.text(), "error:") {
			return i
		}
	}
	return -1
}

func blockDiagnostics(s section, failed string, claimed map[int]bool) []domain.Diagnostic {
	count := errorCount(s.output)

	var out []domain.Diagnostic
	for i, l := range s.output {
		if claimed[l.Index] {
			continue
		}
		m := errorTable.Classify(l.Text)
		if !m.Matched() {
			continue
		}
		claimed[l.Index] = true
		d := diagnosticFrom(m, s.output[i+1:])
		d.ErrorCountInBlock = count
		out = append(out, d)
	}

	if len(out) == 0 {
		out = append(out, domain.Diagnostic{
			File:              failed,
			Message:           unlocatedMessage,
			Severity:          domain.SeverityError,
			ErrorCountInBlock: count,
			RawText:           s.text(),
		})
	}
	return out
}

// globalDiagnostics scans the entire transcript. Matches naming the failed
// file are preferred; otherwise every unclaimed match is taken. When the
// transcript holds no error line at all, the banner itself is reported.
func globalDiagnostics(lines []pattern.Line, failed string, banner pattern.Line, claimed map[int]bool) []domain.Diagnostic {
	type candidate struct {
		index int
		diag  domain.Diagnostic
	}
	var preferred, others []candidate

	want := domain.BaseName(failed)
	for i, l := range lines {
		if claimed[l.Index] {
			continue
		}
		m := errorTable.Classify(l.Text)
		if !m.Matched() {
			continue
		}
		c := candidate{index: l.Index, diag: diagnosticFrom(m, lines[i+1:])}
		if domain.BaseName(c.diag.File) == want {
			preferred = append(preferred, c)
		} else {
			others = append(others, c)
		}
	}

	picked := preferred
	if len(picked) == 0 {
		picked = others
	}
	if len(picked) == 0 {
		return []domain.Diagnostic{{
			File:     failed,
			Message:  unlocatedMessage,
			Severity: domain.SeverityError,
			RawText:  banner.Text,
		}}
	}

	out := make([]domain.Diagnostic, 0, len(picked))
	for _, c := range picked {
		claimed[c.index] = true
		out = append(out, c.diag)
	}
	return out
}

// diagnosticFrom converts a primary-pattern match. javac echoes the source
// line under the error and a caret under the offending column, so only the
// two lines after the error are searched, and never across another
// diagnostic or a section banner.
func diagnosticFrom(m pattern.Match, following []pattern.Line) domain.Diagnostic {
	line, _ := strconv.Atoi(m.Group(2))
	d := domain.Diagnostic{
		File:     strings.TrimSpace(m.Group(1)),
		Line:     line,
		Message:  strings.TrimSpace(m.Group(3)),
		Severity: domain.SeverityError,
		RawText:  m.Text,
	}

	raw := []string{m.Text}
	for k, l := range following {
		if k >= caretWindow || endsDiagnostic(l.Text) {
			break
		}
		raw = append(raw, l.Text)
		if !reCaret.MatchString(l.Text) {
			continue
		}
		d.Column = pattern.LeadingWhitespace(l.Text) + 1
		if k > 0 {
			d.CodeContext = strings.TrimSpace(following[k-1].Text)
		}
		d.RawText = strings.Join(raw, "\n")
		break
	}
	return d
}

const caretWindow = 2

func endsDiagnostic(text string) bool {
	return errorTable.Classify(text).Matched() ||
		reErrorCount.MatchString(text) ||
		reWarning.MatchString(text) ||
		reCompiling.MatchString(text) ||
		reRunning.MatchString(text) ||
		reFailed.MatchString(text) ||
		strings.Contains(text, successMarker)
}

func errorCount(lines []pattern.Line) int {
	for _, l := range lines {
		if m := reErrorCount.FindStringSubmatch(l.Text); m != nil {
			n, _ := strconv.Atoi(m[1])
			return n
		}
	}
	return 0
}
