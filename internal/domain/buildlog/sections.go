package buildlog

import (
	"strings"

	"github.com/openkraft/javaqc/internal/domain"
	"github.com/openkraft/javaqc/internal/domain/pattern"
)

// section is the text captured for one "Compiling:" marker. It ends at the
// next marker, a failure banner or the end of the transcript.
type section struct {
	file    string
	command string
	start   int // line index of the Compiling marker
	end     int // line index one past the last captured line
	output  []pattern.Line
}

func (s section) text() string {
	parts := make([]string, len(s.output))
	for i, l := range s.output {
		parts[i] = l.Text
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// failed applies the textual heuristic: any "error" or "exception" in the
// captured output marks the attempt as failed. A file whose literal output
// contains those words without being a compiler diagnostic is misclassified.
func (s section) failed() bool {
	lower := strings.ToLower(s.text())
	return strings.Contains(lower, "error") || strings.Contains(lower, "exception")
}

func splitSections(lines []pattern.Line) []section {
	var (
		out     []section
		current *section
	)
	closeAt := func(idx int) {
		if current != nil {
			current.end = idx
			out = append(out, *current)
			current = nil
		}
	}

	for _, l := range lines {
		if m := reCompiling.FindStringSubmatch(l.Text); m != nil {
			closeAt(l.Index)
			current = &section{file: strings.TrimSpace(m[1]), start: l.Index}
			continue
		}
		if current == nil {
			continue
		}
		if strings.Contains(l.Text, failedBanner) {
			closeAt(l.Index)
			continue
		}
		if current.command == "" {
			if m := reRunning.FindStringSubmatch(l.Text); m != nil {
				current.command = strings.TrimSpace(m[1])
				continue
			}
		}
		current.output = append(current.output, l)
	}
	closeAt(len(lines))
	return out
}

func compilationResults(sections []section) []domain.CompilationResult {
	results := make([]domain.CompilationResult, 0, len(sections))
	for _, s := range sections {
		r := domain.CompilationResult{File: s.file, Command: s.command, Success: !s.failed()}
		if !r.Success {
			r.Output = s.text()
		}
		results = append(results, r)
	}
	return results
}
