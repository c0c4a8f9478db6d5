package stylelog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/openkraft/javaqc/internal/domain"
	"github.com/openkraft/javaqc/internal/domain/pattern"
)

// Names of the violation patterns, in priority order.
const (
	PatternLineRule       = "path-line-rule"
	PatternLineColumnRule = "path-line-column-rule"
	PatternLineColumn     = "path-line-column"
	PatternLine           = "path-line"
)

var (
	reTrailingRule = regexp.MustCompile(`^(.*?)\s*\[([^\[\]]+)\]\s*$`)
	reLineSuffix   = regexp.MustCompile(`:\d+$`)
)

// A captured path ending in ":<digits>" means the expression swallowed a
// line or column number, so the match is not the intended shape.
func cleanPath(groups []string) bool {
	return !reLineSuffix.MatchString(groups[1])
}

// A column line without a rule tag only accepts a path that holds no
// message text, so a message carrying "n:m: " is not mistaken for one.
func columnPath(groups []string) bool {
	return cleanPath(groups) && !strings.Contains(groups[1], ": ")
}

var violationTable = pattern.NewTable(
	pattern.New(PatternLineRule, `^(.+?):(\d+): (.*) \[([^\[\]]+)\]\s*$`, cleanPath),
	pattern.New(PatternLineColumnRule, `^(.+?):(\d+):(\d+): (.*) \[([^\[\]]+)\]\s*$`, cleanPath),
	pattern.New(PatternLineColumn, `^(.+?):(\d+):(\d+): (.*)$`, columnPath),
	pattern.New(PatternLine, `^(.+?):(\d+): (.*)$`, cleanPath),
)

// PatternNames lists the violation patterns in the order they are tried.
func PatternNames() []string {
	return violationTable.Names()
}

// ClassifyViolation parses the text following an [ERROR] marker. Text no
// pattern accepts is kept as the message of a diagnostic attributed to
// sectionFile.
func ClassifyViolation(detail, sectionFile string) domain.Diagnostic {
	d := domain.Diagnostic{Severity: domain.SeverityError, RawText: detail}

	m := violationTable.Classify(detail)
	if !m.Matched() {
		d.File = sectionFile
		d.Message = detail
		return d
	}

	d.File = strings.TrimSpace(m.Group(1))
	d.Line, _ = strconv.Atoi(m.Group(2))

	switch m.Pattern {
	case PatternLineRule:
		d.Message = strings.TrimSpace(m.Group(3))
		d.Rule = strings.TrimSpace(m.Group(4))
	case PatternLineColumnRule:
		d.Column, _ = strconv.Atoi(m.Group(3))
		d.Message = strings.TrimSpace(m.Group(4))
		d.Rule = strings.TrimSpace(m.Group(5))
	case PatternLineColumn:
		d.Column, _ = strconv.Atoi(m.Group(3))
		d.Message = strings.TrimSpace(m.Group(4))
		d.Rule = domain.UnknownRule
	case PatternLine:
		d.Message = strings.TrimSpace(m.Group(3))
		d.Rule = domain.UnknownRule
		if r := reTrailingRule.FindStringSubmatch(d.Message); r != nil {
			d.Message = strings.TrimSpace(r[1])
			d.Rule = strings.TrimSpace(r[2])
		}
	}
	return d
}
