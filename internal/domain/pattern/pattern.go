// Package pattern classifies log lines against an ordered table of
// expressions. The first structurally consistent match wins; text no
// pattern accepts comes back as Unmatched with the input preserved.
//
// Expressions are Go RE2, so matching is linear in the input length.
package pattern

import (
	"bufio"
	"regexp"
	"strings"
)

// Outcome tags a classification result.
type Outcome int

const (
	Unmatched Outcome = iota
	Matched
)

// Pattern is one named entry in a Table.
type Pattern struct {
	Name string
	Expr *regexp.Regexp
	// Accept, when set, rejects matches whose capture groups are not
	// structurally consistent. A rejected match falls through to the next
	// pattern.
	Accept func(groups []string) bool
}

// New compiles expr into a Pattern. It panics on a bad expression, so
// tables are built at package init.
func New(name, expr string, accept func(groups []string) bool) Pattern {
	return Pattern{Name: name, Expr: regexp.MustCompile(expr), Accept: accept}
}

// Match is the result of classifying one piece of text.
type Match struct {
	Outcome Outcome
	// Pattern is the name of the winning pattern, empty when unmatched.
	Pattern string
	// Groups holds the capture groups of the winning pattern, Groups[0]
	// being the whole match.
	Groups []string
	Text   string
}

// Matched reports whether a pattern accepted the text.
func (m Match) Matched() bool { return m.Outcome == Matched }

// Group returns capture group i, or "" when absent.
func (m Match) Group(i int) string {
	if i < 0 || i >= len(m.Groups) {
		return ""
	}
	return m.Groups[i]
}

// Table is an ordered list of patterns for one log kind.
type Table struct {
	patterns []Pattern
}

// NewTable builds a table; patterns are tried in the order given.
func NewTable(patterns ...Pattern) *Table {
	return &Table{patterns: append([]Pattern(nil), patterns...)}
}

// Names lists the pattern names in priority order.
func (t *Table) Names() []string {
	names := make([]string, len(t.patterns))
	for i, p := range t.patterns {
		names[i] = p.Name
	}
	return names
}

// Classify returns the first accepted match for text. It never fails.
func (t *Table) Classify(text string) Match {
	for _, p := range t.patterns {
		groups := p.Expr.FindStringSubmatch(text)
		if groups == nil {
			continue
		}
		if p.Accept != nil && !p.Accept(groups) {
			continue
		}
		return Match{Outcome: Matched, Pattern: p.Name, Groups: groups, Text: text}
	}
	return Match{Outcome: Unmatched, Text: text}
}

// Line is one line of a transcript with its zero-based index.
type Line struct {
	Index int
	Text  string
}

// Lines splits text into lines, dropping the line terminators (including a
// trailing \r from CRLF transcripts).
func Lines(text string) []Line {
	var out []Line
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	for i := 0; sc.Scan(); i++ {
		out = append(out, Line{Index: i, Text: strings.TrimSuffix(sc.Text(), "\r")})
	}
	return out
}

// FirstSubmatch returns the first capture group of the first line matching
// re, trimmed. ok is false when no line matches.
func FirstSubmatch(lines []Line, re *regexp.Regexp) (value string, ok bool) {
	for _, l := range lines {
		if m := re.FindStringSubmatch(l.Text); m != nil && len(m) > 1 {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

// LeadingWhitespace returns the length of the run of spaces and tabs that
// starts s.
func LeadingWhitespace(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}
