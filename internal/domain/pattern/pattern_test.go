package pattern_test

import (
	"strings"
	"testing"

	"github.com/openkraft/javaqc/internal/domain/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_FirstMatchWins(t *testing.T) {
	table := pattern.NewTable(
		pattern.New("specific", `^(\w+):(\d+):(\d+)$`, nil),
		pattern.New("general", `^(\w+):(.+)$`, nil),
	)

	m := table.Classify("file:3:4")
	require.True(t, m.Matched())
	assert.Equal(t, "specific", m.Pattern)
	assert.Equal(t, "4", m.Group(3))

	m = table.Classify("file:abc")
	require.True(t, m.Matched())
	assert.Equal(t, "general", m.Pattern)
}

func TestTable_UnmatchedKeepsText(t *testing.T) {
	table := pattern.NewTable(pattern.New("digits", `^\d+$`, nil))

	m := table.Classify("  not a number ")
	assert.False(t, m.Matched())
	assert.Equal(t, pattern.Unmatched, m.Outcome)
	assert.Equal(t, "  not a number ", m.Text)
	assert.Empty(t, m.Pattern)
	assert.Empty(t, m.Group(1))
}

func TestTable_AcceptRejectionFallsThrough(t *testing.T) {
	table := pattern.NewTable(
		pattern.New("even", `^(\d+)$`, func(g []string) bool { return strings.HasSuffix(g[1], "0") }),
		pattern.New("any", `^(.*)$`, nil),
	)

	assert.Equal(t, "even", table.Classify("10").Pattern)
	assert.Equal(t, "any", table.Classify("11").Pattern)
}

func TestTable_Deterministic(t *testing.T) {
	table := pattern.NewTable(
		pattern.New("a", `^a(.*)$`, nil),
		pattern.New("b", `^(.*)b$`, nil),
	)
	first := table.Classify("a-b")
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, table.Classify("a-b"))
	}
	assert.Equal(t, []string{"a", "b"}, table.Names())
}

func TestLines_StripsCRLF(t *testing.T) {
	lines := pattern.Lines("one\r\ntwo\n\nfour")
	require.Len(t, lines, 4)
	assert.Equal(t, "one", lines[0].Text)
	assert.Equal(t, "", lines[2].Text)
	assert.Equal(t, 3, lines[3].Index)
	assert.Empty(t, pattern.Lines(""))
}

func TestLines_LongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	lines := pattern.Lines(long + "\nend")
	require.Len(t, lines, 2)
	assert.Len(t, lines[0].Text, len(long))
}

func TestLeadingWhitespace(t *testing.T) {
	assert.Equal(t, 0, pattern.LeadingWhitespace("^"))
	assert.Equal(t, 3, pattern.LeadingWhitespace("   ^"))
	assert.Equal(t, 2, pattern.LeadingWhitespace("\t ^"))
}
