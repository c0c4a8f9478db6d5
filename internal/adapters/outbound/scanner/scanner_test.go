package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openkraft/javaqc/internal/adapters/outbound/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../../../testdata/java-project"

func TestFileScanner_PrefersSrc(t *testing.T) {
	files, err := scanner.New().JavaFiles(fixtureDir)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/App.java", "src/com/example/Hello.java"}, files)
}

func TestFileScanner_WholeRepoWithoutSrc(t *testing.T) {
	dir := t.TempDir()
	write := func(rel string) {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("class X {}"), 0644))
	}
	write("Main.java")
	write("pkg/Util.java")
	write("pkg/notes.txt")
	write("bin/Stale.java")
	write(".git/Hook.java")
	write("build-logs/Copy.java")

	files, err := scanner.New().JavaFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Main.java", "pkg/Util.java"}, files)
}

func TestFileScanner_EmptyRepo(t *testing.T) {
	files, err := scanner.New().JavaFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileScanner_MissingDir(t *testing.T) {
	_, err := scanner.New().JavaFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
