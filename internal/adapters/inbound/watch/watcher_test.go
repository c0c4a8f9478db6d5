package watch_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/openkraft/javaqc/internal/adapters/inbound/watch"
	"github.com/openkraft/javaqc/internal/adapters/outbound/logfile"
	"github.com/openkraft/javaqc/internal/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const logsDir = "../../../../testdata/logs"

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func copyFixture(t *testing.T, name, dst string) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(logsDir, name))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dst, data, 0644))
}

func newWatcher(out *syncBuffer, opts watch.Options) *watch.Watcher {
	return watch.New(application.NewParseService(logfile.New(), nil), out, opts)
}

func TestHandle_BuildLog(t *testing.T) {
	repo := t.TempDir()
	dir := filepath.Join(repo, "build-logs")
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "build-log-20250101-120000.log")
	copyFixture(t, "build-failure.log", path)

	out := &syncBuffer{}
	require.NoError(t, newWatcher(out, watch.Options{}).Handle(path))
	assert.Contains(t, out.String(), path)
	assert.Contains(t, out.String(), "FAILED")
}

func TestHandle_StyleLogJSON(t *testing.T) {
	repo := t.TempDir()
	dir := filepath.Join(repo, "checkstyle-reports")
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "checkstyle-report-20250101-120000.log")
	copyFixture(t, "checkstyle-violations.log", path)

	out := &syncBuffer{}
	require.NoError(t, newWatcher(out, watch.Options{JSON: true}).Handle(path))
	assert.Contains(t, out.String(), `"status": "ISSUES_FOUND"`)
}

func TestHandle_UnknownDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.log")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	err := newWatcher(&syncBuffer{}, watch.Options{}).Handle(path)
	assert.Error(t, err)
}

func TestRun_RendersNewLogs(t *testing.T) {
	repo := t.TempDir()
	out := &syncBuffer{}
	w := newWatcher(out, watch.Options{Debounce: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, repo) }()

	dir := filepath.Join(repo, "build-logs")
	require.Eventually(t, func() bool {
		_, err := os.Stat(dir)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	// Run creates the directory before registering it with the watcher.
	time.Sleep(100 * time.Millisecond)

	copyFixture(t, "build-success.log", filepath.Join(dir, "build-log-20250101-120000.log"))
	copyFixture(t, "build-success.log", filepath.Join(dir, "notes.txt"))

	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("SUCCESS"))
	}, 5*time.Second, 20*time.Millisecond)
	assert.NotContains(t, out.String(), "notes.txt")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
