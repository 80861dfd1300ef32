package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherNotifiesOnWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	watched := filepath.Join(dir, "a.lean")
	other := filepath.Join(dir, "b.lean")
	require.NoError(t, os.WriteFile(watched, []byte("def x := 1\n"), 0o600))

	changed := make(chan string, 16)
	w, err := NewWatcher(func(path string) { changed <- path })
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.WatchFile(watched))
	// Watching again reuses the directory watch.
	require.NoError(t, w.WatchFile(watched))

	require.NoError(t, os.WriteFile(other, []byte("ignored\n"), 0o600))
	require.NoError(t, os.WriteFile(watched, []byte("def x := 2\n"), 0o600))

	want, err := filepath.Abs(watched)
	require.NoError(t, err)

	select {
	case got := <-changed:
		assert.Equal(t, want, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification received")
	}
}

func TestWatchFilesChecksOnceBeforeWatching(t *testing.T) {
	t.Parallel()

	errOut := new(strings.Builder)
	app := NewLeanApp(WithStderr(errOut))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join("testdata", "unterminated_comment.lean")
	require.NoError(t, app.watchFiles(ctx, []string{path}))

	assert.True(t, app.hasFailed())
	assert.Error(t, app.failed[path])
	assert.Contains(t, errOut.String(), "ERROR "+path+":[line 3:2] unterminated comment")
}

func TestRecheckReplacesOnlyThatFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.lean")
	b := filepath.Join(dir, "b.lean")
	broken := []byte("def x := #1\n")
	fixed := []byte("def x := 1\n")
	require.NoError(t, os.WriteFile(a, broken, 0o600))
	require.NoError(t, os.WriteFile(b, broken, 0o600))

	app := NewLeanApp(WithStderr(new(strings.Builder)))
	app.runFiles([]string{a, b})
	assert.Len(t, app.failed, 2)

	require.NoError(t, os.WriteFile(a, fixed, 0o600))
	app.runFile(a)
	assert.True(t, app.hasFailed(), "b still fails")
	assert.NotContains(t, app.failed, a)
	assert.Contains(t, app.failed, b)

	require.NoError(t, os.WriteFile(b, fixed, 0o600))
	app.runFile(b)
	assert.False(t, app.hasFailed())
}
