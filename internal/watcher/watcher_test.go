package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/tube-digest/internal/logger"
)

func TestWatcherReportsMatchingChanges(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan string, 10)

	w, err := New(dir, []string{".html"}, func(ctx context.Context, path string) error {
		changed <- path
		return nil
	}, logger.Nop())
	require.NoError(t, err)
	defer w.Stop()
	w.(*implWatcher).settle = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	target := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(target, []byte("<p>one</p>"), 0644))
	require.NoError(t, os.WriteFile(target, []byte("<p>two</p>"), 0644))

	select {
	case got := <-changed:
		assert.Equal(t, target, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestMatches(t *testing.T) {
	w := &implWatcher{exts: map[string]bool{".html": true}}
	assert.True(t, w.matches("/tmp/INDEX.HTML"))
	assert.False(t, w.matches("/tmp/index.html~"))

	all := &implWatcher{}
	assert.True(t, all.matches("anything"))
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, nil, logger.Nop())
	assert.Error(t, err)
}
