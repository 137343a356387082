package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const debounce = 50 * time.Millisecond

func waitEvent(t *testing.T, w *Watcher, want EventType) {
	t.Helper()
	select {
	case ev, ok := <-w.Events():
		require.True(t, ok, "event channel closed while waiting for %s", want)
		require.Equal(t, want, ev.Type)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s event", want)
	}
}

func TestWatcherCreateChangeRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "burrow.yml")

	w, err := NewWatcher(path, debounce)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("port: 5300"), 0o644))
	waitEvent(t, w, Created)

	require.NoError(t, os.WriteFile(path, []byte("port: 5301"), 0o644))
	waitEvent(t, w, Changed)

	require.NoError(t, os.Remove(path))
	waitEvent(t, w, Removed)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "burrow.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: 1"), 0o644))

	w, err := NewWatcher(path, 100*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	// several rapid writes settle into a single event
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("port: 5300"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}
	waitEvent(t, w, Changed)

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected extra event %s after burst settled", ev.Type)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "burrow.yml")

	w, err := NewWatcher(path, debounce)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yml"), []byte("x"), 0o644))

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event %s for sibling file", ev.Type)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherRenameIntoPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "burrow.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: 5300"), 0o644))

	w, err := NewWatcher(path, debounce)
	require.NoError(t, err)
	defer w.Close()

	// editors write a temp file and rename it over the original
	tmp := filepath.Join(dir, "burrow.yml.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("port: 5301"), 0o644))
	require.NoError(t, os.Rename(tmp, path))
	waitEvent(t, w, Changed)
}

func TestWatcherClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "burrow.yml")

	w, err := NewWatcher(path, debounce)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second close must be a no-op")

	select {
	case _, ok := <-w.Events():
		require.False(t, ok, "event channel should be closed after Close")
	case <-time.After(2 * time.Second):
		t.Fatal("event channel not closed after Close")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "burrow.yml"), debounce)
	require.Error(t, err)
}
