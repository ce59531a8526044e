package devserver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchRecompilesOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.pulse")
	require.NoError(t, os.WriteFile(path, []byte(`view { div { "hi" } }`), 0o644))

	results := make(chan CompileResult, 4)
	stop, err := Watch(dir, func(r CompileResult) { results <- r })
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte(`view { div { "bye" } }`), 0o644))

	select {
	case r := <-results:
		require.Equal(t, path, r.Path)
		require.Empty(t, r.Err)
		require.Contains(t, r.Code, "bye")
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for recompile result")
	}
}

func TestWatchReportsCompileErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pulse")
	require.NoError(t, os.WriteFile(path, []byte(`view { div { "ok" } }`), 0o644))

	results := make(chan CompileResult, 4)
	stop, err := Watch(dir, func(r CompileResult) { results <- r })
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte(`view { div [ }`), 0o644))

	select {
	case r := <-results:
		require.NotEmpty(t, r.Err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for compile error result")
	}
}

func TestWatchIgnoresNonPulseFiles(t *testing.T) {
	dir := t.TempDir()

	results := make(chan CompileResult, 4)
	stop, err := Watch(dir, func(r CompileResult) { results <- r })
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))

	select {
	case r := <-results:
		t.Fatalf("unexpected result for a non-.pulse file: %+v", r)
	case <-time.After(300 * time.Millisecond):
	}
}
