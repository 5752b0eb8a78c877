package spreadsheet_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/smartworld/smartdesk/internal/spreadsheet"
)

func TestWatcherDebouncesWrites(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "employees.csv")
	require.NoError(t, os.WriteFile(path, []byte("EMP ID\n1\n"), 0o644))

	calls := make(chan struct{}, 10)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w, err := spreadsheet.NewWatcher(path, 50*time.Millisecond, func(context.Context) {
		calls <- struct{}{}
	}, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("EMP ID\n1\n2\n"), 0o644))
	}

	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not report the change")
	}

	// let any trailing events settle before checking unrelated files
	time.Sleep(300 * time.Millisecond)
	for len(calls) > 0 {
		<-calls
	}

	// writes to other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o644))
	select {
	case <-calls:
		t.Fatal("unexpected extra reload")
	case <-time.After(200 * time.Millisecond):
	}

	w.Stop()
}

func TestWatcherStopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w, err := spreadsheet.NewWatcher(filepath.Join(t.TempDir(), "roster.xlsx"), 0, func(context.Context) {}, logger)
	require.NoError(t, err)
	w.Stop()
}
