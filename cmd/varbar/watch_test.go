package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchFileRendersOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("Category,Actual\nA,1\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rendered := make(chan struct{}, 4)
	done := make(chan error, 1)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	go func() {
		done <- watchFile(ctx, path, logger, func() error {
			rendered <- struct{}{}
			return nil
		})
	}()

	// Keep writing until the watcher, which registers asynchronously, sees a change.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
loop:
	for {
		select {
		case <-rendered:
			break loop
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("Category,Actual\nA,2\n"), 0644))
		case <-deadline:
			t.Fatal("no render after writes")
		}
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
