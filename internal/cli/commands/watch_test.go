package commands

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leapstack-labs/sqlfront/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher_Debounce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.sql")
	other := filepath.Join(dir, "other.sql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT 1"), 0o644))

	w, err := newFileWatcher(path, testutil.NewTestLogger(t))
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, 50*time.Millisecond, func() { calls.Add(1) })
	}()

	require.NoError(t, os.WriteFile(other, []byte("SELECT 2"), 0o644))
	for i := range 5 {
		require.NoError(t, os.WriteFile(path, []byte("SELECT "+string(rune('1'+i))), 0o644))
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "a burst of writes triggers one call")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestParseWatch_RequiresOneFile(t *testing.T) {
	cc, _ := newTestSession(t)
	err := runParseWatch(context.Background(), cc.cc, []input{{Name: "-e#1", Text: "SELECT 1", Single: true}})
	assert.ErrorContains(t, err, "--watch needs exactly one file")
}
